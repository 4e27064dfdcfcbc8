// Package generator drives the news generation state machine: cache check,
// bounded generation rounds against the LLM with dedupe filtering, then
// snapshot write-back. The public path never returns an error: a total LLM
// outage yields whatever was collected, possibly nothing. Availability over
// completeness.
package generator

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/newspulse/newsgen/config"
	"github.com/newspulse/newsgen/internal/cache"
	"github.com/newspulse/newsgen/internal/dedupe"
	"github.com/newspulse/newsgen/internal/llm"
	"github.com/newspulse/newsgen/internal/parse"
	"github.com/newspulse/newsgen/model"
)

type NewsGenerator interface {
	Generate(ctx context.Context, count int) []model.NewsItem
	GeneratorMetrics() (requests, cacheHits, rounds, generated, partials, llmFailures, parseFailures int64)
}

type Generator struct {
	cfg      *config.GeneratorCfg
	cache    cache.Cacher
	dedupe   *dedupe.Set
	llm      llm.Generator
	clock    clock.Clock
	logger   *slog.Logger
	counters *generatorCounters
}

func New(
	cfg *config.GeneratorCfg,
	cacher cache.Cacher,
	set *dedupe.Set,
	client llm.Generator,
	clk clock.Clock,
	logger *slog.Logger,
) *Generator {
	return &Generator{
		cfg:      cfg,
		cache:    cacher,
		dedupe:   set,
		llm:      client,
		clock:    clk,
		logger:   logger,
		counters: newGeneratorCounters(),
	}
}

func (g *Generator) GeneratorMetrics() (requests, cacheHits, rounds, generated, partials, llmFailures, parseFailures int64) {
	return g.counters.snapshot()
}

// Generate returns up to count deduplicated news items for the current hour
// bucket, serving from cache when possible.
func (g *Generator) Generate(ctx context.Context, count int) []model.NewsItem {
	if count <= 0 {
		return nil
	}
	g.counters.requests.Add(1)

	session := uuid.NewString()
	now := g.clock.Now().UTC()
	key := SnapshotKey(g.cfg.KeyPrefix, now, count)
	logger := g.logger.With("session", session, "key", key, "count", count)

	if items, found := g.fromCache(ctx, key, logger); found {
		g.counters.cacheHits.Add(1)
		logger.Info("serving cached feed snapshot", "items", len(items))
		return items
	}

	collected := g.generationLoop(ctx, count, now, logger)

	// Snapshot write-back happens even for short or empty results: the
	// bucket coalesces concurrent demand for this hour either way.
	if data, err := json.Marshal(collected); err != nil {
		logger.Error("marshal feed snapshot", "error", err)
	} else {
		g.cache.Set(ctx, key, data, g.cfg.SnapshotTTL)
	}

	g.counters.generated.Add(int64(len(collected)))
	if len(collected) < count {
		g.counters.partials.Add(1)
		logger.Warn("generation finished short of quota", "collected", len(collected))
	} else {
		logger.Info("generation finished", "collected", len(collected))
	}

	return collected
}

func (g *Generator) fromCache(ctx context.Context, key string, logger *slog.Logger) ([]model.NewsItem, bool) {
	payload, found := g.cache.Get(ctx, key)
	if !found {
		return nil, false
	}

	var items []model.NewsItem
	if err := json.Unmarshal(payload, &items); err != nil {
		logger.Warn("cached snapshot is not decodable, regenerating", "error", err)
		return nil, false
	}
	return items, true
}

// generationLoop runs bounded rounds sequentially: round n's dedupe decisions
// depend on round n-1's recorded hashes, so rounds must not run concurrently.
func (g *Generator) generationLoop(ctx context.Context, count int, now time.Time, logger *slog.Logger) []model.NewsItem {
	session := g.dedupe.NewSession(ctx)
	collected := make([]model.NewsItem, 0, count)

	for round := 0; round < g.cfg.MaxRounds && len(collected) < count; round++ {
		g.counters.rounds.Add(1)

		// Request a small surplus to absorb duplicate-filtering loss,
		// capped to bound prompt cost.
		requestCount := count - len(collected) + g.cfg.Surplus
		if requestCount > g.cfg.MaxPerRound {
			requestCount = g.cfg.MaxPerRound
		}

		raw, err := g.llm.Generate(ctx, BatchPrompt(requestCount, now))
		if err != nil {
			g.counters.llmFailures.Add(1)
			logger.Warn("generation round aborted, keeping partial results",
				"round", round+1, "error", err)
			break
		}

		items, err := parse.Batch(raw, "")
		if err != nil {
			g.counters.parseFailures.Add(1)
			logger.Warn("round produced no parseable items", "round", round+1, "error", err)
			continue
		}

		for _, item := range items {
			if len(collected) >= count {
				break
			}

			hash := dedupe.Hash(dedupeTitle(item))
			if session.Seen(hash) {
				continue
			}
			if item.SourceURL == "" {
				item.SourceURL = syntheticSourceURL(g.cfg.SourceHost, now, hash, len(collected))
			}

			collected = append(collected, item)
			session.Record(ctx, hash)
		}
	}

	session.Finish(ctx)
	return collected
}

// dedupeTitle picks the string the duplicate filter keys on: the original
// title, falling back to the translated one when the original was missing.
func dedupeTitle(item model.NewsItem) string {
	if item.Title != parse.Placeholder {
		return item.Title
	}
	return item.TitleTranslated
}
