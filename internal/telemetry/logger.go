package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/newspulse/newsgen/config"
	"github.com/newspulse/newsgen/internal/cache"
	"github.com/newspulse/newsgen/internal/dedupe"
	"github.com/newspulse/newsgen/internal/generator"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.TelemetryCfg
	logger   *slog.Logger
	sampler  sampler
	interval time.Duration
}

func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger *slog.Logger,
	c *cache.Cache,
	sw cache.Sweeper,
	d *dedupe.Set,
	g generator.NewsGenerator,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:     ctx,
		cancel:  cancel,
		cfg:     cfg,
		logger:  logger,
		sampler: newSampler(c, sw, d, g),
	}
	if cfg.Enabled() {
		l.interval = cfg.Interval
	}
	return l.run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	prev := l.sampler.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := l.sampler.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}

			l.logger.Info("cache_tiers",
				append(common,
					"durable_hits", int64(d.durableHits),
					"durable_errors", int64(d.durableErrors),
					"durable_write_errors", int64(d.durableWriteErrors),
					"fallback_hits", int64(d.fallbackHits),
					"misses", int64(d.misses),
					"writes", int64(d.writes),
					"memory_entries", l.sampler.cache.Stats().MemoryEntries,
				)...,
			)

			l.logger.Info("sweeper",
				append(common,
					"sweeps", int64(d.sweeps),
					"evicted", int64(d.sweepEvicted),
				)...,
			)

			l.logger.Info("dedupe_set",
				append(common,
					"loads", int64(d.dedupeLoads),
					"recorded", int64(d.dedupeRecorded),
					"duplicates", int64(d.dedupeDuplicates),
					"degraded", int64(d.dedupeDegraded),
				)...,
			)

			l.logger.Info("generator",
				append(common,
					"requests", int64(d.genRequests),
					"cache_hits", int64(d.genCacheHits),
					"rounds", int64(d.genRounds),
					"items", int64(d.genItems),
					"partials", int64(d.genPartials),
					"llm_failures", int64(d.genLLMFailures),
					"parse_failures", int64(d.genParseFailures),
				)...,
			)
		}
	}
}
