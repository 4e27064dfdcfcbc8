// Package newsgen is the engine between "a request for news" and a durable,
// deduplicated, freshness-bounded result set: a dual-tier cache (redis plus
// in-process fallback), a persistent title-dedup set, a retrying LLM client
// and the orchestrator tying them together. REST controllers, storage and
// scheduling live elsewhere and call into this facade.
package newsgen

import (
	"context"
	"io"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"

	"github.com/newspulse/newsgen/config"
	"github.com/newspulse/newsgen/internal/cache"
	"github.com/newspulse/newsgen/internal/dedupe"
	"github.com/newspulse/newsgen/internal/generator"
	"github.com/newspulse/newsgen/internal/llm"
	"github.com/newspulse/newsgen/internal/telemetry"
)

type Engine interface {
	generator.NewsGenerator
	cache.Cacher
	cache.Sweeper
	telemetry.Logger
	io.Closer
}

type News struct {
	generator.NewsGenerator
	cache.Cacher
	cache.Sweeper
	telemetry.Logger
	cls context.CancelFunc
	rdb *redis.Client
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) *News {
	ctx, cancel := context.WithCancel(ctx)

	clk := clock.New()
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Cache.Redis.Addr,
		Password:    cfg.Cache.Redis.Password,
		DB:          cfg.Cache.Redis.DB,
		DialTimeout: cfg.Cache.Redis.DialTimeout,
	})

	cacher := cache.New(cfg.Cache, cache.NewRedisDurable(rdb), clk, logger)
	sweeper := cache.NewSweeper(ctx, &cfg.Cache.Memory, clk, logger, cacher)
	set := dedupe.NewSet(cfg.Dedupe, dedupe.NewRedisStore(rdb), logger)
	client := llm.New(cfg.LLM, logger)
	gen := generator.New(cfg.Generator, cacher, set, client, clk, logger)
	telemeter := telemetry.New(ctx, cfg.Telemetry, logger, cacher, sweeper, set, gen)

	return &News{
		cls:           cancel,
		rdb:           rdb,
		NewsGenerator: gen,
		Cacher:        cacher,
		Sweeper:       sweeper,
		Logger:        telemeter,
	}
}

func (n *News) Close() error {
	n.cls()
	return n.rdb.Close()
}
