// Package cache implements the dual-tier cache: a durable networked primary
// with native TTLs, backed by an in-process map that keeps serving while the
// primary is down. Tier unavailability is never surfaced to callers as an
// error; absence of data is a miss.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/newspulse/newsgen/config"
	"github.com/newspulse/newsgen/model"
)

type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	SetWithHotness(ctx context.Context, key string, value []byte, hotness model.HotnessInputs) bool
	Delete(ctx context.Context, key string)
	Keys(ctx context.Context, pattern string) ([]string, error)
	DeletePattern(ctx context.Context, pattern string) (int, error)
	Flush(ctx context.Context) error
	Stats() Stats
	Warmup(ctx context.Context, produce func(ctx context.Context) ([]WarmupItem, error)) error
	BatchWarmup(ctx context.Context, items []WarmupItem, batchSize int) (written int)
}

// Stats is the admin-surface snapshot of both tiers.
type Stats struct {
	DurableHits        int64 `json:"durable_hits"`
	DurableErrors      int64 `json:"durable_errors"`
	DurableWriteErrors int64 `json:"durable_write_errors"`
	FallbackHits       int64 `json:"fallback_hits"`
	Misses             int64 `json:"misses"`
	Writes             int64 `json:"writes"`
	MemoryEntries      int64 `json:"memory_entries"`
}

type Cache struct {
	cfg      *config.CacheCfg
	durable  Durable
	memory   *memoryTier
	logger   *slog.Logger
	counters *cacheCounters
}

func New(cfg *config.CacheCfg, durable Durable, clk clock.Clock, logger *slog.Logger) *Cache {
	return &Cache{
		cfg:      cfg,
		durable:  durable,
		memory:   newMemoryTier(clk),
		logger:   logger,
		counters: newCacheCounters(),
	}
}

// Get reads durable-first. A durable hit is opportunistically mirrored into
// the in-process tier so a later outage can still serve the key; the mirror
// carries the key's remaining lifetime, never a fresh one, so reads cannot
// re-arm an entry past its deadline. Durable miss or failure falls through to
// the in-process tier when fallback is enabled.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, ttl, ok, err := c.durable.Get(ctx, key)
	if err != nil {
		c.counters.durableErrors.Add(1)
		c.logger.Warn("durable tier read failed, using in-process tier", "key", key, "error", err)
	} else if ok {
		c.counters.durableHits.Add(1)
		payload := []byte(value)
		if ttl <= 0 {
			ttl = c.cfg.DefaultTTL
		}
		c.memory.set(key, payload, ttl)
		return payload, true
	}

	if c.cfg.Memory.FallbackEnabled {
		if payload, found := c.memory.get(key); found {
			c.counters.fallbackHits.Add(1)
			return payload, true
		}
	}

	c.counters.misses.Add(1)
	return nil, false
}

// Set double-writes: the durable tier is attempted, the in-process tier is
// written unconditionally. The in-process write is the guaranteed baseline,
// so Set reports success even when the durable tier is down.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = c.cfg.DefaultTTL
	}

	if err := c.durable.SetEx(ctx, key, string(value), ttl); err != nil {
		c.counters.durableWriteErrors.Add(1)
		c.logger.Warn("durable tier write failed, in-process tier only", "key", key, "error", err)
	}

	c.memory.set(key, value, ttl)
	c.counters.writes.Add(1)
	return true
}

// SetWithHotness picks the TTL band from the hotness score and delegates.
func (c *Cache) SetWithHotness(ctx context.Context, key string, value []byte, hotness model.HotnessInputs) bool {
	return c.Set(ctx, key, value, hotness.TTLFor())
}

func (c *Cache) Delete(ctx context.Context, key string) {
	if err := c.durable.Del(ctx, key); err != nil {
		c.counters.durableErrors.Add(1)
		c.logger.Warn("durable tier delete failed", "key", key, "error", err)
	}
	c.memory.remove(key)
}

// Keys lists durable-tier keys by pattern. Admin inspection only; unlike
// Get/Set this surfaces the tier error to the operator.
func (c *Cache) Keys(ctx context.Context, pattern string) ([]string, error) {
	return c.durable.Keys(ctx, pattern)
}

// DeletePattern removes all keys matching the pattern from both tiers and
// reports how many durable keys were matched.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	keys, err := c.durable.Keys(ctx, pattern)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err = c.durable.Del(ctx, keys...); err != nil {
		return 0, err
	}
	for _, key := range keys {
		c.memory.remove(key)
	}
	return len(keys), nil
}

// Flush clears both tiers completely.
func (c *Cache) Flush(ctx context.Context) error {
	err := c.durable.FlushAll(ctx)
	c.memory.clear()
	return err
}

func (c *Cache) Stats() Stats {
	durableHits, durableErrors, durableWriteErrors, fallbackHits, misses, writes := c.counters.snapshot()
	return Stats{
		DurableHits:        durableHits,
		DurableErrors:      durableErrors,
		DurableWriteErrors: durableWriteErrors,
		FallbackHits:       fallbackHits,
		Misses:             misses,
		Writes:             writes,
		MemoryEntries:      c.memory.len(),
	}
}

func (c *Cache) Metrics() (durableHits, durableErrors, durableWriteErrors, fallbackHits, misses, writes int64) {
	return c.counters.snapshot()
}
