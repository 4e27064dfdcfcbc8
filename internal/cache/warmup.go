package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// WarmupItem is one pre-populated entry. TTL zero means the default TTL.
type WarmupItem struct {
	Key   string
	Value []byte
	TTL   time.Duration
}

// Warmup pre-populates the cache from a caller-supplied producer at process
// start, avoiding a cold-start miss storm. Producer failure aborts the whole
// warm-up; individual write failures don't.
func (c *Cache) Warmup(ctx context.Context, produce func(ctx context.Context) ([]WarmupItem, error)) error {
	if !c.cfg.Warmup.Enabled() {
		return nil
	}

	items, err := produce(ctx)
	if err != nil {
		return fmt.Errorf("warmup producer: %w", err)
	}

	c.BatchWarmup(ctx, items, c.cfg.Warmup.BatchSize)
	return nil
}

// BatchWarmup writes items in fixed-size groups. Writes within a batch run
// concurrently (no inter-item dependency); batches run sequentially. Partial
// success is acceptable and counted.
func (c *Cache) BatchWarmup(ctx context.Context, items []WarmupItem, batchSize int) (written int) {
	start := time.Now()
	if batchSize <= 0 {
		batchSize = 10
	}

	var ok, skipped int32
	for from := 0; from < len(items); from += batchSize {
		if ctx.Err() != nil {
			break
		}

		to := from + batchSize
		if to > len(items) {
			to = len(items)
		}

		var wg sync.WaitGroup
		for _, item := range items[from:to] {
			wg.Add(1)
			go func(item WarmupItem) {
				defer wg.Done()
				if item.Key == "" || len(item.Value) == 0 {
					atomic.AddInt32(&skipped, 1)
					return
				}
				c.Set(ctx, item.Key, item.Value, item.TTL)
				atomic.AddInt32(&ok, 1)
			}(item)
		}
		wg.Wait()
	}

	log.Info().
		Int32("written", ok).
		Int32("skipped", skipped).
		Int("total", len(items)).
		Str("elapsed", time.Since(start).String()).
		Msg("warmup finished")

	return int(ok)
}
