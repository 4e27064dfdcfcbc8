package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/newspulse/newsgen/config"
)

var ErrSweeperNotResponded = errors.New("sweeper not responded")

type Sweeper interface {
	ForceSweep(timeout time.Duration) error
	SweeperMetrics() (sweeps, evicted int64)
	Close() error
}

// SweepWorker periodically evicts expired entries from the in-process tier.
// The durable tier expires keys natively and needs no help.
type SweepWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.MemoryCfg
	clock    clock.Clock
	logger   *slog.Logger
	memory   *memoryTier
	sweeps   atomic.Int64
	evicted  atomic.Int64
	invokeCh chan chan struct{}
}

func NewSweeper(ctx context.Context, cfg *config.MemoryCfg, clk clock.Clock, logger *slog.Logger, cache *Cache) Sweeper {
	ctx, cancel := context.WithCancel(ctx)
	return (&SweepWorker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
		memory:   cache.memory,
		invokeCh: make(chan chan struct{}),
	}).run()
}

// ForceSweep triggers an out-of-band sweep and waits for it to finish.
func (w *SweepWorker) ForceSweep(timeout time.Duration) error {
	after := time.NewTimer(timeout)
	defer after.Stop()

	done := make(chan struct{})
	select {
	case <-w.ctx.Done():
		return nil
	case w.invokeCh <- done:
	case <-after.C:
		return ErrSweeperNotResponded
	}

	select {
	case <-w.ctx.Done():
	case <-done:
	case <-after.C:
		return ErrSweeperNotResponded
	}
	return nil
}

func (w *SweepWorker) SweeperMetrics() (sweeps, evicted int64) {
	return w.sweeps.Load(), w.evicted.Load()
}

func (w *SweepWorker) Close() error {
	w.cancel()
	return nil
}

func (w *SweepWorker) run() *SweepWorker {
	w.logger.Info("sweeper is running", "interval", w.cfg.SweepInterval.String())

	go func() {
		defer w.logger.Info("sweeper is stopped")

		ticker := w.clock.Ticker(w.cfg.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.sweepOnce()
			case done := <-w.invokeCh:
				w.sweepOnce()
				close(done)
			}
		}
	}()

	return w
}

func (w *SweepWorker) sweepOnce() {
	evicted := w.memory.sweep()
	w.sweeps.Add(1)
	if evicted > 0 {
		w.evicted.Add(evicted)
		w.logger.Debug("sweep evicted expired entries", "evicted", evicted)
	}
}
