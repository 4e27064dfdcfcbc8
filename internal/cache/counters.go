package cache

import "sync/atomic"

type cacheCounters struct {
	durableHits        atomic.Int64
	durableErrors      atomic.Int64
	durableWriteErrors atomic.Int64
	fallbackHits       atomic.Int64
	misses             atomic.Int64
	writes             atomic.Int64
}

func newCacheCounters() *cacheCounters {
	return &cacheCounters{
		durableHits:        atomic.Int64{},
		durableErrors:      atomic.Int64{},
		durableWriteErrors: atomic.Int64{},
		fallbackHits:       atomic.Int64{},
		misses:             atomic.Int64{},
		writes:             atomic.Int64{},
	}
}

func (c *cacheCounters) snapshot() (durableHits, durableErrors, durableWriteErrors, fallbackHits, misses, writes int64) {
	return c.durableHits.Load(),
		c.durableErrors.Load(),
		c.durableWriteErrors.Load(),
		c.fallbackHits.Load(),
		c.misses.Load(),
		c.writes.Load()
}
