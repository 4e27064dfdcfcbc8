package dedupe

import "sync/atomic"

type setCounters struct {
	loads      atomic.Int64
	recorded   atomic.Int64
	duplicates atomic.Int64
	degraded   atomic.Int64
}

func newSetCounters() *setCounters {
	return &setCounters{
		loads:      atomic.Int64{},
		recorded:   atomic.Int64{},
		duplicates: atomic.Int64{},
		degraded:   atomic.Int64{},
	}
}

func (c *setCounters) snapshot() (loads, recorded, duplicates, degraded int64) {
	return c.loads.Load(), c.recorded.Load(), c.duplicates.Load(), c.degraded.Load()
}
