package generator

import "sync/atomic"

type generatorCounters struct {
	requests      atomic.Int64
	cacheHits     atomic.Int64
	rounds        atomic.Int64
	generated     atomic.Int64
	partials      atomic.Int64
	llmFailures   atomic.Int64
	parseFailures atomic.Int64
}

func newGeneratorCounters() *generatorCounters {
	return &generatorCounters{
		requests:      atomic.Int64{},
		cacheHits:     atomic.Int64{},
		rounds:        atomic.Int64{},
		generated:     atomic.Int64{},
		partials:      atomic.Int64{},
		llmFailures:   atomic.Int64{},
		parseFailures: atomic.Int64{},
	}
}

func (c *generatorCounters) snapshot() (requests, cacheHits, rounds, generated, partials, llmFailures, parseFailures int64) {
	return c.requests.Load(),
		c.cacheHits.Load(),
		c.rounds.Load(),
		c.generated.Load(),
		c.partials.Load(),
		c.llmFailures.Load(),
		c.parseFailures.Load()
}
