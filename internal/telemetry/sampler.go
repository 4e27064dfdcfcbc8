package telemetry

import (
	"github.com/newspulse/newsgen/internal/cache"
	"github.com/newspulse/newsgen/internal/dedupe"
	"github.com/newspulse/newsgen/internal/generator"
)

type sampler struct {
	cache     *cache.Cache
	sweeper   cache.Sweeper
	dedupe    *dedupe.Set
	generator generator.NewsGenerator
}

func newSampler(c *cache.Cache, sw cache.Sweeper, d *dedupe.Set, g generator.NewsGenerator) sampler {
	return sampler{cache: c, sweeper: sw, dedupe: d, generator: g}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	durableHits        uint64
	durableErrors      uint64
	durableWriteErrors uint64
	fallbackHits       uint64
	misses             uint64
	writes             uint64

	sweeps       uint64
	sweepEvicted uint64

	dedupeLoads      uint64
	dedupeRecorded   uint64
	dedupeDuplicates uint64
	dedupeDegraded   uint64

	genRequests      uint64
	genCacheHits     uint64
	genRounds        uint64
	genItems         uint64
	genPartials      uint64
	genLLMFailures   uint64
	genParseFailures uint64
}

func (s sampler) snapshot() snapshot {
	dHits, dErrs, dwErrs, fbHits, misses, writes := s.cache.Metrics()
	sweeps, evicted := s.sweeper.SweeperMetrics()
	loads, recorded, duplicates, degraded := s.dedupe.Metrics()
	requests, cacheHits, rounds, items, partials, llmFails, parseFails := s.generator.GeneratorMetrics()

	return snapshot{
		durableHits:        uint64(max(dHits, 0)),
		durableErrors:      uint64(max(dErrs, 0)),
		durableWriteErrors: uint64(max(dwErrs, 0)),
		fallbackHits:       uint64(max(fbHits, 0)),
		misses:             uint64(max(misses, 0)),
		writes:             uint64(max(writes, 0)),

		sweeps:       uint64(max(sweeps, 0)),
		sweepEvicted: uint64(max(evicted, 0)),

		dedupeLoads:      uint64(max(loads, 0)),
		dedupeRecorded:   uint64(max(recorded, 0)),
		dedupeDuplicates: uint64(max(duplicates, 0)),
		dedupeDegraded:   uint64(max(degraded, 0)),

		genRequests:      uint64(max(requests, 0)),
		genCacheHits:     uint64(max(cacheHits, 0)),
		genRounds:        uint64(max(rounds, 0)),
		genItems:         uint64(max(items, 0)),
		genPartials:      uint64(max(partials, 0)),
		genLLMFailures:   uint64(max(llmFails, 0)),
		genParseFailures: uint64(max(parseFails, 0)),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		durableHits:        delta(prev.durableHits, cur.durableHits),
		durableErrors:      delta(prev.durableErrors, cur.durableErrors),
		durableWriteErrors: delta(prev.durableWriteErrors, cur.durableWriteErrors),
		fallbackHits:       delta(prev.fallbackHits, cur.fallbackHits),
		misses:             delta(prev.misses, cur.misses),
		writes:             delta(prev.writes, cur.writes),

		sweeps:       delta(prev.sweeps, cur.sweeps),
		sweepEvicted: delta(prev.sweepEvicted, cur.sweepEvicted),

		dedupeLoads:      delta(prev.dedupeLoads, cur.dedupeLoads),
		dedupeRecorded:   delta(prev.dedupeRecorded, cur.dedupeRecorded),
		dedupeDuplicates: delta(prev.dedupeDuplicates, cur.dedupeDuplicates),
		dedupeDegraded:   delta(prev.dedupeDegraded, cur.dedupeDegraded),

		genRequests:      delta(prev.genRequests, cur.genRequests),
		genCacheHits:     delta(prev.genCacheHits, cur.genCacheHits),
		genRounds:        delta(prev.genRounds, cur.genRounds),
		genItems:         delta(prev.genItems, cur.genItems),
		genPartials:      delta(prev.genPartials, cur.genPartials),
		genLLMFailures:   delta(prev.genLLMFailures, cur.genLLMFailures),
		genParseFailures: delta(prev.genParseFailures, cur.genParseFailures),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
