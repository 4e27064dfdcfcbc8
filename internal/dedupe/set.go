// Package dedupe maintains the durable, expiring set of title hashes that
// keeps previously generated items from being reintroduced as new.
//
// The set has a single whole-set rolling expiry: every session that records
// at least one hash resets it, members never expire individually. A title
// recorded 23 hours ago therefore lives another full window after a refresh;
// cheap and coarse is the intended behavior.
package dedupe

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newspulse/newsgen/config"
)

// Store is the durable membership surface of the set.
type Store interface {
	Members(ctx context.Context, key string) ([]string, error)
	Add(ctx context.Context, key, member string) error
	Expire(ctx context.Context, key string, window time.Duration) error
}

// RedisStore adapts a shared redis client to Store.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Members(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *RedisStore) Add(ctx context.Context, key, member string) error {
	return s.rdb.SAdd(ctx, key, member).Err()
}

func (s *RedisStore) Expire(ctx context.Context, key string, window time.Duration) error {
	return s.rdb.Expire(ctx, key, window).Err()
}

type Set struct {
	cfg      *config.DedupeCfg
	store    Store
	logger   *slog.Logger
	counters *setCounters
}

func NewSet(cfg *config.DedupeCfg, store Store, logger *slog.Logger) *Set {
	return &Set{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		counters: newSetCounters(),
	}
}

func (s *Set) Metrics() (loads, recorded, duplicates, degraded int64) {
	return s.counters.snapshot()
}

// NewSession loads the durable membership once. A store failure degrades the
// session to local-only filtering instead of failing the generation: the
// durable set is the source of truth across restarts, the session view is a
// same-request optimization.
func (s *Set) NewSession(ctx context.Context) *Session {
	existing := make(map[string]struct{})

	members, err := s.store.Members(ctx, s.cfg.SetKey)
	if err != nil {
		s.counters.degraded.Add(1)
		s.logger.Warn("dedupe set unavailable, filtering within session only",
			"set_key", s.cfg.SetKey, "error", err)
	} else {
		for _, m := range members {
			existing[m] = struct{}{}
		}
	}
	s.counters.loads.Add(1)

	return &Session{
		set:      s,
		existing: existing,
		local:    make(map[string]struct{}),
	}
}

// Session is the per-generation-request view of the set: durable members
// loaded once, plus hashes accumulated in this session. Not safe for
// concurrent use; a generation request owns its session.
type Session struct {
	set      *Set
	existing map[string]struct{}
	local    map[string]struct{}
	recorded bool
}

// Seen reports membership against existing ∪ session-accumulated hashes
// without a round trip.
func (ss *Session) Seen(hash string) bool {
	if _, ok := ss.existing[hash]; ok {
		ss.set.counters.duplicates.Add(1)
		return true
	}
	if _, ok := ss.local[hash]; ok {
		ss.set.counters.duplicates.Add(1)
		return true
	}
	return false
}

// Record accepts the hash locally and persists it durably. A persistence
// failure keeps the hash in the session so the current batch still filters
// correctly.
func (ss *Session) Record(ctx context.Context, hash string) {
	ss.local[hash] = struct{}{}
	ss.recorded = true
	ss.set.counters.recorded.Add(1)

	if err := ss.set.store.Add(ctx, ss.set.cfg.SetKey, hash); err != nil {
		ss.set.counters.degraded.Add(1)
		ss.set.logger.Warn("dedupe hash not persisted", "hash", hash, "error", err)
	}
}

// Finish resets the whole set's expiry window once per session, and only if
// the session recorded something. Never per-item.
func (ss *Session) Finish(ctx context.Context) {
	if !ss.recorded {
		return
	}
	if err := ss.set.store.Expire(ctx, ss.set.cfg.SetKey, ss.set.cfg.Window); err != nil {
		ss.set.counters.degraded.Add(1)
		ss.set.logger.Warn("dedupe expiry not refreshed", "set_key", ss.set.cfg.SetKey, "error", err)
	}
}
