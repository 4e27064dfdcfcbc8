package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/newspulse/newsgen/config"
	"github.com/newspulse/newsgen/model"
)

// fakeDurable is an in-memory Durable with a failure switch, standing in for
// an unreachable redis. Expiry follows the mock clock the way redis expires
// natively. Locked because warmup writes batches concurrently.
type fakeDurable struct {
	mu        sync.Mutex
	clk       clock.Clock
	data      map[string]string
	ttls      map[string]time.Duration
	deadlines map[string]time.Time
	down      bool
}

var errDurableDown = errors.New("durable tier down")

func newFakeDurable(clk clock.Clock) *fakeDurable {
	return &fakeDurable{
		clk:       clk,
		data:      make(map[string]string),
		ttls:      make(map[string]time.Duration),
		deadlines: make(map[string]time.Time),
	}
}

func (d *fakeDurable) Get(_ context.Context, key string) (string, time.Duration, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.down {
		return "", 0, false, errDurableDown
	}
	v, ok := d.data[key]
	if !ok {
		return "", 0, false, nil
	}
	deadline, expiring := d.deadlines[key]
	if !expiring {
		return v, 0, true, nil
	}
	if !d.clk.Now().Before(deadline) {
		return "", 0, false, nil
	}
	return v, deadline.Sub(d.clk.Now()), true, nil
}

func (d *fakeDurable) SetEx(_ context.Context, key, value string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.down {
		return errDurableDown
	}
	d.data[key] = value
	d.ttls[key] = ttl
	d.deadlines[key] = d.clk.Now().Add(ttl)
	return nil
}

func (d *fakeDurable) Del(_ context.Context, keys ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.down {
		return errDurableDown
	}
	for _, key := range keys {
		delete(d.data, key)
		delete(d.ttls, key)
		delete(d.deadlines, key)
	}
	return nil
}

func (d *fakeDurable) Keys(_ context.Context, pattern string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.down {
		return nil, errDurableDown
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var out []string
	for key := range d.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out, nil
}

func (d *fakeDurable) FlushAll(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.down {
		return errDurableDown
	}
	d.data = make(map[string]string)
	d.ttls = make(map[string]time.Duration)
	d.deadlines = make(map[string]time.Time)
	return nil
}

func testCacheCfg() *config.CacheCfg {
	return &config.CacheCfg{
		DefaultTTL: 30 * time.Minute,
		Memory: config.MemoryCfg{
			SweepInterval:   time.Minute,
			FallbackEnabled: true,
		},
	}
}

func newTestCache(t *testing.T) (*Cache, *fakeDurable, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	durable := newFakeDurable(clk)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(testCacheCfg(), durable, clk, logger), durable, clk
}

func TestGetDurableFirst(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	durable.data["k"] = "durable-value"
	got, found := c.Get(ctx, "k")
	require.True(t, found)
	require.Equal(t, []byte("durable-value"), got)

	// The hit was mirrored, so a later outage still serves it.
	require.True(t, c.memory.contains("k"))
}

func TestGetFallsBackWhenDurableDown(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	require.True(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	durable.down = true
	got, found := c.Get(ctx, "k")
	require.True(t, found)
	require.Equal(t, []byte("v"), got)

	stats := c.Stats()
	require.Equal(t, int64(1), stats.FallbackHits)
	require.Equal(t, int64(1), stats.DurableErrors)
}

func TestGetFallbackDisabled(t *testing.T) {
	clk := clock.NewMock()
	durable := newFakeDurable(clk)
	cfg := testCacheCfg()
	cfg.Memory.FallbackEnabled = false
	c := New(cfg, durable, clk, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	durable.down = true

	_, found := c.Get(ctx, "k")
	require.False(t, found)
}

func TestGetIdempotent(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)

	first, found := c.Get(ctx, "k")
	require.True(t, found)
	second, found := c.Get(ctx, "k")
	require.True(t, found)
	require.Equal(t, first, second, "repeated reads of an unmodified key must agree")
	require.Equal(t, []byte("v"), second)
}

func TestMirrorKeepsEntryDeadline(t *testing.T) {
	c, _, clk := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)

	// Repeated reads mirror the durable hit; none of them may re-arm the
	// entry past its original deadline.
	for i := 0; i < 3; i++ {
		clk.Add(10 * time.Second)
		_, found := c.Get(ctx, "k")
		require.True(t, found)
	}

	clk.Add(5 * time.Minute)
	_, found := c.Get(ctx, "k")
	require.False(t, found, "entry served after its TTL elapsed")
}

func TestMirrorCoversFullHotnessLifetime(t *testing.T) {
	c, durable, clk := newTestCache(t)
	ctx := context.Background()

	c.SetWithHotness(ctx, "k", []byte("v"), model.HotnessInputs{ViewCount: 300})
	c.memory.clear()

	// The mirror inherits the remaining band lifetime, not the default TTL.
	_, found := c.Get(ctx, "k")
	require.True(t, found)

	durable.down = true
	clk.Add(time.Hour)
	got, found := c.Get(ctx, "k")
	require.True(t, found, "fallback must cover the hotness band, not the default TTL")
	require.Equal(t, []byte("v"), got)
}

func TestGetMiss(t *testing.T) {
	c, _, _ := newTestCache(t)

	_, found := c.Get(context.Background(), "absent")
	require.False(t, found)
	require.Equal(t, int64(1), c.Stats().Misses)
}

func TestSetSucceedsWithDurableDown(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()
	durable.down = true

	require.True(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, found := c.Get(ctx, "k")
	require.True(t, found)
	require.Equal(t, []byte("v"), got)
	require.Equal(t, int64(1), c.Stats().DurableWriteErrors)
}

func TestSetZeroTTLUsesDefault(t *testing.T) {
	c, durable, _ := newTestCache(t)

	c.Set(context.Background(), "k", []byte("v"), 0)
	require.Equal(t, 30*time.Minute, durable.ttls["k"])
}

func TestSetWithHotnessPicksBand(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	c.SetWithHotness(ctx, "cold", []byte("v"), model.HotnessInputs{})
	c.SetWithHotness(ctx, "hot", []byte("v"), model.HotnessInputs{ViewCount: 150, ImpactScore: 10, BookmarkCount: 10})

	require.Equal(t, model.TTLDefault, durable.ttls["cold"])
	require.Equal(t, model.TTLHot, durable.ttls["hot"])
}

func TestMemoryEntryExpires(t *testing.T) {
	c, durable, clk := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	durable.down = true

	clk.Add(2 * time.Minute)
	_, found := c.Get(ctx, "k")
	require.False(t, found, "expired entry must be invisible before the sweep removes it")
}

func TestDelete(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")

	_, found := c.Get(ctx, "k")
	require.False(t, found)
	require.Empty(t, durable.data)
}

func TestDeletePattern(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "ai-news:a", []byte("1"), time.Minute)
	c.Set(ctx, "ai-news:b", []byte("2"), time.Minute)
	c.Set(ctx, "other:c", []byte("3"), time.Minute)

	removed, err := c.DeletePattern(ctx, "ai-news:*")
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	require.False(t, c.memory.contains("ai-news:a"))
	require.True(t, c.memory.contains("other:c"))
	require.Len(t, durable.data, 1)
}

func TestDeletePatternNoMatch(t *testing.T) {
	c, _, _ := newTestCache(t)

	removed, err := c.DeletePattern(context.Background(), "nothing:*")
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestFlush(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Minute)
	c.Set(ctx, "b", []byte("2"), time.Minute)

	require.NoError(t, c.Flush(ctx))
	require.Empty(t, durable.data)
	require.Zero(t, c.memory.len())
}

func TestFlushClearsMemoryEvenWhenDurableDown(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Minute)
	durable.down = true

	require.Error(t, c.Flush(ctx))
	require.Zero(t, c.memory.len())
}

func TestStats(t *testing.T) {
	c, durable, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Get(ctx, "k")
	c.Get(ctx, "absent")
	durable.down = true
	c.Get(ctx, "k")

	stats := c.Stats()
	require.Equal(t, int64(1), stats.Writes)
	require.Equal(t, int64(1), stats.DurableHits)
	require.Equal(t, int64(1), stats.FallbackHits)
	require.Equal(t, int64(1), stats.Misses)
	require.Equal(t, int64(1), stats.MemoryEntries)
}
