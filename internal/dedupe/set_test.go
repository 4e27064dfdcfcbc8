package dedupe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/newspulse/newsgen/config"
)

type fakeStore struct {
	members    map[string]struct{}
	membersErr error
	addErr     error
	expireErr  error

	addCalls    int
	expireCalls int
	lastWindow  time.Duration
}

func newFakeStore(members ...string) *fakeStore {
	s := &fakeStore{members: make(map[string]struct{})}
	for _, m := range members {
		s.members[m] = struct{}{}
	}
	return s
}

func (s *fakeStore) Members(_ context.Context, _ string) ([]string, error) {
	if s.membersErr != nil {
		return nil, s.membersErr
	}
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeStore) Add(_ context.Context, _, member string) error {
	s.addCalls++
	if s.addErr != nil {
		return s.addErr
	}
	s.members[member] = struct{}{}
	return nil
}

func (s *fakeStore) Expire(_ context.Context, _ string, window time.Duration) error {
	s.expireCalls++
	s.lastWindow = window
	return s.expireErr
}

func testSet(store Store) *Set {
	cfg := &config.DedupeCfg{SetKey: "ai-news:title-hashes", Window: 24 * time.Hour}
	return NewSet(cfg, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSessionSeen(t *testing.T) {
	store := newFakeStore("aaa")
	session := testSet(store).NewSession(context.Background())

	require.True(t, session.Seen("aaa"), "durable members count as seen")
	require.False(t, session.Seen("bbb"))

	session.Record(context.Background(), "bbb")
	require.True(t, session.Seen("bbb"), "recorded hashes count as seen within the session")
}

func TestSessionFinishRefreshesWindowOnce(t *testing.T) {
	store := newFakeStore()
	session := testSet(store).NewSession(context.Background())

	session.Record(context.Background(), "h1")
	session.Record(context.Background(), "h2")
	session.Finish(context.Background())

	require.Equal(t, 2, store.addCalls)
	require.Equal(t, 1, store.expireCalls, "expiry refresh is per session, not per item")
	require.Equal(t, 24*time.Hour, store.lastWindow)
}

func TestSessionFinishSkippedWithoutRecords(t *testing.T) {
	store := newFakeStore()
	session := testSet(store).NewSession(context.Background())

	session.Finish(context.Background())
	require.Zero(t, store.expireCalls)
}

func TestSessionDegradesWhenLoadFails(t *testing.T) {
	store := newFakeStore("aaa")
	store.membersErr = errors.New("connection refused")
	set := testSet(store)

	session := set.NewSession(context.Background())
	require.False(t, session.Seen("aaa"), "durable members unknown in degraded mode")

	// Local filtering still works.
	session.Record(context.Background(), "bbb")
	require.True(t, session.Seen("bbb"))

	_, _, _, degraded := set.Metrics()
	require.Equal(t, int64(1), degraded)
}

func TestSessionRecordSurvivesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.addErr = errors.New("write refused")
	session := testSet(store).NewSession(context.Background())

	session.Record(context.Background(), "h1")
	require.True(t, session.Seen("h1"), "hash stays in the session even when persistence failed")
}
