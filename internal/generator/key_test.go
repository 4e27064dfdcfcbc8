package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotKey(t *testing.T) {
	at := time.Date(2025, 1, 15, 14, 42, 7, 0, time.UTC)
	require.Equal(t, "ai-news:2025-01-15-14:count-8", SnapshotKey("ai-news", at, 8))
}

func TestSnapshotKeyCoalescesWithinHour(t *testing.T) {
	a := time.Date(2025, 1, 15, 14, 0, 1, 0, time.UTC)
	b := time.Date(2025, 1, 15, 14, 59, 59, 0, time.UTC)
	c := time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC)

	require.Equal(t, SnapshotKey("ai-news", a, 8), SnapshotKey("ai-news", b, 8))
	require.NotEqual(t, SnapshotKey("ai-news", a, 8), SnapshotKey("ai-news", c, 8))
	require.NotEqual(t, SnapshotKey("ai-news", a, 8), SnapshotKey("ai-news", a, 9))
}

func TestSyntheticSourceURL(t *testing.T) {
	at := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

	url := syntheticSourceURL("news.newspulse.ai", at, "abc123", 2)
	require.Equal(t, "https://news.newspulse.ai/generated/2025-01-15-14/abc123-2", url)

	other := syntheticSourceURL("news.newspulse.ai", at, "abc123", 3)
	require.NotEqual(t, url, other, "position keeps equal-hash items unique")
}
