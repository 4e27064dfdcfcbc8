package generator

import (
	"fmt"
	"time"
)

// hourBucket is the time-bucket layout inside snapshot keys.
const hourBucket = "2006-01-02-15"

// SnapshotKey collapses all requests within the same hour and item count onto
// one key, e.g. "ai-news:2025-01-15-14:count-8". Deliberate coalescing to
// bound LLM spend to one generation per hour per count.
func SnapshotKey(prefix string, at time.Time, count int) string {
	return fmt.Sprintf("%s:%s:count-%d", prefix, at.Format(hourBucket), count)
}

// syntheticSourceURL builds a deterministic per-item source URL for items the
// model returned without one. Downstream storage uses the source URL as a
// uniqueness key, so the URL must differ per item: the title hash and batch
// position guarantee that within a bucket.
func syntheticSourceURL(host string, at time.Time, titleHash string, position int) string {
	return fmt.Sprintf("https://%s/generated/%s/%s-%d", host, at.Format(hourBucket), titleHash, position)
}
