package model

import "time"

// Hotness score weights and TTL bands. A hotter article is read over and
// over, so its cache entry lives longer: regeneration, not staleness, is the
// expensive part.
const (
	weightView     = 1
	weightImpact   = 10
	weightBookmark = 5

	TTLHot     = 7200 * time.Second
	TTLWarm    = 3600 * time.Second
	TTLMild    = 2700 * time.Second
	TTLDefault = 1800 * time.Second
)

// HotnessInputs are the caller-supplied popularity signals used to pick a TTL
// band at cache-write time. The score itself is never persisted.
type HotnessInputs struct {
	ViewCount     int64
	ImpactScore   int64
	BookmarkCount int64
}

// Score is the weighted sum: views*1 + impact*10 + bookmarks*5.
func (h HotnessInputs) Score() int64 {
	return h.ViewCount*weightView + h.ImpactScore*weightImpact + h.BookmarkCount*weightBookmark
}

// TTLFor maps the score onto one of four bands. Monotonic: a higher score
// never yields a shorter TTL.
func (h HotnessInputs) TTLFor() time.Duration {
	score := h.Score()
	switch {
	case score >= 200:
		return TTLHot
	case score >= 100:
		return TTLWarm
	case score >= 50:
		return TTLMild
	default:
		return TTLDefault
	}
}
