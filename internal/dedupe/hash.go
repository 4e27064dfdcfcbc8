package dedupe

import (
	"strconv"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

var hasherPool = sync.Pool{New: func() any { return xxh3.New() }}

// Hash returns a fast non-cryptographic hash of a title, lowercased and
// trimmed so cosmetic variations collapse. Collisions are accepted: this is a
// best-effort duplicate filter, not a security boundary.
func Hash(title string) string {
	// acquire reusable hasher
	hasher := hasherPool.Get().(*xxh3.Hasher)
	hasher.Reset()

	_, _ = hasher.WriteString(strings.ToLower(strings.TrimSpace(title)))
	v := hasher.Sum64()

	// release hasher after use
	hasherPool.Put(hasher)

	return strconv.FormatUint(v, 16)
}
