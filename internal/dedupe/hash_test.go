package dedupe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashCollapsesCosmeticVariants(t *testing.T) {
	base := Hash("Fusion reactor hits net energy gain")
	require.NotEmpty(t, base)
	require.Equal(t, base, Hash("  Fusion Reactor Hits Net Energy Gain  "))
	require.Equal(t, base, Hash("FUSION REACTOR HITS NET ENERGY GAIN"))
	require.NotEqual(t, base, Hash("Fusion reactor misses net energy gain"))
}

func TestHashStable(t *testing.T) {
	require.Equal(t, Hash("same title"), Hash("same title"))
}
