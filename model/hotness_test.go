package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHotnessScore(t *testing.T) {
	require.Equal(t, int64(0), HotnessInputs{}.Score())
	require.Equal(t, int64(1), HotnessInputs{ViewCount: 1}.Score())
	require.Equal(t, int64(10), HotnessInputs{ImpactScore: 1}.Score())
	require.Equal(t, int64(5), HotnessInputs{BookmarkCount: 1}.Score())
	require.Equal(t, int64(115), HotnessInputs{ViewCount: 40, ImpactScore: 5, BookmarkCount: 5}.Score())
}

func TestHotnessTTLBands(t *testing.T) {
	cases := []struct {
		name string
		in   HotnessInputs
		want int64
	}{
		{"cold", HotnessInputs{}, int64(TTLDefault)},
		{"just below mild", HotnessInputs{ViewCount: 49}, int64(TTLDefault)},
		{"mild boundary", HotnessInputs{ViewCount: 50}, int64(TTLMild)},
		{"warm boundary", HotnessInputs{ViewCount: 100}, int64(TTLWarm)},
		{"hot boundary", HotnessInputs{ImpactScore: 20}, int64(TTLHot)},
		{"very hot", HotnessInputs{ViewCount: 10000, ImpactScore: 10, BookmarkCount: 300}, int64(TTLHot)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, int64(c.in.TTLFor()))
		})
	}
}

func TestHotnessTTLMonotonic(t *testing.T) {
	prev := HotnessInputs{}.TTLFor()
	for views := int64(0); views <= 250; views++ {
		ttl := HotnessInputs{ViewCount: views}.TTLFor()
		require.GreaterOrEqual(t, ttl, prev, "views=%d", views)
		prev = ttl
	}
}
