package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelaySchedule(t *testing.T) {
	base := time.Second
	require.Equal(t, 1*time.Second, Delay(base, 1))
	require.Equal(t, 2*time.Second, Delay(base, 2))
	require.Equal(t, 4*time.Second, Delay(base, 3))
}

func TestDelayClampsAttempt(t *testing.T) {
	require.Equal(t, time.Second, Delay(time.Second, 0))
	require.Equal(t, time.Second, Delay(time.Second, -3))
}
