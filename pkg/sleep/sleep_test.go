package sleep

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
	"testing"
	"time"
)

func TestMillisBlocksAtLeastDuration(t *testing.T) {
	start := time.Now()
	require.NoError(t, Millis(50))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestSleepZero(t *testing.T) {
	require.NoError(t, Sleep(0))
}

func TestSleepNegative(t *testing.T) {
	err := Millis(-1500)
	require.ErrorIs(t, err, unix.EINVAL)
	assert.Equal(t, unix.EINVAL.Error(), err.Error())
}
