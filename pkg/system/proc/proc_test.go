//go:build linux

package proc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSystemCPU(t *testing.T) {
	a0, t0, err := ReadSystemCPU()
	require.NoError(t, err)
	assert.Greater(t, t0, uint64(0))
	assert.GreaterOrEqual(t, t0, a0)

	time.Sleep(10 * time.Millisecond)
	a1, t1, err := ReadSystemCPU()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, a1, a0)
	assert.GreaterOrEqual(t, t1, t0)
}
