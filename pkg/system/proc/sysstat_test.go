//go:build linux

package proc

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPerCoreCPU_CoreCountBoundedByNumCPU(t *testing.T) {
	cores, err := ReadPerCoreCPU()
	require.NoError(t, err)
	assert.NotEmpty(t, cores)
	assert.LessOrEqual(t, len(cores), runtime.NumCPU()*2)
	for _, c := range cores {
		assert.GreaterOrEqual(t, c.Total, c.Active)
	}
}

func TestReadMemInfo_NonZeroTotal(t *testing.T) {
	mi, err := ReadMemInfo()
	require.NoError(t, err)
	assert.Positive(t, mi.TotalKB)
	assert.GreaterOrEqual(t, mi.TotalKB, mi.FreeKB)
}
