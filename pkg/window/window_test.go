package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_RetainsMostRecentOnOverflow(t *testing.T) {
	w := New(3)
	for i := 1; i <= 5; i++ {
		w.Push(float64(i))
	}
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{3, 4, 5}, w.Snapshot())
}

func TestWindow_EmptyStats(t *testing.T) {
	w := New(5)
	assert.Equal(t, 0.0, w.Min())
	assert.Equal(t, 0.0, w.Max())
	assert.Equal(t, 0.0, w.Mean())
	assert.Equal(t, 0.0, w.Stddev())
}

func TestWindow_MinMaxMean(t *testing.T) {
	w := New(10)
	for _, v := range []float64{10, 20, 30, 40} {
		w.Push(v)
	}
	assert.Equal(t, 10.0, w.Min())
	assert.Equal(t, 40.0, w.Max())
	assert.Equal(t, 25.0, w.Mean())
}

func TestWindow_StddevPopulation(t *testing.T) {
	w := New(10)
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		w.Push(v)
	}
	// population stddev of this classic example is 2.0
	assert.InDelta(t, 2.0, w.Stddev(), 1e-9)
}

func TestWindow_StddevBelowTwoSamplesIsZero(t *testing.T) {
	w := New(10)
	w.Push(42)
	assert.Equal(t, 0.0, w.Stddev())
}

func TestWindow_CapacityBoundsAnySequence(t *testing.T) {
	const cap = 7
	w := New(cap)
	for i := 0; i < 1000; i++ {
		w.Push(float64(i))
		assert.LessOrEqual(t, w.Len(), cap)
	}
	snap := w.Snapshot()
	assert.Len(t, snap, cap)
	for i, v := range snap {
		assert.Equal(t, float64(1000-cap+i), v)
	}
}

func TestWindow_SparklineLengthMatchesContents(t *testing.T) {
	w := New(5)
	for _, v := range []float64{0, 25, 50, 75, 100} {
		w.Push(v)
	}
	sp := []rune(w.Sparkline(0, 100))
	assert.Len(t, sp, 5)
	assert.Equal(t, blockGlyphs[0], sp[0])
	assert.Equal(t, blockGlyphs[len(blockGlyphs)-1], sp[len(sp)-1])
}

func TestWindow_SparklineFlatWindowDoesNotPanic(t *testing.T) {
	w := New(3)
	w.Push(5)
	w.Push(5)
	w.Push(5)
	assert.NotPanics(t, func() { w.Sparkline(0, 0) })
}
