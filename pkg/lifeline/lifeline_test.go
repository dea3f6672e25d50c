package lifeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimator_AdvanceStride(t *testing.T) {
	a := NewAnimator()
	a.Advance(10, 10)
	assert.Equal(t, 1, a.Frame())

	a.Advance(95, 10)
	assert.Equal(t, 3, a.Frame(), "max(cpu,mem) > 70 must advance the frame by 2")

	a.Advance(10, 85)
	assert.Equal(t, 5, a.Frame(), "threshold applies to either metric exceeding 70")
}

func TestAnimator_AdvanceDeterministic(t *testing.T) {
	a1, a2 := NewAnimator(), NewAnimator()
	inputs := [][2]float64{{10, 20}, {90, 10}, {50, 60}, {71, 5}}
	for _, in := range inputs {
		a1.Advance(in[0], in[1])
		a2.Advance(in[0], in[1])
	}
	assert.Equal(t, a1.Frame(), a2.Frame())
	assert.Equal(t, a1.Phase(), a2.Phase())
}

func TestAnimator_ECGWidthMatchesOutput(t *testing.T) {
	a := NewAnimator()
	out := []rune(a.ECG(40, 55))
	assert.Len(t, out, 40)
}

func TestAnimator_SparklineWidthMatchesOutput(t *testing.T) {
	a := NewAnimator()
	out := []rune(a.Sparkline(20, 80))
	assert.Len(t, out, 20)
}

func TestAnimator_GradientWidthMatchesOutput(t *testing.T) {
	a := NewAnimator()
	out := []rune(a.Gradient(30, 10))
	assert.Len(t, out, 30)
}

func TestAnimator_HeartCyclesFourStates(t *testing.T) {
	a := NewAnimator()
	seen := map[rune]bool{}
	for i := 0; i < 8; i++ {
		seen[a.Heart()] = true
		a.Advance(1, 1)
	}
	assert.LessOrEqual(t, len(seen), 4)
}
