package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Bands(t *testing.T) {
	assert.Equal(t, SeverityOK, Classify(0, 0))
	assert.Equal(t, SeverityOK, Classify(60, 70))
	assert.Equal(t, SeverityOK, Classify(55, 0))
	assert.Equal(t, SeverityWarn, Classify(60.1, 0))
	assert.Equal(t, SeverityWarn, Classify(0, 70.1))
	assert.Equal(t, SeverityWarn, Classify(80, 85))
	assert.Equal(t, SeverityCritical, Classify(80.1, 0))
	assert.Equal(t, SeverityCritical, Classify(0, 85.1))
	assert.Equal(t, SeverityWarn, Classify(0, 82))
}

// TestClassify_Monotonic is Testable Property 4: raising either reading
// never lowers the reported severity.
func TestClassify_Monotonic(t *testing.T) {
	steps := []float64{0, 10, 25, 49, 50, 60, 80, 80.1, 90, 100}
	for _, mem := range steps {
		prev := Classify(steps[0], mem)
		for _, cpu := range steps[1:] {
			cur := Classify(cpu, mem)
			assert.GreaterOrEqual(t, int(cur), int(prev), "cpu=%v mem=%v regressed severity", cpu, mem)
			prev = cur
		}
	}
	for _, cpu := range steps {
		prev := Classify(cpu, steps[0])
		for _, mem := range steps[1:] {
			cur := Classify(cpu, mem)
			assert.GreaterOrEqual(t, int(cur), int(prev), "cpu=%v mem=%v regressed severity", cpu, mem)
			prev = cur
		}
	}
}

func TestSeveritySymbolAndColor(t *testing.T) {
	assert.NotEqual(t, SeverityOK.Symbol(), SeverityWarn.Symbol())
	assert.NotEqual(t, SeverityWarn.Symbol(), SeverityCritical.Symbol())
	assert.NotEqual(t, SeverityOK.ANSIColor(), SeverityCritical.ANSIColor())
}
