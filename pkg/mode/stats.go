package mode

import (
	"fmt"
	"io"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/window"
)

const statsWindowSize = 120

// statsMode keeps a sliding window per metric and prints the rolling
// min/max/mean/stddev summary alongside a delta-vs-previous-sample arrow
// and cumulative spike/leak event counts (spec §4.4 stats mode).
type statsMode struct {
	writerMode
	cpu *window.Window
	mem *window.Window

	seen       bool
	prevCPU    float64
	prevMem    float64
	spikeCount int
	leakCount  int
}

func newStatsMode(w io.Writer, log logx.Logger) Mode {
	return &statsMode{
		writerMode: writerMode{Info: Info{Key: "stats", Desc: "Windowed min/max/mean/stddev summary"}, w: w, log: log},
		cpu:        window.New(statsWindowSize),
		mem:        window.New(statsWindowSize),
	}
}

func (m *statsMode) OnMetrics(s metrics.Sample) error {
	m.cpu.Push(s.CPUUsagePercent)
	m.mem.Push(s.MemoryUsagePercent)

	if s.CPUSpikeDetected {
		m.spikeCount++
	}
	if s.MemoryLeakSuspected {
		m.leakCount++
	}

	cpuArrow := deltaArrow(s.CPUUsagePercent, m.prevCPU, m.seen)
	memArrow := deltaArrow(s.MemoryUsagePercent, m.prevMem, m.seen)
	m.prevCPU, m.prevMem, m.seen = s.CPUUsagePercent, s.MemoryUsagePercent, true

	_, err := fmt.Fprintf(m.w,
		"\rcpu[min %5.1f max %5.1f mean %5.1f sd %4.1f %s]  mem[min %5.1f max %5.1f mean %5.1f sd %4.1f %s]  spikes %d leaks %d",
		m.cpu.Min(), m.cpu.Max(), m.cpu.Mean(), m.cpu.Stddev(), cpuArrow,
		m.mem.Min(), m.mem.Max(), m.mem.Mean(), m.mem.Stddev(), memArrow,
		m.spikeCount, m.leakCount,
	)
	return err
}

// deltaArrow compares a reading against the previous sample's reading:
// ↗ rising, ↘ falling, → unchanged. The first sample has no previous
// reading to compare against, so it always reports →.
func deltaArrow(cur, prev float64, hasPrev bool) string {
	if !hasPrev || cur == prev {
		return "→"
	}
	if cur > prev {
		return "↗"
	}
	return "↘"
}
