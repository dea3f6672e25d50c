package mode

import (
	"fmt"
	"io"
	"time"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/term"
	"github.com/ja7ad/heartbeat/pkg/window"
)

const (
	windowRegionHeight = 13
	windowRegionOrigin = 1
	windowHistorySize  = 60
)

// windowMode redraws a fixed-height terminal region in place on every
// sample instead of scrolling, using term.Region's save/move/clear/
// restore protocol (spec §4.8). The region always occupies the top
// windowRegionHeight rows of the terminal, starting at row
// windowRegionOrigin; it does not follow the cursor position the mode
// started at.
type windowMode struct {
	writerMode
	region *term.Region
	cpu    *window.Window
	mem    *window.Window
}

func newWindowMode(w io.Writer, log logx.Logger) Mode {
	return &windowMode{
		writerMode: writerMode{Info: Info{Key: "window", Desc: "In-place redrawn terminal dashboard"}, w: w, log: log},
		region:     term.NewRegion(w, windowRegionHeight),
		cpu:        window.New(windowHistorySize),
		mem:        window.New(windowHistorySize),
	}
}

func (m *windowMode) OnMetrics(s metrics.Sample) error {
	m.cpu.Push(s.CPUUsagePercent)
	m.mem.Push(s.MemoryUsagePercent)

	lines := []string{
		fmt.Sprintf("%s status: %s", time.Unix(s.Timestamp, 0).UTC().Format("15:04:05"), StatusSymbol(s.CPUUsagePercent, s.MemoryUsagePercent)),
		"",
		fmt.Sprintf("cpu  %5.1f%%  %s", s.CPUUsagePercent, m.cpu.Sparkline(0, 100)),
		fmt.Sprintf("     min %5.1f  max %5.1f  mean %5.1f  sd %4.1f", m.cpu.Min(), m.cpu.Max(), m.cpu.Mean(), m.cpu.Stddev()),
		fmt.Sprintf("mem  %5.1f%%  %s", s.MemoryUsagePercent, m.mem.Sparkline(0, 100)),
		fmt.Sprintf("     min %5.1f  max %5.1f  mean %5.1f  sd %4.1f", m.mem.Min(), m.mem.Max(), m.mem.Mean(), m.mem.Stddev()),
		fmt.Sprintf("     used %7.1fMB  free %7.1fMB  avail %7.1fMB  total %7.1fMB", s.MemoryUsedMB, s.MemoryFreeMB, s.MemoryAvailableMB, s.MemoryTotalMB),
		m.swapLine(s),
		m.coresLine(s),
		fmt.Sprintf("spike %v  leak %v", s.CPUSpikeDetected, s.MemoryLeakSuspected),
		"",
		fmt.Sprintf("seq %d", s.Seq),
		"",
	}
	return m.region.Redraw(windowRegionOrigin, lines)
}

func (m *windowMode) swapLine(s metrics.Sample) string {
	if !s.HasSwap() {
		return ""
	}
	return fmt.Sprintf("swap used %7.1fMB / total %7.1fMB", s.SwapUsedMB, s.SwapTotalMB)
}

func (m *windowMode) coresLine(s metrics.Sample) string {
	if !s.HasCores() {
		return "cores n/a"
	}
	return fmt.Sprintf("cores %d", len(s.CPUCores))
}
