package mode

import (
	"fmt"
	"io"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/window"
)

const sparklineWindowSize = 60

// sparklineMode keeps a sliding window of CPU and memory readings and
// renders both as block-glyph sparklines alongside the latest values.
type sparklineMode struct {
	writerMode
	cpu *window.Window
	mem *window.Window
}

func newSparklineMode(w io.Writer, log logx.Logger) Mode {
	return &sparklineMode{
		writerMode: writerMode{Info: Info{Key: "sparkline", Desc: "Unicode block sparkline history"}, w: w, log: log},
		cpu:        window.New(sparklineWindowSize),
		mem:        window.New(sparklineWindowSize),
	}
}

func (m *sparklineMode) OnMetrics(s metrics.Sample) error {
	m.cpu.Push(s.CPUUsagePercent)
	m.mem.Push(s.MemoryUsagePercent)
	_, err := fmt.Fprintf(m.w, "\rcpu %s %5.1f%%  mem %s %5.1f%%",
		m.cpu.Sparkline(0, 100), s.CPUUsagePercent,
		m.mem.Sparkline(0, 100), s.MemoryUsagePercent)
	return err
}
