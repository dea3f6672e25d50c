package mode

import (
	"fmt"
	"io"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// compactMode prints one overwritten status line per sample: a status
// glyph, CPU, memory, and swap (when configured).
type compactMode struct{ writerMode }

func newCompactMode(w io.Writer, log logx.Logger) Mode {
	return &compactMode{writerMode{Info: Info{Key: "compact", Desc: "Single-line status summary"}, w: w, log: log}}
}

func (m *compactMode) OnMetrics(s metrics.Sample) error {
	sym := StatusSymbol(s.CPUUsagePercent, s.MemoryUsagePercent)
	line := fmt.Sprintf("\r%s cpu %5.1f%%  mem %5.1f%%", sym, s.CPUUsagePercent, s.MemoryUsagePercent)
	if s.HasSwap() {
		line += fmt.Sprintf("  swap %5.1f%%", 100*s.SwapUsedMB/s.SwapTotalMB)
	}
	_, err := fmt.Fprint(m.w, line)
	return err
}
