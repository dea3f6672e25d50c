package mode

import (
	"fmt"
	"io"
	"strings"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

const perCoreBarWidth = 20

// percoreMode renders one horizontal bar per CPU core, each perCoreBarWidth
// columns wide (spec §4.4 percore). Samples without per-core data
// (metrics.Sample.HasCores false) print the aggregate figure instead of an
// empty bar row (spec §3 HasCores contract).
type percoreMode struct{ writerMode }

func newPerCoreMode(w io.Writer, log logx.Logger) Mode {
	return &percoreMode{writerMode{Info: Info{Key: "percore", Desc: "Per-core utilization bars"}, w: w, log: log}}
}

func (m *percoreMode) OnMetrics(s metrics.Sample) error {
	if !s.HasCores() {
		_, err := fmt.Fprintf(m.w, "\rcpu %5.1f%% (no per-core data)", s.CPUUsagePercent)
		return err
	}
	var b strings.Builder
	b.WriteString("\r")
	for _, c := range s.CPUCores {
		filled := int(c.UsagePercent / 100 * float64(perCoreBarWidth))
		if filled < 0 {
			filled = 0
		}
		if filled > perCoreBarWidth {
			filled = perCoreBarWidth
		}
		fmt.Fprintf(&b, "core%-3d [%s%s] %5.1f%%  ",
			c.CoreID, strings.Repeat("#", filled), strings.Repeat(" ", perCoreBarWidth-filled), c.UsagePercent)
	}
	_, err := fmt.Fprintf(m.w, "%s(%d cores)", b.String(), len(s.CPUCores))
	return err
}
