package mode

import (
	"fmt"
	"io"
	"time"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// timelineMode appends one timestamped line per sample, scrolling rather
// than overwriting — the mode meant for a wide terminal kept open as a
// running log rather than redrawn in place.
type timelineMode struct{ writerMode }

func newTimelineMode(w io.Writer, log logx.Logger) Mode {
	return &timelineMode{writerMode{Info: Info{Key: "timeline", Desc: "Scrolling timestamped history"}, w: w, log: log}}
}

func (m *timelineMode) OnMetrics(s metrics.Sample) error {
	ts := time.Unix(s.Timestamp, 0).UTC().Format("15:04:05")
	_, err := fmt.Fprintf(m.w, "%s %s cpu %5.1f%%  mem %5.1f%%\n",
		ts, StatusSymbol(s.CPUUsagePercent, s.MemoryUsagePercent), s.CPUUsagePercent, s.MemoryUsagePercent)
	return err
}
