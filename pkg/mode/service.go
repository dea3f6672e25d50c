package mode

import (
	"fmt"
	"io"
	"time"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// serviceMode prints one plain-text line per sample to its writer
// instead of an animated display — the mode meant for a process
// supervisor or container runtime that captures stdout as a log rather
// than a terminal (spec §4.4 service mode, scenario S1). The line
// carries no ANSI escapes: an ISO-8601 timestamp, the status glyph, and
// the two headline readings.
type serviceMode struct{ writerMode }

func newServiceMode(w io.Writer, log logx.Logger) Mode {
	return &serviceMode{writerMode{Info: Info{Key: "service", Desc: "Minimal service/daemon-friendly log lines"}, w: w, log: log}}
}

func (m *serviceMode) OnMetrics(s metrics.Sample) error {
	iso := time.Unix(s.Timestamp, 0).UTC().Format("2006-01-02T15:04:05.000Z")
	sym := StatusSymbol(s.CPUUsagePercent, s.MemoryUsagePercent)
	_, err := fmt.Fprintf(m.w, "%s %s CPU: %.1f%% MEM: %.1f%%\n", iso, sym, s.CPUUsagePercent, s.MemoryUsagePercent)
	return err
}

func (m *serviceMode) OnShutdown(status ExitStatus) error {
	m.log.LogInfo("collector exited", logx.Meta{"code": status.Code, "canceled": status.Canceled})
	return nil
}
