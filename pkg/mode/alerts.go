package mode

import (
	"fmt"
	"io"
	"strings"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// alertsHeartbeatEvery is how many consecutive quiet samples produce one
// "Stable" heartbeat line, so a long healthy run still proves the stream
// is alive without spamming a line per sample (spec §4.4 alerts mode,
// scenario S3).
const alertsHeartbeatEvery = 30

// alertsMode is silent by default: it prints one line when the stream
// starts, one boxed alert on a new critical condition, and one "Stable"
// heartbeat every alertsHeartbeatEvery quiet samples (scenario S2/S3).
type alertsMode struct {
	writerMode
	seen          bool
	prevSeverity  Severity
	prevSpike     bool
	prevLeak      bool
	healthyStreak int
}

func newAlertsMode(w io.Writer, log logx.Logger) Mode {
	return &alertsMode{writerMode: writerMode{Info: Info{Key: "alerts", Desc: "Threshold-crossing alert log"}, w: w, log: log}}
}

func isAlertCondition(sev Severity, s metrics.Sample) bool {
	return sev == SeverityCritical || s.CPUSpikeDetected || s.MemoryLeakSuspected
}

func (m *alertsMode) OnMetrics(s metrics.Sample) error {
	sev := Classify(s.CPUUsagePercent, s.MemoryUsagePercent)

	if !m.seen {
		m.seen = true
		if _, err := fmt.Fprintln(m.w, "metrics stream established"); err != nil {
			return err
		}
		m.prevSeverity, m.prevSpike, m.prevLeak = sev, s.CPUSpikeDetected, s.MemoryLeakSuspected
		if isAlertCondition(sev, s) {
			return m.emitAlert(sev, s)
		}
		m.healthyStreak = 1
		return nil
	}

	newCondition := sev != m.prevSeverity ||
		(s.CPUSpikeDetected && !m.prevSpike) ||
		(s.MemoryLeakSuspected && !m.prevLeak)
	m.prevSeverity, m.prevSpike, m.prevLeak = sev, s.CPUSpikeDetected, s.MemoryLeakSuspected

	if isAlertCondition(sev, s) && newCondition {
		m.healthyStreak = 0
		return m.emitAlert(sev, s)
	}

	if sev == SeverityOK && !s.CPUSpikeDetected && !s.MemoryLeakSuspected {
		m.healthyStreak++
		if m.healthyStreak == alertsHeartbeatEvery {
			m.healthyStreak = 0
			_, err := fmt.Fprintln(m.w, "Stable")
			return err
		}
		return nil
	}

	m.healthyStreak = 0
	return nil
}

func (m *alertsMode) emitAlert(sev Severity, s metrics.Sample) error {
	msg := alertMessage(sev, s)
	border := strings.Repeat("-", len(msg)+4)
	_, err := fmt.Fprintf(m.w, "+%s+\n| %s |\n+%s+\n", border, msg, border)
	return err
}

func alertMessage(sev Severity, s metrics.Sample) string {
	switch {
	case s.CPUSpikeDetected:
		return fmt.Sprintf("CPU spike detected (%.1f%%)", s.CPUUsagePercent)
	case s.MemoryLeakSuspected:
		return "Memory leak suspected"
	default:
		return fmt.Sprintf("Critical load: cpu %.1f%% mem %.1f%%", s.CPUUsagePercent, s.MemoryUsagePercent)
	}
}
