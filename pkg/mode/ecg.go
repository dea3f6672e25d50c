package mode

import (
	"fmt"
	"io"

	"github.com/ja7ad/heartbeat/pkg/lifeline"
	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

const ecgWidth = 40

// ecgMode renders an animated ECG-style waveform whose amplitude and
// stride track the worse of CPU/memory usage (spec §4.5 animation rules).
type ecgMode struct {
	writerMode
	anim *lifeline.Animator
}

func newECGMode(w io.Writer, log logx.Logger) Mode {
	return &ecgMode{
		writerMode: writerMode{Info: Info{Key: "ecg", Desc: "Electrocardiogram-style animated waveform"}, w: w, log: log},
		anim:       lifeline.NewAnimator(),
	}
}

func (m *ecgMode) OnMetrics(s metrics.Sample) error {
	intensity := s.CPUUsagePercent
	if s.MemoryUsagePercent > intensity {
		intensity = s.MemoryUsagePercent
	}
	m.anim.Advance(s.CPUUsagePercent, s.MemoryUsagePercent)
	sym := StatusSymbol(s.CPUUsagePercent, s.MemoryUsagePercent)
	_, err := fmt.Fprintf(m.w, "\r%s %s cpu %5.1f%% mem %5.1f%%", sym, m.anim.ECG(ecgWidth, intensity),
		s.CPUUsagePercent, s.MemoryUsagePercent)
	return err
}
