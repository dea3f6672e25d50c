package mode

import (
	"encoding/json"
	"io"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// rawMode re-serializes each sample's underlying SystemMetrics as one
// compact JSON line, useful for piping into jq or another collector
// (spec §4.4 raw mode, scenario S4). It does not echo the collector's
// original bytes verbatim — a sample already tolerated parser leniency,
// so the output is the normalized record, not a byte-for-byte passthrough.
type rawMode struct {
	writerMode
	enc *json.Encoder
}

func newRawMode(w io.Writer, log logx.Logger) Mode {
	return &rawMode{
		writerMode: writerMode{Info: Info{Key: "raw", Desc: "Re-encoded JSON, one line per sample"}, w: w, log: log},
		enc:        json.NewEncoder(w),
	}
}

func (m *rawMode) OnMetrics(s metrics.Sample) error {
	return m.enc.Encode(s.SystemMetrics)
}
