package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultMaxLineBytes is the default cap on a single collector stdout line,
// per spec §4.2: the decoder must not allocate unbounded memory on hostile
// input.
const DefaultMaxLineBytes = 1 << 20 // 1 MiB

// Decoder turns raw collector stdout lines into Sample values. It is
// tolerant: a missing cpu_cores field yields an empty sequence, and
// percent-typed fields outside [0,100] are accepted as-is (the sampler is
// ground truth). It is not tolerant of oversized input.
type Decoder struct {
	maxLineBytes int
	seq          uint64
}

// NewDecoder returns a Decoder capping individual lines at maxLineBytes.
// A non-positive value selects DefaultMaxLineBytes.
func NewDecoder(maxLineBytes int) *Decoder {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &Decoder{maxLineBytes: maxLineBytes}
}

// Decode parses a single line as a SystemMetrics record. On success it
// assigns the next monotonically increasing Seq to the returned Sample.
// Invalid or oversized lines return an error and must not advance Seq, so
// a caller can still report a short prefix of the offending line without
// perturbing ordering guarantees made about valid samples.
func (d *Decoder) Decode(line []byte) (Sample, error) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return Sample{}, ErrEmptyLine
	}
	if len(trimmed) > d.maxLineBytes {
		return Sample{}, fmt.Errorf("%w: %d bytes", ErrLineTooLong, len(trimmed))
	}

	var m SystemMetrics
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return Sample{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	d.seq++
	return Sample{SystemMetrics: m, Seq: d.seq}, nil
}

// Prefix returns up to n bytes of line for inclusion in an error log,
// never allocating more than n+len("...") bytes regardless of input size.
func Prefix(line []byte, n int) string {
	if len(line) <= n {
		return string(line)
	}
	return string(line[:n]) + "..."
}
