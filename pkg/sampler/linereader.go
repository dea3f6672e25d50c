package sampler

import (
	"bufio"
	"io"

	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// boundedLineReader reads newline-delimited lines from r while capping
// memory use to roughly maxLine bytes regardless of how long an incoming
// line actually is (spec §4.2: the decoder must not allocate unbounded
// memory on hostile input). A line longer than maxLine is fully drained
// from the stream and reported as metrics.ErrLineTooLong; the reader then
// continues with the next line.
type boundedLineReader struct {
	r       *bufio.Reader
	maxLine int
}

func newBoundedLineReader(r io.Reader, maxLine int) *boundedLineReader {
	if maxLine <= 0 {
		maxLine = metrics.DefaultMaxLineBytes
	}
	return &boundedLineReader{r: bufio.NewReaderSize(r, 4096), maxLine: maxLine}
}

// next returns the next line, with its trailing '\n' stripped. It returns
// io.EOF once the underlying reader is exhausted and no further data
// remains. A line exceeding maxLine yields (nil, metrics.ErrLineTooLong);
// the caller should log and continue reading.
func (b *boundedLineReader) next() ([]byte, error) {
	var buf []byte
	oversized := false

	for {
		chunk, err := b.r.ReadSlice('\n')

		if err == bufio.ErrBufferFull {
			if !oversized {
				if len(buf)+len(chunk) > b.maxLine {
					oversized = true
					buf = nil
				} else {
					buf = append(buf, chunk...)
				}
			}
			continue
		}

		if err != nil {
			if len(chunk) == 0 {
				if len(buf) > 0 && !oversized {
					return buf, nil
				}
				return nil, err
			}
			if oversized || len(buf)+len(chunk) > b.maxLine {
				return nil, metrics.ErrLineTooLong
			}
			return append(buf, chunk...), nil
		}

		line := chunk[:len(chunk)-1]
		if oversized || len(buf)+len(line) > b.maxLine {
			return nil, metrics.ErrLineTooLong
		}
		return append(buf, line...), nil
	}
}
