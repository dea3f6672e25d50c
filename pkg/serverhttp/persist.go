// Package serverhttp implements the HTTP+disk-backed "server" mode
// (spec §4.7): it exposes the latest sample and a health check over
// HTTP, and appends every sample to an on-disk newline-delimited JSON
// log.
package serverhttp

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/opsmetrics"
)

// Persister buffers samples in memory and flushes them to an
// append-only NDJSON file on a fixed interval (spec §9 Open Question:
// append-only NDJSON was chosen over a JSON array or whole-file rewrite
// because it never requires reading the existing file back to append,
// and a torn write only ever corrupts the last line). A failed flush
// keeps the buffer intact so the next tick retries the same data instead
// of losing it (spec §7, Testable Property 6).
type Persister struct {
	mu       sync.Mutex
	buf      []metrics.Sample
	path     string
	interval time.Duration
	log      logx.Logger
	ops      *opsmetrics.Registry

	file *os.File
}

// NewPersister returns a Persister appending to path, flushing at most
// once per interval. The file is not opened until Open is called. Flush
// outcomes are reported to an ops registry only once WithMetrics sets one.
func NewPersister(path string, interval time.Duration, log logx.Logger) *Persister {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if log == nil {
		log = logx.New(nil)
	}
	return &Persister{path: path, interval: interval, log: log}
}

// WithMetrics attaches an opsmetrics.Registry to report flush outcomes
// to; it returns p for chaining.
func (p *Persister) WithMetrics(ops *opsmetrics.Registry) *Persister {
	p.ops = ops
	return p
}

// Append queues a sample for the next flush. It never blocks on I/O.
func (p *Persister) Append(s metrics.Sample) {
	p.mu.Lock()
	p.buf = append(p.buf, s)
	p.mu.Unlock()
}

// Len returns the number of samples currently buffered awaiting flush.
func (p *Persister) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

// Open opens (creating if needed) the backing file for appending.
func (p *Persister) Open() error {
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("serverhttp: open persistence file: %w", err)
	}
	p.file = f
	return nil
}

// Run flushes on p.interval until done is closed, then performs one
// final flush before returning.
func (p *Persister) Run(done <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Flush()
		case <-done:
			p.Flush()
			return
		}
	}
}

// Flush writes every buffered sample as one NDJSON line and clears the
// buffer only if every line was written successfully. A partial write
// failure keeps the unwritten remainder in the buffer for the next try.
func (p *Persister) Flush() {
	p.mu.Lock()
	pending := p.buf
	p.mu.Unlock()

	if len(pending) == 0 || p.file == nil {
		return
	}

	written := 0
	for _, s := range pending {
		line, err := json.Marshal(s.SystemMetrics)
		if err != nil {
			p.log.LogError("serverhttp: marshal sample failed, dropping", logx.Meta{"err": err.Error()})
			written++
			continue
		}
		line = append(line, '\n')
		if _, err := p.file.Write(line); err != nil {
			p.log.LogWarning("serverhttp: flush failed, buffer retained", logx.Meta{
				"err": err.Error(), "remaining": len(pending) - written,
			})
			break
		}
		written++
	}

	p.mu.Lock()
	p.buf = p.buf[written:]
	remaining := len(p.buf)
	p.mu.Unlock()

	if p.ops != nil {
		p.ops.ObserveFlush(written == len(pending), remaining)
	}
}

// Close flushes any remaining buffer and closes the backing file.
func (p *Persister) Close() error {
	p.Flush()
	if p.file == nil {
		return nil
	}
	return p.file.Close()
}
