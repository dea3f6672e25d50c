// Package sampler implements the Sampler Supervisor (spec §4.1): it owns
// the native collector subprocess's lifetime, decodes its line-delimited
// JSON stdout into typed samples, and pumps stderr to the logger.
package sampler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/opsmetrics"
)

// sampleChanCapacity is the bounded-channel capacity between the stdout
// reader and the mode driver (spec §9 design note): backpressure is
// acceptable because every specified mode does O(window size) work per
// sample with tiny constants.
const sampleChanCapacity = 64

// Invocation describes how to spawn the native collector.
type Invocation struct {
	Dir     string   // working directory of the collector binary
	Command string   // e.g. "cargo"
	Args    []string // e.g. ["run", "--release", "--quiet"]
}

// ExitStatus is the terminal outcome of one supervised run.
type ExitStatus struct {
	// Code is the collector's process exit code, or -1 if it could not
	// be determined (signaled, or the process never started).
	Code int
	// SpawnErr holds a failure to start the collector at all — a fatal
	// startup error per spec §4.1/§7. Supervisor.Start reports spawn
	// failures through its error result instead, so the statuses it
	// sends leave SpawnErr nil.
	SpawnErr error
	// Canceled is true when the run ended because the context was
	// canceled (e.g. SIGINT/SIGTERM) rather than the collector exiting
	// on its own.
	Canceled bool
}

// Supervisor spawns and manages one native collector subprocess.
type Supervisor struct {
	inv          Invocation
	logger       logx.Logger
	maxLineBytes int
	ops          *opsmetrics.Registry
}

// New returns a Supervisor for the given invocation. maxLineBytes <= 0
// selects metrics.DefaultMaxLineBytes.
func New(inv Invocation, logger logx.Logger, maxLineBytes int) *Supervisor {
	if logger == nil {
		logger = logx.New(nil)
	}
	return &Supervisor{inv: inv, logger: logger, maxLineBytes: maxLineBytes}
}

// SetMetrics attaches the ops registry that decode outcomes are reported
// to (SPEC_FULL.md §4.7A's heartbeat_samples_ingested_total and
// heartbeat_parse_errors_total). Nil leaves decode outcomes unrecorded.
func (s *Supervisor) SetMetrics(ops *opsmetrics.Registry) { s.ops = ops }

// Start spawns the collector and begins streaming decoded samples on the
// returned channel, strictly in collector output order. The exit channel
// receives exactly one ExitStatus, after which both channels are closed.
// A spawn failure is returned directly (fatal startup, spec §4.1) and no
// channels are produced.
func (s *Supervisor) Start(ctx context.Context) (<-chan metrics.Sample, <-chan ExitStatus, error) {
	cmd := exec.CommandContext(ctx, s.inv.Command, s.inv.Args...)
	cmd.Dir = s.inv.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("sampler: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("sampler: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("sampler: spawn %s: %w", s.inv.Command, err)
	}

	samples := make(chan metrics.Sample, sampleChanCapacity)
	exits := make(chan ExitStatus, 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go s.pumpStdout(stdout, samples, &wg)
	go s.pumpStderr(stderr, &wg)

	go func() {
		wg.Wait()
		close(samples)

		waitErr := cmd.Wait()
		status := ExitStatus{Canceled: ctx.Err() != nil}

		var exitErr *exec.ExitError
		switch {
		case waitErr == nil:
			status.Code = 0
		case errors.As(waitErr, &exitErr):
			status.Code = exitErr.ExitCode()
		default:
			status.Code = -1
		}
		exits <- status
		close(exits)
	}()

	return samples, exits, nil
}

func (s *Supervisor) pumpStdout(r io.Reader, out chan<- metrics.Sample, wg *sync.WaitGroup) {
	defer wg.Done()

	decoder := metrics.NewDecoder(s.maxLineBytes)
	lr := newBoundedLineReader(r, s.maxLineBytes)
	for {
		line, err := lr.next()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return
			case errors.Is(err, metrics.ErrLineTooLong):
				s.logger.LogError("stream: line too long, skipping")
				continue
			default:
				s.logger.LogWarning("stream: stdout read error", logx.Meta{"err": err.Error()})
				return
			}
		}

		sample, derr := decoder.Decode(line)
		if derr != nil {
			if errors.Is(derr, metrics.ErrEmptyLine) {
				continue
			}
			s.logger.LogError("stream: parse failure, skipping", logx.Meta{
				"err":    derr.Error(),
				"prefix": metrics.Prefix(line, 80),
			})
			if s.ops != nil {
				s.ops.ObserveParseError()
			}
			continue
		}
		if s.ops != nil {
			s.ops.ObserveSample()
		}
		out <- sample
	}
}

func (s *Supervisor) pumpStderr(r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<16)
	for sc.Scan() {
		s.logger.LogWarning("monitor stderr", logx.Meta{"line": sc.Text()})
	}
}
