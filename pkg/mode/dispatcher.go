package mode

import (
	"context"
	"fmt"
	"io"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// Action is what the CLI frontend should do after Dispatch resolves the
// command-line arguments (spec §4.3).
type Action int

const (
	// ActionRun means ModeKey names a mode to construct and drive.
	ActionRun Action = iota
	// ActionList means --list/-l was given: print the catalog and exit 0.
	ActionList
)

// Selection is the outcome of resolving argv against a Catalog.
type Selection struct {
	Action      Action
	ModeKey     string
	UnknownArgs []string
}

// Dispatch resolves the mode to run from the CLI inputs (spec §4.3
// precedence): --list wins outright; otherwise an explicit --mode/-m
// value is used if set, else the first positional argument is tried as
// a mode name. Any remaining positional arguments, and any unrecognized
// flag tokens the caller collected separately, are returned as
// UnknownArgs for a non-fatal warning log rather than a fatal error.
func Dispatch(cat *Catalog, modeFlag string, listFlag bool, positional []string, extraUnknown []string) (Selection, error) {
	if listFlag {
		return Selection{Action: ActionList}, nil
	}

	var key string
	var unknown []string
	unknown = append(unknown, extraUnknown...)

	switch {
	case modeFlag != "":
		key = modeFlag
		unknown = append(unknown, positional...)
	case len(positional) > 0:
		key = positional[0]
		unknown = append(unknown, positional[1:]...)
	default:
		return Selection{}, fmt.Errorf("%w (use --mode or a bare mode name; --list shows choices)", ErrNoModeSelected)
	}

	if !cat.Has(key) {
		return Selection{}, fmt.Errorf("%w: %q", ErrUnknownMode, key)
	}

	return Selection{Action: ActionRun, ModeKey: key, UnknownArgs: unknown}, nil
}

// Drive starts the given, already built mode and feeds it samples until
// either the channel closes or ctx is canceled, then delivers status via
// OnShutdown. It is the glue between a Supervisor's output channels and
// a single Mode, used by the CLI and by tests; the cycle mode drives its
// children itself.
func Drive(ctx context.Context, m Mode, samples <-chan metrics.Sample, status <-chan ExitStatus, log logx.Logger) (ExitStatus, error) {
	if err := m.OnStart(); err != nil {
		return ExitStatus{}, fmt.Errorf("mode: OnStart: %w", err)
	}

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case sm, ok := <-samples:
			if !ok {
				break loop
			}
			if err := m.OnMetrics(sm); err != nil {
				log.LogWarning("mode: OnMetrics failed", logx.Meta{"err": err.Error()})
			}
		}
	}

	// The supervisor closes the sample channel before it finishes
	// computing the collector's exit status, so this receive must block
	// rather than fall through on a default case — otherwise a fast
	// reader would observe a zero-valued ExitStatus instead of the real
	// exit code.
	exit, ok := <-status
	if !ok {
		exit = ExitStatus{}
	}
	return exit, m.OnShutdown(exit)
}

// writerMode is embedded by every mode that renders text: it owns the
// output sink and logger so individual mode files only implement
// OnMetrics.
type writerMode struct {
	Info
	Base
	w   io.Writer
	log logx.Logger
}
