// Package mode implements the Mode Dispatcher (spec §4.3) and the full
// visualization/output mode catalog (spec §4.4): pluggable consumers of
// the sample stream, each a value implementing the Mode interface.
// Modes share no state; the dispatcher is the only holder of the active
// Mode (spec §4.3, §9 design note on inheritance-free polymorphism).
package mode

import (
	"errors"

	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/sampler"
)

// ExitStatus is the terminal outcome handed to a mode's OnShutdown,
// identical to the supervisor's view of how the collector ended.
type ExitStatus = sampler.ExitStatus

// Mode is the contract every visualization/output mode implements
// (spec §4.4). OnStart and OnShutdown are optional in the TypeScript
// source; Base supplies no-op defaults so a Go mode only needs to
// implement what it actually uses.
type Mode interface {
	Label() string
	Description() string
	OnStart() error
	OnMetrics(m metrics.Sample) error
	OnShutdown(status ExitStatus) error
}

// Info carries a mode's catalog metadata. Embedding it in a mode struct
// satisfies Label/Description without repeating boilerplate.
type Info struct {
	Key  string
	Desc string
}

func (i Info) Label() string       { return i.Key }
func (i Info) Description() string { return i.Desc }

// Base supplies no-op OnStart/OnShutdown for modes that don't need
// lifecycle hooks beyond OnMetrics.
type Base struct{}

func (Base) OnStart() error              { return nil }
func (Base) OnShutdown(ExitStatus) error { return nil }

var (
	// ErrNoModeSelected is returned when dispatch arguments name no mode
	// and no positional argument resolves to one.
	ErrNoModeSelected = errors.New("mode: no mode selected")

	// ErrUnknownMode is returned when a named mode is not in the catalog.
	ErrUnknownMode = errors.New("mode: unknown mode")
)
