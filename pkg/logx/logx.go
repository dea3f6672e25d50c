// Package logx provides the small logging interface Heartbeat's core
// depends on, and a log/slog-backed default implementation. It exists so
// the telemetry core never depends on the (out-of-scope) console styling
// library directly — callers may supply any Logger, colorized or plain.
package logx

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Meta is a bag of string-keyed values serialized to a single line.
type Meta map[string]any

// Logger is the logging surface consumed by the Heartbeat core (spec §4.9).
type Logger interface {
	LogInfo(msg string, meta ...Meta)
	LogSuccess(msg string, meta ...Meta)
	LogWarning(msg string, meta ...Meta)
	LogError(msg string, meta ...Meta)
	LogDebug(msg string, meta ...Meta)
	LogCritical(msg string, meta ...Meta)
	LogSection(title string, style ...string)
}

type slogLogger struct {
	base *slog.Logger
}

// New returns a Logger backed by the given *slog.Logger. A nil base falls
// back to slog.Default(), matching how the teacher CLI calls slog's
// package-level functions directly.
func New(base *slog.Logger) Logger {
	if base == nil {
		base = slog.Default()
	}
	return &slogLogger{base: base}
}

// NewText returns a Logger writing human-readable text lines to w (os.Stderr
// when w is nil), the shape used by every mode's non-visual diagnostics.
func NewText(w *os.File) Logger {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return New(slog.New(h))
}

func flatten(metas []Meta) []any {
	if len(metas) == 0 {
		return nil
	}
	merged := Meta{}
	for _, m := range metas {
		for k, v := range m {
			merged[k] = v
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		attrs = append(attrs, k, merged[k])
	}
	return attrs
}

func (l *slogLogger) LogInfo(msg string, meta ...Meta)    { l.base.Info(msg, flatten(meta)...) }
func (l *slogLogger) LogSuccess(msg string, meta ...Meta) { l.base.Info("✓ "+msg, flatten(meta)...) }
func (l *slogLogger) LogWarning(msg string, meta ...Meta) { l.base.Warn(msg, flatten(meta)...) }
func (l *slogLogger) LogError(msg string, meta ...Meta)   { l.base.Error(msg, flatten(meta)...) }
func (l *slogLogger) LogDebug(msg string, meta ...Meta)   { l.base.Debug(msg, flatten(meta)...) }

func (l *slogLogger) LogCritical(msg string, meta ...Meta) {
	l.base.Error("CRITICAL: "+msg, flatten(meta)...)
}

// LogSection is decorative; the slog-backed adapter renders it as a plain
// banner line rather than no-op, since nothing downstream depends on its
// absence.
func (l *slogLogger) LogSection(title string, style ...string) {
	bar := strings.Repeat("-", len(title)+4)
	fmt.Fprintf(os.Stdout, "%s\n  %s\n%s\n", bar, title, bar)
}
