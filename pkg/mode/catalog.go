package mode

import (
	"fmt"
	"io"
	"sort"

	"github.com/ja7ad/heartbeat/pkg/logx"
)

// Factory builds a fresh Mode instance writing to w and logging via log.
// Modes are constructed lazily (spec §4.4 cycle mode note: children are
// built on first visit, not all up front) so every catalog entry is a
// factory rather than a live value.
type Factory func(w io.Writer, log logx.Logger) Mode

// entry pairs a factory with the metadata shown by --list, independent
// of what a constructed Mode reports, so --list never needs to build one.
type entry struct {
	Info
	build Factory
}

// Catalog is the ordered, named set of available modes. Registration
// order is the cycle mode's rotation order; --list output is sorted by
// key instead.
type Catalog struct {
	order   []string
	entries map[string]entry
}

// NewCatalog returns the catalog listing every built-in mode (spec §4.4).
// Registration order here is the order the cycle mode rotates through.
func NewCatalog() *Catalog {
	c := &Catalog{entries: make(map[string]entry)}
	c.register("ecg", "Electrocardiogram-style animated waveform", newECGMode)
	c.register("compact", "Single-line status summary", newCompactMode)
	c.register("service", "Minimal service/daemon-friendly log lines", newServiceMode)
	c.register("sparkline", "Unicode block sparkline history", newSparklineMode)
	c.register("alerts", "Threshold-crossing alert log", newAlertsMode)
	c.register("raw", "Re-encoded JSON, one line per sample", newRawMode)
	c.register("timeline", "Scrolling timestamped history", newTimelineMode)
	c.register("percore", "Per-core utilization bars", newPerCoreMode)
	c.register("stats", "Windowed min/max/mean/stddev summary", newStatsMode)
	c.register("aurora", "Aurora-themed ambient animation", newDecorativeMode("aurora", auroraGlyphs))
	c.register("zen", "Zen-themed ambient animation", newDecorativeMode("zen", zenGlyphs))
	c.register("retro", "Retro-themed ambient animation", newDecorativeMode("retro", retroGlyphs))
	c.register("matrix", "Matrix-themed ambient animation", newDecorativeMode("matrix", matrixGlyphs))
	c.register("quantum", "Quantum-themed ambient animation", newDecorativeMode("quantum", quantumGlyphs))
	c.register("neural", "Neural-themed ambient animation", newDecorativeMode("neural", neuralGlyphs))
	c.register("tron", "Tron-themed ambient animation", newDecorativeMode("tron", tronGlyphs))
	c.register("cyberpunk", "Cyberpunk-themed ambient animation", newDecorativeMode("cyberpunk", cyberpunkGlyphs))
	c.register("cycle", "Rotates through the other visual modes", c.newCycleMode)
	c.register("window", "In-place redrawn terminal dashboard", newWindowMode)
	c.register("server", "HTTP+disk telemetry server", newServerMode)
	return c
}

func (c *Catalog) register(key, desc string, build Factory) {
	c.order = append(c.order, key)
	c.entries[key] = entry{Info: Info{Key: key, Desc: desc}, build: build}
}

// Has reports whether key names a registered mode.
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Keys returns the registered mode keys in registration order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Build constructs the named mode, or ErrUnknownMode if key is not
// registered.
func (c *Catalog) Build(key string, w io.Writer, log logx.Logger) (Mode, error) {
	e, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, key)
	}
	return e.build(w, log), nil
}

// List renders the catalog as a sorted-by-key help listing (spec §4.3
// --list output), one "key  description" line per mode.
func (c *Catalog) List() []string {
	keys := c.Keys()
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%-10s %s", k, c.entries[k].Desc))
	}
	return lines
}
