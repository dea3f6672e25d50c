// Package window implements the fixed-capacity sliding window analytics
// shared by the sparkline, stats, and window visualization modes
// (spec §4.5, §3).
package window

import "math"

// Window is a FIFO bounded by a fixed capacity. On overflow the oldest
// entry is dropped. It is purely sample-ordered and transparent to time
// gaps between pushes.
type Window struct {
	capacity int
	buf      []float64
	start    int // index of the oldest element
	count    int
}

// New returns a Window with the given capacity. A non-positive capacity
// is treated as 1.
func New(capacity int) *Window {
	if capacity <= 0 {
		capacity = 1
	}
	return &Window{capacity: capacity, buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest entry if the window is full.
func (w *Window) Push(v float64) {
	idx := (w.start + w.count) % w.capacity
	w.buf[idx] = v
	if w.count < w.capacity {
		w.count++
	} else {
		w.start = (w.start + 1) % w.capacity
	}
}

// Len returns the number of entries currently retained.
func (w *Window) Len() int { return w.count }

// Capacity returns the configured maximum number of entries.
func (w *Window) Capacity() int { return w.capacity }

// Snapshot returns a copy of the window's contents in insertion order
// (oldest first), for consumers that need a stable view.
func (w *Window) Snapshot() []float64 {
	out := make([]float64, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.buf[(w.start+i)%w.capacity]
	}
	return out
}

// Min returns the smallest retained value, or 0 if the window is empty.
func (w *Window) Min() float64 { return w.reduce(math.Inf(1), math.Min) }

// Max returns the largest retained value, or 0 if the window is empty.
func (w *Window) Max() float64 { return w.reduce(math.Inf(-1), math.Max) }

func (w *Window) reduce(seed float64, f func(a, b float64) float64) float64 {
	if w.count == 0 {
		return 0
	}
	acc := seed
	for i := 0; i < w.count; i++ {
		acc = f(acc, w.buf[(w.start+i)%w.capacity])
	}
	return acc
}

// Mean returns the arithmetic mean of retained values, or 0 if empty.
func (w *Window) Mean() float64 {
	if w.count == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < w.count; i++ {
		sum += w.buf[(w.start+i)%w.capacity]
	}
	return sum / float64(w.count)
}

// Stddev returns the population standard deviation (divide by N, not
// N-1 — see SPEC_FULL.md §9 Open Question resolution #1, which follows
// the teacher's own accumulator convention). It reports 0 for N < 2.
func (w *Window) Stddev() float64 {
	if w.count < 2 {
		return 0
	}
	mean := w.Mean()
	var sumSq float64
	for i := 0; i < w.count; i++ {
		d := w.buf[(w.start+i)%w.capacity] - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(w.count))
}

// blockGlyphs are the 8 unicode block elements used to render a sparkline,
// lowest to highest.
var blockGlyphs = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the window's contents as a unicode block sparkline,
// scaling linearly into [lo, hi]. Passing lo == hi == 0 scales into the
// window's own observed [Min, Max] instead, the behavior documented per
// spec §4.5 for fields without a fixed natural range.
func (w *Window) Sparkline(lo, hi float64) string {
	if w.count == 0 {
		return ""
	}
	if lo == 0 && hi == 0 {
		lo, hi = w.Min(), w.Max()
	}
	span := hi - lo
	out := make([]rune, w.count)
	for i := 0; i < w.count; i++ {
		v := w.buf[(w.start+i)%w.capacity]
		out[i] = glyphFor(v, lo, span)
	}
	return string(out)
}

func glyphFor(v, lo, span float64) rune {
	if span <= 0 {
		return blockGlyphs[0]
	}
	t := (v - lo) / span
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	idx := int(t * float64(len(blockGlyphs)-1))
	return blockGlyphs[idx]
}
