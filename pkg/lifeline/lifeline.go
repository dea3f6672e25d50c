// Package lifeline implements the frame-driven ECG/sparkline/gradient/heart
// animations shared by the decorative and dashboard visualization modes
// (spec §4.6). All renderings are pure functions of (current sample,
// internal frame counter, animation phase) — no wall-clock reads, per the
// determinism invariant in spec §9.
package lifeline

import "math"

// heartGlyphs are the 4 states of the pulsing heart animation, cycled by
// the frame counter modulo 4.
var heartGlyphs = [4]rune{'♡', '♥', '♥', '♡'}

// ecgGlyphs approximate an ECG trace using block/line-drawing runes.
var ecgGlyphs = []rune{'_', '.', '-', '~', '^', '/', '\\', '|'}

// gradientGlyphs are braille-dot runes used for the smooth gradient line.
var gradientGlyphs = []rune{'⠀', '⠁', '⠃', '⠇', '⠏', '⠟', '⠿', '⡿', '⣿'}

// Animator advances a frame counter and a floating-point phase accumulator,
// purely in response to samples — never the wall clock.
type Animator struct {
	frame int
	phase float64
}

// NewAnimator returns a fresh Animator with frame 0 and phase 0.
func NewAnimator() *Animator { return &Animator{} }

// Advance moves the frame counter forward by 1, or by 2 when
// max(cpuPercent, memPercent) > 70 (spec §4.6, a contractual threshold).
// The phase accumulator advances proportionally.
func (a *Animator) Advance(cpuPercent, memPercent float64) {
	stride := 1
	if math.Max(cpuPercent, memPercent) > 70 {
		stride = 2
	}
	a.frame += stride
	a.phase += float64(stride) * 0.35
}

// Frame returns the current frame counter.
func (a *Animator) Frame() int { return a.frame }

// Phase returns the current animation phase.
func (a *Animator) Phase() float64 { return a.phase }

// ECG renders a fixed-width waveform strip driven by the current frame and
// the sample's intensity (0..100, typically cpu or mem percent): higher
// intensity produces a taller trace; the oscillation frequency is fixed
// and the trace scrolls only as the frame counter advances.
func (a *Animator) ECG(width int, intensity float64) string {
	if width <= 0 {
		width = 1
	}
	amp := 1 + intensity/100*float64(len(ecgGlyphs)-2)
	out := make([]rune, width)
	for x := 0; x < width; x++ {
		t := float64(x+a.frame) * 0.5
		v := math.Sin(t) * amp
		idx := int(math.Round(v)) + len(ecgGlyphs)/2
		if idx < 0 {
			idx = 0
		}
		if idx >= len(ecgGlyphs) {
			idx = len(ecgGlyphs) - 1
		}
		out[x] = ecgGlyphs[idx]
	}
	return string(out)
}

// Sparkline renders a width-wide sine composition at the given intensity,
// independent of any retained sample history (contrast with
// pkg/window.Window.Sparkline, which scales observed history).
func (a *Animator) Sparkline(width int, intensity float64) string {
	if width <= 0 {
		width = 1
	}
	out := make([]rune, width)
	for x := 0; x < width; x++ {
		t := a.phase + float64(x)*0.3
		v := (math.Sin(t)+1)/2*intensity/100 + 0.0
		idx := int(v * float64(len(gradientGlyphs)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(gradientGlyphs) {
			idx = len(gradientGlyphs) - 1
		}
		out[x] = gradientGlyphs[idx]
	}
	return string(out)
}

// Gradient renders a smooth braille-dot line across width columns, fading
// from low to high based on intensity and the current phase.
func (a *Animator) Gradient(width int, intensity float64) string {
	if width <= 0 {
		width = 1
	}
	out := make([]rune, width)
	for x := 0; x < width; x++ {
		frac := float64(x) / float64(width)
		wobble := math.Sin(a.phase+frac*math.Pi*2) * 0.15
		level := intensity/100 + wobble
		if level < 0 {
			level = 0
		}
		if level > 1 {
			level = 1
		}
		idx := int(level * float64(len(gradientGlyphs)-1))
		out[x] = gradientGlyphs[idx]
	}
	return string(out)
}

// Heart returns the current pulsing-heart glyph for the frame counter.
func (a *Animator) Heart() rune {
	return heartGlyphs[a.frame%len(heartGlyphs)]
}
