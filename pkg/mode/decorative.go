package mode

import (
	"fmt"
	"io"
	"strings"

	"github.com/ja7ad/heartbeat/pkg/lifeline"
	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// Each decorative theme is just a glyph palette; the animation mechanics
// (frame stride, phase) are shared via lifeline.Animator so every theme
// obeys the same contractual stride rule (spec §4.5) despite looking
// different on screen.
var (
	auroraGlyphs    = []rune{'░', '▒', '▓', '█', '▓', '▒'}
	zenGlyphs       = []rune{'○', '◌', '◍', '◎', '●', '◎', '◍', '◌'}
	retroGlyphs     = []rune{'▚', '▞', '▌', '▐', '▙', '▟'}
	matrixGlyphs    = []rune{'0', '1', 'ｱ', 'ｲ', 'ｳ', 'ｴ'}
	quantumGlyphs   = []rune{'·', '∴', '∵', '⁘', '⁙', '∷'}
	neuralGlyphs    = []rune{'•', '∘', '○', '◉', '○', '∘'}
	tronGlyphs      = []rune{'─', '━', '═', '▬', '═', '━'}
	cyberpunkGlyphs = []rune{'▁', '▃', '▅', '▇', '▅', '▃'}
)

const decorativeWidth = 32

// decorativeMode is a purely ambient display: it renders a themed glyph
// band whose animation speed tracks load, with no alerting or statistics
// behavior of its own (spec §4.4 decorative modes).
type decorativeMode struct {
	writerMode
	glyphs []rune
	anim   *lifeline.Animator
}

// newDecorativeMode returns a Factory for a themed decorative mode; key
// and glyphs are fixed at registration time in catalog.go.
func newDecorativeMode(key string, glyphs []rune) Factory {
	return func(w io.Writer, log logx.Logger) Mode {
		return &decorativeMode{
			writerMode: writerMode{Info: Info{Key: key, Desc: key + "-themed ambient animation"}, w: w, log: log},
			glyphs:     glyphs,
			anim:       lifeline.NewAnimator(),
		}
	}
}

func (m *decorativeMode) OnMetrics(s metrics.Sample) error {
	m.anim.Advance(s.CPUUsagePercent, s.MemoryUsagePercent)

	var b strings.Builder
	for i := 0; i < decorativeWidth; i++ {
		idx := (m.anim.Frame() + i) % len(m.glyphs)
		b.WriteRune(m.glyphs[idx])
	}
	_, err := fmt.Fprintf(m.w, "\r%s %s", StatusSymbol(s.CPUUsagePercent, s.MemoryUsagePercent), b.String())
	return err
}
