package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip_RemovesCSISequences(t *testing.T) {
	in := "\x1b[31mCPU: 12%\x1b[0m \x1b[1;32mOK\x1b[0m"
	out := Strip(in)
	assert.Equal(t, "CPU: 12% OK", out)
	assert.NotContains(t, out, "\x1b")
}

func TestStrip_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"\x1b[31mred\x1b[0m",
		"\x1b[2K\x1b[999;1H",
		"",
	}
	for _, s := range inputs {
		once := Strip(s)
		twice := Strip(once)
		assert.Equal(t, once, twice, "Strip must be idempotent for %q", s)
		assert.False(t, strings.ContainsRune(once, '\x1b'))
	}
}

func TestRegion_RedrawWritesSaveMoveClearRestore(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegion(&buf, 2)
	err := r.Redraw(5, []string{"line one", "line two"})
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[s"))
	assert.True(t, strings.HasSuffix(out, "\x1b[u"))
	assert.Contains(t, out, "\x1b[5;1H")
	assert.Contains(t, out, "\x1b[6;1H")
	assert.Contains(t, out, "line one")
	assert.Contains(t, out, "line two")
}

func TestRegion_RedrawPadsShortContent(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegion(&buf, 3)
	err := r.Redraw(1, []string{"only one line"})
	assert.NoError(t, err)
	// three clear-line sequences even though only one content line was given
	assert.Equal(t, 3, strings.Count(buf.String(), "\x1b[2K"))
}
