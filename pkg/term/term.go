// Package term implements the in-place terminal region protocol used by
// the Window visualization mode, and the ANSI-stripping utility used by
// the service-log mode (spec §4.8).
package term

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	xterm "golang.org/x/term"
)

// ansiSeq matches an ESC [ ... <letter> CSI sequence.
var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

// Strip removes ANSI CSI escape sequences from s, then drops any ESC byte
// left over from other escape forms. It is idempotent
// (Strip(Strip(x)) == Strip(x)) and the result never contains an ESC byte.
func Strip(s string) string {
	return strings.ReplaceAll(ansiSeq.ReplaceAllString(s, ""), "\x1b", "")
}

// DefaultWidth is used when the terminal size cannot be determined (e.g.
// stdout is redirected to a file or pipe).
const DefaultWidth = 80

// Width returns the current terminal column width of fd, or DefaultWidth
// when fd is not a terminal (piped output, CI, service mode).
func Width(fd int) int {
	if !xterm.IsTerminal(fd) {
		return DefaultWidth
	}
	w, _, err := xterm.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Region is an in-place redraw protocol: save the cursor, move to an
// absolute position within the reserved region, clear lines, then
// restore. It is the primitive the Window mode uses to redraw a
// fixed-height box without disturbing the rest of the terminal.
//
// A Region requires exclusive access to w while active — a mode that
// spawns background rendering tasks must serialize all of its writes
// through one Region (spec §9 terminal output races).
type Region struct {
	w      io.Writer
	height int
}

// NewRegion returns a region of the given height (in lines). Its position
// is the absolute originRow passed to each Redraw; the cursor position at
// the time of the first Redraw is not used.
func NewRegion(w io.Writer, height int) *Region {
	if height <= 0 {
		height = 1
	}
	return &Region{w: w, height: height}
}

// SaveCursor pushes the current cursor position onto the terminal's
// (single-slot) cursor stack.
func (r *Region) SaveCursor() { fmt.Fprint(r.w, "\x1b[s") }

// RestoreCursor pops and moves to the saved cursor position.
func (r *Region) RestoreCursor() { fmt.Fprint(r.w, "\x1b[u") }

// MoveTo positions the cursor at the given 1-based row/col, absolute.
func (r *Region) MoveTo(row, col int) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(r.w, "\x1b[%d;%dH", row, col)
}

// ClearLine erases the current line's contents.
func (r *Region) ClearLine() { fmt.Fprint(r.w, "\x1b[2K") }

// Redraw saves the cursor, clears every line of the region starting at
// originRow, writes lines (padded/truncated to r.height), then restores
// the cursor. Write errors are returned to the caller rather than
// panicking — a failed redraw must not abort the pipeline (spec §4.4).
func (r *Region) Redraw(originRow int, lines []string) error {
	r.SaveCursor()
	defer r.RestoreCursor()

	for i := 0; i < r.height; i++ {
		r.MoveTo(originRow+i, 1)
		r.ClearLine()
		if i < len(lines) {
			if _, err := fmt.Fprint(r.w, lines[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
