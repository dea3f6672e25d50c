package mode

import (
	"fmt"
	"io"
	"time"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
)

// cycleRotation is how long each child mode stays active before the next
// one in rotation takes over (spec §4.4 cycle mode).
const cycleRotation = 5 * time.Minute

// clearScreen is the ANSI sequence to clear the terminal and home the
// cursor, emitted before each child mode starts (spec §4.4: every switch
// clears the screen).
const clearScreen = "\x1b[2J\x1b[H"

// cycleMode rotates through every other registered mode, building each
// child lazily on first visit rather than constructing the whole catalog
// up front. Rotation is driven by sample timestamps rather than a wall
// clock, so tests can replay a recording and exercise several rotations
// without waiting in real time.
type cycleMode struct {
	Info
	Base
	w   io.Writer
	log logx.Logger

	cat      *Catalog
	keys     []string
	idx      int
	children map[string]Mode
	current  Mode

	windowStartMS int64
	haveWindow    bool
}

func (c *Catalog) newCycleMode(w io.Writer, log logx.Logger) Mode {
	var keys []string
	for _, k := range c.order {
		if k == "cycle" {
			continue
		}
		keys = append(keys, k)
	}
	return &cycleMode{
		Info:     Info{Key: "cycle", Desc: "Rotates through the other visual modes"},
		w:        w,
		log:      log,
		cat:      c,
		keys:     keys,
		children: make(map[string]Mode),
	}
}

func (m *cycleMode) childFor(key string) (Mode, error) {
	if mo, ok := m.children[key]; ok {
		return mo, nil
	}
	mo, err := m.cat.Build(key, m.w, m.log)
	if err != nil {
		return nil, err
	}
	m.children[key] = mo
	return mo, nil
}

func (m *cycleMode) OnMetrics(s metrics.Sample) error {
	if len(m.keys) == 0 {
		return nil
	}

	if m.current == nil {
		mo, err := m.childFor(m.keys[m.idx])
		if err != nil {
			return err
		}
		m.current = mo
		m.windowStartMS = s.Timestamp
		m.haveWindow = true
		fmt.Fprint(m.w, clearScreen)
		if err := m.current.OnStart(); err != nil {
			m.log.LogWarning("cycle: child OnStart failed", logx.Meta{"mode": m.keys[m.idx], "err": err.Error()})
		}
	}

	if m.haveWindow {
		elapsed := time.Duration(s.Timestamp-m.windowStartMS) * time.Second
		if elapsed >= cycleRotation {
			m.idx = (m.idx + 1) % len(m.keys)
			mo, err := m.childFor(m.keys[m.idx])
			if err != nil {
				return err
			}
			m.current = mo
			m.windowStartMS = s.Timestamp
			fmt.Fprint(m.w, clearScreen)
			if err := m.current.OnStart(); err != nil {
				m.log.LogWarning("cycle: child OnStart failed", logx.Meta{"mode": m.keys[m.idx], "err": err.Error()})
			}
		}
	}

	return m.current.OnMetrics(s)
}

func (m *cycleMode) OnShutdown(status ExitStatus) error {
	if m.current == nil {
		return nil
	}
	return m.current.OnShutdown(status)
}
