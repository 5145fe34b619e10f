// Package player renders the music library, the queue order, and the
// playback gauges, and maps keys onto queue commands.
package player

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/timeutil"
	"tableflip.dev/tempo/pkg/tui/theme"
)

const seekStep = 5 // seconds per seek key press

// Model is the player pane. It owns the queue and the clock output
// that stands in for an audio device.
type Model struct {
	queue *playback.Queue
	out   *ClockOutput

	cursor  int
	focused bool
	width   int
	th      theme.Theme
}

// NewModel wires a queue and its clock output into a pane.
func NewModel(queue *playback.Queue, out *ClockOutput, th theme.Theme) *Model {
	return &Model{queue: queue, out: out, th: th, width: 40}
}

func (m *Model) Focus()          { m.focused = true }
func (m *Model) Blur()           { m.focused = false }
func (m *Model) Focused() bool   { return m.focused }
func (m *Model) Init() tea.Cmd   { return nil }
func (m *Model) Title() string   { return "player" }
func (m *Model) KeyHelp() string { return "enter play  space pause  n/p skip  ←/→ seek  +/- vol  x remove" }

// SetWidth adjusts gauge rendering to the pane width.
func (m *Model) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	m.width = w
}

// Queue exposes the playback model, for the footer and tests.
func (m *Model) Queue() *playback.Queue { return m.queue }

// Tick advances the playback clock by one second.
func (m *Model) Tick() {
	m.out.Advance()
}

// Update handles key input while the pane has focus.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	lib := m.queue.Library()
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(lib)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(lib) {
			m.queue.Play(lib[m.cursor].ID)
		}
	case " ":
		if m.out.Playing() {
			m.out.Pause()
		} else if cur := m.queue.Current(); cur != nil {
			m.queue.Play(cur.ID)
		}
	case "n":
		m.queue.Next()
	case "p":
		m.queue.Prev()
	case "x":
		if m.cursor >= 0 && m.cursor < len(lib) {
			m.queue.Remove(lib[m.cursor].ID)
			if m.cursor >= len(lib)-1 && m.cursor > 0 {
				m.cursor--
			}
		}
	case "+", "=":
		m.queue.SetVolume(clamp(m.queue.State().Volume+0.05, 0, 1))
	case "-":
		m.queue.SetVolume(clamp(m.queue.State().Volume-0.05, 0, 1))
	case "left":
		m.seekBy(-seekStep)
	case "right":
		m.seekBy(seekStep)
	}
	return m, nil
}

// seekBy clamps here, in the UI: the queue model itself stores seek
// positions verbatim.
func (m *Model) seekBy(delta float64) {
	cur := m.queue.Current()
	if cur == nil {
		return
	}
	pos := m.queue.State().Position + delta
	max := cur.Duration
	if max <= 0 {
		max = pos // duration unknown, only clamp the low end
	}
	m.queue.Seek(clamp(pos, 0, max))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the library list plus the playback status line.
func (m *Model) View() string {
	var b strings.Builder
	st := m.queue.State()
	lib := m.queue.Library()

	queued := make(map[string]int, len(st.Queue))
	for i, id := range st.Queue {
		queued[id] = i + 1
	}

	if len(lib) == 0 {
		b.WriteString(m.th.Player.Faint.Render("library empty - tempo music import <files>"))
		b.WriteString("\n")
	}

	for i, t := range lib {
		style := m.th.Player.Track
		marker := "  "
		if t.ID == st.CurrentID {
			style = m.th.Player.Current
			marker = "> "
		}
		if i == m.cursor && m.focused {
			style = style.Inherit(m.th.Player.Cursor)
		}
		line := fmt.Sprintf("%s%s", marker, t.Name)
		if at, ok := queued[t.ID]; ok {
			line += m.th.Player.Faint.Render(fmt.Sprintf("  #%d", at))
		}
		line += m.th.Player.Faint.Render("  " + timeutil.FormatSeconds(t.Duration))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine(st))
	return b.String()
}

func (m *Model) statusLine(st playback.State) string {
	cur := m.queue.Current()
	if cur == nil {
		return m.th.Player.Faint.Render("nothing queued")
	}

	state := "paused"
	if m.out.Playing() {
		state = "playing"
	}
	gauge := m.gauge(st.Position, cur.Duration, m.width-30)
	return fmt.Sprintf("%s %s %s %s/%s vol %3d%%",
		m.th.Player.Faint.Render(state),
		m.th.Panel.Title.Render(cur.Name),
		gauge,
		timeutil.FormatSeconds(st.Position),
		timeutil.FormatSeconds(cur.Duration),
		int(st.Volume*100))
}

// gauge renders a simple position bar; an unknown duration renders an
// empty track.
func (m *Model) gauge(pos, duration float64, width int) string {
	if width < 8 {
		width = 8
	}
	filled := 0
	if duration > 0 {
		filled = int(pos / duration * float64(width))
		if filled > width {
			filled = width
		}
		if filled < 0 {
			filled = 0
		}
	}
	return m.th.Player.Gauge.Render(strings.Repeat("█", filled)) +
		m.th.Player.Faint.Render(strings.Repeat("░", width-filled))
}
