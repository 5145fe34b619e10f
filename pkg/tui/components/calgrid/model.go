// Package calgrid renders the calendar grid as a focusable pane and
// maps keys onto the grid's navigation commands.
package calgrid

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/tui/theme"
)

// Model owns a calendar.Grid plus a cursor over its cells. The cursor
// is UI state only; the selected date is the model's persisted notion.
type Model struct {
	svc    *app.Service
	grid   calendar.Grid
	cursor int
	now    func() time.Time

	focused bool
	th      theme.Theme
}

// NewModel restores the grid from the service's persisted preferences.
func NewModel(svc *app.Service, th theme.Theme) *Model {
	m := &Model{
		svc: svc,
		th:  th,
		now: time.Now,
	}
	m.grid = svc.Grid(m.now())
	m.clampCursor()
	return m
}

// SetNow overrides the clock, for tests.
func (m *Model) SetNow(now func() time.Time) {
	m.now = now
	m.grid = m.svc.Grid(m.now())
	m.clampCursor()
}

// Grid exposes the underlying calendar model.
func (m *Model) Grid() calendar.Grid { return m.grid }

// SelectedDate returns the date under the persisted selection, or nil.
func (m *Model) SelectedDate() *time.Time { return m.grid.Selected }

func (m *Model) Focus()          { m.focused = true }
func (m *Model) Blur()           { m.focused = false }
func (m *Model) Focused() bool   { return m.focused }
func (m *Model) Init() tea.Cmd   { return nil }
func (m *Model) Title() string   { return "calendar" }
func (m *Model) KeyHelp() string { return "←/→ move  [/] page  enter select  m/w/d view  t today" }

// Update handles key input while the pane has focus.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch key.String() {
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		if m.grid.View == calendar.ViewMonth {
			m.moveCursor(-7)
		} else {
			m.moveCursor(-1)
		}
	case "down", "j":
		if m.grid.View == calendar.ViewMonth {
			m.moveCursor(7)
		} else {
			m.moveCursor(1)
		}
	case "[":
		m.grid = m.grid.GoPrev()
		m.clampCursor()
	case "]":
		m.grid = m.grid.GoNext()
		m.clampCursor()
	case "t":
		m.grid = m.grid.GoToday(m.now())
		m.clampCursor()
	case "m":
		m.grid = m.svc.SetView(m.grid, calendar.ViewMonth)
		m.clampCursor()
	case "w":
		m.grid = m.svc.SetView(m.grid, calendar.ViewWeek)
		m.clampCursor()
	case "d":
		m.grid = m.svc.SetView(m.grid, calendar.ViewDay)
		m.clampCursor()
	case "enter":
		cells := m.grid.Cells(m.now())
		if m.cursor >= 0 && m.cursor < len(cells) {
			m.grid = m.svc.Select(m.grid, cells[m.cursor].Date)
		}
	}
	return m, nil
}

// moveCursor steps the cursor, paging the grid when it walks off an
// edge so navigation feels continuous.
func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	switch {
	case next < 0:
		m.grid = m.grid.GoPrev()
		m.cursor = m.grid.Len() + next
	case next >= m.grid.Len():
		m.grid = m.grid.GoNext()
		m.cursor = next - m.grid.Len()
	default:
		m.cursor = next
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if max := m.grid.Len() - 1; m.cursor > max {
		m.cursor = max
	}
}

// View renders the title, the weekday header, and the day cells.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render(m.grid.Title()))
	b.WriteString("\n")
	b.WriteString(m.th.Calendar.Header.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	cells := m.grid.Cells(m.now())
	perRow := 7
	if m.grid.View == calendar.ViewDay {
		perRow = 1
	}
	for i, c := range cells {
		b.WriteString(m.renderCell(c, i == m.cursor && m.focused))
		if (i+1)%perRow == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func (m *Model) renderCell(c calendar.Cell, underCursor bool) string {
	style := m.th.Calendar.Day
	if c.Muted {
		style = m.th.Calendar.Muted
	}
	if c.Today {
		style = style.Inherit(m.th.Calendar.Today)
	}
	if c.Selected {
		style = style.Inherit(m.th.Calendar.Selected)
	}
	if underCursor {
		style = style.Inherit(m.th.Calendar.Cursor)
	}
	return style.Render(fmt.Sprintf("%2d", c.Date.Day()))
}
