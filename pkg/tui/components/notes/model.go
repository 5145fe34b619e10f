// Package notes renders one collection's notes and supports quick
// add, strike, and remove from the keyboard.
package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/note"
	"tableflip.dev/tempo/pkg/tui/theme"
)

// Model is the notes pane for a single collection.
type Model struct {
	svc        *app.Service
	collection string
	notes      []*note.Note

	cursor  int
	input   textinput.Model
	adding  bool
	focused bool
	width   int
	th      theme.Theme
}

// NewModel builds the pane and loads the collection.
func NewModel(svc *app.Service, collection string, th theme.Theme) *Model {
	ti := textinput.New()
	ti.Placeholder = "new note"
	ti.CharLimit = 240

	m := &Model{
		svc:        svc,
		collection: collection,
		input:      ti,
		th:         th,
		width:      40,
	}
	m.Refresh()
	return m
}

func (m *Model) Focus()        { m.focused = true }
func (m *Model) Blur()         { m.focused = false; m.stopAdding() }
func (m *Model) Focused() bool { return m.focused }
func (m *Model) Init() tea.Cmd { return nil }
func (m *Model) Title() string { return m.collection }
func (m *Model) KeyHelp() string {
	if m.adding {
		return "enter save  esc cancel"
	}
	return "a add  enter strike  x remove"
}

// SetWidth adjusts wrapping.
func (m *Model) SetWidth(w int) {
	if w < 16 {
		w = 16
	}
	m.width = w
	m.input.Width = w - 4
}

// SetCollection switches the pane to another collection and reloads.
func (m *Model) SetCollection(collection string) {
	if collection == m.collection {
		return
	}
	m.collection = collection
	m.cursor = 0
	m.Refresh()
}

// Adding reports whether the quick-add input is capturing keys.
func (m *Model) Adding() bool { return m.adding }

// Refresh reloads the notes from the store.
func (m *Model) Refresh() {
	got, err := m.svc.Notes(context.Background(), m.collection)
	if err != nil {
		got = nil
	}
	m.notes = got
	if m.cursor >= len(m.notes) {
		m.cursor = len(m.notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) stopAdding() {
	m.adding = false
	m.input.Blur()
	m.input.SetValue("")
}

// Update handles key input while the pane has focus.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey || !m.focused {
		return m, nil
	}

	if m.adding {
		switch key.String() {
		case "enter":
			message := strings.TrimSpace(m.input.Value())
			if message != "" {
				_, _ = m.svc.Add(context.Background(), m.collection, message)
				m.Refresh()
			}
			m.stopAdding()
		case "esc":
			m.stopAdding()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case "a":
		m.adding = true
		m.input.Focus()
		return m, textinput.Blink
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.notes) {
			_, _ = m.svc.Strike(context.Background(), m.notes[m.cursor].ID)
			m.Refresh()
		}
	case "x":
		if m.cursor >= 0 && m.cursor < len(m.notes) {
			_, _ = m.svc.Remove(context.Background(), m.notes[m.cursor].ID)
			m.Refresh()
		}
	}
	return m, nil
}

// View renders the collection, wrapped to the pane width.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.th.Panel.Title.Render(m.collection))
	b.WriteString("\n")

	if len(m.notes) == 0 && !m.adding {
		b.WriteString(m.th.Player.Faint.Render(" none"))
		b.WriteString("\n")
	}

	for i, n := range m.notes {
		style := m.th.Panel.Body
		if n.Done {
			style = m.th.Player.Faint.Strikethrough(true)
		}
		if i == m.cursor && m.focused && !m.adding {
			style = style.Inherit(m.th.Player.Cursor)
		}
		line := fmt.Sprintf("%s %s", n.Marker(), n.Message)
		b.WriteString(style.Render(wordwrap.String(line, m.width)))
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	return b.String()
}
