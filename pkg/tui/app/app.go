// Package app composes the calendar, notes, and player panes into the
// Bubble Tea program behind `tempo ui`.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appsvc "tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/tui/components/calgrid"
	"tableflip.dev/tempo/pkg/tui/components/notes"
	"tableflip.dev/tempo/pkg/tui/components/player"
	"tableflip.dev/tempo/pkg/tui/theme"
)

const layoutUS = "January 2, 2006"

// pane identifies which child owns keyboard focus.
type pane int

const (
	paneCalendar pane = iota
	paneNotes
	panePlayer
	paneCount
)

type tickMsg time.Time

type storeMsg store.Event

// Model is the root Bubble Tea model.
type Model struct {
	svc *appsvc.Service

	calendar *calgrid.Model
	notes    *notes.Model
	player   *player.Model

	focus  pane
	width  int
	height int
	th     theme.Theme

	events <-chan store.Event
}

// New assembles the root model. The queue/output pair behaves like a
// media element: the output calls back into the queue.
func New(svc *appsvc.Service) (*Model, error) {
	out := &player.ClockOutput{}
	q, err := svc.Player(out)
	if err != nil {
		return nil, err
	}
	out.Bind(q)

	th := theme.Default()
	m := &Model{
		svc:      svc,
		calendar: calgrid.NewModel(svc, th),
		player:   player.NewModel(q, out, th),
		focus:    paneCalendar,
		th:       th,
	}
	m.notes = notes.NewModel(svc, m.notesCollection(), th)
	m.calendar.Focus()
	return m, nil
}

// notesCollection derives the notes pane's collection from the
// calendar selection, defaulting to today.
func (m *Model) notesCollection() string {
	if m.calendar != nil {
		if d := m.calendar.SelectedDate(); d != nil {
			return d.Format(layoutUS)
		}
	}
	return time.Now().Format(layoutUS)
}

// Init starts the playback clock and the store watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if ch, err := m.svc.Watch(context.Background()); err == nil {
		m.events = ch
		cmds = append(cmds, waitForStore(ch))
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForStore(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeMsg(ev)
	}
}

// Update routes messages to the focused pane and handles the global
// keys itself.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		m.player.Tick()
		return m, tickCmd()

	case storeMsg:
		// Another process touched the store; reload the notes pane.
		// Playback state deliberately stays local: this process owns
		// the running clock.
		m.notes.Refresh()
		if m.events != nil {
			cmds = append(cmds, waitForStore(m.events))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// q quits unless the notes input is capturing text.
			if !m.notes.Adding() {
				return m, tea.Quit
			}
		case "tab":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab":
			m.cycleFocus(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case paneCalendar:
		before := m.calendar.SelectedDate()
		m.calendar, cmd = m.calendar.Update(msg)
		if after := m.calendar.SelectedDate(); changed(before, after) {
			m.notes.SetCollection(m.notesCollection())
		}
	case paneNotes:
		m.notes, cmd = m.notes.Update(msg)
	case panePlayer:
		m.player, cmd = m.player.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func changed(a, b *time.Time) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil || b == nil:
		return true
	default:
		return !a.Equal(*b)
	}
}

func (m *Model) cycleFocus(dir int) {
	m.blur(m.focus)
	m.focus = pane((int(m.focus) + dir + int(paneCount)) % int(paneCount))
	switch m.focus {
	case paneCalendar:
		m.calendar.Focus()
	case paneNotes:
		m.notes.Focus()
	case panePlayer:
		m.player.Focus()
	}
}

func (m *Model) blur(p pane) {
	switch p {
	case paneCalendar:
		m.calendar.Blur()
	case paneNotes:
		m.notes.Blur()
	case panePlayer:
		m.player.Blur()
	}
}

func (m *Model) resize() {
	if m.width <= 0 {
		return
	}
	half := m.width/2 - 4
	m.notes.SetWidth(half)
	m.player.SetWidth(m.width - 4)
}

// View lays the calendar and notes side by side over the player, with
// a help footer for the focused pane.
func (m *Model) View() string {
	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.framed(m.calendar.View(), m.focus == paneCalendar),
		m.framed(m.notes.View(), m.focus == paneNotes),
	)
	bottom := m.framed(m.player.View(), m.focus == panePlayer)

	help := ""
	switch m.focus {
	case paneCalendar:
		help = m.calendar.KeyHelp()
	case paneNotes:
		help = m.notes.KeyHelp()
	case panePlayer:
		help = m.player.KeyHelp()
	}
	footer := m.th.Footer.Help.Render(fmt.Sprintf("%s  •  tab focus  q quit", help))

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom, footer)
}

func (m *Model) framed(content string, focused bool) string {
	frame := m.th.Panel.Frame
	if focused {
		frame = m.th.Panel.FocusedFrame
	}
	return frame.Render(content)
}

// Run launches the Bubble Tea UI.
func Run(svc *appsvc.Service) error {
	m, err := New(svc)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
