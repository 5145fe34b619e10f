package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	appsvc "tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/store"
)

type testConfig struct {
	path string
}

func (c testConfig) BasePath() string {
	return c.path
}

func newModel(t *testing.T) (*Model, *appsvc.Service) {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	svc := &appsvc.Service{Persistence: p}
	m, err := New(svc)
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	m.calendar.SetNow(func() time.Time {
		return time.Date(2026, time.March, 15, 10, 30, 0, 0, time.Local)
	})
	return m, svc
}

func press(m *Model, key string) (*Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(*Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTabCyclesFocus(t *testing.T) {
	m, _ := newModel(t)
	if m.focus != paneCalendar || !m.calendar.Focused() {
		t.Fatalf("expected the calendar focused at startup")
	}

	m, _ = press(m, "tab")
	if m.focus != paneNotes || !m.notes.Focused() || m.calendar.Focused() {
		t.Fatalf("expected focus on notes after tab")
	}

	m, _ = press(m, "tab")
	if m.focus != panePlayer || !m.player.Focused() {
		t.Fatalf("expected focus on player after second tab")
	}

	m, _ = press(m, "tab")
	if m.focus != paneCalendar {
		t.Fatalf("expected focus to wrap back to the calendar")
	}

	m, _ = press(m, "shift+tab")
	if m.focus != panePlayer {
		t.Fatalf("expected shift+tab to cycle backwards")
	}
}

func TestSelectingDateSwitchesNotesCollection(t *testing.T) {
	m, _ := newModel(t)

	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.Local)
	want := m.calendar.Grid().Cells(now)[0].Date.Format(layoutUS)

	m, _ = press(m, "enter")
	if got := m.notes.Title(); got != want {
		t.Fatalf("expected notes pane on %q after selecting, got %q", want, got)
	}
}

func TestQQuitsUnlessNotesInputActive(t *testing.T) {
	m, _ := newModel(t)

	m, _ = press(m, "tab") // focus notes
	m, _ = press(m, "a")   // quick-add captures keys
	if !m.notes.Adding() {
		t.Fatalf("expected quick-add mode")
	}

	m, cmd := press(m, "q")
	if isQuit(cmd) {
		t.Fatalf("expected q to type into the input, not quit")
	}

	m, _ = press(m, "esc")
	_, cmd = press(m, "q")
	if !isQuit(cmd) {
		t.Fatalf("expected q to quit outside quick-add")
	}
}

func TestStoreEventRefreshesNotes(t *testing.T) {
	m, svc := newModel(t)

	collection := m.notes.Title()
	if _, err := svc.Add(context.Background(), collection, "added elsewhere"); err != nil {
		t.Fatalf("failed to add note: %v", err)
	}
	if strings.Contains(m.notes.View(), "added elsewhere") {
		t.Fatalf("expected the pane to be stale before the store event")
	}

	next, _ := m.Update(storeMsg(store.Event{Type: store.EventNotesChanged, Collection: collection}))
	m = next.(*Model)
	if !strings.Contains(m.notes.View(), "added elsewhere") {
		t.Fatalf("expected the pane refreshed after the store event:\n%s", m.notes.View())
	}
}

func TestTickAdvancesPlayerClock(t *testing.T) {
	m, _ := newModel(t)

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(*Model)
	if cmd == nil {
		t.Fatalf("expected the tick to reschedule itself")
	}
	if m.player == nil {
		t.Fatalf("expected the player pane to survive ticks")
	}
}
