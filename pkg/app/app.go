package app

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/note"
	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/store"
)

// Service provides high-level operations over notes, the calendar
// preferences, and the playback queue. It wraps persistence so the
// CLI runners and the TUI can share logic.
type Service struct {
	Persistence store.Persistence
}

var errNoPersistence = errors.New("app: no persistence configured")

// --- notes

// Collections returns sorted collection names.
func (s *Service) Collections(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Collections(ctx), nil
}

// Notes lists the notes of a collection, oldest first.
func (s *Service) Notes(ctx context.Context, collection string) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Notes(ctx, collection), nil
}

// Add creates and stores a new note.
func (s *Service) Add(ctx context.Context, collection, message string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	n := note.New(collection, message)
	if err := s.Persistence.StoreNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Strike toggles the done marker on the note with the given id.
func (s *Service) Strike(ctx context.Context, id string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	for _, n := range s.Persistence.AllNotes(ctx) {
		if n.ID == id {
			n.Strike()
			if err := s.Persistence.StoreNote(n); err != nil {
				return nil, err
			}
			return n, nil
		}
	}
	return nil, errors.New("app: note not found")
}

// Remove deletes the note with the given id.
func (s *Service) Remove(ctx context.Context, id string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	for _, n := range s.Persistence.AllNotes(ctx) {
		if n.ID == id {
			if err := s.Persistence.DeleteNote(n); err != nil {
				return nil, err
			}
			return n, nil
		}
	}
	return nil, errors.New("app: note not found")
}

// --- calendar

// Grid restores the calendar model from the persisted view and
// selection preferences, anchored on now.
func (s *Service) Grid(now time.Time) calendar.Grid {
	g := calendar.New(now)
	if s.Persistence == nil {
		return g
	}
	g = g.SetView(s.Persistence.LoadView())
	if d := s.Persistence.LoadSelected(); d != nil {
		g = g.SelectDate(*d)
	}
	return g
}

// SetView switches the grid's view and persists the preference.
// The write is best effort.
func (s *Service) SetView(g calendar.Grid, v calendar.View) calendar.Grid {
	g = g.SetView(v)
	if s.Persistence != nil {
		_ = s.Persistence.SaveView(v)
	}
	return g
}

// Select marks a date on the grid and persists the preference.
// The write is best effort.
func (s *Service) Select(g calendar.Grid, d time.Time) calendar.Grid {
	g = g.SelectDate(d)
	if s.Persistence != nil {
		_ = s.Persistence.SaveSelected(g.Selected)
	}
	return g
}

// --- music

// Player restores the playback queue from the persisted snapshots and
// wires it back to the store, so every mutation is snapshotted again.
func (s *Service) Player(out playback.Output) (*playback.Queue, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return playback.Restore(
		s.Persistence.LoadLibrary(),
		s.Persistence.LoadPlayback(),
		out,
		s.Persistence,
	), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}
