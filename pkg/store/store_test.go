package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/note"
	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/track"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func open(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestNotesRoundTrip(t *testing.T) {
	p := open(t)
	ctx := context.Background()

	a := note.New("today", "first")
	b := note.New("today", "second")
	c := note.New("groceries", "milk")
	for _, n := range []*note.Note{a, b, c} {
		if err := p.StoreNote(n); err != nil {
			t.Fatalf("store note: %v", err)
		}
	}

	today := p.Notes(ctx, "today")
	if len(today) != 2 {
		t.Fatalf("got %d notes for today, want 2", len(today))
	}
	if got := p.AllNotes(ctx); len(got) != 3 {
		t.Fatalf("got %d notes total, want 3", len(got))
	}

	cols := p.Collections(ctx)
	if len(cols) != 2 || cols[0] != "groceries" || cols[1] != "today" {
		t.Fatalf("collections = %v, want [groceries today]", cols)
	}

	if err := p.DeleteNote(c); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if got := p.Notes(ctx, "groceries"); len(got) != 0 {
		t.Fatalf("expected groceries to be empty after delete, got %d", len(got))
	}
}

func TestLibrarySnapshotRoundTrip(t *testing.T) {
	p := open(t)

	tracks := []*track.Track{
		track.New("B", "b.mp3", []byte("bbb")),
		track.New("A", "a.mp3", []byte("aaa")),
	}
	if err := p.SaveLibrary(tracks); err != nil {
		t.Fatalf("save library: %v", err)
	}

	got := p.LoadLibrary()
	if len(got) != 2 {
		t.Fatalf("got %d tracks, want 2", len(got))
	}
	if got[0].ID != tracks[0].ID || got[1].ID != tracks[1].ID {
		t.Fatalf("library order not preserved")
	}
	data, err := got[0].Bytes()
	if err != nil || string(data) != "bbb" {
		t.Fatalf("track data did not survive the round trip: %q, %v", data, err)
	}
}

func TestPlaybackSnapshotRoundTrip(t *testing.T) {
	p := open(t)

	in := playback.State{CurrentID: "x", Position: 3.5, Volume: 0.4, Queue: []string{"x", "y"}}
	if err := p.SavePlayback(in); err != nil {
		t.Fatalf("save playback: %v", err)
	}
	out := p.LoadPlayback()
	if out.CurrentID != in.CurrentID || out.Position != in.Position || out.Volume != in.Volume {
		t.Fatalf("playback round trip mismatch: %+v != %+v", out, in)
	}
	if len(out.Queue) != 2 || out.Queue[0] != "x" || out.Queue[1] != "y" {
		t.Fatalf("queue round trip mismatch: %v", out.Queue)
	}
}

func TestEmptyQueueSurvivesRoundTrip(t *testing.T) {
	p := open(t)
	if err := p.SavePlayback(playback.DefaultState()); err != nil {
		t.Fatalf("save playback: %v", err)
	}
	out := p.LoadPlayback()
	if out.Queue == nil || len(out.Queue) != 0 {
		t.Fatalf("empty queue came back as %#v", out.Queue)
	}
}

func TestLoadsFailSoftOnMissingKeys(t *testing.T) {
	p := open(t)

	if got := p.LoadLibrary(); len(got) != 0 {
		t.Fatalf("missing library should be empty, got %d", len(got))
	}
	st := p.LoadPlayback()
	if st.CurrentID != "" || st.Position != 0 || st.Volume != playback.DefaultVolume || len(st.Queue) != 0 {
		t.Fatalf("missing playback should default, got %+v", st)
	}
	if got := p.LoadView(); got != calendar.ViewMonth {
		t.Fatalf("missing view should default to month, got %v", got)
	}
	if got := p.LoadSelected(); got != nil {
		t.Fatalf("missing selection should be nil, got %v", got)
	}
}

func TestLoadsFailSoftOnCorruptValues(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	// Seed valid values, then corrupt the files underneath diskv.
	if err := p.SaveLibrary([]*track.Track{track.New("A", "a.mp3", nil)}); err != nil {
		t.Fatalf("save library: %v", err)
	}
	if err := p.SavePlayback(playback.DefaultState()); err != nil {
		t.Fatalf("save playback: %v", err)
	}
	for _, name := range []string{"library", "playback"} {
		if err := os.WriteFile(filepath.Join(base, "snapshot", name), []byte("{not json"), 0o644); err != nil {
			t.Fatalf("corrupt %s: %v", name, err)
		}
	}

	if got := p.LoadLibrary(); len(got) != 0 {
		t.Fatalf("corrupt library should default to empty, got %d", len(got))
	}
	st := p.LoadPlayback()
	if st.Volume != playback.DefaultVolume || len(st.Queue) != 0 {
		t.Fatalf("corrupt playback should default, got %+v", st)
	}
}

func TestViewAndSelectionRoundTrip(t *testing.T) {
	p := open(t)

	if err := p.SaveView(calendar.ViewWeek); err != nil {
		t.Fatalf("save view: %v", err)
	}
	if got := p.LoadView(); got != calendar.ViewWeek {
		t.Fatalf("view = %v, want week", got)
	}

	d := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.Local)
	if err := p.SaveSelected(&d); err != nil {
		t.Fatalf("save selected: %v", err)
	}
	got := p.LoadSelected()
	if got == nil || !got.Equal(d) {
		t.Fatalf("selected = %v, want %v", got, d)
	}

	if err := p.SaveSelected(nil); err != nil {
		t.Fatalf("clear selected: %v", err)
	}
	if got := p.LoadSelected(); got != nil {
		t.Fatalf("cleared selection should load as nil, got %v", got)
	}
}
