package playback

import (
	"encoding/json"
	"errors"
	"testing"

	"tableflip.dev/tempo/pkg/track"
)

type fakeOutput struct {
	loaded    []string
	plays     int
	rejectErr error
	volume    float64
	seeked    float64
}

func (f *fakeOutput) Load(t *track.Track) error { f.loaded = append(f.loaded, t.ID); return nil }
func (f *fakeOutput) Play() error               { f.plays++; return f.rejectErr }
func (f *fakeOutput) Pause()                    {}
func (f *fakeOutput) Seek(s float64)            { f.seeked = s }
func (f *fakeOutput) SetVolume(v float64)       { f.volume = v }

type fakeSaver struct {
	libraries int
	playbacks int
	last      State
	err       error
}

func (f *fakeSaver) SaveLibrary([]*track.Track) error { f.libraries++; return f.err }
func (f *fakeSaver) SavePlayback(st State) error      { f.playbacks++; f.last = st; return f.err }

func mp3(name string) track.File {
	return track.File{Name: name, Data: []byte(name)}
}

func TestImportSeedsQueueAndCurrent(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, rejected := q.Import([]track.File{mp3("A.mp3"), mp3("B.mp3")})
	if rejected != 0 {
		t.Fatalf("rejected %d, want 0", rejected)
	}
	if len(added) != 2 {
		t.Fatalf("added %d tracks, want 2", len(added))
	}

	a, b := added[0], added[1]
	st := q.State()
	if st.CurrentID != a.ID {
		t.Fatalf("current = %q, want first processed track %q", st.CurrentID, a.ID)
	}
	if len(st.Queue) != 2 || st.Queue[0] != a.ID || st.Queue[1] != b.ID {
		t.Fatalf("queue = %v, want [%s %s] in import order", st.Queue, a.ID, b.ID)
	}

	// Library is prepend-per-file: last processed at the head.
	lib := q.Library()
	if len(lib) != 2 || lib[0].ID != b.ID || lib[1].ID != a.ID {
		t.Fatalf("library order wrong, want newest first")
	}
}

func TestImportCountsRejectedFiles(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, rejected := q.Import([]track.File{mp3("Song.MP3"), mp3("Song.wav"), mp3("x.ogg")})
	if len(added) != 1 {
		t.Fatalf("added %d, want 1 (case-insensitive mp3 match)", len(added))
	}
	if rejected != 2 {
		t.Fatalf("rejected %d, want 2", rejected)
	}
}

func TestPlayAppendsUnknownIDToQueue(t *testing.T) {
	out := &fakeOutput{}
	q := New(out, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3"), mp3("b.mp3"), mp3("c.mp3")})
	a, b, c := added[0], added[1], added[2]

	// Rebuild a queue without c; playing c must append, not reorder.
	st := q.State()
	st.Queue = []string{a.ID, b.ID}
	q = Restore(q.Library(), st, out, nil)
	q.Play(c.ID)

	got := q.State()
	if got.CurrentID != c.ID {
		t.Fatalf("current = %q, want %q", got.CurrentID, c.ID)
	}
	if len(got.Queue) != 3 || got.Queue[2] != c.ID {
		t.Fatalf("queue = %v, want c appended at the end", got.Queue)
	}
	if got.Queue[0] != a.ID || got.Queue[1] != b.ID {
		t.Fatalf("queue = %v, existing entries reordered", got.Queue)
	}
}

func TestPlayRejectionIsSwallowed(t *testing.T) {
	out := &fakeOutput{rejectErr: errors.New("needs user gesture")}
	q := New(out, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3")})

	q.Play(added[0].ID)
	if out.plays != 1 {
		t.Fatalf("expected exactly one start attempt, got %d", out.plays)
	}
	if q.State().CurrentID != added[0].ID {
		t.Fatalf("rejection must not unwind the current id")
	}
}

func TestRemoveCurrentAdvancesToQueueHead(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3"), mp3("b.mp3"), mp3("c.mp3")})
	a, b := added[0], added[1]

	q.Seek(42)
	q.Remove(a.ID)

	st := q.State()
	if st.CurrentID != b.ID {
		t.Fatalf("current = %q, want new queue head %q", st.CurrentID, b.ID)
	}
	if st.Position != 0 {
		t.Fatalf("position = %v, want reset to 0", st.Position)
	}
	if q.Find(a.ID) != nil {
		t.Fatalf("removed track still in library")
	}
	for _, id := range st.Queue {
		if id == a.ID {
			t.Fatalf("removed track still queued")
		}
	}
}

func TestRemoveLastTrackClearsCurrent(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, _ := q.Import([]track.File{mp3("only.mp3")})

	q.Remove(added[0].ID)
	st := q.State()
	if st.CurrentID != "" {
		t.Fatalf("current = %q, want empty", st.CurrentID)
	}
	if st.Position != 0 {
		t.Fatalf("position = %v, want 0", st.Position)
	}
	if len(st.Queue) != 0 {
		t.Fatalf("queue = %v, want empty", st.Queue)
	}
}

func TestRemoveNonCurrentKeepsCurrent(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3"), mp3("b.mp3")})
	a, b := added[0], added[1]

	q.Remove(b.ID)
	if st := q.State(); st.CurrentID != a.ID {
		t.Fatalf("current = %q, want unchanged %q", st.CurrentID, a.ID)
	}
}

func TestNextWrapsAround(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3"), mp3("b.mp3"), mp3("c.mp3")})
	a, c := added[0], added[2]

	q.Play(c.ID)
	q.Next()
	if st := q.State(); st.CurrentID != a.ID {
		t.Fatalf("next from tail = %q, want wrap to head %q", st.CurrentID, a.ID)
	}
}

func TestPrevWrapsAround(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3"), mp3("b.mp3"), mp3("c.mp3")})
	c := added[2]

	// current is the first import, the queue head; prev wraps to the tail.
	q.Prev()
	if st := q.State(); st.CurrentID != c.ID {
		t.Fatalf("prev from head = %q, want wrap to tail %q", st.CurrentID, c.ID)
	}
}

func TestNextOnEmptyQueueIsNoop(t *testing.T) {
	out := &fakeOutput{}
	q := New(out, nil)
	q.Next()
	q.Prev()
	if st := q.State(); st.CurrentID != "" {
		t.Fatalf("current = %q, want empty", st.CurrentID)
	}
	if out.plays != 0 {
		t.Fatalf("no playback should start on an empty queue")
	}
}

func TestStepWithInconsistentCurrentDefaultsToHead(t *testing.T) {
	out := &fakeOutput{}
	q := New(out, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3"), mp3("b.mp3")})

	st := q.State()
	st.CurrentID = "no-such-id"
	q = Restore(q.Library(), st, out, nil)

	q.Next()
	if got := q.State().CurrentID; got != added[0].ID {
		t.Fatalf("next with stale current = %q, want queue head %q", got, added[0].ID)
	}

	st.CurrentID = "no-such-id"
	q = Restore(q.Library(), st, out, nil)
	q.Prev()
	if got := q.State().CurrentID; got != added[0].ID {
		t.Fatalf("prev with stale current = %q, want queue head %q", got, added[0].ID)
	}
}

func TestOnTrackEndedBehavesLikeNext(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3"), mp3("b.mp3")})

	q.OnTrackEnded()
	if st := q.State(); st.CurrentID != added[1].ID {
		t.Fatalf("ended = %q, want next track %q", st.CurrentID, added[1].ID)
	}
}

func TestSeekDoesNotClamp(t *testing.T) {
	out := &fakeOutput{}
	q := New(out, nil)
	q.Seek(-3)
	if st := q.State(); st.Position != -3 {
		t.Fatalf("position = %v, want stored verbatim", st.Position)
	}
	q.Seek(9999)
	if out.seeked != 9999 {
		t.Fatalf("output seek = %v, want forwarded verbatim", out.seeked)
	}
}

func TestSetVolumeAppliesImmediately(t *testing.T) {
	out := &fakeOutput{}
	q := New(out, nil)
	q.SetVolume(0.25)
	if out.volume != 0.25 {
		t.Fatalf("output volume = %v, want 0.25", out.volume)
	}
	if st := q.State(); st.Volume != 0.25 {
		t.Fatalf("state volume = %v, want 0.25", st.Volume)
	}
}

func TestOnMetadataLoadedSetsDuration(t *testing.T) {
	q := New(&fakeOutput{}, nil)
	added, _ := q.Import([]track.File{mp3("a.mp3")})

	q.OnMetadataLoaded(added[0].ID, 187.4)
	if got := q.Find(added[0].ID).Duration; got != 187.4 {
		t.Fatalf("duration = %v, want 187.4", got)
	}
	// Unknown ids are ignored, not fatal.
	q.OnMetadataLoaded("ghost", 1)
}

func TestMutationsPersistAndSwallowErrors(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	q := New(&fakeOutput{}, saver)
	added, _ := q.Import([]track.File{mp3("a.mp3")})

	q.SetVolume(0.5)
	q.Seek(10)
	q.Remove(added[0].ID)

	if saver.playbacks < 4 {
		t.Fatalf("expected a snapshot per mutation, got %d", saver.playbacks)
	}
	if st := q.State(); len(st.Queue) != 0 {
		t.Fatalf("write failures must not block mutations")
	}
}

func TestStateRoundTripsThroughJSON(t *testing.T) {
	states := []State{
		DefaultState(),
		{CurrentID: "abc", Position: 12.5, Volume: 0.4, Queue: []string{"abc", "def"}},
		{Volume: 0.9, Queue: []string{}},
	}
	for _, in := range states {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out State
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.CurrentID != in.CurrentID || out.Position != in.Position || out.Volume != in.Volume {
			t.Fatalf("round trip mismatch: %+v != %+v", out, in)
		}
		if len(out.Queue) != len(in.Queue) {
			t.Fatalf("queue length mismatch: %+v != %+v", out.Queue, in.Queue)
		}
	}
}
