// Package playback models the music library and play queue: an
// ordered library of imported tracks, an ordered queue of track ids,
// a current-track pointer, playback position, and volume. The model
// owns no I/O beyond the injected Output device and a best-effort
// snapshot writer.
package playback

import (
	"tableflip.dev/tempo/pkg/track"
)

// DefaultVolume is used when no playback state has been persisted yet.
const DefaultVolume = 0.9

// State is the playback bundle persisted as one unit on every change.
type State struct {
	CurrentID string   `json:"currentId"`
	Position  float64  `json:"position"`
	Volume    float64  `json:"volume"`
	Queue     []string `json:"queue"`
}

// DefaultState returns the documented fallback for a missing or
// unreadable playback snapshot.
func DefaultState() State {
	return State{Volume: DefaultVolume, Queue: []string{}}
}

// Saver receives full snapshots after each mutation. Both writes are
// best effort: the queue discards their errors, there is no retry and
// no durability guarantee.
type Saver interface {
	SaveLibrary(tracks []*track.Track) error
	SavePlayback(st State) error
}

// Queue is the playback model. It is owned by a single goroutine (the
// UI event loop or a CLI command); it does no locking of its own.
type Queue struct {
	library []*track.Track
	state   State
	out     Output
	saver   Saver
}

// New returns an empty queue wired to the given output device. saver
// may be nil for throwaway instances.
func New(out Output, saver Saver) *Queue {
	if out == nil {
		out = NopOutput{}
	}
	return &Queue{
		state: DefaultState(),
		out:   out,
		saver: saver,
	}
}

// Restore rebuilds a queue from persisted snapshots. The stored state
// is taken at face value; a current id that no longer resolves is
// tolerated and repaired lazily by Next and Prev.
func Restore(library []*track.Track, st State, out Output, saver Saver) *Queue {
	q := New(out, saver)
	q.library = library
	if st.Queue == nil {
		st.Queue = []string{}
	}
	q.state = st
	q.out.SetVolume(st.Volume)
	return q
}

// Library returns the tracks newest first. The slice is a copy; the
// tracks are shared.
func (q *Queue) Library() []*track.Track {
	out := make([]*track.Track, len(q.library))
	copy(out, q.library)
	return out
}

// State returns a copy of the persisted bundle.
func (q *Queue) State() State {
	st := q.state
	st.Queue = append([]string{}, q.state.Queue...)
	return st
}

// Current resolves the current track, or nil when nothing is selected
// or the id no longer exists in the library.
func (q *Queue) Current() *track.Track {
	if q.state.CurrentID == "" {
		return nil
	}
	return q.Find(q.state.CurrentID)
}

// Find returns the library track with the given id, or nil.
func (q *Queue) Find(id string) *track.Track {
	for _, t := range q.library {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Import runs the mp3 filter over files and adds each accepted track.
// Tracks are prepended to the library one at a time, so the last
// processed file ends up at the head (library reads newest first).
// The first accepted track becomes current and seeds the queue when
// nothing was selected; all other accepted tracks append to the queue
// in processing order. The rejected count is reported back for the
// caller to surface as a single aggregate message.
func (q *Queue) Import(files []track.File) ([]*track.Track, int) {
	res := track.Import(files)
	for _, t := range res.Accepted {
		q.library = append([]*track.Track{t}, q.library...)
		if q.state.CurrentID == "" {
			q.state.CurrentID = t.ID
			q.state.Queue = append(q.state.Queue, t.ID)
		} else if !q.queued(t.ID) {
			q.state.Queue = append(q.state.Queue, t.ID)
		}
	}
	if len(res.Accepted) > 0 {
		q.persist()
	}
	return res.Accepted, res.Rejected
}

// Play makes id the current track, appending it to the queue if it is
// not already there, and asks the output to start. A start rejection
// from the host is swallowed; the user retries explicitly.
func (q *Queue) Play(id string) {
	t := q.Find(id)
	if t == nil {
		return
	}
	if !q.queued(id) {
		q.state.Queue = append(q.state.Queue, id)
	}
	if q.state.CurrentID != id {
		q.state.CurrentID = id
		q.state.Position = 0
	}
	q.persist()

	if err := q.out.Load(t); err != nil {
		return
	}
	_ = q.out.Play()
}

// Remove deletes the track from the library and the queue. Removing
// the current track resets the position and advances current to the
// new queue head, or clears it when the queue is now empty.
func (q *Queue) Remove(id string) {
	kept := q.library[:0]
	for _, t := range q.library {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	q.library = kept

	order := q.state.Queue[:0]
	for _, qid := range q.state.Queue {
		if qid != id {
			order = append(order, qid)
		}
	}
	q.state.Queue = order

	if q.state.CurrentID == id {
		q.state.Position = 0
		if len(q.state.Queue) > 0 {
			q.state.CurrentID = q.state.Queue[0]
		} else {
			q.state.CurrentID = ""
		}
	}
	q.persist()
}

// Next advances to the following queue entry, wrapping past the end.
func (q *Queue) Next() {
	q.step(1)
}

// Prev moves to the preceding queue entry, wrapping before the start.
func (q *Queue) Prev() {
	q.step(-1)
}

// step walks the queue relative to the current id. An id that is
// missing from the queue is inconsistent state and resolves to the
// queue head rather than an error.
func (q *Queue) step(dir int) {
	n := len(q.state.Queue)
	if n == 0 {
		return
	}
	next := 0
	if at := q.indexOf(q.state.CurrentID); at >= 0 {
		next = ((at+dir)%n + n) % n
	}
	q.state.CurrentID = q.state.Queue[next]
	q.state.Position = 0
	q.persist()

	if t := q.Current(); t != nil {
		if err := q.out.Load(t); err != nil {
			return
		}
		_ = q.out.Play()
	}
}

// Seek stores the position verbatim and forwards it to the output.
// The model does not clamp; bounded input is the caller's job (the
// TUI clamps its slider, programmatic callers may overshoot).
func (q *Queue) Seek(seconds float64) {
	q.state.Position = seconds
	q.out.Seek(seconds)
	q.persist()
}

// SetVolume stores v and applies it to the output immediately.
func (q *Queue) SetVolume(v float64) {
	q.state.Volume = v
	q.out.SetVolume(v)
	q.persist()
}

// OnTrackEnded is the output's end-of-media notification.
func (q *Queue) OnTrackEnded() {
	q.Next()
}

// OnTimeUpdate is the output's position notification.
func (q *Queue) OnTimeUpdate(seconds float64) {
	q.state.Position = seconds
	q.persist()
}

// OnMetadataLoaded records the reported duration on the matching
// library entry. Unknown ids are ignored.
func (q *Queue) OnMetadataLoaded(id string, duration float64) {
	t := q.Find(id)
	if t == nil {
		return
	}
	t.Duration = duration
	q.persist()
}

func (q *Queue) queued(id string) bool {
	return q.indexOf(id) >= 0
}

func (q *Queue) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, qid := range q.state.Queue {
		if qid == id {
			return i
		}
	}
	return -1
}

// persist writes both snapshots. Failures are swallowed: persistence
// here is best-effort caching, not a durability contract.
func (q *Queue) persist() {
	if q.saver == nil {
		return
	}
	_ = q.saver.SaveLibrary(q.library)
	_ = q.saver.SavePlayback(q.State())
}
