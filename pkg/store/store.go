package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/note"
	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/track"
)

// Persistence is the repository contract for everything tempo keeps on
// disk: note entries, the music library and playback snapshots, and
// the two calendar preferences. All Load* methods fail soft — a
// missing key or unparseable value yields the documented default,
// never an error. Save errors are returned; most callers deliberately
// discard them (persistence is best-effort caching).
type Persistence interface {
	Notes(ctx context.Context, collection string) []*note.Note
	AllNotes(ctx context.Context) []*note.Note
	Collections(ctx context.Context) []string
	StoreNote(n *note.Note) error
	DeleteNote(n *note.Note) error

	LoadLibrary() []*track.Track
	SaveLibrary(tracks []*track.Track) error
	LoadPlayback() playback.State
	SavePlayback(st playback.State) error

	LoadView() calendar.View
	SaveView(v calendar.View) error
	LoadSelected() *time.Time
	SaveSelected(d *time.Time) error

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided
// config. A nil config loads the default one.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

const (
	layoutISO = "2006-01-02"

	notesNamespace    = "notes"
	snapshotNamespace = "snapshot"
	prefNamespace     = "pref"

	keyLibrary  = snapshotNamespace + "/library"
	keyPlayback = snapshotNamespace + "/playback"
	keyView     = prefNamespace + "/calendar-view"
	keySelected = prefNamespace + "/calendar-selected"
)

// --- notes

func (p *persistence) readNote(key string) (*note.Note, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	n := &note.Note{}
	if err := json.Unmarshal(val, n); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	n.ID = pk.FileName
	return n, nil
}

func (p *persistence) Notes(ctx context.Context, collection string) []*note.Note {
	ck := toCollection(collection)
	all := make([]*note.Note, 0)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) != 2 || pk.Path[0] != notesNamespace || pk.Path[1] != ck {
			continue
		}
		n, err := p.readNote(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, n)
	}
	sortNotes(all)
	return all
}

func (p *persistence) AllNotes(ctx context.Context) []*note.Note {
	all := make([]*note.Note, 0)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) != 2 || pk.Path[0] != notesNamespace {
			continue
		}
		n, err := p.readNote(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, n)
	}
	sortNotes(all)
	return all
}

func (p *persistence) Collections(ctx context.Context) []string {
	seen := make(map[string]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) != 2 || pk.Path[0] != notesNamespace {
			continue
		}
		seen[fromCollection(pk.Path[1])] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) StoreNote(n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.d.Write(noteKey(n), data)
}

func (p *persistence) DeleteNote(n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	return p.d.Erase(noteKey(n))
}

// --- music snapshots

func (p *persistence) LoadLibrary() []*track.Track {
	val, err := p.d.Read(keyLibrary)
	if err != nil {
		return []*track.Track{}
	}
	var tracks []*track.Track
	if err := json.Unmarshal(val, &tracks); err != nil {
		return []*track.Track{}
	}
	return tracks
}

func (p *persistence) SaveLibrary(tracks []*track.Track) error {
	data, err := json.Marshal(tracks)
	if err != nil {
		return err
	}
	return p.d.Write(keyLibrary, data)
}

func (p *persistence) LoadPlayback() playback.State {
	val, err := p.d.Read(keyPlayback)
	if err != nil {
		return playback.DefaultState()
	}
	var st playback.State
	if err := json.Unmarshal(val, &st); err != nil {
		return playback.DefaultState()
	}
	if st.Queue == nil {
		st.Queue = []string{}
	}
	return st
}

func (p *persistence) SavePlayback(st playback.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return p.d.Write(keyPlayback, data)
}

// --- calendar preferences

func (p *persistence) LoadView() calendar.View {
	val, err := p.d.Read(keyView)
	if err != nil {
		return calendar.ViewMonth
	}
	var s string
	if err := json.Unmarshal(val, &s); err != nil {
		return calendar.ViewMonth
	}
	return calendar.ParseView(s)
}

func (p *persistence) SaveView(v calendar.View) error {
	data, err := json.Marshal(v.String())
	if err != nil {
		return err
	}
	return p.d.Write(keyView, data)
}

func (p *persistence) LoadSelected() *time.Time {
	val, err := p.d.Read(keySelected)
	if err != nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(val, &s); err != nil {
		return nil
	}
	if s == "" {
		return nil
	}
	d, err := time.ParseInLocation(layoutISO, s, time.Local)
	if err != nil {
		return nil
	}
	return &d
}

func (p *persistence) SaveSelected(d *time.Time) error {
	s := ""
	if d != nil {
		s = d.Format(layoutISO)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.d.Write(keySelected, data)
}

// --- helpers

func sortNotes(notes []*note.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		left := notes[i]
		right := notes[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}

// noteKey makes `notes/collection/id`.
func noteKey(n *note.Note) string {
	return fmt.Sprintf("%s/%s/%s", notesNamespace, toCollection(n.Collection), n.ID)
}

// toCollection encodes a collection name so arbitrary names stay
// filesystem-safe as directory names.
func toCollection(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func fromCollection(s string) string {
	collection, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromCollection: %s", err)
	}
	return string(collection)
}
