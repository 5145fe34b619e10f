package music

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
)

// Action names a queue mutation performed against persisted state.
// The one-shot CLI runs with no audio device attached; a running
// `tempo ui` notices the snapshot change through the store watcher.
type Action string

const (
	ActionPlay   Action = "play"
	ActionNext   Action = "next"
	ActionPrev   Action = "prev"
	ActionRemove Action = "rm"
	ActionSeek   Action = "seek"
	ActionVolume Action = "volume"
)

// Control applies a single queue action.
type Control struct {
	Action Action
	ID     string  // play, rm
	Value  float64 // seek (seconds), volume (0..1)

	Persistence store.Persistence
}

func (n *Control) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not control playback, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	q, err := svc.Player(playback.NopOutput{})
	if err != nil {
		return err
	}

	switch n.Action {
	case ActionPlay:
		id := n.ID
		if id == "" {
			if cur := q.Current(); cur != nil {
				id = cur.ID
			}
		}
		if id == "" {
			return errors.New("nothing to play, the queue is empty")
		}
		if q.Find(id) == nil {
			return fmt.Errorf("no track with id %q", id)
		}
		q.Play(id)
	case ActionNext:
		q.Next()
	case ActionPrev:
		q.Prev()
	case ActionRemove:
		if q.Find(n.ID) == nil {
			return fmt.Errorf("no track with id %q", n.ID)
		}
		q.Remove(n.ID)
	case ActionSeek:
		q.Seek(n.Value)
	case ActionVolume:
		q.SetVolume(n.Value)
	default:
		return fmt.Errorf("unknown action %q", n.Action)
	}

	pp := printers.PrettyPrint{}
	pp.NowPlaying(q.Current(), q.State())
	return nil
}
