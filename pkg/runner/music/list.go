package music

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
)

// List prints the library and the playback summary.
type List struct {
	Persistence store.Persistence
}

func (n *List) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not list, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	q, err := svc.Player(playback.NopOutput{})
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NowPlaying(q.Current(), q.State())
	pp.NewLine()
	pp.Tracks(q.Library(), q.State())
	return nil
}
