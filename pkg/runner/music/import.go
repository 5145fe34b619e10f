package music

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/track"
)

// Import adds mp3 files to the library. Non-mp3 files are skipped and
// reported as one aggregate count.
type Import struct {
	Paths       []string
	Persistence store.Persistence
}

func (n *Import) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	if len(n.Paths) == 0 {
		return errors.New("nothing to import")
	}

	files, err := track.ReadFiles(n.Paths)
	if err != nil {
		return err
	}

	svc := &app.Service{Persistence: n.Persistence}
	q, err := svc.Player(playback.NopOutput{})
	if err != nil {
		return err
	}

	added, rejected := q.Import(files)
	if rejected > 0 {
		fmt.Printf("skipped %d file(s): only .mp3 is supported\n", rejected)
	}
	for _, t := range added {
		fmt.Printf("imported %s (%s)\n", t.Name, t.ID)
	}

	pp := printers.PrettyPrint{}
	pp.Tracks(q.Library(), q.State())
	return nil
}
