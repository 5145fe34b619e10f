package rm

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
)

type Remove struct {
	ID          string
	Persistence store.Persistence
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not remove, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	removed, err := svc.Remove(ctx, n.ID)
	if err != nil {
		return err
	}

	fmt.Printf("removed %q from %s\n", removed.Message, removed.Collection)

	pp := printers.PrettyPrint{ShowID: true}
	pp.Title(removed.Collection)
	pp.Collection(n.Persistence.Notes(ctx, removed.Collection)...)
	return nil
}
