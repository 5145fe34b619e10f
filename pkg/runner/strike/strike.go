package strike

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
)

type Strike struct {
	ID          string
	Persistence store.Persistence
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not strike, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	struck, err := svc.Strike(ctx, n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Title(struck.Collection)
	pp.Collection(n.Persistence.Notes(ctx, struck.Collection)...)
	return nil
}
