package add

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
)

type Add struct {
	Collection string
	Message    string

	Persistence store.Persistence
}

const layoutUS = "January 2, 2006"

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if n.Collection == "today" {
		n.Collection = time.Now().Format(layoutUS)
	}

	svc := &app.Service{Persistence: n.Persistence}
	added, err := svc.Add(ctx, n.Collection, n.Message)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(added.Collection)
	pp.Collection(n.Persistence.Notes(ctx, added.Collection)...)
	return nil
}
