package get

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
)

type Get struct {
	ShowID          bool
	Collection      string
	All             bool
	ListCollections bool

	Persistence store.Persistence
}

const layoutUS = "January 2, 2006"

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}

	if n.ListCollections {
		pp.Title("Collections")
		for _, c := range n.Persistence.Collections(ctx) {
			pp.TitleWithCount(c, len(n.Persistence.Notes(ctx, c)))
		}
		return nil
	}

	if n.All {
		for _, c := range n.Persistence.Collections(ctx) {
			notes := n.Persistence.Notes(ctx, c)
			pp.TitleWithCount(c, len(notes))
			pp.Collection(notes...)
		}
		return nil
	}

	collection := n.Collection
	if collection == "today" {
		collection = time.Now().Format(layoutUS)
	}

	notes := n.Persistence.Notes(ctx, collection)
	pp.TitleWithCount(collection, len(notes))
	pp.Collection(notes...)
	return nil
}
