package cal

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/printers"
	"tableflip.dev/tempo/pkg/store"
)

// Cal renders the calendar grid and updates the persisted view and
// selection preferences. Navigation flags shift the anchor relative
// to today; the anchor itself is not persisted.
type Cal struct {
	View   string // "", "month", "week", or "day"
	Prev   int    // steps back from today
	Next   int    // steps forward from today
	Today  bool
	Select string // ISO date to select, "" to leave alone

	Persistence store.Persistence
}

const layoutISO = "2006-01-02"

func (n *Cal) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show calendar, no persistence")
	}

	svc := &app.Service{Persistence: n.Persistence}
	now := time.Now()
	g := svc.Grid(now)

	if n.View != "" {
		g = svc.SetView(g, calendar.ParseView(n.View))
	}
	if n.Today {
		g = g.GoToday(now)
	}
	for i := 0; i < n.Prev; i++ {
		g = g.GoPrev()
	}
	for i := 0; i < n.Next; i++ {
		g = g.GoNext()
	}
	if n.Select != "" {
		d, err := time.ParseInLocation(layoutISO, n.Select, time.Local)
		if err != nil {
			return errors.New("select date must look like 2006-01-02")
		}
		g = svc.Select(g, d)
	}

	pp := printers.PrettyPrint{}
	pp.Grid(g, now)
	return nil
}
