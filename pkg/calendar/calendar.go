// Package calendar models the calendar grid: an anchor date, an
// optional selected date, and a view mode that shapes the visible
// cells. The model is pure; persistence of the view and selection
// preferences is the caller's concern.
package calendar

import (
	"time"

	"tableflip.dev/tempo/pkg/timeutil"
)

// View selects the shape of the visible grid.
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

// ParseView maps a stored preference string to a View. Anything
// unrecognized falls back to ViewMonth.
func ParseView(s string) View {
	switch View(s) {
	case ViewMonth, ViewWeek, ViewDay:
		return View(s)
	default:
		return ViewMonth
	}
}

func (v View) String() string {
	return string(v)
}

// Cell is a single day of the grid. Muted marks padding days that
// belong to an adjacent month; they are still selectable.
type Cell struct {
	Date     time.Time
	Muted    bool
	Today    bool
	Selected bool
}

// Grid is the calendar model. Operations return an updated copy so a
// rendering layer can treat each state as an immutable snapshot.
type Grid struct {
	Current  time.Time
	Selected *time.Time
	View     View
}

// MonthCells is the fixed size of the month grid: six full weeks, so
// the layout covers every month no matter which weekday it starts on.
const MonthCells = 42

// New returns a Grid anchored on now at midnight, in month view.
func New(now time.Time) Grid {
	return Grid{
		Current: timeutil.Midnight(now),
		View:    ViewMonth,
	}
}

// GoToday re-anchors the grid on today.
func (g Grid) GoToday(now time.Time) Grid {
	g.Current = timeutil.Midnight(now)
	return g
}

// GoPrev shifts the anchor back by one unit of the active view.
func (g Grid) GoPrev() Grid {
	return g.shift(-1)
}

// GoNext shifts the anchor forward by one unit of the active view.
func (g Grid) GoNext() Grid {
	return g.shift(1)
}

// shift steps the anchor. Month steps use AddDate semantics: stepping
// from Jan 31 lands on Mar 2/3 going forward and back again will not
// restore Jan 31. Week and day steps always round-trip.
func (g Grid) shift(dir int) Grid {
	switch g.View {
	case ViewWeek:
		g.Current = g.Current.AddDate(0, 0, 7*dir)
	case ViewDay:
		g.Current = g.Current.AddDate(0, 0, dir)
	default:
		g.Current = g.Current.AddDate(0, dir, 0)
	}
	return g
}

// SetView switches the grid shape. The anchor and selection are left
// alone.
func (g Grid) SetView(v View) Grid {
	g.View = v
	return g
}

// SelectDate marks d, normalized to midnight, as the selected date.
func (g Grid) SelectDate(d time.Time) Grid {
	sel := timeutil.Midnight(d)
	g.Selected = &sel
	return g
}

// ClearSelection drops the selected date.
func (g Grid) ClearSelection() Grid {
	g.Selected = nil
	return g
}

// Start returns the date of the grid's first cell: the Sunday on or
// before the 1st of the anchor's month (month view), the Sunday on or
// before the anchor (week view), or the anchor itself (day view).
func (g Grid) Start() time.Time {
	switch g.View {
	case ViewWeek:
		return timeutil.StartOfWeek(g.Current)
	case ViewDay:
		return timeutil.Midnight(g.Current)
	default:
		return timeutil.StartOfWeek(timeutil.StartOfMonth(g.Current))
	}
}

// Len returns the cell count for the active view.
func (g Grid) Len() int {
	switch g.View {
	case ViewWeek:
		return 7
	case ViewDay:
		return 1
	default:
		return MonthCells
	}
}

// Cells emits the visible days in order. now is used to flag today's
// cell.
func (g Grid) Cells(now time.Time) []Cell {
	start := g.Start()
	count := g.Len()

	cells := make([]Cell, 0, count)
	for i := 0; i < count; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{
			Date:     d,
			Muted:    g.View == ViewMonth && !timeutil.SameMonth(d, g.Current),
			Today:    timeutil.SameDay(d, now),
			Selected: g.Selected != nil && timeutil.SameDay(d, *g.Selected),
		})
	}
	return cells
}

// Title renders the heading for the visible grid.
func (g Grid) Title() string {
	switch g.View {
	case ViewWeek:
		start := g.Start()
		end := start.AddDate(0, 0, 6)
		if timeutil.SameMonth(start, end) {
			return start.Format("January 2") + end.Format(" - 2, 2006")
		}
		return start.Format("January 2") + end.Format(" - January 2, 2006")
	case ViewDay:
		return g.Current.Format("Monday, January 2, 2006")
	default:
		return g.Current.Format("January 2006")
	}
}
