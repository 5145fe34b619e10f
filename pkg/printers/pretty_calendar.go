package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/calendar"
)

const weekWidth = len("Su Mo Tu We Th Fr Sa")

// Grid prints the calendar for the grid's active view. now flags
// today's cell.
func (pp *PrettyPrint) Grid(g calendar.Grid, now time.Time) {
	title := g.Title()
	tf := color.New(color.FgWhite, color.Italic)
	mid := (weekWidth - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Printf("%s%s\n", strings.Repeat(" ", mid), title)

	h := color.New(color.Faint)
	_, _ = h.Println("Su Mo Tu We Th Fr Sa")

	cells := g.Cells(now)
	if g.View == calendar.ViewDay {
		pp.printCell(cells[0])
		fmt.Print("\n")
		return
	}

	// Day views aside, the first cell is always a Sunday, so rows
	// break cleanly every seven cells.
	for i, c := range cells {
		pp.printCell(c)
		if (i+1)%7 == 0 {
			fmt.Print("\n")
		} else {
			fmt.Print(" ")
		}
	}
	fmt.Print("\n")
}

func (pp *PrettyPrint) printCell(c calendar.Cell) {
	printer := color.New(color.FgHiWhite)
	switch {
	case c.Selected:
		printer = color.New(color.BgBlue, color.FgBlack)
	case c.Today:
		printer = color.New(color.Bold, color.Underline)
	case c.Muted:
		printer = color.New(color.Faint)
	}
	_, _ = printer.Printf("%2d", c.Date.Day())
}
