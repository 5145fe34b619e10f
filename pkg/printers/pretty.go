package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/note"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca-0000-000000000000  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

func (pp *PrettyPrint) Collection(notes ...*note.Note) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	d := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, n := range notes {
		if pp.ShowID {
			_, _ = y.Print(n.ID)
			if pad := len(spacing) - len(n.ID); pad > 0 {
				_, _ = y.Print(strings.Repeat(" ", pad))
			}
		}
		printer := t
		if n.Done {
			printer = d
		}
		_, _ = printer.Printf("%s %s\n", n.Marker(), n.Message)
	}
	_, _ = t.Println("")
}
