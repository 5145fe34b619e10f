package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tempo/pkg/playback"
	"tableflip.dev/tempo/pkg/timeutil"
	"tableflip.dev/tempo/pkg/track"
)

// Tracks prints the library as a table, marking queue membership and
// the current track.
func (pp *PrettyPrint) Tracks(tracks []*track.Track, st playback.State) {
	if len(tracks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" no tracks imported")
		return
	}

	queued := make(map[string]int, len(st.Queue))
	for i, id := range st.Queue {
		queued[id] = i + 1
	}

	bold := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold(""), bold("#"), bold("Track"), bold("File"), bold("Length"), bold("ID"))
	for _, t := range tracks {
		marker := " "
		if t.ID == st.CurrentID {
			marker = ">"
		}
		pos := ""
		if at, ok := queued[t.ID]; ok {
			pos = fmt.Sprintf("%d", at)
		}
		tbl.AddRow(marker, pos, t.Name, t.FileName, timeutil.FormatSeconds(t.Duration), t.ID)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// NowPlaying prints a one-line summary of the playback state.
func (pp *PrettyPrint) NowPlaying(current *track.Track, st playback.State) {
	f := color.New(color.Faint)
	if current == nil {
		_, _ = f.Println("nothing queued")
		return
	}
	b := color.New(color.Bold)
	_, _ = b.Print(current.Name)
	_, _ = f.Printf("  %s / %s  vol %d%%  queue %d\n",
		timeutil.FormatSeconds(st.Position),
		timeutil.FormatSeconds(current.Duration),
		int(st.Volume*100),
		len(st.Queue))
}
