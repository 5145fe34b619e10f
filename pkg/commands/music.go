package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/music"
	"tableflip.dev/tempo/pkg/store"
)

func addMusic(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "music",
		Short: "Manage the library and playback queue",
		Example: `
tempo music import ~/Music/*.mp3
tempo music list
tempo music play
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMusicImport(cmd)
	addMusicList(cmd)
	addMusicControl(cmd, "play", "Play a track, or resume the current one",
		"tempo music play\ntempo music play <id>", music.ActionPlay, true)
	addMusicControl(cmd, "next", "Skip to the next track in the queue",
		"tempo music next", music.ActionNext, false)
	addMusicControl(cmd, "prev", "Skip to the previous track in the queue",
		"tempo music prev", music.ActionPrev, false)
	addMusicRm(cmd)
	addMusicSeek(cmd)
	addMusicVolume(cmd)

	topLevel.AddCommand(cmd)
}

func addMusicImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import mp3 files into the library",
		Example: `
tempo music import song.mp3
tempo music import ~/Music/*.mp3
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n := music.Import{Paths: args, Persistence: p}
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addMusicList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the library and queue",
		Example: `
tempo music list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n := music.List{Persistence: p}
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

// addMusicControl covers the actions that take at most a track id.
func addMusicControl(topLevel *cobra.Command, use, short, example string, action music.Action, takesID bool) {
	args := cobra.NoArgs
	if takesID {
		use += " [id]"
		args = cobra.MaximumNArgs(1)
	}

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: "\n" + example + "\n",
		Args:    args,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n := music.Control{Action: action, Persistence: p}
			if len(args) > 0 {
				n.ID = args[0]
			}
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addMusicRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a track from the library and queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n := music.Control{Action: music.ActionRemove, ID: args[0], Persistence: p}
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addMusicSeek(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "seek <seconds>",
		Short: "Seek within the current track",
		Example: `
tempo music seek 42
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n := music.Control{Action: music.ActionSeek, Value: v, Persistence: p}
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addMusicVolume(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "volume <0..1>",
		Short: "Set the playback volume",
		Example: `
tempo music volume 0.5
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n := music.Control{Action: music.ActionVolume, Value: v, Persistence: p}
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
