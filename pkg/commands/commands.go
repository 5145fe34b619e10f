package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tempo/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tempo",
		Short: base.Wrap80("Notes, calendar, and a local music player on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addNote(topLevel)
	addCal(topLevel)
	addMusic(topLevel)
	addVersion(topLevel)
}
