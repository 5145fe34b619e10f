package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/cal"
	"tableflip.dev/tempo/pkg/store"
)

func addCal(topLevel *cobra.Command) {
	n := &cal.Cal{}

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Show the calendar",
		Example: `
tempo cal
tempo cal --view week --next 2
tempo cal --select 2026-08-27
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			n.Persistence = p
			return oo.HandleError(n.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&n.View, "view", "", "Switch to a view: month, week, or day. Persists.")
	cmd.Flags().IntVar(&n.Prev, "prev", 0, "Steps back from today.")
	cmd.Flags().IntVar(&n.Next, "next", 0, "Steps forward from today.")
	cmd.Flags().BoolVar(&n.Today, "today", false, "Jump back to today.")
	cmd.Flags().StringVar(&n.Select, "select", "", "Select a date, like 2006-01-02. Persists.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
