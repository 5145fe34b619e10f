package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/ui"
	"tableflip.dev/tempo/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the text-based user interface",
		Example: `
tempo ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
