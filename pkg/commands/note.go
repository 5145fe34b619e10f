package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/add"
	"tableflip.dev/tempo/pkg/runner/get"
	"tableflip.dev/tempo/pkg/runner/rm"
	"tableflip.dev/tempo/pkg/runner/strike"
	"tableflip.dev/tempo/pkg/store"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Work with notes",
		Example: `
tempo note add this is a note
tempo note get --collection groceries
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoteAdd(cmd)
	addNoteGet(cmd)
	addNoteStrike(cmd)
	addNoteRm(cmd)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}

	cmd := &cobra.Command{
		Use:   "add <message>",
		Short: "Add a note to a collection",
		Example: `
tempo note add water the plants
tempo note add --collection groceries oat milk
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("a note needs a message")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := add.Add{
				Collection:  co.Collection,
				Message:     strings.Join(args, " "),
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddCollectionArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addNoteGet(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get notes, a collection at a time",
		Example: `
tempo note get
tempo note get --collection groceries
tempo note get --all
tempo note get --list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := get.Get{
				ShowID:          io.ShowID,
				Collection:      co.Collection,
				All:             co.All,
				ListCollections: co.List,
				Persistence:     p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddCollectionArgs(cmd, co)
	options.AddAllCollectionsArg(cmd, co)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNoteStrike(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "strike <id>",
		Short: "Toggle a note's done marker",
		Example: `
tempo note strike 171dff69-f8b9-9dca-0000-000000000000
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := strike.Strike{
				ID:          args[0],
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addNoteRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := rm.Remove{
				ID:          args[0],
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
