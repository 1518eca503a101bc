package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/seldo/seldo/internal/tracker"
)

func newTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(
		newTagAddCommand(),
		newTagRenameCommand(),
		newTagShowCommand(),
		newTagListCommand(),
	)

	return cmd
}

func newTagAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a tag, printing the id of an existing one with that name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				id, err := t.AddTag(ctx, args[0])
				if err != nil {
					return err
				}

				printOK(cmd.OutOrStdout(), "tag %d %s", id, args[0])

				return nil
			})
		},
	}
}

func newTagRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				if err := t.RenameTag(ctx, id, args[1]); err != nil {
					return err
				}

				printOK(cmd.OutOrStdout(), "tag %d renamed to %s", id, args[1])

				return nil
			})
		},
	}
}

func newTagShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show the tag with the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				tg, err := t.TagByName(ctx, args[0])
				if err != nil {
					return err
				}

				printTag(cmd.OutOrStdout(), *tg)

				return nil
			})
		},
	}
}

func newTagListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				tags, err := t.Tags(ctx)
				if err != nil {
					return err
				}

				for _, tg := range tags {
					printTag(cmd.OutOrStdout(), tg)
				}

				return nil
			})
		},
	}
}
