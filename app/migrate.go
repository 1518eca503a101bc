package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/seldo/seldo/internal/tracker"
)

func newMigrateCommand() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				if status {
					return printStatus(ctx, cmd, t)
				}

				applied := t.Migrated()
				if len(applied) == 0 {
					printOK(cmd.OutOrStdout(), "no pending migrations")
					return nil
				}

				for _, id := range applied {
					printOK(cmd.OutOrStdout(), "applied migration %d", id)
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "list every recorded migration")

	return cmd
}

func printStatus(ctx context.Context, cmd *cobra.Command, t *tracker.Tracker) error {
	recorded, err := t.Applied(ctx)
	if err != nil {
		return err
	}

	for _, id := range recorded {
		printOK(cmd.OutOrStdout(), "migration %d recorded", id)
	}

	return nil
}
