package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/seldo/seldo/internal/db/controller/todo"
	"github.com/seldo/seldo/internal/tracker"
)

func newTodoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage todo items",
	}

	cmd.AddCommand(
		newTodoAddCommand(),
		newTodoListCommand(),
		newTodoShowCommand(),
		newTodoEditCommand(),
		newTodoDeleteCommand(),
	)

	return cmd
}

func newTodoAddCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add SUMMARY",
		Short: "Add a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var desc *string
			if cmd.Flags().Changed("description") && description != "" {
				desc = &description
			}

			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				td, err := t.AddTodo(ctx, args[0], desc)
				if err != nil {
					return err
				}

				printOK(cmd.OutOrStdout(), "todo %d added", td.ID)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "longer description")

	return cmd
}

func newTodoListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				todos, err := t.Todos(ctx)
				if err != nil {
					return err
				}

				for _, td := range todos {
					printTodoLine(cmd.OutOrStdout(), td)
				}

				return nil
			})
		},
	}
}

func newTodoShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				td, err := t.Todo(ctx, id)
				if err != nil {
					return err
				}

				printTodo(cmd.OutOrStdout(), td)

				return nil
			})
		},
	}
}

func newTodoEditCommand() *cobra.Command {
	var summary, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the summary or description of a todo",
		Long:  "Change the summary or description of a todo. An empty --description clears it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var c todo.Changes
			if cmd.Flags().Changed("summary") {
				c.Summary = &summary
			}

			if cmd.Flags().Changed("description") {
				c.Description = &description
			}

			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				td, err := t.EditTodo(ctx, id, c)
				if err != nil {
					return err
				}

				printOK(cmd.OutOrStdout(), "todo %d updated", td.ID)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&summary, "summary", "s", "", "new summary")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")

	return cmd
}

func newTodoDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withTracker(cmd, func(ctx context.Context, t *tracker.Tracker) error {
				if err := t.DeleteTodo(ctx, id); err != nil {
					return err
				}

				printOK(cmd.OutOrStdout(), "todo %d deleted", id)

				return nil
			})
		},
	}
}
