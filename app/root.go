// Package app implements the command line interface.
package app

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seldo/seldo/internal/config"
	"github.com/seldo/seldo/internal/db/storage"
	"github.com/seldo/seldo/internal/logger"
	"github.com/seldo/seldo/internal/tracker"
)

const (
	flagConfig       = "config"
	flagDatabaseFile = "database-file"
	flagLogLevel     = "log-level"
)

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{ //nolint:gochecknoglobals
	flagDatabaseFile: config.KeyDatabaseFile,
	flagLogLevel:     config.KeyLogLevel,
}

// NewRootCommand builds the command tree writing its output to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "seldo is a small personal task tracker",
		Long: `seldo keeps tags and todo items in a local SQLite database
and applies schema migrations on start.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()

			if err := cfg.Load(config.LoadOptions{
				ConfigFile: configFile,
				Flags:      cmd.Flags(),
				FlagKeys:   flagKeys,
			}); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return logger.Init(cfg.Log())
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(out)

	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, flagConfig, "", "path to a toml, yaml or json config file")
	pf.String(flagDatabaseFile, config.DefaultDatabaseFile, "SQLite database file, :memory: for a throwaway store")
	pf.String(flagLogLevel, "warn", "log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		newTagCommand(),
		newTodoCommand(),
		newMigrateCommand(),
		newConfigCommand(),
	)

	return cmd
}

// Execute runs the root command and closes the database afterwards.
func Execute() error {
	cmd := NewRootCommand(os.Stdout)

	err := cmd.Execute()
	if serr := storage.Shutdown(); err == nil {
		err = serr
	}

	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}

	return err
}

// withTracker opens a tracker for the loaded configuration, runs fn and
// releases the tracker again.
func withTracker(cmd *cobra.Command, fn func(ctx context.Context, t *tracker.Tracker) error) (err error) {
	ctx := cmd.Context()

	t, err := tracker.New(ctx, config.New())
	if err != nil {
		return err
	}

	defer func() {
		if cerr := t.Close(); err == nil {
			err = cerr
		}
	}()

	return fn(ctx, t)
}
