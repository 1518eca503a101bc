package app

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seldo/seldo/internal/config"
)

// ErrUnknownFormat is returned by config show for an unsupported --format.
var ErrUnknownFormat = errors.New("unknown format")

var dumpers = map[string]func(*config.Store) (string, error){ //nolint:gochecknoglobals
	"toml": config.DumpConfig,
	"json": config.DumpConfigJSON,
	"yaml": config.DumpConfigYAML,
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dump, ok := dumpers[format]
			if !ok {
				return errors.Wrap(ErrUnknownFormat, format)
			}

			out, err := dump(config.New())
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err //nolint:wrapcheck
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, json or yaml")

	return cmd
}
