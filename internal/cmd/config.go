package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (rc *RootCommand) newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := rc.ensureAppContext()
			if err != nil {
				return err
			}
			out, err := app.Config.YAML()
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", app.Config.Source, out)
			return nil
		},
	}
}
