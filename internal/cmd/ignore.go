package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (rc *RootCommand) newIgnoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Manage applications whose buttons are left alone",
		Long: `Applications on the ignore list receive the raw side-button events.
Identifiers are macOS bundle identifiers (for example com.apple.Safari).

A running daemon reads the list at startup; restart it after editing here.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print ignored application identifiers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := rc.ensureAppContext()
				if err != nil {
					return err
				}
				store, _, err := openPreferences(app)
				if err != nil {
					return err
				}
				for _, id := range store.Ignored() {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <identifier>",
			Short: "Stop intercepting buttons for an application",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := rc.ensureAppContext()
				if err != nil {
					return err
				}
				store, path, err := openPreferences(app)
				if err != nil {
					return err
				}
				store.AddIgnored(args[0])
				app.Logger.Info("application ignored", "identifier", args[0], "preferences", path)
				fmt.Fprintf(cmd.OutOrStdout(), "ignoring %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <identifier>",
			Short: "Resume intercepting buttons for an application",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := rc.ensureAppContext()
				if err != nil {
					return err
				}
				store, path, err := openPreferences(app)
				if err != nil {
					return err
				}
				store.RemoveIgnored(args[0])
				app.Logger.Info("application no longer ignored", "identifier", args[0], "preferences", path)
				fmt.Fprintf(cmd.OutOrStdout(), "intercepting %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
