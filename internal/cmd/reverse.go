package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (rc *RootCommand) newReverseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Show whether the back and forward buttons are swapped",
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
			printReversed(cmd.OutOrStdout(), store.IsReversed())
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Swap the directions of the back and forward buttons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := rc.ensureAppContext()
			if err != nil {
				return err
			}
			store, path, err := openPreferences(app)
			if err != nil {
				return err
			}
			reversed := store.ToggleReversed()
			app.Logger.Info("button reversal toggled", "reversed", reversed, "preferences", path)
			printReversed(cmd.OutOrStdout(), reversed)
			return nil
		},
	})
	return cmd
}

func printReversed(w io.Writer, reversed bool) {
	if reversed {
		fmt.Fprintln(w, "reversed: back swipes right, forward swipes left")
		return
	}
	fmt.Fprintln(w, "normal: back swipes left, forward swipes right")
}
