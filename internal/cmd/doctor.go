package cmd

import (
	"fmt"
	"io"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cobra"

	"github.com/offlinefirst/sideswipe/pkg/events"
	"github.com/offlinefirst/sideswipe/pkg/permissions"
)

// hostInfo is swapped in tests.
var hostInfo = host.Info

func (rc *RootCommand) newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report platform support, permissions and the focused application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := rc.ensureAppContext()
			if err != nil {
				return err
			}
			return runDoctor(app, nativePlatform(), cmd.OutOrStdout())
		},
	}
}

func runDoctor(app *AppContext, platform events.Platform, stdout io.Writer) error {
	fmt.Fprintf(stdout, "sideswipe %s\n", versionString())

	if info, err := hostInfo(); err != nil {
		app.Logger.Debug("host info unavailable", "error", err)
	} else {
		fmt.Fprintf(stdout, "Host: %s %s (%s, kernel %s)\n", info.Platform, info.PlatformVersion, info.KernelArch, info.KernelVersion)
	}

	env := events.DetectEnvironment(platform)
	fmt.Fprintf(stdout, "Event platform: %s (available=%t)\n", env.Provider, env.Available)
	if env.Message != "" {
		fmt.Fprintf(stdout, "  %s\n", env.Message)
	}
	printProbe(stdout, "Accessibility", env.Accessibility)
	printProbe(stdout, "Input Monitoring", env.InputMonitoring)
	if env.Guidance != "" {
		fmt.Fprintf(stdout, "Guidance: %s\n", env.Guidance)
	}

	if focused, ok := frontmost(platform.Resolver); ok {
		fmt.Fprintf(stdout, "Frontmost application: %s (%s)\n", focused.DisplayName(), focused.Identifier)
	} else {
		fmt.Fprintln(stdout, "Frontmost application: unknown")
	}

	store, path, err := openPreferences(app)
	if err != nil {
		fmt.Fprintf(stdout, "Preferences: %s (unreadable: %v)\n", path, err)
		return nil
	}
	fmt.Fprintf(stdout, "Preferences: %s\n", path)
	fmt.Fprintf(stdout, "  ignored applications: %d\n", len(store.Ignored()))
	fmt.Fprintf(stdout, "  reverse buttons: %t\n", store.IsReversed())
	return nil
}

func printProbe(w io.Writer, name string, probe permissions.ProbeResult) {
	fmt.Fprintf(w, "%s: %s", name, probe.StatusString())
	if probe.Message != "" {
		fmt.Fprintf(w, " (%s)", probe.Message)
	}
	fmt.Fprintln(w)
}
