package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/offlinefirst/sideswipe/internal/buildinfo"
	"github.com/offlinefirst/sideswipe/pkg/config"
	"github.com/offlinefirst/sideswipe/pkg/logging"
	"github.com/offlinefirst/sideswipe/pkg/prefs"
)

// AppContext exposes lazily initialised configuration and logging facilities.
type AppContext struct {
	Config config.Config
	Logger *slog.Logger
	Level  *slog.LevelVar
}

// RootCommand owns the global flags and the lazily built AppContext shared by
// every subcommand.
type RootCommand struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	appCtx     *AppContext
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCommand constructs the CLI bound to the process's standard streams.
func NewRootCommand() *RootCommand {
	return &RootCommand{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Execute parses args and dispatches to a subcommand. ctx is cancelled by the
// caller on SIGINT/SIGTERM.
func (rc *RootCommand) Execute(ctx context.Context, args []string) error {
	root := rc.command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (rc *RootCommand) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "sideswipe",
		Short: "Turn side mouse buttons into trackpad navigation swipes",
		Long: `sideswipe intercepts the back and forward buttons of a multi-button mouse
and replaces each press with a synthetic horizontal swipe, so applications
that only understand trackpad gestures navigate back and forward.

Applications can be excluded individually and the two buttons can be swapped.
Intercepting input on macOS needs Accessibility and Input Monitoring
permission.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(rc.stdin)
	root.SetOut(rc.stdout)
	root.SetErr(rc.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&rc.configPath, "config", "", "path to config file (default: ./config.yaml if present)")
	flags.StringVar(&rc.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flags.StringVar(&rc.logFormat, "log-format", "", "override log output format (json, console)")

	root.AddCommand(
		rc.newRunCommand(),
		rc.newIgnoreCommand(),
		rc.newReverseCommand(),
		rc.newDoctorCommand(),
		rc.newConfigCommand(),
		rc.newVersionCommand(),
	)
	return root
}

func (rc *RootCommand) ensureAppContext() (*AppContext, error) {
	if rc.appCtx != nil {
		return rc.appCtx, nil
	}

	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return nil, err
	}

	if rc.logLevel != "" {
		lvl, err := config.NormalizeLogLevel(rc.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.Logging.Level = lvl
	}
	if rc.logFormat != "" {
		format, err := config.NormalizeFormat(rc.logFormat)
		if err != nil {
			return nil, err
		}
		cfg.Logging.Format = format
	}

	logger, level, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: rc.stderr,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded", "source", cfg.Source, "preferences", cfg.Preferences.Path)

	rc.appCtx = &AppContext{Config: cfg, Logger: logger, Level: level}
	return rc.appCtx, nil
}

// preferencesPath is swapped in tests.
var preferencesPath = prefs.DefaultPath

// openPreferences loads the persisted policy from the configured file.
func openPreferences(app *AppContext) (*prefs.Store, string, error) {
	path := app.Config.Preferences.Path
	if path == "" {
		var err error
		if path, err = preferencesPath(); err != nil {
			return nil, "", err
		}
	}
	backend, err := prefs.OpenFileBackend(path)
	if err != nil {
		return nil, path, err
	}
	return prefs.Open(backend, app.Logger), path, nil
}

func versionString() string {
	v := buildinfo.Version()
	if rev := buildinfo.Revision(); rev != "" {
		v += " " + rev
	}
	return fmt.Sprintf("%s (%s/%s)", v, runtimeVersion(), runtimeGOOS())
}

// runtimeVersion is extracted for testability.
var runtimeVersion = func() string { return runtime.Version() }

// runtimeGOOS is extracted for testability.
var runtimeGOOS = func() string { return runtime.GOOS }
