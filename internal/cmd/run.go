package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/offlinefirst/sideswipe/internal/buildinfo"
	"github.com/offlinefirst/sideswipe/internal/menu"
	"github.com/offlinefirst/sideswipe/pkg/config"
	"github.com/offlinefirst/sideswipe/pkg/events"
	"github.com/offlinefirst/sideswipe/pkg/permissions"
	"github.com/offlinefirst/sideswipe/pkg/prefs"
)

type runOptions struct {
	menu      bool
	wait      bool
	loopback  bool
	ephemeral bool
}

// nativePlatform and runMenu are swapped in tests.
var (
	nativePlatform = events.NativePlatform
	runMenu        = menu.Run
)

func (rc *RootCommand) newRunCommand() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Intercept side buttons until interrupted",
		Long: `Register the systemwide event tap and replace back/forward button presses
with navigation swipes until interrupted.

Without --wait a missing permission is reported and the command exits. With
--wait it keeps retrying at permissions.poll_interval until the permission is
granted. --menu shows an interactive control menu in the terminal.
Changes made with the ignore and reverse commands reach a running daemon
through its preferences file.

--loopback is an idle smoke mode: nothing sends events to the in-process
platform, so only startup and shutdown are exercised.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := rc.ensureAppContext()
			if err != nil {
				return err
			}
			return runDaemon(cmd.Context(), app, opts, rc.stdin, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&opts.menu, "menu", false, "show the interactive control menu")
	cmd.Flags().BoolVar(&opts.wait, "wait", false, "keep retrying until input permissions are granted")
	cmd.Flags().BoolVar(&opts.loopback, "loopback", false, "idle smoke mode: use an in-process platform that receives no input")
	cmd.Flags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep preferences in memory; changes are lost on exit")
	return cmd
}

func runDaemon(ctx context.Context, app *AppContext, opts runOptions, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := app.Logger

	var (
		store *prefs.Store
		path  = "<memory>"
	)
	if opts.ephemeral {
		store = prefs.Open(prefs.NewMemoryBackend(), logger)
	} else {
		var err error
		if store, path, err = openPreferences(app); err != nil {
			return fmt.Errorf("open preferences: %w", err)
		}
		if watcher, err := prefs.Watch(path, store, logger); err != nil {
			logger.Warn("preferences hot reload disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}
	logger.Info("preferences loaded", "path", path, "ignored", len(store.Ignored()), "reversed", store.IsReversed())

	platform := nativePlatform()
	if opts.loopback {
		platform = events.NewLoopback().Platform()
	}
	env := events.DetectEnvironment(platform)
	logger.Info("event platform detected",
		"provider", env.Provider,
		"available", env.Available,
		"accessibility", env.Accessibility.StatusString(),
		"input_monitoring", env.InputMonitoring.StatusString(),
	)

	manager, err := events.NewManager(events.Options{
		Hook:        platform.Hook,
		Injector:    platform.Injector,
		Resolver:    platform.Resolver,
		Preferences: store,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if !env.Available && app.Config.Permissions.Prompt && platform.Access != nil {
		logger.Info("requesting input permissions")
		platform.Access.Request()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.Config.Source != config.SourceDefaults {
		watcher, err := config.Watch(app.Config, app.Level, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", "error", err)
		} else {
			watcher.OnChange(func(cfg config.Config) {
				logger.Debug("configuration reloaded", "source", cfg.Source)
			})
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if opts.wait {
		g.Go(func() error {
			err := manager.StartWhenPermitted(gctx, app.Config.Permissions.PollInterval)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else if err := manager.Start(); err != nil {
		logSetupFailure(app, err)
		if !opts.menu {
			return err
		}
	}

	if opts.menu {
		self, _ := frontmost(platform.Resolver)
		g.Go(func() error {
			defer cancel()
			return runMenu(gctx, menu.Options{
				Engine:      manager,
				Preferences: store,
				Resolver:    platform.Resolver,
				Self:        self,
				Version:     buildinfo.Version(),
			}, stdin, stdout)
		})
	} else {
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down")
			return nil
		})
	}

	return g.Wait()
}

func logSetupFailure(app *AppContext, err error) {
	switch {
	case errors.Is(err, events.ErrUnsupportedPlatform):
		app.Logger.Error("event interception unavailable", "error", err)
	case errors.Is(err, events.ErrSetupFailed):
		app.Logger.Error("event tap refused; grant Accessibility and Input Monitoring, then retry",
			"error", err,
			"settings", permissions.SettingsURL,
		)
	default:
		app.Logger.Error("event tap failed", "error", err)
	}
}

func frontmost(resolver events.ForegroundResolver) (events.Application, bool) {
	if resolver == nil {
		return events.Application{}, false
	}
	return resolver.Frontmost()
}
