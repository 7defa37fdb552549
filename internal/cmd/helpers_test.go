package cmd

import (
	"io"
	"log/slog"

	"github.com/offlinefirst/sideswipe/pkg/config"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func configWithoutPrefsPath() config.Config {
	cfg := config.Default()
	cfg.Preferences.Path = ""
	return cfg
}
