package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher reloads a file-backed configuration when it changes on disk and
// applies the new log level to a live slog.LevelVar. Other settings are
// reported to OnChange callbacks; the running engine does not re-read them.
type Watcher struct {
	watched *viper.Viper
	level   *slog.LevelVar
	logger  *slog.Logger

	mu        sync.Mutex
	current   Config
	callbacks []func(Config)
}

// Watch starts watching cfg.Source. It fails for configurations that were
// not read from a file.
func Watch(cfg Config, level *slog.LevelVar, logger *slog.Logger) (*Watcher, error) {
	if cfg.Source == "" || cfg.Source == SourceDefaults {
		return nil, errors.New("configuration was not loaded from a file")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	v := newViper()
	v.SetConfigFile(cfg.Source)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %q: %w", cfg.Source, err)
	}

	w := &Watcher{watched: v, level: level, logger: logger, current: cfg}
	v.OnConfigChange(func(e fsnotify.Event) {
		w.logger.Debug("config change detected", "op", e.Op.String(), "file", e.Name)
		w.reload()
	})
	v.WatchConfig()
	return w, nil
}

// OnChange registers fn to receive every successfully reloaded configuration.
func (w *Watcher) OnChange(fn func(Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Current returns the last valid configuration.
func (w *Watcher) Current() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// reload keeps the previous configuration when the file no longer parses.
// It reads through a fresh viper so the watching instance stays owned by its
// goroutine.
func (w *Watcher) reload() {
	w.mu.Lock()
	source := w.current.Source
	v := newViper()
	v.SetConfigFile(source)
	if err := v.ReadInConfig(); err != nil {
		w.mu.Unlock()
		w.logger.Warn("failed to re-read config", "file", source, "error", err)
		return
	}
	cfg, err := decode(v)
	if err != nil {
		w.mu.Unlock()
		w.logger.Warn("ignoring invalid config change", "file", source, "error", err)
		return
	}
	cfg.Source = source
	previous := w.current.Logging.Level
	w.current = cfg
	callbacks := append([]func(Config){}, w.callbacks...)
	w.mu.Unlock()

	if w.level != nil {
		w.level.Set(cfg.Logging.SlogLevel())
	}
	if previous != cfg.Logging.Level {
		w.logger.Info("log level changed", "from", previous, "to", cfg.Logging.Level)
	}
	for _, fn := range callbacks {
		fn(cfg)
	}
}
