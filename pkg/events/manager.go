package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Preferences is the live policy consulted for every intercepted press.
type Preferences interface {
	IgnoreChecker
	IsReversed() bool
}

// Options wires a Manager to its collaborators.
type Options struct {
	Hook        Hook
	Injector    Injector
	Resolver    ForegroundResolver
	Preferences Preferences
	Logger      *slog.Logger
}

// Manager owns the input hook registration and decides, per raw event,
// whether to forward it or replace it with a synthetic swipe.
type Manager struct {
	hook   Hook
	filter *Filter
	synth  *Synthesizer
	prefs  Preferences
	logger *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewManager validates opts and constructs a stopped manager.
func NewManager(opts Options) (*Manager, error) {
	if opts.Hook == nil {
		return nil, errors.New("hook must not be nil")
	}
	if opts.Injector == nil {
		return nil, errors.New("injector must not be nil")
	}
	if opts.Preferences == nil {
		return nil, errors.New("preferences must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		hook:   opts.Hook,
		filter: NewFilter(opts.Resolver, opts.Preferences),
		synth:  NewSynthesizer(opts.Injector, logger),
		prefs:  opts.Preferences,
		logger: logger,
	}, nil
}

// Start registers the hook for button-down and button-up. It is a no-op
// while already running. A refused registration is reported as
// ErrSetupFailed and leaves the manager stopped.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}
	if err := m.hook.Register(MaskOf(KindButtonDown, KindButtonUp), m.Handle); err != nil {
		return fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}
	m.running = true
	m.logger.Info("event tap running")
	return nil
}

// StartWhenPermitted retries Start every interval until it succeeds, the
// platform turns out to be unsupported, or ctx is done.
func (m *Manager) StartWhenPermitted(ctx context.Context, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = time.Second
	}

	err := m.Start()
	if err == nil || errors.Is(err, ErrUnsupportedPlatform) {
		return err
	}
	m.logger.Info("waiting for input permissions", "retry_interval", interval.String(), "error", err)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := m.Start()
			if err == nil || errors.Is(err, ErrUnsupportedPlatform) {
				return err
			}
			m.logger.Debug("event tap still refused", "error", err)
		}
	}
}

// IsRunning reports whether the hook is registered.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Filter exposes the application filter used by Handle.
func (m *Manager) Filter() *Filter {
	return m.filter
}

// Handle is the hook callback. It never panics: any fault forwards the
// original event, except once the first synthetic event has been posted.
func (m *Manager) Handle(ev ButtonEvent) (out ButtonEvent, forward bool) {
	injected := false
	defer func() {
		if r := recover(); r != nil {
			out, forward = ev, !injected
			m.logger.Warn("recovered from event handler fault", "panic", fmt.Sprint(r), "button", ev.Button)
		}
	}()

	if ev.Kind != KindButtonDown {
		return ev, true
	}

	app, _ := m.filter.CurrentApplication()
	if !m.filter.IsAllowed(app.Identifier) {
		return ev, true
	}

	dir := DirectionForButton(ev.Button)
	if dir == DirectionNone {
		return ev, true
	}

	if !m.synth.emit(dir, m.prefs.IsReversed(), &injected) {
		return ev, true
	}
	return ButtonEvent{}, false
}
