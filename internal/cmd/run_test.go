package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offlinefirst/sideswipe/internal/menu"
	"github.com/offlinefirst/sideswipe/pkg/events"
	"github.com/offlinefirst/sideswipe/pkg/prefs"
)

// lockedBuffer collects log output written from several goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	dir       string
	config    string
	prefsPath string
	stdout    *lockedBuffer
	stderr    *lockedBuffer
}

func newHarness(t *testing.T, extraConfig string) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		dir:       dir,
		config:    filepath.Join(dir, "config.yaml"),
		prefsPath: filepath.Join(dir, "prefs", "preferences.toml"),
		stdout:    &lockedBuffer{},
		stderr:    &lockedBuffer{},
	}
	content := "preferences:\n  path: " + h.prefsPath + "\n" + extraConfig
	require.NoError(t, os.WriteFile(h.config, []byte(content), 0o644))
	return h
}

func (h *harness) execute(ctx context.Context, args ...string) error {
	rc := NewRootCommand()
	rc.stdin = strings.NewReader("")
	rc.stdout = h.stdout
	rc.stderr = h.stderr
	return rc.Execute(ctx, append([]string{"--config", h.config}, args...))
}

func swapPlatform(t *testing.T, lb *events.Loopback) {
	t.Helper()
	orig := nativePlatform
	nativePlatform = func() events.Platform { return lb.Platform() }
	t.Cleanup(func() { nativePlatform = orig })
}

func TestRunLoopbackStartsAndStopsOnCancel(t *testing.T) {
	h := newHarness(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.execute(ctx, "run", "--loopback"))
	logs := h.stderr.String()
	assert.Contains(t, logs, "event tap running")
	assert.Contains(t, logs, "provider=loopback")
	assert.Contains(t, logs, "shutting down")
}

func TestRunEphemeralLeavesPreferencesFileUntouched(t *testing.T) {
	h := newHarness(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.execute(ctx, "run", "--loopback", "--ephemeral"))
	assert.Contains(t, h.stderr.String(), "path=<memory>")
	assert.NoFileExists(t, h.prefsPath)
}

func TestRunningDaemonSeesIgnoreCommand(t *testing.T) {
	h := newHarness(t, "permissions:\n  prompt: false\n")
	lb := events.NewLoopback()
	lb.SetFrontmost(events.Application{Identifier: "com.app.X"})
	swapPlatform(t, lb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.execute(ctx, "run") }()

	require.Eventually(t, func() bool { return lb.Registrations() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, lb.Press(events.ButtonBack))

	require.NoError(t, h.execute(context.Background(), "ignore", "add", "com.app.X"))
	assert.Eventually(t, func() bool { return lb.Press(events.ButtonBack) }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestRunHelpDescribesLoopbackAsIdle(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.execute(context.Background(), "run", "--help"))
	assert.Contains(t, h.stdout.String(), "receives no input")
}

func TestRunReportsSetupFailure(t *testing.T) {
	h := newHarness(t, "permissions:\n  prompt: false\n")
	lb := events.NewLoopback()
	lb.FailRegistration(events.ErrAccessibilityPermission)
	swapPlatform(t, lb)

	err := h.execute(context.Background(), "run")
	require.ErrorIs(t, err, events.ErrSetupFailed)
	assert.ErrorIs(t, err, events.ErrAccessibilityPermission)
	assert.Contains(t, h.stderr.String(), "x-apple.systempreferences")
}

func TestRunWaitRetriesUntilPermitted(t *testing.T) {
	h := newHarness(t, "permissions:\n  prompt: false\n  poll_interval: 10ms\n")
	lb := events.NewLoopback()
	lb.FailRegistration(events.ErrAccessibilityPermission)
	swapPlatform(t, lb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.execute(ctx, "run", "--wait") }()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, lb.Registrations())
	lb.FailRegistration(nil)

	require.Eventually(t, func() bool { return lb.Registrations() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, lb.Press(events.ButtonBack))
	assert.Equal(t, []events.Gesture{events.BeginGesture(), events.SwipeGesture(events.DirectionLeft)}, lb.Posted())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestRunMenuReceivesEngine(t *testing.T) {
	h := newHarness(t, "")
	lb := events.NewLoopback()
	lb.SetFrontmost(events.Application{Identifier: "com.apple.Terminal", Name: "Terminal"})
	swapPlatform(t, lb)

	orig := runMenu
	defer func() { runMenu = orig }()
	var got menu.Options
	runMenu = func(_ context.Context, opts menu.Options, _ io.Reader, _ io.Writer) error {
		got = opts
		return nil
	}

	require.NoError(t, h.execute(context.Background(), "run", "--menu"))
	require.NotNil(t, got.Engine)
	assert.True(t, got.Engine.IsRunning())
	assert.Equal(t, "com.apple.Terminal", got.Self.Identifier)
	assert.NotNil(t, got.Preferences)
}

func TestRunMenuStaysUpWhenSetupFails(t *testing.T) {
	h := newHarness(t, "permissions:\n  prompt: false\n")
	lb := events.NewLoopback()
	lb.FailRegistration(errors.New("not trusted"))
	swapPlatform(t, lb)

	orig := runMenu
	defer func() { runMenu = orig }()
	called := false
	runMenu = func(_ context.Context, opts menu.Options, _ io.Reader, _ io.Writer) error {
		called = true
		assert.False(t, opts.Engine.IsRunning())
		return nil
	}

	require.NoError(t, h.execute(context.Background(), "run", "--menu"))
	assert.True(t, called)
}

func TestIgnoreCommandsEditPreferencesFile(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()

	require.NoError(t, h.execute(ctx, "ignore", "add", "com.app.A"))
	require.NoError(t, h.execute(ctx, "ignore", "add", "com.app.B"))
	require.NoError(t, h.execute(ctx, "ignore", "remove", "com.app.A"))

	backend, err := prefs.OpenFileBackend(h.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.app.B"}, prefs.Open(backend, nil).Ignored())

	h.stdout.buf.Reset()
	require.NoError(t, h.execute(ctx, "ignore", "list"))
	assert.Equal(t, "com.app.B\n", h.stdout.String())
}

func TestIgnoreAddRequiresIdentifier(t *testing.T) {
	h := newHarness(t, "")
	assert.Error(t, h.execute(context.Background(), "ignore", "add"))
}

func TestReverseCommands(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()

	require.NoError(t, h.execute(ctx, "reverse"))
	assert.Contains(t, h.stdout.String(), "normal")

	require.NoError(t, h.execute(ctx, "reverse", "toggle"))
	assert.Contains(t, h.stdout.String(), "reversed: back swipes right")

	backend, err := prefs.OpenFileBackend(h.prefsPath)
	require.NoError(t, err)
	assert.True(t, prefs.Open(backend, nil).IsReversed())
}

func TestConfigCommandPrintsYAML(t *testing.T) {
	h := newHarness(t, "logging:\n  level: warn\n")
	require.NoError(t, h.execute(context.Background(), "config"))

	out := h.stdout.String()
	assert.Contains(t, out, "# source: "+h.config)
	assert.Contains(t, out, "level: warn")
	assert.Contains(t, out, "poll_interval: 1s")
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	h := newHarness(t, "")
	assert.Error(t, h.execute(context.Background(), "--log-level", "loud", "config"))
	require.NoError(t, h.execute(context.Background(), "--log-level", "debug", "config"))
	assert.Contains(t, h.stderr.String(), "configuration loaded")
}

func TestDoctorReport(t *testing.T) {
	h := newHarness(t, "")
	lb := events.NewLoopback()
	lb.SetFrontmost(events.Application{Identifier: "com.apple.Safari", Name: "Safari"})
	swapPlatform(t, lb)

	orig := hostInfo
	defer func() { hostInfo = orig }()
	hostInfo = func() (*host.InfoStat, error) {
		return &host.InfoStat{Platform: "darwin", PlatformVersion: "14.5", KernelArch: "arm64", KernelVersion: "23.5.0"}, nil
	}

	require.NoError(t, h.execute(context.Background(), "doctor"))
	out := h.stdout.String()
	assert.Contains(t, out, "Host: darwin 14.5 (arm64, kernel 23.5.0)")
	assert.Contains(t, out, "Event platform: loopback (available=true)")
	assert.Contains(t, out, "Accessibility: granted")
	assert.Contains(t, out, "Frontmost application: Safari (com.apple.Safari)")
	assert.Contains(t, out, "Preferences: "+h.prefsPath)
	assert.Contains(t, out, "reverse buttons: false")
}

func TestVersionCommand(t *testing.T) {
	origVersion, origGOOS := runtimeVersion, runtimeGOOS
	defer func() { runtimeVersion, runtimeGOOS = origVersion, origGOOS }()
	runtimeVersion = func() string { return "go1.24.7" }
	runtimeGOOS = func() string { return "darwin" }

	h := newHarness(t, "")
	require.NoError(t, h.execute(context.Background(), "version"))
	assert.Contains(t, h.stdout.String(), "(go1.24.7/darwin)")
}

func TestOpenPreferencesDefaultsToUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	orig := preferencesPath
	defer func() { preferencesPath = orig }()
	preferencesPath = func() (string, error) { return filepath.Join(dir, "preferences.toml"), nil }

	app := &AppContext{Config: configWithoutPrefsPath(), Logger: newTestLogger()}
	store, path, err := openPreferences(app)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "preferences.toml"), path)

	store.AddIgnored("com.app.A")
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
