package menu

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offlinefirst/sideswipe/pkg/events"
	"github.com/offlinefirst/sideswipe/pkg/prefs"
)

type fakeEngine struct {
	running bool
	err     error
	starts  int
}

func (f *fakeEngine) Start() error {
	f.starts++
	if f.err != nil {
		return f.err
	}
	f.running = true
	return nil
}

func (f *fakeEngine) IsRunning() bool { return f.running }

var terminal = events.Application{Identifier: "com.apple.Terminal", Name: "Terminal"}

func press(t *testing.T, m Model, r rune) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model)
}

func focus(t *testing.T, m Model, app events.Application) Model {
	t.Helper()
	next, cmd := m.Update(frontmostMsg{app: app, ok: app.Identifier != ""})
	require.NotNil(t, cmd, "polling must be rescheduled")
	return next.(Model)
}

func TestIgnoreTogglesLastForeignApplication(t *testing.T) {
	store := prefs.Open(nil, nil)
	m := New(Options{Engine: &fakeEngine{}, Preferences: store, Self: terminal})

	m = focus(t, m, events.Application{Identifier: "com.apple.Safari", Name: "Safari"})
	m = focus(t, m, terminal)
	assert.Contains(t, m.View(), "[ ] Ignore Safari")

	m = press(t, m, 'i')
	assert.True(t, store.IsIgnored("com.apple.Safari"))
	assert.False(t, store.IsIgnored(terminal.Identifier))
	assert.Contains(t, m.View(), "[x] Ignore Safari")

	m = press(t, m, 'i')
	assert.False(t, store.IsIgnored("com.apple.Safari"))
}

func TestIgnoreWithoutTargetDoesNothing(t *testing.T) {
	store := prefs.Open(nil, nil)
	m := New(Options{Preferences: store, Self: terminal})

	m = focus(t, m, terminal)
	m = focus(t, m, events.Application{})
	m = press(t, m, 'i')

	assert.Empty(t, store.Ignored())
	assert.Contains(t, m.View(), "no application focused yet")
}

func TestReverseToggle(t *testing.T) {
	store := prefs.Open(nil, nil)
	m := New(Options{Preferences: store})

	m = press(t, m, 'r')
	assert.True(t, store.IsReversed())
	assert.Contains(t, m.View(), "[x] Reverse buttons")

	press(t, m, 'r')
	assert.False(t, store.IsReversed())
}

func TestStartShowsStatus(t *testing.T) {
	engine := &fakeEngine{err: errors.New("event tap setup failed")}
	m := New(Options{Engine: engine, Preferences: prefs.Open(nil, nil)})
	assert.Contains(t, m.View(), "waiting for Accessibility")

	m = press(t, m, 's')
	assert.Equal(t, 1, engine.starts)
	assert.Contains(t, m.View(), "event tap setup failed")

	engine.err = nil
	m = press(t, m, 's')
	assert.Equal(t, 2, engine.starts)
	assert.Contains(t, m.View(), "event tap running")
}

func TestQuit(t *testing.T) {
	m := New(Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsVersion(t *testing.T) {
	m := New(Options{Version: "v1.2.0"})
	assert.Contains(t, m.View(), "Version v1.2.0")
}

func TestPollFrontmostUsesResolver(t *testing.T) {
	lb := events.NewLoopback()
	lb.SetFrontmost(events.Application{Identifier: "org.mozilla.firefox"})
	m := New(Options{Resolver: lb})

	msg := m.Init()()
	assert.Equal(t, frontmostMsg{app: events.Application{Identifier: "org.mozilla.firefox"}, ok: true}, msg)

	assert.Equal(t, frontmostMsg{}, New(Options{}).pollFrontmost())
}
