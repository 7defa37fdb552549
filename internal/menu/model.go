// Package menu is the terminal control surface for a running engine: it
// shows whether the event tap is active and toggles the per-application
// ignore list and button reversal.
package menu

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/offlinefirst/sideswipe/pkg/events"
)

// Engine is the part of events.Manager the menu drives.
type Engine interface {
	Start() error
	IsRunning() bool
}

// Preferences is the part of prefs.Store the menu edits.
type Preferences interface {
	IsIgnored(id string) bool
	AddIgnored(id string)
	RemoveIgnored(id string)
	IsReversed() bool
	ToggleReversed() bool
}

// Options wires the model to the engine.
type Options struct {
	Engine      Engine
	Preferences Preferences
	Resolver    events.ForegroundResolver
	// Self is the application hosting the menu; it is never offered for ignoring.
	Self         events.Application
	Version      string
	PollInterval time.Duration
}

const defaultPollInterval = time.Second

type frontmostMsg struct {
	app events.Application
	ok  bool
}

// Model is the bubbletea model of the control menu.
type Model struct {
	engine   Engine
	prefs    Preferences
	resolver events.ForegroundResolver
	self     events.Application
	version  string
	interval time.Duration

	target    events.Application
	hasTarget bool
	startErr  error

	keys KeyMap
	help help.Model
}

// New builds the menu model.
func New(opts Options) Model {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return Model{
		engine:   opts.Engine,
		prefs:    opts.Preferences,
		resolver: opts.Resolver,
		self:     opts.Self,
		version:  opts.Version,
		interval: interval,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.pollFrontmost
}

func (m Model) pollFrontmost() tea.Msg {
	if m.resolver == nil {
		return frontmostMsg{}
	}
	app, ok := m.resolver.Frontmost()
	return frontmostMsg{app: app, ok: ok}
}

func (m Model) scheduleFrontmost() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return m.pollFrontmost()
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frontmostMsg:
		if msg.ok && msg.app.Identifier != "" && msg.app.Identifier != m.self.Identifier {
			m.target = msg.app
			m.hasTarget = true
		}
		return m, m.scheduleFrontmost()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Ignore):
			m.toggleIgnore()
		case key.Matches(msg, m.keys.Reverse):
			if m.prefs != nil {
				m.prefs.ToggleReversed()
			}
		case key.Matches(msg, m.keys.Start):
			if m.engine != nil {
				m.startErr = m.engine.Start()
			}
		}
	}
	return m, nil
}

func (m *Model) toggleIgnore() {
	if !m.hasTarget || m.prefs == nil {
		return
	}
	id := m.target.Identifier
	if m.prefs.IsIgnored(id) {
		m.prefs.RemoveIgnored(id)
		return
	}
	m.prefs.AddIgnored(id)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sideswipe"))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if m.hasTarget && m.prefs != nil {
		b.WriteString(checkbox(m.prefs.IsIgnored(m.target.Identifier)) + " Ignore " + m.target.DisplayName())
	} else {
		b.WriteString(disabledStyle.Render("    Ignore (no application focused yet)"))
	}
	b.WriteString("\n")
	if m.prefs != nil {
		b.WriteString(checkbox(m.prefs.IsReversed()) + " Reverse buttons")
		b.WriteString("\n")
	}

	if m.version != "" {
		b.WriteString("\n")
		b.WriteString(disabledStyle.Render("Version " + m.version))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return boxStyle.Render(b.String())
}

func (m Model) statusLine() string {
	if m.engine != nil && m.engine.IsRunning() {
		return runningStyle.Render("● event tap running")
	}
	line := waitingStyle.Render("○ waiting for Accessibility and Input Monitoring permission")
	if m.startErr != nil {
		line += "\n" + errorStyle.Render(m.startErr.Error())
	}
	return line
}
