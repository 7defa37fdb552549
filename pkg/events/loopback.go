package events

import (
	"errors"
	"sync"

	"github.com/offlinefirst/sideswipe/pkg/permissions"
)

// Loopback is an in-process platform. Events are fed with Dispatch or Press
// and synthetic gestures are recorded instead of reaching the OS.
type Loopback struct {
	mu            sync.Mutex
	handler       HandlerFunc
	mask          Mask
	registrations int
	registerErr   error
	buildErr      map[Phase]error
	frontmost     Application
	hasFrontmost  bool
	posted        []Gesture
	live          int
}

// NewLoopback returns an unregistered loopback platform.
func NewLoopback() *Loopback {
	return &Loopback{buildErr: make(map[Phase]error)}
}

// Platform exposes l through the Platform bundle.
func (l *Loopback) Platform() Platform {
	return Platform{
		Provider: providerLoopback,
		Hook:     l,
		Injector: l,
		Resolver: l,
		Access:   l,
	}
}

// Register records the handler. It fails while FailRegistration is armed.
func (l *Loopback) Register(mask Mask, handler HandlerFunc) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.registerErr != nil {
		return l.registerErr
	}
	if handler == nil {
		return errors.New("handler must not be nil")
	}
	l.handler = handler
	l.mask = mask
	l.registrations++
	return nil
}

// FailRegistration makes Register return err until called again with nil.
func (l *Loopback) FailRegistration(err error) {
	l.mu.Lock()
	l.registerErr = err
	l.mu.Unlock()
}

// Registrations counts successful Register calls.
func (l *Loopback) Registrations() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registrations
}

// Dispatch delivers ev the way the OS would. Unregistered kinds and events
// arriving before registration pass straight through.
func (l *Loopback) Dispatch(ev ButtonEvent) (ButtonEvent, bool) {
	l.mu.Lock()
	handler, mask := l.handler, l.mask
	l.mu.Unlock()

	if handler == nil || !mask.Has(ev.Kind) {
		return ev, true
	}
	return handler(ev)
}

// Press dispatches a button-down for button and reports whether the
// original event was forwarded.
func (l *Loopback) Press(button int64) bool {
	_, forwarded := l.Dispatch(ButtonEvent{Kind: KindButtonDown, Button: button})
	return forwarded
}

// SetFrontmost sets the application reported as focused.
func (l *Loopback) SetFrontmost(app Application) {
	l.mu.Lock()
	l.frontmost = app
	l.hasFrontmost = true
	l.mu.Unlock()
}

// ClearFrontmost makes the focused application unknown.
func (l *Loopback) ClearFrontmost() {
	l.mu.Lock()
	l.frontmost = Application{}
	l.hasFrontmost = false
	l.mu.Unlock()
}

func (l *Loopback) Frontmost() (Application, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frontmost, l.hasFrontmost
}

// FailBuild makes Build return err for gestures in phase.
func (l *Loopback) FailBuild(phase Phase, err error) {
	l.mu.Lock()
	if err == nil {
		delete(l.buildErr, phase)
	} else {
		l.buildErr[phase] = err
	}
	l.mu.Unlock()
}

type loopbackEvent struct {
	owner   *Loopback
	gesture Gesture
	once    sync.Once
}

func (e *loopbackEvent) Release() {
	e.once.Do(func() {
		e.owner.mu.Lock()
		e.owner.live--
		e.owner.mu.Unlock()
	})
}

func (l *Loopback) Build(g Gesture) (Synthetic, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.buildErr[g.Phase]; err != nil {
		return nil, err
	}
	l.live++
	return &loopbackEvent{owner: l, gesture: g}, nil
}

func (l *Loopback) Post(s Synthetic) {
	ev, ok := s.(*loopbackEvent)
	if !ok {
		return
	}
	l.mu.Lock()
	l.posted = append(l.posted, ev.gesture)
	l.mu.Unlock()
}

// Posted returns the gestures injected so far, oldest first.
func (l *Loopback) Posted() []Gesture {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Gesture(nil), l.posted...)
}

// TakePosted returns and clears the injected gestures.
func (l *Loopback) TakePosted() []Gesture {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.posted
	l.posted = nil
	return out
}

// Unreleased counts built events that were never released.
func (l *Loopback) Unreleased() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live
}

func (l *Loopback) Accessibility() permissions.Status   { return permissions.StatusGranted }
func (l *Loopback) InputMonitoring() permissions.Status { return permissions.StatusGranted }
func (l *Loopback) Request()                            {}
