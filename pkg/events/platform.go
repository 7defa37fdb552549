package events

import "github.com/offlinefirst/sideswipe/pkg/permissions"

//go:generate mockgen -source=platform.go -destination=mocks/mock_platform.go -package=mocks

// HandlerFunc decides the fate of one raw event. It returns the event to
// forward and true, or false when the event must be swallowed.
type HandlerFunc func(ButtonEvent) (ButtonEvent, bool)

// Hook registers a systemwide input hook. The handler runs on the OS
// callback context and must return promptly.
type Hook interface {
	Register(mask Mask, handler HandlerFunc) error
}

// Synthetic is an OS event built by an Injector and not yet released.
type Synthetic interface {
	Release()
}

// Injector builds and posts synthetic gesture events.
type Injector interface {
	Build(g Gesture) (Synthetic, error)
	Post(s Synthetic)
}

// ForegroundResolver reports the application currently holding focus.
type ForegroundResolver interface {
	Frontmost() (Application, bool)
}

// AccessProbe queries and requests the OS permissions the hook depends on.
type AccessProbe interface {
	Accessibility() permissions.Status
	InputMonitoring() permissions.Status
	Request()
}

// Platform bundles the boundary implementations for one OS.
type Platform struct {
	Provider string
	Hook     Hook
	Injector Injector
	Resolver ForegroundResolver
	Access   AccessProbe
}

const (
	providerQuartz      = "quartz_event_tap"
	providerX11         = "x11_foreground_only"
	providerUnsupported = "unsupported"
	providerLoopback    = "loopback"
)
