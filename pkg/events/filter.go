package events

// IgnoreChecker answers ignore-list membership from one consistent snapshot.
type IgnoreChecker interface {
	IsIgnored(identifier string) bool
}

// Filter decides whether the foreground application may have its buttons
// rewritten.
type Filter struct {
	resolver ForegroundResolver
	ignored  IgnoreChecker
}

// NewFilter pairs a foreground resolver with the ignore list.
func NewFilter(resolver ForegroundResolver, ignored IgnoreChecker) *Filter {
	return &Filter{resolver: resolver, ignored: ignored}
}

// CurrentApplication returns the foreground application, or false when it
// cannot be determined.
func (f *Filter) CurrentApplication() (Application, bool) {
	if f.resolver == nil {
		return Application{}, false
	}
	app, ok := f.resolver.Frontmost()
	if !ok || app.Identifier == "" {
		return Application{}, false
	}
	return app, true
}

// IsAllowed reports whether identifier may be intercepted. An empty
// identifier means the application is unknown, and unknown is never ignored.
func (f *Filter) IsAllowed(identifier string) bool {
	if identifier == "" || f.ignored == nil {
		return true
	}
	return !f.ignored.IsIgnored(identifier)
}
