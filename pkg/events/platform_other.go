//go:build !darwin && !linux

package events

// NativePlatform returns a platform that refuses to register a hook.
func NativePlatform() Platform {
	return Platform{
		Provider: providerUnsupported,
		Hook:     unsupportedHook{},
		Injector: unsupportedInjector{},
		Resolver: nil,
		Access:   unsupportedAccess{},
	}
}
