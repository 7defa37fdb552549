package events

import (
	"runtime"

	"github.com/offlinefirst/sideswipe/pkg/permissions"
)

// Environment summarises event tap backend support.
type Environment struct {
	Provider        string
	Available       bool
	Accessibility   permissions.ProbeResult
	InputMonitoring permissions.ProbeResult
	Message         string
	Guidance        string
}

// DetectEnvironment reports whether p can intercept buttons right now.
func DetectEnvironment(p Platform) Environment {
	var accessNative, listenNative permissions.NativeProbe
	if p.Access != nil {
		accessNative = p.Access.Accessibility
		listenNative = p.Access.InputMonitoring
	}

	env := Environment{
		Provider:        p.Provider,
		Accessibility:   permissions.ProbeAccessibility(nil, accessNative),
		InputMonitoring: permissions.ProbeInputMonitoring(nil, listenNative),
		Available:       true,
	}
	if env.Provider == "" {
		env.Provider = providerUnsupported
	}

	switch env.Provider {
	case providerQuartz:
		env.Available = env.Accessibility.Usable() && env.InputMonitoring.Usable()
		if !env.Available {
			env.Message = "input permissions missing"
			env.Guidance = env.Accessibility.Guidance
			if env.Guidance == "" {
				env.Guidance = env.InputMonitoring.Guidance
			}
		} else {
			env.Message = "quartz event tap ready"
		}
	case providerLoopback:
		env.Message = "in-process loopback platform"
	default:
		env.Available = false
		env.Message = "button interception unsupported on " + runtime.GOOS
	}
	return env
}
