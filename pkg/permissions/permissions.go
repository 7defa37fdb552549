package permissions

import (
	"os"
	"runtime"
	"strings"
)

// Status enumerates coarse permission results for macOS-style prompts.
type Status string

const (
	// StatusUnknown indicates no explicit signal about permission state.
	StatusUnknown Status = "unknown"
	// StatusGranted signals that permission was previously granted.
	StatusGranted Status = "granted"
	// StatusDenied indicates the user has explicitly denied access.
	StatusDenied Status = "denied"
	// StatusPromptRequired means the platform will prompt at runtime.
	StatusPromptRequired Status = "prompt"
	// StatusUnavailable reports that the capability is not supported.
	StatusUnavailable Status = "unavailable"
)

// SettingsURL opens the Privacy & Security pane of System Settings.
const SettingsURL = "x-apple.systempreferences:com.apple.preference.security?Privacy"

const guidance = "open System Settings > Privacy & Security (" + SettingsURL + ") and add sideswipe to Accessibility and Input Monitoring"

// ProbeResult represents the coarse state for a permission surface.
type ProbeResult struct {
	Status   Status
	Message  string
	Guidance string
}

// LookupEnvFunc exposes environment probing for testability.
type LookupEnvFunc func(string) (string, bool)

// NativeProbe asks the operating system for the current state. A nil probe
// means the platform has nothing to ask.
type NativeProbe func() Status

// lookupEnv is declared for swapping in tests.
var lookupEnv = func(key string) (string, bool) {
	return os.LookupEnv(key)
}

// ProbeAccessibility reports whether the process may observe and post
// systemwide input events. SIDESWIPE_ACCESSIBILITY overrides the native answer.
func ProbeAccessibility(lookup LookupEnvFunc, native NativeProbe) ProbeResult {
	return probe("accessibility", "SIDESWIPE_ACCESSIBILITY", lookup, native)
}

// ProbeInputMonitoring reports whether the process may listen to pointer
// input. SIDESWIPE_INPUT_MONITORING overrides the native answer.
func ProbeInputMonitoring(lookup LookupEnvFunc, native NativeProbe) ProbeResult {
	return probe("input monitoring", "SIDESWIPE_INPUT_MONITORING", lookup, native)
}

func probe(name, envKey string, lookup LookupEnvFunc, native NativeProbe) ProbeResult {
	if lookup == nil {
		lookup = lookupEnv
	}
	if value, ok := lookup(envKey); ok {
		return interpretPermissionFlag(name, value)
	}
	if native != nil {
		return describe(name, native())
	}
	if runtime.GOOS == "darwin" {
		return ProbeResult{Status: StatusPromptRequired, Message: name + " trust required", Guidance: guidance}
	}
	return ProbeResult{Status: StatusUnavailable, Message: name + " prompts unavailable"}
}

func describe(name string, status Status) ProbeResult {
	switch status {
	case StatusGranted:
		return ProbeResult{Status: status, Message: name + " permission granted"}
	case StatusDenied:
		return ProbeResult{Status: status, Message: name + " permission denied", Guidance: guidance}
	case StatusPromptRequired:
		return ProbeResult{Status: status, Message: name + " permission will prompt at runtime", Guidance: guidance}
	case StatusUnavailable:
		return ProbeResult{Status: status, Message: name + " permission unavailable on this platform"}
	default:
		return ProbeResult{Status: StatusUnknown, Message: name + " permission state unknown"}
	}
}

func interpretPermissionFlag(name, value string) ProbeResult {
	normalised := strings.ToLower(strings.TrimSpace(value))
	switch normalised {
	case "granted", "allow", "allowed", "yes", "true":
		return ProbeResult{Status: StatusGranted, Message: name + " permission pre-authorised via env override"}
	case "denied", "no", "false", "blocked":
		return ProbeResult{Status: StatusDenied, Message: name + " permission denied via env override", Guidance: "use 'tccutil reset' or update SIDESWIPE_* env to re-test"}
	case "prompt", "ask":
		return ProbeResult{Status: StatusPromptRequired, Message: name + " permission will prompt at runtime"}
	case "unavailable", "unsupported":
		return ProbeResult{Status: StatusUnavailable, Message: name + " permission unavailable on this platform"}
	default:
		return ProbeResult{Status: StatusUnknown, Message: name + " permission state unknown"}
	}
}

// StatusString returns the string representation for reports.
func (p ProbeResult) StatusString() string {
	if p.Status == "" {
		return string(StatusUnknown)
	}
	return string(p.Status)
}

// Usable reports whether the capability can be attempted.
func (p ProbeResult) Usable() bool {
	return p.Status != StatusDenied && p.Status != StatusUnavailable
}
