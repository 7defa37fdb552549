package events

import "errors"

// ErrSetupFailed reports that the OS refused to register the input hook,
// usually because a permission is missing. The caller may retry later.
var ErrSetupFailed = errors.New("event tap setup failed")

// ErrAccessibilityPermission indicates the host must grant Accessibility trust.
var ErrAccessibilityPermission = errors.New("macOS accessibility permission required for event interception")

// ErrUnsupportedPlatform is returned by boundary calls the current OS cannot serve.
var ErrUnsupportedPlatform = errors.New("event interception unsupported on this platform")
