//go:build !darwin

package events

import "github.com/offlinefirst/sideswipe/pkg/permissions"

type unsupportedHook struct{}

func (unsupportedHook) Register(Mask, HandlerFunc) error {
	return ErrUnsupportedPlatform
}

type unsupportedInjector struct{}

func (unsupportedInjector) Build(Gesture) (Synthetic, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedInjector) Post(Synthetic) {}

type unsupportedAccess struct{}

func (unsupportedAccess) Accessibility() permissions.Status   { return permissions.StatusUnavailable }
func (unsupportedAccess) InputMonitoring() permissions.Status { return permissions.StatusUnavailable }
func (unsupportedAccess) Request()                            {}
