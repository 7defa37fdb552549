//go:build linux

package events

import (
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// NativePlatform on linux can name the focused X11 application but cannot
// intercept or inject pointer events.
func NativePlatform() Platform {
	return Platform{
		Provider: providerX11,
		Hook:     unsupportedHook{},
		Injector: unsupportedInjector{},
		Resolver: x11Resolver{},
		Access:   unsupportedAccess{},
	}
}

// runXprop and processName are swapped in tests.
var (
	runXprop = func(args ...string) ([]byte, error) {
		return exec.Command("xprop", args...).Output()
	}
	processName = func(pid int32) (string, error) {
		proc, err := process.NewProcess(pid)
		if err != nil {
			return "", err
		}
		return proc.Name()
	}
)

// x11Resolver identifies the focused window's owning process by name.
type x11Resolver struct{}

func (x11Resolver) Frontmost() (Application, bool) {
	out, err := runXprop("-root", "_NET_ACTIVE_WINDOW")
	if err != nil {
		return Application{}, false
	}
	windowID, err := parseActiveWindow(string(out))
	if err != nil {
		return Application{}, false
	}

	out, err = runXprop("-id", windowID, "_NET_WM_PID")
	if err != nil {
		return Application{}, false
	}
	pid, err := parseWindowPID(string(out))
	if err != nil {
		return Application{}, false
	}

	name, err := processName(pid)
	if err != nil || name == "" {
		return Application{}, false
	}
	return Application{Identifier: name, Name: name}, true
}

// parseActiveWindow extracts the id from
// "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3a00007".
func parseActiveWindow(out string) (string, error) {
	fields := strings.Fields(out)
	if len(fields) < 5 {
		return "", errors.New("unexpected xprop output")
	}
	id := strings.TrimSuffix(fields[4], ",")
	if id == "0x0" {
		return "", errors.New("no active window")
	}
	return id, nil
}

// parseWindowPID extracts the pid from "_NET_WM_PID(CARDINAL) = 4242".
func parseWindowPID(out string) (int32, error) {
	_, value, ok := strings.Cut(out, "=")
	if !ok {
		return 0, errors.New("window has no _NET_WM_PID")
	}
	pid, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, err
	}
	if pid <= 0 {
		return 0, errors.New("invalid pid")
	}
	return int32(pid), nil
}
