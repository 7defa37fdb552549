//go:build darwin

package events

/*
#cgo darwin CFLAGS: -x objective-c -fmodules -fobjc-arc
#cgo darwin LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Cocoa
#include <ApplicationServices/ApplicationServices.h>
#include <Cocoa/Cocoa.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

// Window server gesture event layout. These fields are private to
// CoreGraphics; the numbers are what the window server reads back.
enum {
        gestureEventType       = 29,
        gestureHIDTypeField    = 110,
        gestureSwipeValueField = 115,
        gesturePhaseField      = 132,
};

extern CGEventRef sideswipeHandleEvent(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *userInfo);

static CFMachPortRef createButtonTap(uintptr_t handle, CGEventMask mask) {
        return CGEventTapCreate(kCGHIDEventTap,
                                kCGHeadInsertEventTap,
                                kCGEventTapOptionDefault,
                                mask,
                                sideswipeHandleEvent,
                                (void *)handle);
}

static CFRunLoopSourceRef attachTap(CFMachPortRef tap) {
        CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
        if (source == NULL) {
                return NULL;
        }
        CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
        CGEventTapEnable(tap, true);
        return source;
}

static void enableTap(CFMachPortRef tap) {
        CGEventTapEnable(tap, true);
}

static void runCurrentRunLoop(void) {
        CFRunLoopRun();
}

static CGEventMask cgEventMaskBit(CGEventType type) {
        return ((CGEventMask)1) << type;
}

static int64_t cgEventGetButton(CGEventRef event) {
        return CGEventGetIntegerValueField(event, kCGMouseEventButtonNumber);
}

static CGEventRef createGestureEvent(int64_t subtype, int64_t phase, int64_t direction) {
        CGEventRef event = CGEventCreate(NULL);
        if (event == NULL) {
                return NULL;
        }
        CGEventSetType(event, (CGEventType)gestureEventType);
        CGEventSetIntegerValueField(event, (CGEventField)gestureHIDTypeField, subtype);
        CGEventSetIntegerValueField(event, (CGEventField)gesturePhaseField, phase);
        if (direction != 0) {
                CGEventSetDoubleValueField(event, (CGEventField)gestureSwipeValueField, (double)direction);
        }
        return event;
}

static void postEvent(CGEventRef event) {
        CGEventPost(kCGHIDEventTap, event);
}

static void releaseEvent(CGEventRef event) {
        CFRelease(event);
}

static Boolean axCheckTrusted(Boolean prompt) {
        const void *keys[] = { kAXTrustedCheckOptionPrompt };
        const void *values[] = { prompt ? kCFBooleanTrue : kCFBooleanFalse };
        CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
                                                     &kCFTypeDictionaryKeyCallBacks,
                                                     &kCFTypeDictionaryValueCallBacks);
        Boolean trusted = AXIsProcessTrustedWithOptions(options);
        CFRelease(options);
        return trusted;
}

static Boolean listenAccessPreflight(void) {
        return CGPreflightListenEventAccess();
}

static void listenAccessRequest(void) {
        CGRequestListenEventAccess();
}

// copyWindowOwners fills layers and pids from the on-screen window list,
// front to back. NSWorkspace.frontmostApplication goes stale in a process
// that never runs the main run loop, so the window server is asked instead.
static int copyWindowOwners(int32_t *layers, int32_t *pids, int max) {
        CFArrayRef windows = CGWindowListCopyWindowInfo(
                kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements, kCGNullWindowID);
        if (windows == NULL) {
                return 0;
        }
        int n = 0;
        CFIndex count = CFArrayGetCount(windows);
        for (CFIndex i = 0; i < count && n < max; i++) {
                CFDictionaryRef info = (CFDictionaryRef)CFArrayGetValueAtIndex(windows, i);
                CFNumberRef layer = (CFNumberRef)CFDictionaryGetValue(info, kCGWindowLayer);
                CFNumberRef pid = (CFNumberRef)CFDictionaryGetValue(info, kCGWindowOwnerPID);
                if (layer == NULL || pid == NULL) {
                        continue;
                }
                if (!CFNumberGetValue(layer, kCFNumberSInt32Type, &layers[n]) ||
                    !CFNumberGetValue(pid, kCFNumberSInt32Type, &pids[n])) {
                        continue;
                }
                n++;
        }
        CFRelease(windows);
        return n;
}

// copyApplicationInfo reads bundle identifier and name from one lookup.
static Boolean copyApplicationInfo(int32_t pid, CFStringRef *bundle, CFStringRef *name) {
        *bundle = NULL;
        *name = NULL;
        @autoreleasepool {
                NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
                if (app == nil || app.bundleIdentifier == nil) {
                        return false;
                }
                *bundle = (__bridge_retained CFStringRef)app.bundleIdentifier;
                if (app.localizedName != nil) {
                        *name = (__bridge_retained CFStringRef)app.localizedName;
                }
        }
        return true;
}
*/
import "C"

import (
	"errors"
	"runtime"
	"runtime/cgo"
	"unsafe"

	"github.com/offlinefirst/sideswipe/pkg/permissions"
)

// NativePlatform returns the Quartz-backed platform.
func NativePlatform() Platform {
	q := &quartz{}
	return Platform{
		Provider: providerQuartz,
		Hook:     q,
		Injector: q,
		Resolver: q,
		Access:   q,
	}
}

type quartz struct{}

// tapRegistration is the userInfo payload of one CGEventTap. tap is written
// on the run-loop thread before the loop starts and only read there.
type tapRegistration struct {
	handler HandlerFunc
	tap     C.CFMachPortRef
}

func cgMaskFor(mask Mask) C.CGEventMask {
	var cg C.CGEventMask
	if mask.Has(KindButtonDown) {
		cg |= C.cgEventMaskBit(C.kCGEventOtherMouseDown)
	}
	if mask.Has(KindButtonUp) {
		cg |= C.cgEventMaskBit(C.kCGEventOtherMouseUp)
	}
	return cg
}

// Register creates the tap on a dedicated OS thread that then services the
// tap's run loop for the rest of the process lifetime.
func (q *quartz) Register(mask Mask, handler HandlerFunc) error {
	if handler == nil {
		return errors.New("handler must not be nil")
	}
	cgMask := cgMaskFor(mask)
	if cgMask == 0 {
		return errors.New("event mask selects no button events")
	}

	result := make(chan error, 1)
	go serveTap(&tapRegistration{handler: handler}, cgMask, result)
	return <-result
}

func serveTap(reg *tapRegistration, mask C.CGEventMask, result chan<- error) {
	runtime.LockOSThread()

	handle := cgo.NewHandle(reg)
	tap := C.createButtonTap(C.uintptr_t(handle), mask)
	if tap == 0 {
		handle.Delete()
		runtime.UnlockOSThread()
		if C.axCheckTrusted(C.Boolean(0)) == C.Boolean(0) {
			result <- ErrAccessibilityPermission
			return
		}
		result <- errors.New("CGEventTapCreate returned NULL")
		return
	}

	source := C.attachTap(tap)
	if source == 0 {
		C.CFRelease(C.CFTypeRef(tap))
		handle.Delete()
		runtime.UnlockOSThread()
		result <- errors.New("failed to attach event tap to run loop")
		return
	}
	reg.tap = tap

	result <- nil
	C.runCurrentRunLoop()
}

//export sideswipeHandleEvent
func sideswipeHandleEvent(_ C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, userInfo unsafe.Pointer) C.CGEventRef {
	reg, ok := cgo.Handle(uintptr(userInfo)).Value().(*tapRegistration)
	if !ok {
		return event
	}

	var kind Kind
	switch eventType {
	case C.kCGEventTapDisabledByTimeout, C.kCGEventTapDisabledByUserInput:
		if reg.tap != 0 {
			C.enableTap(reg.tap)
		}
		return event
	case C.kCGEventOtherMouseDown:
		kind = KindButtonDown
	case C.kCGEventOtherMouseUp:
		kind = KindButtonUp
	default:
		return event
	}

	_, forward := reg.handler(ButtonEvent{
		Kind:    kind,
		Button:  int64(C.cgEventGetButton(event)),
		Payload: unsafe.Pointer(event),
	})
	if !forward {
		return nil
	}
	return event
}

type quartzEvent struct {
	ref C.CGEventRef
}

func (e *quartzEvent) Release() {
	if e.ref == nil {
		return
	}
	C.releaseEvent(e.ref)
	e.ref = nil
}

func (q *quartz) Build(g Gesture) (Synthetic, error) {
	ref := C.createGestureEvent(C.int64_t(g.Subtype), C.int64_t(g.Phase), C.int64_t(g.Direction))
	if ref == nil {
		return nil, errors.New("CGEventCreate returned NULL")
	}
	return &quartzEvent{ref: ref}, nil
}

func (q *quartz) Post(s Synthetic) {
	ev, ok := s.(*quartzEvent)
	if !ok || ev.ref == nil {
		return
	}
	C.postEvent(ev.ref)
}

// maxWindowOwners bounds the window list scan; status items come first.
const maxWindowOwners = 512

// Frontmost resolves the owner of the frontmost normal window on every call.
func (q *quartz) Frontmost() (Application, bool) {
	var layers, pids [maxWindowOwners]C.int32_t
	n := int(C.copyWindowOwners(&layers[0], &pids[0], maxWindowOwners))

	windows := make([]windowOwner, 0, n)
	for i := 0; i < n; i++ {
		windows = append(windows, windowOwner{Layer: int32(layers[i]), PID: int32(pids[i])})
	}
	pid, ok := frontWindowOwner(windows)
	if !ok {
		return Application{}, false
	}

	var bundle, name C.CFStringRef
	if C.copyApplicationInfo(C.int32_t(pid), &bundle, &name) == C.Boolean(0) {
		return Application{}, false
	}
	return Application{Identifier: cfStringToGo(bundle), Name: cfStringToGo(name)}, true
}

func (q *quartz) Accessibility() permissions.Status {
	if C.axCheckTrusted(C.Boolean(0)) == C.Boolean(0) {
		return permissions.StatusDenied
	}
	return permissions.StatusGranted
}

func (q *quartz) InputMonitoring() permissions.Status {
	if C.listenAccessPreflight() == C.Boolean(0) {
		return permissions.StatusDenied
	}
	return permissions.StatusGranted
}

// Request shows the system prompts for both permissions.
func (q *quartz) Request() {
	C.axCheckTrusted(C.Boolean(1))
	C.listenAccessRequest()
}

func cfStringToGo(str C.CFStringRef) string {
	if str == 0 {
		return ""
	}
	defer C.CFRelease(C.CFTypeRef(str))
	length := C.CFStringGetLength(str)
	if length == 0 {
		return ""
	}
	bufSize := C.CFIndex(1 + 4*length)
	buf := make([]byte, int(bufSize))
	if C.CFStringGetCString(str, (*C.char)(unsafe.Pointer(&buf[0])), bufSize, C.kCFStringEncodingUTF8) == C.Boolean(0) {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(&buf[0])))
}
