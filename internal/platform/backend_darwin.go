//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework CoreGraphics -framework ApplicationServices
#import <Cocoa/Cocoa.h>
#import <CoreGraphics/CoreGraphics.h>
#import <ApplicationServices/ApplicationServices.h>

typedef int CGSConnectionID;
typedef int CGSSpaceID;

extern CGSConnectionID CGSMainConnectionID(void);
extern CFArrayRef CGSCopyManagedDisplaySpaces(CGSConnectionID cid);
extern CGSSpaceID CGSGetActiveSpace(CGSConnectionID cid);
extern CGError CGSGetSymbolicHotKeyValue(unsigned short hotKey, unsigned short *outKeyEquivalent,
                                         unsigned short *outVirtualKeyCode, unsigned int *outModifiers);
extern bool CGSIsSymbolicHotKeyEnabled(unsigned short hotKey);
extern CGError CGSSetSymbolicHotKeyEnabled(unsigned short hotKey, bool isEnabled);

#define WM_NO_FRONTMOST_APP 1

typedef struct {
    double x;
    double y;
    double width;
    double height;
} WMRect;

static int wmFocusedWindow(AXUIElementRef *out) {
    NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
    if (app == nil) {
        return WM_NO_FRONTMOST_APP;
    }
    AXUIElementRef appElement = AXUIElementCreateApplication([app processIdentifier]);
    CFTypeRef window = NULL;
    AXError err = AXUIElementCopyAttributeValue(appElement, kAXFocusedWindowAttribute, &window);
    CFRelease(appElement);
    if (err != kAXErrorSuccess) {
        return err;
    }
    *out = (AXUIElementRef)window;
    return 0;
}

static int wmElementFrame(AXUIElementRef element, WMRect *out) {
    CFTypeRef posValue = NULL;
    CFTypeRef sizeValue = NULL;
    AXError err = AXUIElementCopyAttributeValue(element, kAXPositionAttribute, &posValue);
    if (err != kAXErrorSuccess) {
        return err;
    }
    err = AXUIElementCopyAttributeValue(element, kAXSizeAttribute, &sizeValue);
    if (err != kAXErrorSuccess) {
        CFRelease(posValue);
        return err;
    }
    CGPoint origin;
    CGSize size;
    AXValueGetValue((AXValueRef)posValue, kAXValueCGPointType, &origin);
    AXValueGetValue((AXValueRef)sizeValue, kAXValueCGSizeType, &size);
    CFRelease(posValue);
    CFRelease(sizeValue);
    out->x = origin.x;
    out->y = origin.y;
    out->width = size.width;
    out->height = size.height;
    return 0;
}

static int wmWindowFrame(WMRect *out) {
    AXUIElementRef window = NULL;
    int err = wmFocusedWindow(&window);
    if (err != 0) {
        return err;
    }
    err = wmElementFrame(window, out);
    CFRelease(window);
    return err;
}

static int wmSetWindowOrigin(double x, double y) {
    AXUIElementRef window = NULL;
    int err = wmFocusedWindow(&window);
    if (err != 0) {
        return err;
    }
    CGPoint origin = CGPointMake(x, y);
    AXValueRef value = AXValueCreate(kAXValueCGPointType, &origin);
    err = AXUIElementSetAttributeValue(window, kAXPositionAttribute, value);
    CFRelease(value);
    CFRelease(window);
    return err;
}

static int wmSetWindowSize(double width, double height) {
    AXUIElementRef window = NULL;
    int err = wmFocusedWindow(&window);
    if (err != 0) {
        return err;
    }
    CGSize size = CGSizeMake(width, height);
    AXValueRef value = AXValueCreate(kAXValueCGSizeType, &size);
    err = AXUIElementSetAttributeValue(window, kAXSizeAttribute, value);
    CFRelease(value);
    CFRelease(window);
    return err;
}

static int wmWindowFullscreen(int *out) {
    AXUIElementRef window = NULL;
    int err = wmFocusedWindow(&window);
    if (err != 0) {
        return err;
    }
    CFTypeRef value = NULL;
    err = AXUIElementCopyAttributeValue(window, CFSTR("AXFullScreen"), &value);
    CFRelease(window);
    if (err != kAXErrorSuccess) {
        return err;
    }
    *out = CFBooleanGetValue((CFBooleanRef)value) ? 1 : 0;
    CFRelease(value);
    return 0;
}

static int wmSetWindowFullscreen(int fullscreen) {
    AXUIElementRef window = NULL;
    int err = wmFocusedWindow(&window);
    if (err != 0) {
        return err;
    }
    err = AXUIElementSetAttributeValue(window, CFSTR("AXFullScreen"),
                                       fullscreen ? kCFBooleanTrue : kCFBooleanFalse);
    CFRelease(window);
    return err;
}

static int wmCloseButtonFrame(WMRect *out) {
    AXUIElementRef window = NULL;
    int err = wmFocusedWindow(&window);
    if (err != 0) {
        return err;
    }
    CFTypeRef button = NULL;
    err = AXUIElementCopyAttributeValue(window, kAXCloseButtonAttribute, &button);
    CFRelease(window);
    if (err != kAXErrorSuccess) {
        return err;
    }
    err = wmElementFrame((AXUIElementRef)button, out);
    CFRelease(button);
    return err;
}

// Frames are unflipped AppKit coordinates, screens[0] is the main display.
static int wmScreens(WMRect *frames, WMRect *visible, int max) {
    NSArray<NSScreen *> *screens = [NSScreen screens];
    int n = 0;
    for (NSScreen *screen in screens) {
        if (n >= max) {
            break;
        }
        NSRect f = [screen frame];
        NSRect v = [screen visibleFrame];
        frames[n] = (WMRect){f.origin.x, f.origin.y, f.size.width, f.size.height};
        visible[n] = (WMRect){v.origin.x, v.origin.y, v.size.width, v.size.height};
        n++;
    }
    return n;
}

static const char *wmScreenName(int idx) {
    NSArray<NSScreen *> *screens = [NSScreen screens];
    if (idx < 0 || idx >= (int)[screens count]) {
        return "";
    }
    if (@available(macOS 10.15, *)) {
        return [[screens[idx] localizedName] UTF8String];
    }
    return "";
}

static int wmActiveSpace(void) {
    return CGSGetActiveSpace(CGSMainConnectionID());
}

// wmSpaces writes every space id, display after display, into ids and the
// number of spaces per display into counts. Returns the display count.
static int wmSpaces(long long *ids, int maxIDs, int *counts, int maxDisplays) {
    CFArrayRef displays = CGSCopyManagedDisplaySpaces(CGSMainConnectionID());
    if (displays == NULL) {
        return 0;
    }
    int written = 0;
    int nDisplays = 0;
    for (CFIndex i = 0; i < CFArrayGetCount(displays) && nDisplays < maxDisplays; i++) {
        CFDictionaryRef display = CFArrayGetValueAtIndex(displays, i);
        CFArrayRef spaces = CFDictionaryGetValue(display, CFSTR("Spaces"));
        int count = 0;
        if (spaces != NULL) {
            for (CFIndex j = 0; j < CFArrayGetCount(spaces) && written < maxIDs; j++) {
                CFDictionaryRef space = CFArrayGetValueAtIndex(spaces, j);
                CFNumberRef id64 = CFDictionaryGetValue(space, CFSTR("id64"));
                long long id = 0;
                if (id64 != NULL) {
                    CFNumberGetValue(id64, kCFNumberLongLongType, &id);
                }
                ids[written++] = id;
                count++;
            }
        }
        counts[nDisplays++] = count;
    }
    CFRelease(displays);
    return nDisplays;
}

static int wmPostMouse(int kind, double x, double y) {
    CGEventType type;
    switch (kind) {
    case 0: type = kCGEventMouseMoved; break;
    case 1: type = kCGEventLeftMouseDown; break;
    case 2: type = kCGEventLeftMouseDragged; break;
    default: type = kCGEventLeftMouseUp; break;
    }
    CGEventRef event = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), kCGMouseButtonLeft);
    if (event == NULL) {
        return -1;
    }
    CGEventSetFlags(event, 0);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
    return 0;
}

static int wmPostKey(unsigned short code, int down, unsigned long long flags) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, code, down ? true : false);
    if (event == NULL) {
        return -1;
    }
    CGEventSetFlags(event, (CGEventFlags)flags);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
    return 0;
}

static int wmHotKeyValue(unsigned short slot, unsigned short *code, unsigned int *mods) {
    return CGSGetSymbolicHotKeyValue(slot, NULL, code, mods);
}

static int wmHotKeyEnabled(unsigned short slot) {
    return CGSIsSymbolicHotKeyEnabled(slot) ? 1 : 0;
}

static int wmSetHotKeyEnabled(unsigned short slot, int enabled) {
    return CGSSetSymbolicHotKeyEnabled(slot, enabled ? true : false);
}
*/
import "C"

import (
	"fmt"

	"github.com/1broseidon/wmgr/internal/geometry"
)

const (
	maxScreens = 32
	maxSpaces  = 256

	axErrorNoValue = -25212
)

// DarwinBackend drives the focused window through the accessibility API and
// reads displays and spaces from AppKit and the window server.
type DarwinBackend struct{}

var _ Backend = (*DarwinBackend)(nil)
var _ DisplayNamer = (*DarwinBackend)(nil)

// NewDarwinBackend returns the macOS backend.
func NewDarwinBackend() *DarwinBackend {
	return &DarwinBackend{}
}

// Open returns the native backend for this platform. Options only tune X11.
func Open(opts Options) (Backend, error) {
	return NewDarwinBackend(), nil
}

func (b *DarwinBackend) Close() error { return nil }

func (b *DarwinBackend) OnMainThread() bool {
	return IsMainThread()
}

// axError translates an accessibility status into the error taxonomy.
func axError(op string, code C.int) error {
	switch code {
	case 0:
		return nil
	case C.WM_NO_FRONTMOST_APP, axErrorNoValue:
		return ErrNoFocusedWindow
	}
	return CallFailed(op, int(code), nil)
}

func rectFromC(r C.WMRect) geometry.Rect {
	return geometry.NewRect(float64(r.x), float64(r.y), float64(r.width), float64(r.height))
}

func (b *DarwinBackend) FocusedWindowFrame() (geometry.Rect, error) {
	var r C.WMRect
	if err := axError("AXUIElementCopyAttributeValue(AXPosition/AXSize)", C.wmWindowFrame(&r)); err != nil {
		return geometry.Rect{}, err
	}
	return rectFromC(r), nil
}

// SetFocusedWindowFrame writes position, then size.
func (b *DarwinBackend) SetFocusedWindowFrame(frame geometry.Rect) error {
	if err := b.SetFocusedWindowOrigin(frame.Origin); err != nil {
		return err
	}
	code := C.wmSetWindowSize(C.double(frame.Size.Width), C.double(frame.Size.Height))
	return axError("AXUIElementSetAttributeValue(AXSize)", code)
}

func (b *DarwinBackend) SetFocusedWindowOrigin(origin geometry.Point) error {
	code := C.wmSetWindowOrigin(C.double(origin.X), C.double(origin.Y))
	return axError("AXUIElementSetAttributeValue(AXPosition)", code)
}

func (b *DarwinBackend) FocusedWindowFullscreen() (bool, error) {
	var v C.int
	if err := axError("AXUIElementCopyAttributeValue(AXFullScreen)", C.wmWindowFullscreen(&v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (b *DarwinBackend) SetFocusedWindowFullscreen(fullscreen bool) error {
	v := C.int(0)
	if fullscreen {
		v = 1
	}
	return axError("AXUIElementSetAttributeValue(AXFullScreen)", C.wmSetWindowFullscreen(v))
}

func (b *DarwinBackend) FocusedWindowCloseButton() (geometry.Rect, error) {
	var r C.WMRect
	if err := axError("AXUIElementCopyAttributeValue(AXCloseButton)", C.wmCloseButtonFrame(&r)); err != nil {
		return geometry.Rect{}, err
	}
	return rectFromC(r), nil
}

func (b *DarwinBackend) screens() ([]geometry.Rect, []geometry.Rect, error) {
	if !IsMainThread() {
		return nil, nil, ErrWrongThread
	}
	frames := make([]C.WMRect, maxScreens)
	visible := make([]C.WMRect, maxScreens)
	n := int(C.wmScreens(&frames[0], &visible[0], C.int(maxScreens)))

	outFrames := make([]geometry.Rect, n)
	outVisible := make([]geometry.Rect, n)
	for i := 0; i < n; i++ {
		outFrames[i] = rectFromC(frames[i])
		outVisible[i] = rectFromC(visible[i])
	}
	return outFrames, outVisible, nil
}

func (b *DarwinBackend) DisplayFrames() ([]geometry.Rect, error) {
	frames, _, err := b.screens()
	return frames, err
}

func (b *DarwinBackend) DisplayUsableAreas() ([]geometry.Rect, error) {
	_, visible, err := b.screens()
	return visible, err
}

func (b *DarwinBackend) DisplayNames() ([]string, error) {
	frames, _, err := b.screens()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(frames))
	for i := range names {
		names[i] = C.GoString(C.wmScreenName(C.int(i)))
	}
	return names, nil
}

func (b *DarwinBackend) ActiveWorkspace() (WorkspaceID, error) {
	return WorkspaceID(C.wmActiveSpace()), nil
}

func (b *DarwinBackend) WorkspaceGroups() ([][]WorkspaceID, error) {
	ids := make([]C.longlong, maxSpaces)
	counts := make([]C.int, maxScreens)
	n := int(C.wmSpaces(&ids[0], C.int(maxSpaces), &counts[0], C.int(maxScreens)))

	groups := make([][]WorkspaceID, 0, n)
	next := 0
	for i := 0; i < n; i++ {
		group := make([]WorkspaceID, 0, int(counts[i]))
		for j := 0; j < int(counts[i]); j++ {
			group = append(group, WorkspaceID(ids[next]))
			next++
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (b *DarwinBackend) Post(ev Event) error {
	var code C.int
	switch ev.Kind {
	case PointerMove, PointerDown, PointerDrag, PointerUp:
		code = C.wmPostMouse(C.int(ev.Kind), C.double(ev.Point.X), C.double(ev.Point.Y))
	case KeyDown, KeyUp:
		down := C.int(0)
		if ev.Kind == KeyDown {
			down = 1
		}
		code = C.wmPostKey(C.ushort(ev.Key.Code), down, C.ulonglong(ev.Key.Mods))
	default:
		return fmt.Errorf("unknown event kind %d", int(ev.Kind))
	}
	if code != 0 {
		return CallFailed("CGEventCreate("+ev.Kind.String()+")", int(code), nil)
	}
	return nil
}

func (b *DarwinBackend) SymbolicHotKey(slot int) (HotKey, error) {
	var code C.ushort
	var mods C.uint
	if status := C.wmHotKeyValue(C.ushort(slot), &code, &mods); status != 0 {
		return HotKey{}, CallFailed("CGSGetSymbolicHotKeyValue", int(status), nil)
	}
	return HotKey{Code: uint16(code), Mods: uint64(mods)}, nil
}

func (b *DarwinBackend) SymbolicHotKeyEnabled(slot int) (bool, error) {
	return C.wmHotKeyEnabled(C.ushort(slot)) != 0, nil
}

func (b *DarwinBackend) SetSymbolicHotKeyEnabled(slot int, enabled bool) error {
	v := C.int(0)
	if enabled {
		v = 1
	}
	if status := C.wmSetHotKeyEnabled(C.ushort(slot), v); status != 0 {
		return CallFailed("CGSSetSymbolicHotKeyEnabled", int(status), nil)
	}
	return nil
}
