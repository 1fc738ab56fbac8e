//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework AppKit -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>
#include <stdlib.h>

enum {
    axqOther = 0,
    axqString,
    axqBool,
    axqNumber,
    axqElement,
    axqArray,
    axqPoint,
    axqSize,
    axqRect,
};

static int axq_trusted(void) { return AXIsProcessTrusted(); }

static uintptr_t axq_app(pid_t pid) { return (uintptr_t)AXUIElementCreateApplication(pid); }
static uintptr_t axq_system(void) { return (uintptr_t)AXUIElementCreateSystemWide(); }

static void axq_retain(uintptr_t r) { if (r) CFRetain((CFTypeRef)r); }
static void axq_release(uintptr_t r) { if (r) CFRelease((CFTypeRef)r); }
static uintptr_t axq_hash(uintptr_t r) { return (uintptr_t)CFHash((CFTypeRef)r); }
static int axq_equal(uintptr_t a, uintptr_t b) { return CFEqual((CFTypeRef)a, (CFTypeRef)b); }

static CFStringRef axq_cfstr(const char *s) {
    return CFStringCreateWithCString(NULL, s, kCFStringEncodingUTF8);
}

// axq_copy returns a retained attribute value, or 0. err receives the AXError.
static uintptr_t axq_copy(uintptr_t el, const char *name, int *err) {
    CFStringRef n = axq_cfstr(name);
    CFTypeRef v = NULL;
    *err = AXUIElementCopyAttributeValue((AXUIElementRef)el, n, &v);
    CFRelease(n);
    return (uintptr_t)v;
}

static int axq_kind(uintptr_t v) {
    CFTypeID t = CFGetTypeID((CFTypeRef)v);
    if (t == CFStringGetTypeID()) return axqString;
    if (t == CFBooleanGetTypeID()) return axqBool;
    if (t == CFNumberGetTypeID()) return axqNumber;
    if (t == AXUIElementGetTypeID()) return axqElement;
    if (t == CFArrayGetTypeID()) return axqArray;
    if (t == AXValueGetTypeID()) {
        switch (AXValueGetType((AXValueRef)v)) {
        case kAXValueCGPointType: return axqPoint;
        case kAXValueCGSizeType: return axqSize;
        case kAXValueCGRectType: return axqRect;
        default: return axqOther;
        }
    }
    return axqOther;
}

// axq_string returns a malloc'd UTF-8 copy that the caller frees.
static char *axq_string(uintptr_t v) {
    CFStringRef s = (CFStringRef)v;
    CFIndex n = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(n);
    if (!CFStringGetCString(s, buf, n, kCFStringEncodingUTF8)) buf[0] = 0;
    return buf;
}

static int axq_bool(uintptr_t v) { return CFBooleanGetValue((CFBooleanRef)v); }

static double axq_number(uintptr_t v) {
    double d = 0;
    CFNumberGetValue((CFNumberRef)v, kCFNumberDoubleType, &d);
    return d;
}

static long axq_count(uintptr_t v) { return CFArrayGetCount((CFArrayRef)v); }
static uintptr_t axq_at(uintptr_t v, long i) { return (uintptr_t)CFArrayGetValueAtIndex((CFArrayRef)v, i); }

static void axq_geometry(uintptr_t v, double *out) {
    CGRect r = CGRectZero;
    switch (AXValueGetType((AXValueRef)v)) {
    case kAXValueCGPointType: AXValueGetValue((AXValueRef)v, kAXValueCGPointType, &r.origin); break;
    case kAXValueCGSizeType: AXValueGetValue((AXValueRef)v, kAXValueCGSizeType, &r.size); break;
    case kAXValueCGRectType: AXValueGetValue((AXValueRef)v, kAXValueCGRectType, &r); break;
    default: break;
    }
    out[0] = r.origin.x;
    out[1] = r.origin.y;
    out[2] = r.size.width;
    out[3] = r.size.height;
}

static uintptr_t axq_names(uintptr_t el) {
    CFArrayRef names = NULL;
    if (AXUIElementCopyAttributeNames((AXUIElementRef)el, &names) != kAXErrorSuccess) return 0;
    return (uintptr_t)names;
}

static int axq_set(uintptr_t el, const char *name, CFTypeRef value) {
    CFStringRef n = axq_cfstr(name);
    AXError e = AXUIElementSetAttributeValue((AXUIElementRef)el, n, value);
    CFRelease(n);
    return e;
}

static int axq_set_string(uintptr_t el, const char *name, const char *value) {
    CFStringRef v = axq_cfstr(value);
    int e = axq_set(el, name, v);
    CFRelease(v);
    return e;
}

static int axq_set_bool(uintptr_t el, const char *name, int value) {
    return axq_set(el, name, value ? kCFBooleanTrue : kCFBooleanFalse);
}

static int axq_set_number(uintptr_t el, const char *name, double value) {
    CFNumberRef v = CFNumberCreate(NULL, kCFNumberDoubleType, &value);
    int e = axq_set(el, name, v);
    CFRelease(v);
    return e;
}

static int axq_set_element(uintptr_t el, const char *name, uintptr_t value) {
    return axq_set(el, name, (CFTypeRef)value);
}

static int axq_perform(uintptr_t el, const char *action) {
    CFStringRef a = axq_cfstr(action);
    AXError e = AXUIElementPerformAction((AXUIElementRef)el, a);
    CFRelease(a);
    return e;
}

static pid_t axq_find_app(const char *name) {
    @autoreleasepool {
        NSString *want = [NSString stringWithUTF8String:name];
        for (NSRunningApplication *app in [[NSWorkspace sharedWorkspace] runningApplications]) {
            if (app.localizedName && [app.localizedName caseInsensitiveCompare:want] == NSOrderedSame) {
                return app.processIdentifier;
            }
        }
    }
    return 0;
}

static pid_t axq_frontmost(void) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return app ? app.processIdentifier : 0;
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

const (
	kindOther   = int(C.axqOther)
	kindString  = int(C.axqString)
	kindBool    = int(C.axqBool)
	kindNumber  = int(C.axqNumber)
	kindElement = int(C.axqElement)
	kindArray   = int(C.axqArray)
	kindPoint   = int(C.axqPoint)
	kindSize    = int(C.axqSize)
	kindRect    = int(C.axqRect)
)

const (
	axSuccess        = int(C.kAXErrorSuccess)
	axInvalidElement = int(C.kAXErrorInvalidUIElement)
	axNoValue        = int(C.kAXErrorNoValue)
)

// cf are the CoreFoundation ownership hooks the registry runs on.
var cf = refOps{
	hash:    func(h uintptr) uintptr { return uintptr(C.axq_hash(C.uintptr_t(h))) },
	equal:   func(a, b uintptr) bool { return C.axq_equal(C.uintptr_t(a), C.uintptr_t(b)) != 0 },
	retain:  func(h uintptr) { C.axq_retain(C.uintptr_t(h)) },
	release: func(h uintptr) { C.axq_release(C.uintptr_t(h)) },
}

// CheckAccessibilityPermission returns an error with instructions when the
// process is not trusted for accessibility.
func CheckAccessibilityPermission() error {
	if C.axq_trusted() == 0 {
		return fmt.Errorf(
			"accessibility permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

func appElement(pid int) uintptr { return uintptr(C.axq_app(C.pid_t(pid))) }

func systemElement() uintptr { return uintptr(C.axq_system()) }

func findApp(name string) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return int(C.axq_find_app(cName))
}

func frontmostPID() int { return int(C.axq_frontmost()) }

// copyAttr returns a retained value (0 when unset) and the AXError code.
func copyAttr(h uintptr, name string) (uintptr, int) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	var code C.int
	v := C.axq_copy(C.uintptr_t(h), cName, &code)
	return uintptr(v), int(code)
}

func kindOf(v uintptr) int { return int(C.axq_kind(C.uintptr_t(v))) }

func goString(v uintptr) string {
	s := C.axq_string(C.uintptr_t(v))
	defer C.free(unsafe.Pointer(s))
	return C.GoString(s)
}

func goBool(v uintptr) bool { return C.axq_bool(C.uintptr_t(v)) != 0 }

func goNumber(v uintptr) float64 { return float64(C.axq_number(C.uintptr_t(v))) }

func arrayLen(v uintptr) int { return int(C.axq_count(C.uintptr_t(v))) }

func arrayAt(v uintptr, i int) uintptr { return uintptr(C.axq_at(C.uintptr_t(v), C.long(i))) }

func geometry(v uintptr) [4]float64 {
	var out [4]C.double
	C.axq_geometry(C.uintptr_t(v), &out[0])
	return [4]float64{float64(out[0]), float64(out[1]), float64(out[2]), float64(out[3])}
}

func attrNames(h uintptr) []string {
	arr := uintptr(C.axq_names(C.uintptr_t(h)))
	if arr == 0 {
		return nil
	}
	defer cf.release(arr)
	n := arrayLen(arr)
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, goString(arrayAt(arr, i)))
	}
	return names
}

func setString(h uintptr, name, value string) int {
	cName, cValue := C.CString(name), C.CString(value)
	defer C.free(unsafe.Pointer(cName))
	defer C.free(unsafe.Pointer(cValue))
	return int(C.axq_set_string(C.uintptr_t(h), cName, cValue))
}

func setBool(h uintptr, name string, value bool) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	v := C.int(0)
	if value {
		v = 1
	}
	return int(C.axq_set_bool(C.uintptr_t(h), cName, v))
}

func setNumber(h uintptr, name string, value float64) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return int(C.axq_set_number(C.uintptr_t(h), cName, C.double(value)))
}

func setElement(h uintptr, name string, value uintptr) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return int(C.axq_set_element(C.uintptr_t(h), cName, C.uintptr_t(value)))
}

func perform(h uintptr, action string) int {
	cAction := C.CString(action)
	defer C.free(unsafe.Pointer(cAction))
	return int(C.axq_perform(C.uintptr_t(h), cAction))
}
