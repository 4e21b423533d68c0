//go:build linux

package output

/*
#cgo pkg-config: x11 xtst
#include <X11/Xlib.h>
#include <X11/keysym.h>
#include <X11/extensions/XTest.h>

// Send Ctrl+V paste shortcut via XTest
int sendPasteShortcut() {
    Display* display = XOpenDisplay(NULL);
    if (display == NULL) return 0;

    KeyCode ctrl = XKeysymToKeycode(display, XK_Control_L);
    KeyCode v = XKeysymToKeycode(display, XK_v);

    XTestFakeKeyEvent(display, ctrl, True, 0);
    XTestFakeKeyEvent(display, v, True, 0);
    XTestFakeKeyEvent(display, v, False, 0);
    XTestFakeKeyEvent(display, ctrl, False, 0);
    XSync(display, False);

    XCloseDisplay(display);
    return 1;
}
*/
import "C"

import (
	"context"
	"fmt"
	"time"
)

// platformPaste sends Ctrl+V on X11. The clipboard must already hold
// the text.
func platformPaste(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}

	if C.sendPasteShortcut() == 0 {
		return fmt.Errorf("cannot open X display")
	}
	return nil
}
