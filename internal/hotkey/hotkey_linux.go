//go:build linux

package hotkey

/*
#cgo pkg-config: x11
#include <X11/Xlib.h>
#include <X11/keysym.h>
#include <stdlib.h>

Display* displayPtr = NULL;

// Grab a key by keysym with any modifier state. Returns the keycode,
// or 0 on failure.
int grabKeysym(unsigned long keysym) {
    if (displayPtr == NULL) {
        displayPtr = XOpenDisplay(NULL);
    }
    if (displayPtr == NULL) return 0;

    int keycode = XKeysymToKeycode(displayPtr, keysym);
    if (keycode == 0) return 0;

    Window root = DefaultRootWindow(displayPtr);
    XGrabKey(displayPtr, keycode, AnyModifier, root, False, GrabModeAsync, GrabModeAsync);
    XSelectInput(displayPtr, root, KeyPressMask | KeyReleaseMask);
    XSync(displayPtr, False);

    return keycode;
}

int checkEvent(int* keycode, int* pressed) {
    if (displayPtr == NULL) return 0;

    XEvent event;
    if (XPending(displayPtr) > 0) {
        XNextEvent(displayPtr, &event);
        if (event.type == KeyPress || event.type == KeyRelease) {
            *keycode = event.xkey.keycode;
            *pressed = (event.type == KeyPress) ? 1 : 0;
            return 1;
        }
    }
    return 0;
}
*/
import "C"

import (
	"fmt"
	"sync"
	"time"
)

// X11 keysyms for the supported trigger keys.
var linuxKeysyms = map[string]uint64{
	"alt":         0xffe9, // Alt_L
	"alt_l":       0xffe9,
	"alt_r":       0xffea,
	"ctrl":        0xffe3, // Control_L
	"ctrl_l":      0xffe3,
	"ctrl_r":      0xffe4,
	"shift":       0xffe1, // Shift_L
	"shift_l":     0xffe1,
	"shift_r":     0xffe2,
	"cmd":         0xffeb, // Super_L
	"cmd_r":       0xffec,
	"f1":          0xffbe,
	"f2":          0xffbf,
	"f3":          0xffc0,
	"f4":          0xffc1,
	"f5":          0xffc2,
	"f6":          0xffc3,
	"f7":          0xffc4,
	"f8":          0xffc5,
	"f9":          0xffc6,
	"f10":         0xffc7,
	"f11":         0xffc8,
	"f12":         0xffc9,
	"scroll_lock": 0xff14,
	"pause":       0xff13,
	"insert":      0xff63,
}

type linuxManager struct {
	mu        sync.Mutex
	callbacks map[int]func(bool)
	stop      chan struct{}
}

// New creates a new Linux hotkey manager using X11
func New() (Manager, error) {
	mgr := &linuxManager{
		callbacks: make(map[int]func(bool)),
		stop:      make(chan struct{}),
	}

	go mgr.eventLoop()

	return mgr, nil
}

func (m *linuxManager) Register(key string, callback func(pressed bool)) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	keysym, ok := linuxKeysyms[key]
	if !ok {
		return fmt.Errorf("key %q is not supported on linux", key)
	}

	keycode := int(C.grabKeysym(C.ulong(keysym)))
	if keycode == 0 {
		return fmt.Errorf("failed to grab key %q", key)
	}

	m.mu.Lock()
	m.callbacks[keycode] = callback
	m.mu.Unlock()
	return nil
}

func (m *linuxManager) eventLoop() {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			var keycode, pressed C.int
			for C.checkEvent(&keycode, &pressed) != 0 {
				m.mu.Lock()
				cb := m.callbacks[int(keycode)]
				m.mu.Unlock()
				if cb != nil {
					cb(pressed == 1)
				}
			}
		}
	}
}

func (m *linuxManager) Close() error {
	close(m.stop)
	return nil
}
