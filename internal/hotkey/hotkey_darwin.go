//go:build darwin

package hotkey

/*
#cgo LDFLAGS: -framework Carbon
#include <Carbon/Carbon.h>

// Forward declaration for Go callback
extern void goHotkeyCallback(int pressed);

// Event handler for hotkeys
static OSStatus hotkeyHandler(EventHandlerCallRef nextHandler, EventRef theEvent, void* userData) {
    EventHotKeyID hkRef;
    GetEventParameter(theEvent, kEventParamDirectObject, typeEventHotKeyID, NULL, sizeof(hkRef), NULL, &hkRef);

    UInt32 eventKind = GetEventKind(theEvent);
    int pressed = (eventKind == kEventHotKeyPressed) ? 1 : 0;

    goHotkeyCallback(pressed);

    return noErr;
}

// Register hotkey with Carbon
static int registerHotkey(UInt32 keyCode) {
    EventTypeSpec eventTypes[2];
    eventTypes[0].eventClass = kEventClassKeyboard;
    eventTypes[0].eventKind = kEventHotKeyPressed;
    eventTypes[1].eventClass = kEventClassKeyboard;
    eventTypes[1].eventKind = kEventHotKeyReleased;

    EventHandlerUPP handlerUPP = NewEventHandlerUPP(hotkeyHandler);
    InstallApplicationEventHandler(handlerUPP, 2, eventTypes, NULL, NULL);

    EventHotKeyRef hotKeyRef;
    EventHotKeyID hotKeyID;
    hotKeyID.signature = 'voxk';
    hotKeyID.id = 1;

    OSStatus status = RegisterEventHotKey(keyCode, 0, hotKeyID, GetApplicationEventTarget(), 0, &hotKeyRef);

    return (status == noErr) ? 1 : 0;
}
*/
import "C"

import (
	"fmt"
)

// Carbon virtual key codes. RegisterEventHotKey cannot grab bare
// modifier keys, so only non-modifier triggers work on macOS.
var darwinKeyCodes = map[string]uint32{
	"f1":     122,
	"f2":     120,
	"f3":     99,
	"f4":     118,
	"f5":     96,
	"f6":     97,
	"f7":     98,
	"f8":     100,
	"f9":     101,
	"f10":    109,
	"f11":    103,
	"f12":    111,
	"insert": 114, // help key on older mac keyboards
}

type darwinManager struct {
	callback func(bool)
}

var globalManager *darwinManager

// New creates a new macOS hotkey manager using Carbon
func New() (Manager, error) {
	mgr := &darwinManager{}
	return mgr, nil
}

//export goHotkeyCallback
func goHotkeyCallback(pressed C.int) {
	if globalManager != nil && globalManager.callback != nil {
		globalManager.callback(pressed == 1)
	}
}

func (m *darwinManager) Register(key string, callback func(pressed bool)) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	keyCode, ok := darwinKeyCodes[key]
	if !ok {
		return fmt.Errorf("key %q is not supported on macos, use one of the function keys (f1-f12)", key)
	}

	m.callback = callback
	globalManager = m

	if C.registerHotkey(C.UInt32(keyCode)) == 0 {
		return fmt.Errorf("failed to register hotkey %q", key)
	}

	return nil
}

func (m *darwinManager) Close() error {
	globalManager = nil
	return nil
}
