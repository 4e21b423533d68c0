//go:build darwin

package permissions

/*
#cgo LDFLAGS: -framework AVFoundation -framework Cocoa
#import <AVFoundation/AVFoundation.h>
#import <Cocoa/Cocoa.h>

int checkMicrophonePermission() {
    AVAuthorizationStatus status = [AVCaptureDevice authorizationStatusForMediaType:AVMediaTypeAudio];
    return (int)status;
}

void requestMicrophonePermission() {
    [AVCaptureDevice requestAccessForMediaType:AVMediaTypeAudio completionHandler:^(BOOL granted) {}];
}

int checkAccessibilityPermission() {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: @YES};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

import "fmt"

const (
	PermissionNotDetermined = 0
	PermissionRestricted    = 1
	PermissionDenied        = 2
	PermissionAuthorized    = 3
)

// CheckMicrophone returns the current microphone permission status
func CheckMicrophone() (int, error) {
	status := int(C.checkMicrophonePermission())
	return status, nil
}

// RequestMicrophone triggers the system microphone permission dialog
func RequestMicrophone() error {
	C.requestMicrophonePermission()
	return nil
}

// CheckAccessibility checks if the process may listen for global keys
func CheckAccessibility() (bool, error) {
	status := int(C.checkAccessibilityPermission())
	return status == 1, nil
}

// EnsureCapture checks microphone access, requesting it when missing.
// Needed by `say` and `mcp`, which never touch the keyboard.
func EnsureCapture() error {
	micStatus, _ := CheckMicrophone()
	if micStatus != PermissionAuthorized {
		fmt.Println("Microphone permission required")
		RequestMicrophone()
		return fmt.Errorf("microphone permission not granted")
	}
	return nil
}

// EnsureListen checks everything the push-to-talk daemon needs:
// microphone access plus accessibility for the global hotkey.
func EnsureListen() error {
	if err := EnsureCapture(); err != nil {
		return err
	}

	axGranted, _ := CheckAccessibility()
	if !axGranted {
		fmt.Println("Accessibility permission required for the push-to-talk key")
		fmt.Println("Go to: System Settings → Privacy & Security → Accessibility")
		return fmt.Errorf("accessibility permission not granted")
	}

	return nil
}
