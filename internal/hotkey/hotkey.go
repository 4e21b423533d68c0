// Package hotkey provides the global push-to-talk key listener. The
// callback fires with pressed=true when the trigger key goes down and
// pressed=false when it comes back up, from the listener's own
// goroutine.
package hotkey

import (
	"fmt"
	"sort"
	"strings"
)

// Manager defines the interface for global hotkey management
type Manager interface {
	Register(key string, callback func(pressed bool)) error
	Close() error
}

// keyNames is the closed set of trigger key names. Platform listeners
// map these to their native key codes; a platform may support only a
// subset.
var keyNames = map[string]bool{
	"alt":   true, "alt_l": true, "alt_r": true,
	"ctrl":  true, "ctrl_l": true, "ctrl_r": true,
	"shift": true, "shift_l": true, "shift_r": true,
	"cmd":   true, "cmd_r": true,
	"f1": true, "f2": true, "f3": true, "f4": true,
	"f5": true, "f6": true, "f7": true, "f8": true,
	"f9": true, "f10": true, "f11": true, "f12": true,
	"scroll_lock": true, "pause": true, "insert": true,
}

// ValidKeys returns the accepted key names, sorted.
func ValidKeys() []string {
	names := make([]string, 0, len(keyNames))
	for name := range keyNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateKey rejects unknown key names with the valid set in the
// error message.
func ValidateKey(name string) error {
	if keyNames[name] {
		return nil
	}
	return fmt.Errorf("unknown key %q, valid keys: %s", name, strings.Join(ValidKeys(), ", "))
}
