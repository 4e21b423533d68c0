package hotkey

import (
	"strings"
	"testing"
)

func TestValidateKeyAcceptsKnownNames(t *testing.T) {
	for _, name := range []string{"alt_r", "ctrl_l", "f6", "scroll_lock"} {
		if err := ValidateKey(name); err != nil {
			t.Fatalf("expected %q to validate, got %v", name, err)
		}
	}
}

func TestValidateKeyRejectsUnknown(t *testing.T) {
	err := ValidateKey("super_mega_key")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	// The error must list the valid options.
	if !strings.Contains(err.Error(), "alt_r") || !strings.Contains(err.Error(), "f12") {
		t.Fatalf("error %q does not list valid keys", err)
	}
}

func TestValidKeysSorted(t *testing.T) {
	keys := ValidKeys()
	if len(keys) == 0 {
		t.Fatal("no valid keys")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %q before %q", keys[i-1], keys[i])
		}
	}
}
