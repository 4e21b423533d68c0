package output

import (
	"context"
	"strings"
	"testing"
)

func TestParseModeValid(t *testing.T) {
	for _, name := range []string{"clipboard", "stdout", "paste"} {
		m, err := ParseMode(name)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", name, err)
		}
		if string(m) != name {
			t.Fatalf("expected %q, got %q", name, m)
		}
	}
}

func TestParseModeRejectsUnknown(t *testing.T) {
	_, err := ParseMode("printer")
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	for _, name := range []string{"clipboard", "stdout", "paste"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not list valid mode %q", err, name)
		}
	}
}

func TestDeliverStdout(t *testing.T) {
	var buf strings.Builder
	d := &Deliverer{Stdout: &buf}

	if err := d.Deliver(context.Background(), "hello world", ModeStdout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "hello world" {
		t.Fatalf("expected text on stdout, got %q", buf.String())
	}
}
