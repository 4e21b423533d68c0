package whisper

import (
	"strings"
	"testing"
)

func TestParseModelValidSizes(t *testing.T) {
	for _, name := range []string{"tiny", "base", "small", "medium"} {
		m, err := ParseModel(name)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", name, err)
		}
		if string(m) != name {
			t.Fatalf("expected %q, got %q", name, m)
		}
	}
}

func TestParseModelRejectsUnknown(t *testing.T) {
	_, err := ParseModel("large")
	if err == nil {
		t.Fatal("expected error for unknown model size")
	}
	// The error must name the valid options.
	for _, name := range []string{"tiny", "base", "small", "medium"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not list valid size %q", err, name)
		}
	}
}

func TestModelURLsCoverAllSizes(t *testing.T) {
	for name, m := range validModels {
		if _, ok := modelURLs[m]; !ok {
			t.Fatalf("no download URL for model %q", name)
		}
	}
}
