package config

import (
	"runtime"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Key != "alt_r" {
		t.Fatalf("unexpected default key: %q", cfg.Key)
	}
	if cfg.Model != "base" || cfg.Output != "clipboard" {
		t.Fatalf("unexpected defaults: model=%q output=%q", cfg.Model, cfg.Output)
	}
	if cfg.Device != -1 {
		t.Fatalf("expected default device -1, got %d", cfg.Device)
	}
	if !cfg.Clean {
		t.Fatal("cleaning should default to on")
	}
	if cfg.Endpoint.ThresholdDb != -40 || cfg.Endpoint.SilenceSeconds != 1.5 || cfg.Endpoint.MaxSeconds != 30 {
		t.Fatalf("unexpected endpoint defaults: %+v", cfg.Endpoint)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("config path uses APPDATA on windows")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Key = "f6"
	cfg.Model = "small"
	cfg.Endpoint.SilenceSeconds = 2.0
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Key != "f6" || loaded.Model != "small" {
		t.Fatalf("values not persisted: %+v", loaded)
	}
	if loaded.Endpoint.SilenceSeconds != 2.0 {
		t.Fatalf("endpoint tuning not persisted: %+v", loaded.Endpoint)
	}
}
