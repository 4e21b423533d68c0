package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

type Config struct {
	Key      string         `json:"key"`    // push-to-talk trigger key
	Model    string         `json:"model"`  // whisper model size
	Output   string         `json:"output"` // "clipboard", "stdout" or "paste"
	Device   int            `json:"device"` // input device index, -1 = default
	Clean    bool           `json:"clean"`  // code-aware text cleaning
	Whisper  WhisperConfig  `json:"whisper"`
	Endpoint EndpointConfig `json:"endpoint"`
}

type WhisperConfig struct {
	Language string `json:"language"` // "auto", "en", etc.
	Threads  int    `json:"threads"`  // 0 = auto-detect
}

// EndpointConfig tunes silence detection.
type EndpointConfig struct {
	ThresholdDb    float64 `json:"threshold_db"`
	SilenceSeconds float64 `json:"silence_seconds"`
	MaxSeconds     float64 `json:"max_seconds"`
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	path := configPath()

	cfg := &Config{
		Key:    "alt_r",
		Model:  "base",
		Output: "clipboard",
		Device: -1,
		Clean:  true,
		Whisper: WhisperConfig{
			Language: "auto",
			Threads:  0,
		},
		Endpoint: EndpointConfig{
			ThresholdDb:    -40,
			SilenceSeconds: 1.5,
			MaxSeconds:     30,
		},
	}

	// Load existing config if it exists
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := configPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "vox", "config.json")
}

// ModelsPath returns the platform-specific models directory path
func ModelsPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.local/share"
		}
	}

	return filepath.Join(base, "vox", "models")
}
