package whisper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/beee003/vox-cli/internal/config"
)

// Model is a whisper model size.
type Model string

const (
	ModelTiny   Model = "tiny"
	ModelBase   Model = "base"
	ModelSmall  Model = "small"
	ModelMedium Model = "medium"
)

var validModels = map[string]Model{
	"tiny":   ModelTiny,
	"base":   ModelBase,
	"small":  ModelSmall,
	"medium": ModelMedium,
}

// ParseModel validates a model size name. Unknown names are rejected
// with the valid set in the error message.
func ParseModel(s string) (Model, error) {
	if m, ok := validModels[s]; ok {
		return m, nil
	}
	names := make([]string, 0, len(validModels))
	for name := range validModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return "", fmt.Errorf("invalid model size %q, must be one of: %s", s, strings.Join(names, ", "))
}

// Transcriber converts captured audio into text.
type Transcriber interface {
	Transcribe(samples []float32) (string, error)
	Close() error
}

// Options configures a transcriber.
type Options struct {
	Model    Model
	Language string // "auto" or an ISO code
	Threads  int    // 0 = auto-detect
}

type whisperTranscriber struct {
	model whisper.Model
	opts  Options
	mu    sync.Mutex
}

// New loads the requested model, downloading it into the models
// directory on first use.
func New(opts Options) (Transcriber, error) {
	modelPath := filepath.Join(config.ModelsPath(), string(opts.Model)+".bin")

	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		if err := downloadModel(opts.Model, modelPath); err != nil {
			return nil, fmt.Errorf("failed to download model: %w", err)
		}
	}

	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	return &whisperTranscriber{
		model: model,
		opts:  opts,
	}, nil
}

// Transcribe runs the whole buffer through the model and returns the
// joined segment text. An empty buffer yields an empty string.
func (w *whisperTranscriber) Transcribe(samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	context, err := w.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("failed to create context: %w", err)
	}

	if w.opts.Threads > 0 {
		context.SetThreads(uint(w.opts.Threads))
	}
	if w.opts.Language != "auto" && w.opts.Language != "" {
		context.SetLanguage(w.opts.Language)
	}
	context.SetTranslate(false)

	if err := context.Process(samples, nil, nil); err != nil {
		return "", fmt.Errorf("whisper process failed: %w", err)
	}

	var parts []string
	for {
		segment, err := context.NextSegment()
		if err != nil {
			break // EOF
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

func (w *whisperTranscriber) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.model != nil {
		w.model.Close()
		w.model = nil
	}
	return nil
}
