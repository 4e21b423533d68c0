// Package app wires one push-to-talk pipeline together: hotkey press
// starts a capture, the endpointer decides when it ends, then the
// recording is transcribed, cleaned and delivered.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/beee003/vox-cli/internal/audio"
	"github.com/beee003/vox-cli/internal/cleaner"
	"github.com/beee003/vox-cli/internal/output"
)

// Recorder captures one endpointed recording per call.
type Recorder interface {
	RecordUntilSilence(ctx context.Context, opts audio.RecordOptions) ([]float32, error)
}

// Transcriber converts a recording into text.
type Transcriber interface {
	Transcribe(samples []float32) (string, error)
}

// Deliverer sends transcribed text to its destination.
type Deliverer interface {
	Deliver(ctx context.Context, text string, mode output.Mode) error
}

// StatusUpdater receives pipeline state for the terminal status line.
type StatusUpdater interface {
	SetIdle()
	SetRecording()
	SetProcessing()
	SetError()
	// SetResult reports the delivered text; empty means no speech was
	// detected (a graceful outcome, not an error).
	SetResult(text string)
}

type Config struct {
	Recorder    Recorder
	Transcriber Transcriber
	Deliverer   Deliverer
	Output      output.Mode
	RecordOpts  audio.RecordOptions
	Clean       bool
	Logger      zerolog.Logger
	Status      StatusUpdater // optional - can be nil
}

type App struct {
	rec    Recorder
	stt    Transcriber
	out    Deliverer
	mode   output.Mode
	opts   audio.RecordOptions
	clean  bool
	log    zerolog.Logger
	status StatusUpdater

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	capturing bool
}

func New(cfg Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		rec:    cfg.Recorder,
		stt:    cfg.Transcriber,
		out:    cfg.Deliverer,
		mode:   cfg.Output,
		opts:   cfg.RecordOpts,
		clean:  cfg.Clean,
		log:    cfg.Logger,
		status: cfg.Status,
		ctx:    ctx,
		cancel: cancel,
	}
}

// OnHotkey handles push-to-talk key transitions. A press starts a
// session unless one is already running; a release is a no-op, since
// the endpointer (or the max-duration cap) ends the capture, not the
// key.
func (a *App) OnHotkey(pressed bool) {
	if !pressed {
		return
	}

	a.mu.Lock()
	if a.capturing {
		a.mu.Unlock()
		return
	}
	a.capturing = true
	a.mu.Unlock()

	go a.runSession()
}

func (a *App) runSession() {
	defer func() {
		a.mu.Lock()
		a.capturing = false
		a.mu.Unlock()
		if a.status != nil {
			a.status.SetIdle()
		}
	}()

	a.log.Info().Msg("Recording")
	if a.status != nil {
		a.status.SetRecording()
	}

	samples, err := a.rec.RecordUntilSilence(a.ctx, a.opts)
	if err != nil {
		a.log.Error().Err(err).Msg("Recording failed")
		if a.status != nil {
			a.status.SetError()
		}
		return
	}

	if len(samples) == 0 {
		a.log.Info().Msg("No audio captured")
		if a.status != nil {
			a.status.SetResult("")
		}
		return
	}

	a.log.Info().Int("samples", len(samples)).Msg("Transcribing")
	if a.status != nil {
		a.status.SetProcessing()
	}

	text, err := a.stt.Transcribe(samples)
	if err != nil {
		a.log.Error().Err(err).Msg("Transcription failed")
		if a.status != nil {
			a.status.SetError()
		}
		return
	}

	if a.clean {
		text = cleaner.Clean(text)
	}

	if text == "" {
		a.log.Info().Msg("No speech detected")
		if a.status != nil {
			a.status.SetResult("")
		}
		return
	}

	if err := a.out.Deliver(a.ctx, text, a.mode); err != nil {
		a.log.Error().Err(err).Msg("Delivery failed")
		if a.status != nil {
			a.status.SetError()
		}
		return
	}

	a.log.Info().Str("text", text).Msg("Delivered")
	if a.status != nil {
		a.status.SetResult(text)
	}
}

// IsCapturing reports whether a session is in flight.
func (a *App) IsCapturing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capturing
}

// Close cancels any in-flight session.
func (a *App) Close() error {
	a.cancel()
	return nil
}
