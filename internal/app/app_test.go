package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/beee003/vox-cli/internal/audio"
	"github.com/beee003/vox-cli/internal/output"
)

// Mock implementations for testing

type mockRecorder struct {
	mu      sync.Mutex
	calls   int
	release chan struct{} // blocks RecordUntilSilence until closed
	samples []float32
	err     error
}

func (m *mockRecorder) RecordUntilSilence(ctx context.Context, opts audio.RecordOptions) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.samples, m.err
}

func (m *mockRecorder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockTranscriber struct {
	text string
	err  error
}

func (m *mockTranscriber) Transcribe(samples []float32) (string, error) {
	return m.text, m.err
}

type mockDeliverer struct {
	mu    sync.Mutex
	texts []string
}

func (m *mockDeliverer) Deliver(ctx context.Context, text string, mode output.Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return nil
}

func (m *mockDeliverer) delivered() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

func newTestApp(rec Recorder, stt Transcriber, out Deliverer) *App {
	return New(Config{
		Recorder:    rec,
		Transcriber: stt,
		Deliverer:   out,
		Output:      output.ModeStdout,
		RecordOpts:  audio.DefaultRecordOptions(),
		Clean:       true,
		Logger:      zerolog.Nop(),
	})
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestKeyPressStartsSession(t *testing.T) {
	rec := &mockRecorder{samples: []float32{0.5}}
	out := &mockDeliverer{}
	a := newTestApp(rec, &mockTranscriber{text: "hello world"}, out)
	defer a.Close()

	a.OnHotkey(true)
	waitFor(t, func() bool { return !a.IsCapturing() && len(out.delivered()) > 0 }, "session did not complete")

	got := out.delivered()
	if len(got) != 1 {
		t.Fatalf("expected one delivery, got %d", len(got))
	}
	// Cleaning capitalizes the first letter.
	if got[0] != "Hello world" {
		t.Fatalf("expected cleaned text, got %q", got[0])
	}
}

func TestKeyReleaseDoesNotStartOrCancel(t *testing.T) {
	rec := &mockRecorder{samples: []float32{0.5}, release: make(chan struct{})}
	out := &mockDeliverer{}
	a := newTestApp(rec, &mockTranscriber{text: "hi"}, out)
	defer a.Close()

	// Release with no session: nothing starts.
	a.OnHotkey(false)
	if a.IsCapturing() {
		t.Fatal("release must not start a session")
	}

	// Press starts; release while capturing must not cancel it.
	a.OnHotkey(true)
	waitFor(t, func() bool { return a.IsCapturing() }, "session did not start")
	a.OnHotkey(false)
	if !a.IsCapturing() {
		t.Fatal("release must not cancel an in-flight capture")
	}

	close(rec.release)
	waitFor(t, func() bool { return !a.IsCapturing() }, "session did not complete")
}

func TestSecondPressIgnoredWhileCapturing(t *testing.T) {
	rec := &mockRecorder{samples: []float32{0.5}, release: make(chan struct{})}
	a := newTestApp(rec, &mockTranscriber{text: "hi"}, &mockDeliverer{})
	defer a.Close()

	a.OnHotkey(true)
	waitFor(t, func() bool { return a.IsCapturing() }, "session did not start")
	a.OnHotkey(true)
	a.OnHotkey(true)

	close(rec.release)
	waitFor(t, func() bool { return !a.IsCapturing() }, "session did not complete")

	if rec.callCount() != 1 {
		t.Fatalf("expected one recording session, got %d", rec.callCount())
	}
}

func TestEmptyRecordingDeliversNothing(t *testing.T) {
	rec := &mockRecorder{samples: []float32{}}
	out := &mockDeliverer{}
	a := newTestApp(rec, &mockTranscriber{text: "should never be used"}, out)
	defer a.Close()

	a.OnHotkey(true)
	waitFor(t, func() bool { return !a.IsCapturing() }, "session did not complete")

	if len(out.delivered()) != 0 {
		t.Fatalf("expected no delivery for empty recording, got %v", out.delivered())
	}
}

func TestEmptyTranscriptDeliversNothing(t *testing.T) {
	rec := &mockRecorder{samples: []float32{0.5}}
	out := &mockDeliverer{}
	a := newTestApp(rec, &mockTranscriber{text: ""}, out)
	defer a.Close()

	a.OnHotkey(true)
	waitFor(t, func() bool { return !a.IsCapturing() }, "session did not complete")

	if len(out.delivered()) != 0 {
		t.Fatalf("expected no delivery for empty transcript, got %v", out.delivered())
	}
}
