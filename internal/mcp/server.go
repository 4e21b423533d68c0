// Package mcp exposes the recorder over stdio as tools a coding agent
// can call: record_voice and list_microphones. All logging goes to
// stderr so the stdio transport stays clean.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/beee003/vox-cli/internal/audio"
	"github.com/beee003/vox-cli/internal/cleaner"
	"github.com/beee003/vox-cli/internal/config"
	"github.com/beee003/vox-cli/internal/whisper"
)

// Server serves the vox tools over stdio. Transcribers are loaded
// lazily and cached per model size, so the first record_voice call for
// a size pays the model load.
type Server struct {
	rec     *audio.Recorder
	cfg     *config.Config
	version string
	log     zerolog.Logger

	mu           sync.Mutex
	transcribers map[whisper.Model]whisper.Transcriber
}

func NewServer(rec *audio.Recorder, cfg *config.Config, version string, log zerolog.Logger) *Server {
	return &Server{
		rec:          rec,
		cfg:          cfg,
		version:      version,
		log:          log,
		transcribers: make(map[whisper.Model]whisper.Transcriber),
	}
}

// Run serves until stdin closes.
func (s *Server) Run() error {
	srv := server.NewMCPServer("vox", s.version)

	srv.AddTool(mcp.NewTool("record_voice",
		mcp.WithDescription("Record from the microphone until silence, then transcribe."),
		mcp.WithNumber("max_duration",
			mcp.Description("Maximum recording length in seconds."),
			mcp.DefaultNumber(15),
		),
		mcp.WithString("model",
			mcp.Description("Whisper model size."),
			mcp.DefaultString("base"),
			mcp.Enum("tiny", "base", "small", "medium"),
		),
		mcp.WithBoolean("clean_text",
			mcp.Description("Apply code-aware text cleaning."),
			mcp.DefaultBool(true),
		),
		mcp.WithNumber("device",
			mcp.Description("Audio input device index. Omit for the system default."),
		),
	), s.recordVoice)

	srv.AddTool(mcp.NewTool("list_microphones",
		mcp.WithDescription("List available audio input devices."),
	), s.listMicrophones)

	return server.ServeStdio(srv)
}

func (s *Server) recordVoice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := whisper.ParseModel(req.GetString("model", "base"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	maxDuration := req.GetFloat("max_duration", 15)
	cleanText := req.GetBool("clean_text", true)
	device := req.GetInt("device", -1)

	opts := audio.RecordOptions{
		EndpointConfig: audio.EndpointConfig{
			ThresholdDb:     s.cfg.Endpoint.ThresholdDb,
			SilenceDuration: time.Duration(s.cfg.Endpoint.SilenceSeconds * float64(time.Second)),
			MaxDuration:     time.Duration(maxDuration * float64(time.Second)),
		},
		Device: device,
	}

	s.log.Info().
		Float64("max_duration", maxDuration).
		Str("model", string(model)).
		Int("device", device).
		Msg("Recording")

	samples, err := s.rec.RecordUntilSilence(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording failed: %v", err)), nil
	}
	if len(samples) == 0 {
		return mcp.NewToolResultText("No audio captured."), nil
	}

	stt, err := s.transcriber(model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading model failed: %v", err)), nil
	}

	s.log.Info().Int("samples", len(samples)).Msg("Transcribing")
	text, err := stt.Transcribe(samples)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("transcription failed: %v", err)), nil
	}

	if cleanText {
		text = cleaner.Clean(text)
	}

	s.log.Info().Str("text", text).Msg("Result")
	return mcp.NewToolResultText(text), nil
}

func (s *Server) listMicrophones(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.rec.ListDevices()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing devices failed: %v", err)), nil
	}
	if len(devices) == 0 {
		return mcp.NewToolResultText("No input devices found."), nil
	}

	lines := make([]string, 0, len(devices))
	for _, d := range devices {
		lines = append(lines, fmt.Sprintf("[%d] %s (channels=%d)", d.Index, d.Name, d.Channels))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) transcriber(model whisper.Model) (whisper.Transcriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transcribers[model]; ok {
		return t, nil
	}

	t, err := whisper.New(whisper.Options{
		Model:    model,
		Language: s.cfg.Whisper.Language,
		Threads:  s.cfg.Whisper.Threads,
	})
	if err != nil {
		return nil, err
	}
	s.transcribers[model] = t
	return t, nil
}

// Close releases the cached transcribers.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.transcribers {
		t.Close()
	}
	s.transcribers = make(map[whisper.Model]whisper.Transcriber)
	return nil
}
