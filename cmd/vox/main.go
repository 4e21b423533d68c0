package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/beee003/vox-cli/internal/app"
	"github.com/beee003/vox-cli/internal/audio"
	"github.com/beee003/vox-cli/internal/cleaner"
	"github.com/beee003/vox-cli/internal/config"
	"github.com/beee003/vox-cli/internal/hotkey"
	"github.com/beee003/vox-cli/internal/logging"
	"github.com/beee003/vox-cli/internal/mcp"
	"github.com/beee003/vox-cli/internal/output"
	"github.com/beee003/vox-cli/internal/permissions"
	"github.com/beee003/vox-cli/internal/whisper"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
)

var (
	verbose bool
	cfg     *config.Config
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "vox",
	Short:         "Voice comments for your terminal",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		log = logging.NewWithLevel(level)
		return nil
	},
}

var (
	modelFlag    string
	outputFlag   string
	keyFlag      string
	deviceFlag   int
	durationFlag float64
	noCleanFlag  bool
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available audio input devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := audio.New()
		if err != nil {
			return err
		}
		defer rec.Close()

		devices, err := rec.ListDevices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No audio input devices found.")
			return nil
		}

		fmt.Println("Available input devices:")
		fmt.Println()
		for _, d := range devices {
			fmt.Printf("  [%d] %s  (channels: %d, rate: %dHz)\n",
				d.Index, d.Name, d.Channels, int(d.DefaultSampleRate))
		}
		return nil
	},
}

var sayCmd = &cobra.Command{
	Use:   "say",
	Short: "One-shot: record, transcribe, and output. Press Ctrl+C to stop early.",
	RunE:  runSay,
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Start push-to-talk daemon. Hold the key to record, silence ends the capture.",
	RunE:  runListen,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the recorder as stdio tools for coding agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := permissions.EnsureCapture(); err != nil {
			return err
		}
		rec, err := audio.New()
		if err != nil {
			return err
		}
		defer rec.Close()

		srv := mcp.NewServer(rec, cfg, Version, log)
		defer srv.Close()
		return srv.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, cmd := range []*cobra.Command{sayCmd, listenCmd} {
		cmd.Flags().StringVar(&modelFlag, "model", "base", "whisper model size (tiny, base, small, medium)")
		cmd.Flags().StringVar(&outputFlag, "output", "clipboard", "where to send transcribed text (clipboard, stdout, paste)")
		cmd.Flags().IntVar(&deviceFlag, "device", -1, "audio input device index (-1 = system default)")
		cmd.Flags().BoolVar(&noCleanFlag, "no-clean", false, "skip code-aware text cleaning")
	}
	sayCmd.Flags().Float64Var(&durationFlag, "duration", 10.0, "max recording seconds")
	listenCmd.Flags().StringVar(&keyFlag, "key", "alt_r", "push-to-talk trigger key")

	rootCmd.AddCommand(devicesCmd, sayCmd, listenCmd, mcpCmd)
}

// applyConfigDefaults lets the config file provide defaults for flags
// the user did not set on the command line.
func applyConfigDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("model") {
		modelFlag = cfg.Model
	}
	if cmd.Flags().Lookup("output") != nil && !cmd.Flags().Changed("output") {
		outputFlag = cfg.Output
	}
	if cmd.Flags().Lookup("device") != nil && !cmd.Flags().Changed("device") {
		deviceFlag = cfg.Device
	}
	if cmd.Flags().Lookup("no-clean") != nil && !cmd.Flags().Changed("no-clean") {
		noCleanFlag = !cfg.Clean
	}
	if cmd.Flags().Lookup("key") != nil && !cmd.Flags().Changed("key") {
		keyFlag = cfg.Key
	}
}

func recordOptions() audio.RecordOptions {
	return audio.RecordOptions{
		EndpointConfig: audio.EndpointConfig{
			ThresholdDb:     cfg.Endpoint.ThresholdDb,
			SilenceDuration: time.Duration(cfg.Endpoint.SilenceSeconds * float64(time.Second)),
			MaxDuration:     time.Duration(cfg.Endpoint.MaxSeconds * float64(time.Second)),
		},
		Device: deviceFlag,
	}
}

func runSay(cmd *cobra.Command, args []string) error {
	applyConfigDefaults(cmd)

	// Validate flags before touching any hardware.
	model, err := whisper.ParseModel(modelFlag)
	if err != nil {
		return err
	}
	mode, err := output.ParseMode(outputFlag)
	if err != nil {
		return err
	}
	if err := permissions.EnsureCapture(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, err := audio.New()
	if err != nil {
		return err
	}
	defer rec.Close()

	fmt.Printf("Recording for up to %gs (speak now, silence stops recording)...\n", durationFlag)

	opts := recordOptions()
	opts.MaxDuration = time.Duration(durationFlag * float64(time.Second))

	samples, err := rec.RecordUntilSilence(ctx, opts)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nRecording stopped.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("No audio captured.")
		return nil
	}

	fmt.Print("Transcribing...")
	stt, err := whisper.New(whisper.Options{
		Model:    model,
		Language: cfg.Whisper.Language,
		Threads:  cfg.Whisper.Threads,
	})
	if err != nil {
		return err
	}
	defer stt.Close()

	text, err := stt.Transcribe(samples)
	if err != nil {
		return err
	}
	if !noCleanFlag {
		text = cleaner.Clean(text)
	}
	if text == "" {
		fmt.Println(" no speech detected.")
		return nil
	}

	if err := output.New().Deliver(ctx, text, mode); err != nil {
		return err
	}
	fmt.Printf(" done.\n>> %s\n", text)
	return nil
}

func runListen(cmd *cobra.Command, args []string) error {
	applyConfigDefaults(cmd)

	model, err := whisper.ParseModel(modelFlag)
	if err != nil {
		return err
	}
	mode, err := output.ParseMode(outputFlag)
	if err != nil {
		return err
	}
	if err := hotkey.ValidateKey(keyFlag); err != nil {
		return err
	}
	if err := permissions.EnsureListen(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Vox v%s - push-to-talk active (key: %s)\n", Version, keyFlag)
	fmt.Printf("Model: %s | Output: %s | Clean: %v\n", model, mode, !noCleanFlag)
	fmt.Println("Press Ctrl+C to quit.")
	fmt.Println()

	fmt.Print("Loading Whisper model...")
	stt, err := whisper.New(whisper.Options{
		Model:    model,
		Language: cfg.Whisper.Language,
		Threads:  cfg.Whisper.Threads,
	})
	if err != nil {
		return err
	}
	defer stt.Close()
	fmt.Println(" done.")

	rec, err := audio.New()
	if err != nil {
		return err
	}
	defer rec.Close()

	application := app.New(app.Config{
		Recorder:    rec,
		Transcriber: stt,
		Deliverer:   output.New(),
		Output:      mode,
		RecordOpts:  recordOptions(),
		Clean:       !noCleanFlag,
		Logger:      log,
		Status:      &statusLine{},
	})
	defer application.Close()

	hk, err := hotkey.New()
	if err != nil {
		return fmt.Errorf("failed to initialize hotkey listener: %w", err)
	}
	defer hk.Close()

	if err := hk.Register(keyFlag, application.OnHotkey); err != nil {
		return fmt.Errorf("failed to register hotkey: %w", err)
	}

	<-ctx.Done()
	fmt.Println("\nShutting down...")
	return nil
}

// statusLine renders pipeline state as a single rewritten terminal line.
type statusLine struct{}

func (s *statusLine) SetIdle()       {}
func (s *statusLine) SetRecording()  { fmt.Print("\rRecording...          ") }
func (s *statusLine) SetProcessing() { fmt.Print("\rTranscribing...       ") }
func (s *statusLine) SetError()      { fmt.Println("\r(error, see log)      ") }

func (s *statusLine) SetResult(text string) {
	if text == "" {
		fmt.Println("\r(no speech detected)  ")
		return
	}
	fmt.Printf("\r>> %s\n", text)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
