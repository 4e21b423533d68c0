package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// queuePollTimeout is how long the consumer waits on the block queue
// before re-checking for cancellation. A timeout is a no-op iteration,
// not an error.
const queuePollTimeout = 100 * time.Millisecond

// RecordOptions configures a silence-endpointed capture.
type RecordOptions struct {
	EndpointConfig
	// Device is an input device index; negative selects the default.
	Device int
}

// DefaultRecordOptions returns the standard tuning: -40 dBFS threshold,
// 1.5 s of silence ends the capture, 30 s hard cap, default device.
func DefaultRecordOptions() RecordOptions {
	return RecordOptions{EndpointConfig: DefaultEndpointConfig(), Device: -1}
}

// Recorder owns the portaudio lifecycle and runs capture sessions. One
// capture may be active at a time; sessions are sequential.
type Recorder struct {
	mu     sync.Mutex
	closed bool
}

// New initializes the audio subsystem.
func New() (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initializing portaudio: %v", ErrDeviceUnavailable, err)
	}
	return &Recorder{}, nil
}

// Close releases the audio subsystem. Closing twice is a no-op.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("%w: terminating portaudio: %v", ErrStreamFailure, err)
	}
	return nil
}

// RecordUntilSilence captures from the microphone until the speaker has
// been silent for the configured duration (or the maximum duration is
// reached) and returns the normalized recording. An empty buffer means
// no audio was captured; it is not an error. A mid-stream driver
// failure discards any partial audio and surfaces as ErrStreamFailure.
func (r *Recorder) RecordUntilSilence(ctx context.Context, opts RecordOptions) ([]float32, error) {
	dev, err := r.inputDevice(opts.Device)
	if err != nil {
		return nil, err
	}

	blocks := make(chan []float32, queueCapacity)
	stream, err := openStream(dev, blocks)
	if err != nil {
		return nil, err
	}

	ep := NewEndpointer(opts.EndpointConfig)
	ep.Begin()
	consumeErr := consumeUntilDone(ctx, blocks, ep)
	closeErr := closeStream(stream)

	if consumeErr != nil {
		return nil, consumeErr
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return ep.Finalize(), nil
}

// RecordForDuration captures exactly seconds*SampleRate samples with no
// endpointing and returns them normalized.
func (r *Recorder) RecordForDuration(ctx context.Context, seconds float64, device int) ([]float32, error) {
	dev, err := r.inputDevice(device)
	if err != nil {
		return nil, err
	}

	want := int(seconds * SampleRate)
	if want <= 0 {
		return []float32{}, nil
	}

	blocks := make(chan []float32, queueCapacity)
	stream, err := openStream(dev, blocks)
	if err != nil {
		return nil, err
	}

	samples, collectErr := collectSamples(ctx, blocks, want)
	closeErr := closeStream(stream)

	if collectErr != nil {
		return nil, collectErr
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return Normalize(samples), nil
}

// openStream opens and starts a mono float32 input stream whose
// callback copies each block and enqueues it without ever blocking the
// driver's real-time thread.
func openStream(dev *portaudio.DeviceInfo, blocks chan []float32) (*portaudio.Stream, error) {
	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: Channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(SampleRate),
		FramesPerBuffer: BlockSize,
	}, func(in []float32) {
		block := make([]float32, len(in))
		copy(block, in)
		enqueueDropOldest(blocks, block)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening stream on %q: %v", ErrStreamFailure, dev.Name, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("%w: starting stream: %v", ErrStreamFailure, err)
	}
	return stream, nil
}

func closeStream(stream *portaudio.Stream) error {
	stopErr := stream.Stop()
	closeErr := stream.Close()
	if stopErr != nil {
		return fmt.Errorf("%w: stopping stream: %v", ErrStreamFailure, stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: closing stream: %v", ErrStreamFailure, closeErr)
	}
	return nil
}

// enqueueDropOldest pushes a block onto the queue without blocking.
// When the queue is full the oldest unconsumed block is discarded:
// stale audio is worse than a dropped block for endpoint decisions.
func enqueueDropOldest(q chan []float32, block []float32) {
	for {
		select {
		case q <- block:
			return
		default:
		}
		select {
		case <-q:
		default:
		}
	}
}

// consumeUntilDone feeds queued blocks to the endpointer until it
// reports completion or ctx is cancelled.
func consumeUntilDone(ctx context.Context, blocks <-chan []float32, ep *Endpointer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b := <-blocks:
			if ep.Feed(b) {
				return nil
			}
		case <-time.After(queuePollTimeout):
		}
	}
}

// collectSamples gathers exactly want samples from the queue.
func collectSamples(ctx context.Context, blocks <-chan []float32, want int) ([]float32, error) {
	out := make([]float32, 0, want+BlockSize)
	for len(out) < want {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case b := <-blocks:
			out = append(out, b...)
		case <-time.After(queuePollTimeout):
		}
	}
	return out[:want], nil
}
