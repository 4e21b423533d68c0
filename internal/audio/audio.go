// Package audio implements microphone capture with silence-based
// endpointing: a portaudio input stream feeds fixed-size blocks through
// a bounded queue into an endpointing engine that decides when the
// speaker has stopped talking.
package audio

import "errors"

// Capture format, fixed for the lifetime of a session.
const (
	SampleRate = 16000
	Channels   = 1
	BlockSize  = 1024
)

// queueCapacity bounds the callback-to-consumer bridge. Eight blocks of
// 1024 samples is about half a second of audio at 16 kHz.
const queueCapacity = 8

var (
	// ErrDeviceUnavailable indicates the requested input device has no
	// input channels or the audio subsystem cannot be queried.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	// ErrStreamFailure indicates a driver-level error while opening or
	// running a capture stream.
	ErrStreamFailure = errors.New("audio stream failure")
)
