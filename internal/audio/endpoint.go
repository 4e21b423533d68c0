package audio

import "time"

// EndpointConfig tunes the silence detector.
type EndpointConfig struct {
	// ThresholdDb is the dBFS level below which a block counts as silent.
	ThresholdDb float64
	// SilenceDuration is how long an unbroken silent run must last to
	// end the capture.
	SilenceDuration time.Duration
	// MaxDuration caps the total capture length.
	MaxDuration time.Duration
}

// DefaultEndpointConfig matches the tuning used by the CLI commands.
func DefaultEndpointConfig() EndpointConfig {
	return EndpointConfig{
		ThresholdDb:     -40,
		SilenceDuration: 1500 * time.Millisecond,
		MaxDuration:     30 * time.Second,
	}
}

// Endpointer accumulates audio blocks and decides when a capture is
// complete: either the speaker has been silent long enough, or the
// maximum duration has been reached.
//
// An Endpointer is owned by a single consumer goroutine and is reusable
// across sessions: Begin resets it, Feed advances it, Finalize produces
// the normalized recording and returns it to the idle state.
type Endpointer struct {
	thresholdDb          float64
	silenceSamplesNeeded int
	maxSamples           int

	blocks        [][]float32
	silentSamples int
	totalSamples  int
}

// NewEndpointer creates an idle Endpointer with the given tuning.
func NewEndpointer(cfg EndpointConfig) *Endpointer {
	return &Endpointer{
		thresholdDb:          cfg.ThresholdDb,
		silenceSamplesNeeded: int(cfg.SilenceDuration.Seconds() * SampleRate),
		maxSamples:           int(cfg.MaxDuration.Seconds() * SampleRate),
	}
}

// Begin resets all session state. Call it before the first Feed of a
// new capture.
func (e *Endpointer) Begin() {
	e.blocks = nil
	e.silentSamples = 0
	e.totalSamples = 0
}

// Feed appends one block and reports whether the capture is complete.
//
// A block below the threshold extends the silent run; any block at or
// above it resets the run to zero. The silence condition additionally
// requires that more than the silence window has been captured in
// total, so an all-silent start cannot end the session before any
// speech had a chance to occur. The silence check runs before the
// max-duration check.
func (e *Endpointer) Feed(block []float32) bool {
	e.blocks = append(e.blocks, block)
	e.totalSamples += len(block)

	if LevelDb(block) < e.thresholdDb {
		e.silentSamples += len(block)
	} else {
		e.silentSamples = 0
	}

	if e.silentSamples >= e.silenceSamplesNeeded && e.totalSamples > e.silenceSamplesNeeded {
		return true
	}
	return e.totalSamples >= e.maxSamples
}

// Finalize concatenates the captured blocks into one normalized buffer
// and resets the Endpointer for reuse. With no blocks captured it
// returns an empty, non-nil buffer: "nothing to transcribe".
func (e *Endpointer) Finalize() []float32 {
	out := make([]float32, 0, e.totalSamples)
	for _, b := range e.blocks {
		out = append(out, b...)
	}
	e.Begin()
	return Normalize(out)
}
