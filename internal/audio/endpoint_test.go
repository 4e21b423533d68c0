package audio

import (
	"testing"
	"time"
)

func testEndpointConfig() EndpointConfig {
	return EndpointConfig{
		ThresholdDb:     -40,
		SilenceDuration: 1500 * time.Millisecond,
		MaxDuration:     30 * time.Second,
	}
}

// feedBlocks feeds identical blocks until the endpointer reports done,
// returning how many were fed. The limit guards against a detector that
// never fires.
func feedBlocks(t *testing.T, ep *Endpointer, block []float32, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		if ep.Feed(block) {
			return i
		}
	}
	t.Fatalf("endpointer did not stop within %d blocks", limit)
	return 0
}

func TestStopsAfterSilenceFollowingSpeech(t *testing.T) {
	ep := NewEndpointer(testEndpointConfig())
	ep.Begin()

	loud := constantBlock(0.5, BlockSize)
	silent := constantBlock(0, BlockSize)

	// One second of speech, then silence.
	for i := 0; i < SampleRate/BlockSize; i++ {
		if ep.Feed(loud) {
			t.Fatal("stopped during speech")
		}
	}

	needed := int(1.5 * SampleRate)
	fed := feedBlocks(t, ep, silent, 100)
	if fed*BlockSize < needed {
		t.Fatalf("stopped after %d silent samples, need at least %d", fed*BlockSize, needed)
	}
	if (fed-1)*BlockSize >= needed {
		t.Fatalf("stopped a block late: %d silent samples already enough", (fed-1)*BlockSize)
	}
}

func TestAllSilentStreamWaitsForTotalBound(t *testing.T) {
	// With zero speech, silent samples and total samples grow together,
	// so the stop needs total > silence window, one block beyond the
	// silent-run bound itself.
	ep := NewEndpointer(testEndpointConfig())
	ep.Begin()

	silent := constantBlock(0, BlockSize)
	fed := feedBlocks(t, ep, silent, 100)

	needed := int(1.5 * SampleRate)
	if fed*BlockSize <= needed {
		t.Fatalf("stopped at %d samples, total must exceed %d", fed*BlockSize, needed)
	}
}

func TestNeverSilentStopsAtMaxDuration(t *testing.T) {
	cfg := testEndpointConfig()
	cfg.MaxDuration = 2 * time.Second
	ep := NewEndpointer(cfg)
	ep.Begin()

	loud := constantBlock(0.5, BlockSize)
	fed := feedBlocks(t, ep, loud, 1000)

	maxSamples := 2 * SampleRate
	if fed*BlockSize < maxSamples {
		t.Fatalf("stopped at %d samples, before max of %d", fed*BlockSize, maxSamples)
	}
	if (fed-1)*BlockSize >= maxSamples {
		t.Fatalf("stopped a block late: %d samples already at max", (fed-1)*BlockSize)
	}
}

func TestSpeechResetsSilentRun(t *testing.T) {
	ep := NewEndpointer(testEndpointConfig())
	ep.Begin()

	loud := constantBlock(0.5, BlockSize)
	silent := constantBlock(0, BlockSize)

	// Almost enough silence, then a loud block: the run must restart.
	almost := int(1.5*SampleRate)/BlockSize - 1
	ep.Feed(loud)
	for i := 0; i < almost; i++ {
		if ep.Feed(silent) {
			t.Fatal("stopped before the silence window elapsed")
		}
	}
	if ep.Feed(loud) {
		t.Fatal("stopped on a loud block")
	}
	if ep.Feed(silent) {
		t.Fatal("silent run was not reset by speech")
	}
}

func TestFinalizeEmptySession(t *testing.T) {
	ep := NewEndpointer(testEndpointConfig())
	ep.Begin()

	got := ep.Finalize()
	if got == nil {
		t.Fatal("expected non-nil empty buffer")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty buffer, got %d samples", len(got))
	}
}

func TestFinalizeConcatenatesAndNormalizes(t *testing.T) {
	ep := NewEndpointer(testEndpointConfig())
	ep.Begin()

	ep.Feed([]float32{0.1, 0.2})
	ep.Feed([]float32{-0.5, 0.25})

	got := ep.Finalize()
	if len(got) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(got))
	}
	// Peak was 0.5, so everything doubles.
	want := []float32{0.2, 0.4, -1.0, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestReusableAcrossSessions(t *testing.T) {
	ep := NewEndpointer(testEndpointConfig())

	ep.Begin()
	ep.Feed(constantBlock(0.5, BlockSize))
	ep.Finalize()

	// Second session must start from clean counters.
	ep.Begin()
	got := ep.Finalize()
	if len(got) != 0 {
		t.Fatalf("state leaked across sessions: %d samples", len(got))
	}
}
