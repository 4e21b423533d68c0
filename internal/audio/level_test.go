package audio

import (
	"math"
	"testing"
)

func constantBlock(value float32, n int) []float32 {
	b := make([]float32, n)
	for i := range b {
		b[i] = value
	}
	return b
}

func TestLevelDbSilenceReturnsFloor(t *testing.T) {
	if got := LevelDb(constantBlock(0, 256)); got != -120.0 {
		t.Fatalf("expected -120.0 for silence, got %f", got)
	}
	if got := LevelDb(nil); got != -120.0 {
		t.Fatalf("expected -120.0 for empty block, got %f", got)
	}
}

func TestLevelDbFullScale(t *testing.T) {
	got := LevelDb(constantBlock(1.0, 256))
	if math.Abs(got) > 0.01 {
		t.Fatalf("expected ~0 dB for full scale, got %f", got)
	}
}

func TestLevelDbHalfScale(t *testing.T) {
	got := LevelDb(constantBlock(0.5, 256))
	if got <= -7 || got >= -5 {
		t.Fatalf("expected ~-6.02 dB for half scale, got %f", got)
	}
}

func TestLevelDbNegativeSamples(t *testing.T) {
	// RMS of -1.0 samples is 1.0: level must match full scale.
	got := LevelDb(constantBlock(-1.0, 256))
	if math.Abs(got) > 0.01 {
		t.Fatalf("expected ~0 dB, got %f", got)
	}
}

func TestNormalizeUnitPeak(t *testing.T) {
	got := Normalize([]float32{0.0, 0.5, -0.25})

	var peak float32
	for _, s := range got {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak != 1.0 {
		t.Fatalf("expected peak 1.0, got %f", peak)
	}
}

func TestNormalizeSilenceUnchanged(t *testing.T) {
	in := make([]float32, 100)
	got := Normalize(in)
	for i, s := range got {
		if s != 0 {
			t.Fatalf("sample %d changed: %f", i, s)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize([]float32{0.1, -0.4, 0.2})
	twice := Normalize(once)
	if len(once) != len(twice) {
		t.Fatalf("length changed: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("sample %d changed on second pass: %f vs %f", i, once[i], twice[i])
		}
	}
}
