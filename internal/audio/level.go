package audio

import "math"

// levelFloorDb is returned for blocks with zero (or non-positive) RMS.
// It sits below any realistic noise floor so it can never be mistaken
// for actual signal.
const levelFloorDb = -120.0

// LevelDb returns the RMS energy of a block in dBFS.
func LevelDb(block []float32) float64 {
	if len(block) == 0 {
		return levelFloorDb
	}

	var sum float64
	for _, s := range block {
		sum += float64(s) * float64(s)
	}
	rms := math.Sqrt(sum / float64(len(block)))

	if rms <= 0 {
		return levelFloorDb
	}
	return 20.0 * math.Log10(rms)
}

// Normalize rescales samples so the peak absolute value is exactly 1.0.
// All-zero input is returned unchanged, as is input already at unit
// peak, which makes the operation idempotent.
func Normalize(samples []float32) []float32 {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}

	if peak == 0 || peak == 1 {
		return samples
	}

	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = s / peak
	}
	return out
}
