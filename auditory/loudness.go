package auditory

import "math"

// Basis-loudness transform constants.
const (
	refPressure = 2e-5 // 20 uPa

	// Calibration of the compressive nonlinearity.
	loudnessCal      = 0.0217406
	loudnessExponent = 0.25
)

// thresholdQuietDB approximates the threshold in quiet, in dB SPL, at
// centre frequency fc (Terhardt's analytic approximation).
func thresholdQuietDB(fc float64) float64 {
	if fc <= 0 {
		return math.Inf(1)
	}
	khz := fc / 1000.0
	return 3.64*math.Pow(khz, -0.8) -
		6.5*math.Exp(-0.6*(khz-3.3)*(khz-3.3)) +
		1e-3*math.Pow(khz, 4)
}

// BasisLoudness maps the pressure samples of one block in one band to a
// basis-loudness value. The transform is deterministic: a compressive power
// law of the block RMS, gated at the threshold in quiet of the band's
// centre frequency. Silence maps to exactly zero.
func BasisLoudness(fc float64, block []float64) float64 {
	if len(block) == 0 {
		return 0
	}

	sumSquares := 0.0
	for _, v := range block {
		sumSquares += v * v
	}
	meanSquare := sumSquares / float64(len(block))
	if meanSquare == 0 {
		return 0
	}

	threshold := refPressure * math.Pow(10, thresholdQuietDB(fc)/20.0)
	excess := meanSquare - threshold*threshold
	if excess <= 0 {
		return 0
	}

	return loudnessCal * math.Pow(excess/(refPressure*refPressure), loudnessExponent)
}
