// Package level implements an A-weighted sound level meter, used by
// diagnostic collaborators of the psychoacoustic metrics.
package level

import (
	"fmt"
	"math"

	"github.com/acousticlab/psymetrics/algorithms/filters"
)

const refPressure = 2e-5 // 20 uPa

// A-weighting pole frequencies in Hz (IEC 61672).
const (
	aPole1 = 20.598997
	aPole2 = 107.65265
	aPole3 = 737.86223
	aPole4 = 12194.217
)

// analogSection is one analog biquad (b2 s^2 + b1 s + b0) / (s^2 + a1 s + a0).
type analogSection struct {
	b2, b1, b0 float64
	a1, a0     float64
}

// AMeter measures A-weighted sound pressure levels.
type AMeter struct {
	sampleRate int
	cascade    *filters.Cascade
}

// NewAMeter designs the A-weighting filter for the given sample rate via
// bilinear transform and normalizes it to unity gain at 1 kHz.
func NewAMeter(sampleRate int) (*AMeter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if float64(sampleRate)/2 <= aPole4 {
		return nil, fmt.Errorf("sample rate %d Hz too low for A-weighting (needs Nyquist above %g Hz)", sampleRate, aPole4)
	}

	w1 := 2 * math.Pi * aPole1
	w2 := 2 * math.Pi * aPole2
	w3 := 2 * math.Pi * aPole3
	w4 := 2 * math.Pi * aPole4

	// H(s) = w4^2 s^4 / ((s+w1)^2 (s+w2)(s+w3) (s+w4)^2), split into
	// three analog biquads and mapped with the bilinear transform.
	sections := []analogSection{
		{b2: 1, a1: 2 * w1, a0: w1 * w1},
		{b1: 1, a1: w2 + w3, a0: w2 * w3},
		{b1: w4 * w4, a1: 2 * w4, a0: w4 * w4},
	}

	coeffs := make([]filters.Coefficients, len(sections))
	for i, s := range sections {
		coeffs[i] = bilinear(s, float64(sampleRate))
	}

	// Normalize to 0 dB at 1 kHz.
	gain := cascadeMagnitude(coeffs, 1000.0, float64(sampleRate))
	if gain <= 0 {
		return nil, fmt.Errorf("degenerate A-weighting design at %d Hz", sampleRate)
	}
	coeffs[0].B0 /= gain
	coeffs[0].B1 /= gain
	coeffs[0].B2 /= gain

	return &AMeter{
		sampleRate: sampleRate,
		cascade:    filters.NewCascade(coeffs),
	}, nil
}

// Weight applies the A-weighting filter to a pressure signal.
func (m *AMeter) Weight(signal []float64) []float64 {
	m.cascade.Reset()
	return m.cascade.ProcessBuffer(signal)
}

// LevelDB returns the A-weighted sound pressure level of the signal in
// dB(A) re 20 uPa. Silence returns negative infinity.
func (m *AMeter) LevelDB(signal []float64) float64 {
	weighted := m.Weight(signal)

	sumSquares := 0.0
	for _, v := range weighted {
		sumSquares += v * v
	}
	if sumSquares == 0 || len(weighted) == 0 {
		return math.Inf(-1)
	}

	rms := math.Sqrt(sumSquares / float64(len(weighted)))
	return 20 * math.Log10(rms/refPressure)
}

// bilinear maps an analog biquad to a normalized digital one.
func bilinear(s analogSection, fs float64) filters.Coefficients {
	k := 2 * fs
	k2 := k * k

	a0 := k2 + s.a1*k + s.a0
	return filters.Coefficients{
		B0: (s.b2*k2 + s.b1*k + s.b0) / a0,
		B1: (2*s.b0 - 2*s.b2*k2) / a0,
		B2: (s.b2*k2 - s.b1*k + s.b0) / a0,
		A1: (2*s.a0 - 2*k2) / a0,
		A2: (k2 - s.a1*k + s.a0) / a0,
	}
}

// cascadeMagnitude evaluates the magnitude response of a biquad cascade at
// frequency f.
func cascadeMagnitude(coeffs []filters.Coefficients, f, fs float64) float64 {
	w := 2 * math.Pi * f / fs
	z1 := complex(math.Cos(-w), math.Sin(-w))
	z2 := z1 * z1

	h := complex(1, 0)
	for _, c := range coeffs {
		num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
		den := complex(1, 0) + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
		h *= num / den
	}

	return math.Sqrt(real(h)*real(h) + imag(h)*imag(h))
}
