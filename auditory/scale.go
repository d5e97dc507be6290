// Package auditory implements the hearing-model front end shared by the
// psychoacoustic metrics: the half-Bark critical-band-rate scale, the
// outer/middle-ear transfer filter, the auditory band-pass filter bank and
// the basis-loudness transform.
package auditory

import "math"

// SampleRate is the internal rate of the hearing model in Hz. All front-end
// stages assume input at this rate.
const SampleRate = 48000

const (
	// NumBands is the number of half-Bark critical bands.
	NumBands = 53

	// BandStep is the critical-band-rate spacing in Bark.
	BandStep = 0.5

	// firstBand is the critical-band rate of the lowest band in Bark.
	firstBand = 0.5
)

// Critical-band-rate scale parameters: F(z) = (df0/c)*sinh(c*z),
// bandwidth df(z) = sqrt(df0^2 + (c*F(z))^2).
const (
	scaleDeltaF0 = 81.9289
	scaleC       = 0.1618
)

// BandRate returns the critical-band rate (in Bark) of band index i.
func BandRate(i int) float64 {
	return firstBand + float64(i)*BandStep
}

// CentreFreq returns the centre frequency in Hz for a critical-band rate z.
func CentreFreq(z float64) float64 {
	return (scaleDeltaF0 / scaleC) * math.Sinh(scaleC*z)
}

// Bandwidth returns the critical bandwidth in Hz at centre frequency fc.
func Bandwidth(fc float64) float64 {
	return math.Sqrt(scaleDeltaF0*scaleDeltaF0 + (scaleC*fc)*(scaleC*fc))
}

// BandCentreFreqs returns the centre frequencies of all bands, in Hz,
// monotonically increasing.
func BandCentreFreqs() []float64 {
	freqs := make([]float64, NumBands)
	for i := range freqs {
		freqs[i] = CentreFreq(BandRate(i))
	}
	return freqs
}
