package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality backed by mjibson/go-dsp
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the forward FFT of a real signal.
// Takes []float64 input and returns []complex128 output.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes efficiently, including non-power-of-2
	return fft.FFTReal(x)
}

// ComputeInverse computes inverse FFT
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// ComputeInverseReal computes inverse FFT and returns real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))

	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}

// PowerSpectrum computes the magnitude-squared spectrum of a real signal
func (f *FFT) PowerSpectrum(x []float64) []float64 {
	spec := f.Compute(x)
	power := make([]float64, len(spec))
	for i, c := range spec {
		re, im := real(c), imag(c)
		power[i] = re*re + im*im
	}
	return power
}

// AnalyticSignal computes the analytic signal of x via the frequency-domain
// Hilbert transform: positive frequencies are doubled, negative frequencies
// zeroed, DC and Nyquist kept as-is.
func (f *FFT) AnalyticSignal(x []float64) []complex128 {
	n := len(x)
	if n == 0 {
		return []complex128{}
	}

	spec := fft.FFTReal(x)

	half := n / 2
	for k := 1; k < half; k++ {
		spec[k] *= 2
	}
	if n%2 != 0 {
		// Odd lengths have no Nyquist bin; the last positive bin is (n-1)/2
		spec[half] *= 2
	}
	for k := half + 1; k < n; k++ {
		spec[k] = 0
	}

	return fft.IFFT(spec)
}

// Envelope computes the magnitude of the analytic signal of x,
// i.e. the instantaneous amplitude envelope.
func (f *FFT) Envelope(x []float64) []float64 {
	analytic := f.AnalyticSignal(x)
	env := make([]float64, len(analytic))
	for i, c := range analytic {
		env[i] = cmplx.Abs(c)
	}
	return env
}

// BinFrequency returns the centre frequency of bin k for an n-point FFT
// at the given sample rate.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(n)
}

// NearestBin returns the FFT bin whose centre frequency is closest to freq.
func NearestBin(freq float64, n int, sampleRate float64) int {
	if sampleRate <= 0 || n <= 0 {
		return 0
	}
	bin := int(math.Round(freq * float64(n) / sampleRate))
	if bin < 0 {
		bin = 0
	}
	if bin > n/2 {
		bin = n / 2
	}
	return bin
}
