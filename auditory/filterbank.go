package auditory

import (
	"math"
	"math/cmplx"
)

// Auditory filter-bank parameters: a 5th-order gammatone-style band-pass
// per band, realized as a complex one-pole cascade with binomial feedback
// and Eulerian feed-forward weights, frequency-shifted to the band centre.
const filterOrder = 5

// Eulerian numbers of order filterOrder-1, the feed-forward weights of the
// recursive gammatone approximation.
var eulerWeights = [filterOrder]float64{0, 1, 11, 11, 1}

// bandFilter holds the complex band-pass coefficients of one band.
type bandFilter struct {
	b [filterOrder]complex128     // feed-forward, b[0] corresponds to lag 0
	a [filterOrder + 1]complex128 // feedback, a[0] == 1
}

// FilterBank splits a 48 kHz signal into NumBands half-Bark band-pass
// channels. The bank is immutable after construction and safe for
// concurrent use.
type FilterBank struct {
	centreFreqs []float64
	filters     []bandFilter
}

// NewFilterBank precomputes the band-pass coefficients for all bands.
func NewFilterBank() *FilterBank {
	fb := &FilterBank{
		centreFreqs: BandCentreFreqs(),
		filters:     make([]bandFilter, NumBands),
	}

	for z := range fb.filters {
		fb.filters[z] = designBandFilter(fb.centreFreqs[z])
	}

	return fb
}

// designBandFilter derives the complex band-pass coefficients for one
// centre frequency.
func designBandFilter(fc float64) bandFilter {
	// Low-pass prototype: binomial one-pole cascade of order k with time
	// constant tied to the critical bandwidth.
	df := Bandwidth(fc)
	tau := (1.0 / float64(int(1)<<(2*filterOrder-1))) * binomial(2*filterOrder-2, filterOrder-1) / df
	delta := math.Exp(-1.0 / (SampleRate * tau))

	// Feed-forward weights scaled for unit DC gain of the prototype.
	var weightSum float64
	deltaPow := 1.0
	for m := 0; m < filterOrder; m++ {
		weightSum += eulerWeights[m] * deltaPow
		deltaPow *= delta
	}
	gain := math.Pow(1.0-delta, filterOrder) / weightSum

	var f bandFilter

	// Shift the prototype to the band centre by modulating each
	// coefficient with exp(i*2*pi*fc*m/fs).
	omega := 2 * math.Pi * fc / SampleRate

	deltaPow = 1.0
	for m := 0; m < filterOrder; m++ {
		rot := cmplx.Exp(complex(0, omega*float64(m)))
		f.b[m] = complex(gain*eulerWeights[m]*deltaPow, 0) * rot
		deltaPow *= delta
	}

	for m := 0; m <= filterOrder; m++ {
		rot := cmplx.Exp(complex(0, omega*float64(m)))
		am := binomial(filterOrder, m) * math.Pow(-delta, float64(m))
		f.a[m] = complex(am, 0) * rot
	}

	return f
}

// CentreFreqs returns the band centre frequencies in Hz.
func (fb *FilterBank) CentreFreqs() []float64 {
	freqs := make([]float64, len(fb.centreFreqs))
	copy(freqs, fb.centreFreqs)
	return freqs
}

// ProcessBand filters the signal through band z, returning a real band-pass
// signal of the same length.
func (fb *FilterBank) ProcessBand(signal []float64, z int) []float64 {
	if z < 0 || z >= NumBands {
		return nil
	}

	f := &fb.filters[z]
	out := make([]float64, len(signal))

	// Complex direct-form I; the real band signal is twice the real part
	// of the analytic output.
	var yHist [filterOrder]complex128
	var xHist [filterOrder]complex128

	for n, x := range signal {
		acc := f.b[0] * complex(x, 0)
		for m := 1; m < filterOrder; m++ {
			acc += f.b[m] * xHist[m-1]
		}
		for m := 1; m <= filterOrder; m++ {
			acc -= f.a[m] * yHist[m-1]
		}

		for m := filterOrder - 1; m > 0; m-- {
			xHist[m] = xHist[m-1]
			yHist[m] = yHist[m-1]
		}
		xHist[0] = complex(x, 0)
		yHist[0] = acc

		out[n] = 2 * real(acc)
	}

	return out
}

// Process filters the signal through every band. The result is indexed
// [band][sample].
func (fb *FilterBank) Process(signal []float64) [][]float64 {
	out := make([][]float64, NumBands)
	for z := range out {
		out[z] = fb.ProcessBand(signal, z)
	}
	return out
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 1; i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
	}
	return result
}
