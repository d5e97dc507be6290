// Package resample provides rational sample-rate conversion using a
// polyphase windowed-sinc filter.
package resample

import (
	"fmt"
	"math"
)

// Taps per polyphase branch. 32 taps give >70 dB alias rejection with the
// Hann-windowed sinc prototype, which is ample for envelope analysis.
const tapsPerPhase = 32

// Largest supported interpolation/decimation factor after reduction. Rates
// whose ratio to the target does not reduce below this are rejected as
// unsupported rather than silently producing a huge filter bank.
const maxFactor = 1024

// Resampler converts between two fixed sample rates.
type Resampler struct {
	fromRate int
	toRate   int
	up       int // interpolation factor L
	down     int // decimation factor M
	taps     []float64
}

// New creates a resampler for the given rate pair.
func New(fromRate, toRate int) (*Resampler, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("sample rates must be positive, got %d -> %d", fromRate, toRate)
	}

	g := gcd(fromRate, toRate)
	up := toRate / g
	down := fromRate / g

	if up > maxFactor || down > maxFactor {
		return nil, fmt.Errorf("unsupported resampling ratio %d/%d (from %d Hz to %d Hz)", up, down, fromRate, toRate)
	}

	r := &Resampler{
		fromRate: fromRate,
		toRate:   toRate,
		up:       up,
		down:     down,
	}
	r.designFilter()

	return r, nil
}

// designFilter builds the Hann-windowed sinc prototype at the virtual
// upsampled rate fromRate*up, cut off below the narrower Nyquist.
func (r *Resampler) designFilter() {
	if r.up == 1 && r.down == 1 {
		return
	}

	numTaps := tapsPerPhase * r.up
	if numTaps%2 == 0 {
		numTaps++ // odd length keeps the filter symmetric about one tap
	}

	// Normalized cutoff relative to the upsampled rate, with a small
	// guard band below the narrower of the two Nyquist frequencies.
	cutoff := 0.45 / float64(maxInt(r.up, r.down))

	taps := make([]float64, numTaps)
	center := float64(numTaps-1) / 2.0
	sum := 0.0
	for i := range taps {
		t := float64(i) - center
		taps[i] = sinc(2*cutoff*t) * hannTerm(i, numTaps)
		sum += taps[i]
	}

	// Normalize DC gain to the interpolation factor so amplitude survives
	// the zero-stuffing.
	scale := float64(r.up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	r.taps = taps
}

// Process resamples the whole input buffer.
func (r *Resampler) Process(x []float64) []float64 {
	if r.up == 1 && r.down == 1 {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}
	if len(x) == 0 {
		return []float64{}
	}

	outLen := (len(x)*r.up + r.down - 1) / r.down
	out := make([]float64, outLen)

	// Delay so the symmetric filter is centred, keeping input and output
	// aligned in time.
	delay := (len(r.taps) - 1) / 2

	for n := range out {
		pos := n*r.down + delay
		phase := pos % r.up
		base := pos / r.up

		acc := 0.0
		for k := phase; k < len(r.taps); k += r.up {
			idx := base - k/r.up
			if idx < 0 {
				break
			}
			if idx >= len(x) {
				continue
			}
			acc += r.taps[k] * x[idx]
		}
		out[n] = acc
	}

	return out
}

// Ratio returns the reduced interpolation and decimation factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Resample converts x from fromRate to toRate in one call.
func Resample(x []float64, fromRate, toRate int) ([]float64, error) {
	r, err := New(fromRate, toRate)
	if err != nil {
		return nil, err
	}
	return r.Process(x), nil
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func hannTerm(i, n int) float64 {
	return 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
