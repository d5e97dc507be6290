package roughness

import (
	"fmt"
	"math"

	"github.com/acousticlab/psymetrics/algorithms/common"
	"github.com/acousticlab/psymetrics/algorithms/stats"
	"github.com/acousticlab/psymetrics/auditory"
)

// Band-spread exponent curve parameters: the exponent applied to the
// interpolated amplitudes follows a tanh of the across-band RMS/mean ratio.
const (
	spreadOffset = 0.95555
	spreadGain   = 0.58449
	spreadSlope  = 1.6407
	spreadCentre = 2.5804
)

// interpolateToGrid maps the per-block amplitude sequence of every band
// from the irregular block-centre axis onto the uniform output grid using
// a shape-preserving monotone cubic, clipping negative artifacts to zero.
// The result is indexed [time][band].
func interpolateToGrid(amplitudes [][]float64, timeIn, timeOut []float64) ([][]float64, error) {
	numBands := auditory.NumBands

	grid := make([][]float64, len(timeOut))
	for l := range grid {
		grid[l] = make([]float64, numBands)
	}

	ys := make([]float64, len(timeIn))
	for z := 0; z < numBands; z++ {
		for b := range timeIn {
			ys[b] = amplitudes[b][z]
		}

		interpolated, err := common.ResampleToGrid(timeIn, ys, timeOut)
		if err != nil {
			return nil, fmt.Errorf("band %d interpolation: %w", z, err)
		}
		for l := range timeOut {
			grid[l][z] = interpolated[l]
		}
	}

	return grid, nil
}

// transformSpecific turns interpolated amplitudes into time-dependent
// specific roughness: the band-spread exponent, the calibration constant,
// and the asymmetric low-pass smoothing.
func transformSpecific(grid [][]float64) [][]float64 {
	numBands := auditory.NumBands

	specific := make([][]float64, len(grid))
	for l := range grid {
		rms := common.RMS(grid[l])
		mean := common.Mean(grid[l])

		exponent := spreadOffset
		if mean > 0 {
			exponent = spreadOffset - spreadGain*math.Tanh(spreadSlope*(rms/mean-spreadCentre))
		}

		specific[l] = make([]float64, numBands)
		for z := 0; z < numBands; z++ {
			if grid[l][z] > 0 {
				specific[l][z] = calibrationFactor * math.Pow(grid[l][z], exponent)
			}
		}
	}

	smoothSpecific(specific)
	return specific
}

// smoothSpecific applies, per band, a first-order low pass with distinct
// rise and fall time constants, in place.
func smoothSpecific(specific [][]float64) {
	if len(specific) == 0 {
		return
	}

	dt := 1.0 / outputRate
	alphaRise := 1 - math.Exp(-dt/riseTime)
	alphaFall := 1 - math.Exp(-dt/fallTime)

	for z := 0; z < auditory.NumBands; z++ {
		prev := specific[0][z]
		for l := 1; l < len(specific); l++ {
			alpha := alphaFall
			if specific[l][z] >= prev {
				alpha = alphaRise
			}
			prev += alpha * (specific[l][z] - prev)
			specific[l][z] = prev
		}
	}
}

// integrateBands reduces specific roughness to overall roughness per time
// step with a trapezoidal sum over the half-Bark axis.
func integrateBands(specific [][]float64) []float64 {
	overall := make([]float64, len(specific))
	for l, bands := range specific {
		sum := 0.0
		for z := 0; z < len(bands)-1; z++ {
			sum += 0.5 * (bands[z] + bands[z+1])
		}
		overall[l] = sum * auditory.BandStep
	}
	return overall
}

// combineBinaural merges left/right specific roughness cell-wise by RMS.
func combineBinaural(left, right [][]float64) [][]float64 {
	combined := make([][]float64, len(left))
	for l := range left {
		combined[l] = make([]float64, len(left[l]))
		for z := range left[l] {
			lv := left[l][z]
			rv := right[l][z]
			combined[l][z] = math.Sqrt((lv*lv + rv*rv) / 2)
		}
	}
	return combined
}

// skipIndex returns the first output sample included in statistics for a
// transient-skip duration in seconds. At least one sample always survives
// the skip, so minimum-length signals stay analyzable.
func skipIndex(skip float64, numSamples int) int {
	if skip <= 0 || numSamples <= 0 {
		return 0
	}
	idx := int(skip*outputRate) + 1
	if idx > numSamples-1 {
		idx = numSamples - 1
	}
	return idx
}

// bandAverages computes the time-averaged specific roughness per band over
// the retained (post-skip) samples.
func bandAverages(specific [][]float64, start int) []float64 {
	avg := make([]float64, auditory.NumBands)
	count := len(specific) - start
	if count <= 0 {
		return avg
	}

	for l := start; l < len(specific); l++ {
		for z, v := range specific[l] {
			avg[z] += v
		}
	}
	for z := range avg {
		avg[z] /= float64(count)
	}
	return avg
}

// computeStatistics aggregates the overall roughness time series after the
// transient skip.
func computeStatistics(overall []float64, start int) (Statistics, error) {
	if start >= len(overall) {
		return Statistics{}, fmt.Errorf("transient skip leaves no samples (skip index %d of %d)", start, len(overall))
	}
	retained := overall[start:]

	moments := stats.NewMoments()
	m, err := moments.Analyze(retained)
	if err != nil {
		return Statistics{}, err
	}

	pct := stats.NewPercentiles()
	median, err := pct.Median(retained)
	if err != nil {
		return Statistics{}, err
	}
	exceedance, err := pct.ExceedanceSet(retained, statPercentiles)
	if err != nil {
		return Statistics{}, err
	}

	return Statistics{
		Mean:        m.Mean,
		Std:         m.StdDev,
		Min:         m.Min,
		Max:         m.Max,
		Median:      median,
		Percentiles: exceedance,
	}, nil
}
