package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentiles implements percentile calculation for time-series metric
// aggregation.
//
// Two conventions are supported:
//   - Percentile: the usual cumulative convention, P(x) = value such that
//     x percent of the samples lie at or below it.
//   - Exceedance: the sound-quality convention, R_x = value exceeded during
//     x percent of the observation time, i.e. the (100-x) cumulative
//     percentile. R50 is the median; R_x is non-increasing in x.
type Percentiles struct {
	// No state needed - stateless calculation
}

// NewPercentiles creates a new percentile analyzer
func NewPercentiles() *Percentiles {
	return &Percentiles{}
}

// Percentile computes the p-th cumulative percentile (0 <= p <= 100) with
// linear interpolation between closest ranks.
func (p *Percentiles) Percentile(data []float64, pct float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty data")
	}
	if pct < 0 || pct > 100 {
		return 0, fmt.Errorf("percentile %g must be between 0 and 100", pct)
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return quantileSorted(sorted, pct/100.0), nil
}

// Exceedance computes R_x, the value exceeded x percent of the time.
func (p *Percentiles) Exceedance(data []float64, x float64) (float64, error) {
	if x < 0 || x > 100 {
		return 0, fmt.Errorf("exceedance percentile %g must be between 0 and 100", x)
	}
	return p.Percentile(data, 100.0-x)
}

// ExceedanceSet computes R_x for each requested x over a single sort of the
// data.
func (p *Percentiles) ExceedanceSet(data []float64, xs []int) (map[int]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data")
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	result := make(map[int]float64, len(xs))
	for _, x := range xs {
		if x < 0 || x > 100 {
			return nil, fmt.Errorf("exceedance percentile %d must be between 0 and 100", x)
		}
		result[x] = quantileSorted(sorted, 1.0-float64(x)/100.0)
	}
	return result, nil
}

// Median computes the 50th percentile.
func (p *Percentiles) Median(data []float64) (float64, error) {
	return p.Percentile(data, 50)
}

// quantileSorted evaluates the q-quantile (0 <= q <= 1) of sorted data by
// linear interpolation of the empirical CDF (the gonum LinInterp convention).
func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	return stat.Quantile(q, stat.LinInterp, sorted, nil)
}
