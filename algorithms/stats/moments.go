package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MomentResult contains basic descriptive statistics of a sample
type MomentResult struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`     // First raw moment
	Variance float64 `json:"variance"` // Second central moment (sample)
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Moments computes descriptive statistics of metric time series
type Moments struct {
	// No state needed - stateless calculation
}

// NewMoments creates a new moments analyzer
func NewMoments() *Moments {
	return &Moments{}
}

// Analyze computes the descriptive statistics of data
func (m *Moments) Analyze(data []float64) (*MomentResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data")
	}

	min := data[0]
	max := data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	mean := stat.Mean(data, nil)

	variance := 0.0
	if len(data) > 1 {
		variance = stat.Variance(data, nil)
	}

	return &MomentResult{
		Count:    len(data),
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      min,
		Max:      max,
	}, nil
}
