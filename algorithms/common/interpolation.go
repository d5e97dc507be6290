package common

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// MonotoneCubic wraps gonum's Fritsch-Butland shape-preserving piecewise
// cubic. Unlike a natural cubic spline it never overshoots the data, which
// keeps interpolated non-negative series non-negative away from the knots'
// immediate neighborhood.
type MonotoneCubic struct {
	fb   interp.FritschButland
	xMin float64
	xMax float64
	y0   float64
	yN   float64
	flat bool
	c    float64
}

// NewMonotoneCubic fits a monotone cubic through (xs, ys). The xs must be
// strictly increasing. A single point degenerates to a constant.
func NewMonotoneCubic(xs, ys []float64) (*MonotoneCubic, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("empty data")
	}

	if len(xs) == 1 {
		return &MonotoneCubic{flat: true, c: ys[0], xMin: xs[0], xMax: xs[0]}, nil
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("x values must be strictly increasing at index %d", i)
		}
	}

	mc := &MonotoneCubic{
		xMin: xs[0],
		xMax: xs[len(xs)-1],
		y0:   ys[0],
		yN:   ys[len(ys)-1],
	}
	if err := mc.fb.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("monotone cubic fit: %w", err)
	}

	return mc, nil
}

// Predict evaluates the interpolant at x. Queries outside the fitted range
// are clamped to the boundary values.
func (mc *MonotoneCubic) Predict(x float64) float64 {
	if mc.flat {
		return mc.c
	}
	if x <= mc.xMin {
		return mc.y0
	}
	if x >= mc.xMax {
		return mc.yN
	}
	return mc.fb.Predict(x)
}

// PredictAll evaluates the interpolant on a grid of query points.
func (mc *MonotoneCubic) PredictAll(xq []float64) []float64 {
	out := make([]float64, len(xq))
	for i, x := range xq {
		out[i] = mc.Predict(x)
	}
	return out
}

// ResampleToGrid interpolates irregular samples (xs, ys) onto the query grid
// with a monotone cubic and clips negative artifacts to zero.
func ResampleToGrid(xs, ys, grid []float64) ([]float64, error) {
	mc, err := NewMonotoneCubic(xs, ys)
	if err != nil {
		return nil, err
	}

	out := mc.PredictAll(grid)
	for i, v := range out {
		if v < 0 {
			out[i] = 0
		}
	}
	return out, nil
}

// Interpolate performs linear interpolation of tabulated (x, y) data at xi,
// clamping outside the table range
func Interpolate(x, y []float64, xi float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0.0
	}

	if xi <= x[0] {
		return y[0]
	}
	if xi >= x[len(x)-1] {
		return y[len(y)-1]
	}

	// Binary search for the interval
	left := 0
	right := len(x) - 1

	for right-left > 1 {
		mid := (left + right) / 2
		if x[mid] <= xi {
			left = mid
		} else {
			right = mid
		}
	}

	t := (xi - x[left]) / (x[right] - x[left])
	return y[left] + t*(y[right]-y[left])
}
