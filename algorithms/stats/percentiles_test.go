package stats

import (
	"math"
	"testing"
)

func TestPercentileEdges(t *testing.T) {
	p := NewPercentiles()
	data := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	min, err := p.Percentile(data, 0)
	if err != nil {
		t.Fatalf("Percentile(0): %v", err)
	}
	if min != 1 {
		t.Errorf("Percentile(0) = %g, want 1", min)
	}

	max, err := p.Percentile(data, 100)
	if err != nil {
		t.Fatalf("Percentile(100): %v", err)
	}
	if max != 9 {
		t.Errorf("Percentile(100) = %g, want 9", max)
	}
}

func TestPercentileMedian(t *testing.T) {
	p := NewPercentiles()

	// For n=4 the empirical CDF hits exactly 0.5 at the second value.
	got, err := p.Percentile([]float64{1, 2, 3, 4}, 50)
	if err != nil {
		t.Fatalf("Percentile: %v", err)
	}
	if got != 2 {
		t.Errorf("Percentile(50) = %g, want 2", got)
	}

	med, err := p.Median([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Median: %v", err)
	}
	if med != got {
		t.Errorf("Median = %g, Percentile(50) = %g, want equal", med, got)
	}
}

func TestPercentileErrors(t *testing.T) {
	p := NewPercentiles()

	if _, err := p.Percentile(nil, 50); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := p.Percentile([]float64{1}, -1); err == nil {
		t.Error("expected error for negative percentile")
	}
	if _, err := p.Percentile([]float64{1}, 101); err == nil {
		t.Error("expected error for percentile > 100")
	}
	if _, err := p.ExceedanceSet(nil, []int{50}); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := p.ExceedanceSet([]float64{1}, []int{120}); err == nil {
		t.Error("expected error for out-of-range exceedance percentile")
	}
}

func TestExceedanceConvention(t *testing.T) {
	p := NewPercentiles()
	data := []float64{0.1, 0.7, 0.3, 0.9, 0.5, 0.2, 0.8, 0.4, 0.6}

	// R_x is the (100-x) cumulative percentile.
	r10, err := p.Exceedance(data, 10)
	if err != nil {
		t.Fatalf("Exceedance: %v", err)
	}
	p90, err := p.Percentile(data, 90)
	if err != nil {
		t.Fatalf("Percentile: %v", err)
	}
	if r10 != p90 {
		t.Errorf("R10 = %g, P90 = %g, want equal", r10, p90)
	}

	// R50 is the median.
	r50, err := p.Exceedance(data, 50)
	if err != nil {
		t.Fatalf("Exceedance: %v", err)
	}
	med, err := p.Median(data)
	if err != nil {
		t.Fatalf("Median: %v", err)
	}
	if r50 != med {
		t.Errorf("R50 = %g, median = %g, want equal", r50, med)
	}
}

func TestExceedanceSetMonotone(t *testing.T) {
	p := NewPercentiles()
	data := make([]float64, 100)
	for i := range data {
		data[i] = math.Sin(float64(i) * 0.37)
	}

	xs := []int{1, 5, 10, 25, 50, 75, 90, 95}
	set, err := p.ExceedanceSet(data, xs)
	if err != nil {
		t.Fatalf("ExceedanceSet: %v", err)
	}
	if len(set) != len(xs) {
		t.Fatalf("got %d entries, want %d", len(set), len(xs))
	}

	// R_x must not increase with x.
	for i := 1; i < len(xs); i++ {
		if set[xs[i]] > set[xs[i-1]] {
			t.Errorf("R%d = %g > R%d = %g", xs[i], set[xs[i]], xs[i-1], set[xs[i-1]])
		}
	}
}

func TestExceedanceSetMatchesExceedance(t *testing.T) {
	p := NewPercentiles()
	data := []float64{4, 8, 15, 16, 23, 42}

	set, err := p.ExceedanceSet(data, []int{5, 50, 95})
	if err != nil {
		t.Fatalf("ExceedanceSet: %v", err)
	}
	for _, x := range []int{5, 50, 95} {
		single, err := p.Exceedance(data, float64(x))
		if err != nil {
			t.Fatalf("Exceedance(%d): %v", x, err)
		}
		if math.Abs(set[x]-single) > 1e-12 {
			t.Errorf("set[%d] = %g, Exceedance = %g", x, set[x], single)
		}
	}
}
