package roughness

import (
	"math"
	"testing"
)

// triSpectrum builds a flat spectrum with triangular peaks of the given
// heights at the given bins.
func triSpectrum(n int, bins []int, heights []float64) []float64 {
	spec := make([]float64, n)
	for i, k := range bins {
		spec[k-1] += heights[i] / 2
		spec[k] += heights[i]
		spec[k+1] += heights[i] / 2
	}
	return spec
}

func TestFindPeaksSingle(t *testing.T) {
	spec := triSpectrum(envBlockSize, []int{40}, []float64{1})

	peaks := findPeaks(spec, spec)
	if len(peaks) != 1 {
		t.Fatalf("got %d peaks, want 1", len(peaks))
	}

	p := peaks[0]
	if p.bin != 40 {
		t.Errorf("bin = %d, want 40", p.bin)
	}
	if math.Abs(p.amplitude-2) > 1e-12 {
		t.Errorf("amplitude = %g, want 2", p.amplitude)
	}
	// A symmetric peak has zero vertex offset and zero bias correction.
	if math.Abs(p.rate-40*modResolution) > 1e-9 {
		t.Errorf("rate = %g, want %g", p.rate, 40*modResolution)
	}
}

func TestFindPeaksRelativeThreshold(t *testing.T) {
	// The second peak sits below 5 percent of the largest and is dropped.
	spec := triSpectrum(envBlockSize, []int{40, 90}, []float64{1, 0.01})

	peaks := findPeaks(spec, spec)
	if len(peaks) != 1 {
		t.Fatalf("got %d peaks, want 1", len(peaks))
	}
	if peaks[0].bin != 40 {
		t.Errorf("bin = %d, want 40", peaks[0].bin)
	}
}

func TestFindPeaksLimit(t *testing.T) {
	var bins []int
	var heights []float64
	for i := 0; i < 15; i++ {
		bins = append(bins, 20+i*14)
		heights = append(heights, 1+float64(i)*0.01)
	}
	spec := triSpectrum(envBlockSize, bins, heights)

	peaks := findPeaks(spec, spec)
	if len(peaks) > maxPeaksPerBlock {
		t.Fatalf("got %d peaks, want at most %d", len(peaks), maxPeaksPerBlock)
	}

	// The strongest peak always survives the prominence cut.
	found := false
	for _, p := range peaks {
		if p.bin == bins[len(bins)-1] {
			found = true
		}
	}
	if !found {
		t.Error("strongest peak missing from result")
	}
}

func TestFindPeaksEmpty(t *testing.T) {
	if got := findPeaks(make([]float64, envBlockSize), make([]float64, envBlockSize)); got != nil {
		t.Errorf("flat spectrum yielded %d peaks", len(got))
	}
}

func TestRefineRatePullsTowardHeavierNeighbor(t *testing.T) {
	spec := make([]float64, envBlockSize)
	spec[39] = 0.5
	spec[40] = 1.0
	spec[41] = 0.9

	rate := refineRate(spec, 40)
	if rate <= 40*modResolution {
		t.Errorf("rate = %g, want above the bin centre %g", rate, 40*modResolution)
	}
	if rate >= 41*modResolution {
		t.Errorf("rate = %g, want below the next bin %g", rate, 41*modResolution)
	}
}

func TestRefineRateClampsVertex(t *testing.T) {
	// A degenerate three-point configuration keeps the vertex within half
	// a bin of the maximum.
	spec := make([]float64, envBlockSize)
	spec[39] = 1.0
	spec[40] = 1.0000001
	spec[41] = 0.0

	rate := refineRate(spec, 40)
	if rate < 39*modResolution || rate > 41*modResolution {
		t.Errorf("rate = %g outside one bin around the peak", rate)
	}
}

func TestBiasCorrectionAntisymmetric(t *testing.T) {
	for _, delta := range []float64{0.1, 0.25, 0.4} {
		pos := biasCorrection(delta)
		neg := biasCorrection(-delta)
		if math.Abs(pos+neg) > 1e-9 {
			t.Errorf("bias(%g) = %g, bias(%g) = %g, want antisymmetric",
				delta, pos, -delta, neg)
		}
	}
	if got := biasCorrection(0); got != 0 {
		t.Errorf("bias(0) = %g, want 0", got)
	}
}

func TestProminenceIsolatedPeak(t *testing.T) {
	spec := make([]float64, 64)
	spec[30] = 2
	spec[31] = 5
	spec[32] = 1

	if got := prominence(spec, 31); got != 5 {
		t.Errorf("prominence = %g, want 5", got)
	}
}

func TestTopByProminencePrefersProminent(t *testing.T) {
	spec := make([]float64, 128)
	// Peak at 20 rises from zero. Peak at 90 is taller but sits on the
	// shoulder of the dominant peak at 100, separated only by a shallow
	// saddle, so its prominence is tiny.
	spec[20] = 1.0
	spec[90] = 1.2
	for i := 91; i < 100; i++ {
		spec[i] = 1.1
	}
	spec[100] = 2.0

	kept := topByProminence(spec, []int{20, 90, 100}, 2)
	if len(kept) != 2 || kept[0] != 20 || kept[1] != 100 {
		t.Errorf("kept = %v, want [20 100]", kept)
	}
}
