package roughness

import (
	"math"
	"testing"
)

func TestFundamentalRateHarmonicSeries(t *testing.T) {
	peaks := []modPeak{
		{rate: 50, weighted: 1},
		{rate: 73, weighted: 0.5},
		{rate: 100, weighted: 1},
		{rate: 150, weighted: 1},
	}

	rate, amplitude := fundamentalRate(peaks)
	if rate != 50 {
		t.Fatalf("fundamental rate = %g, want 50", rate)
	}
	// Three members of weight 1 each, damped toward the centroid: the sum
	// stays between the centre member alone and the undamped total.
	if amplitude <= 1 || amplitude > 3 {
		t.Errorf("amplitude = %g, want in (1, 3]", amplitude)
	}
}

func TestFundamentalRateNoPeaks(t *testing.T) {
	rate, amplitude := fundamentalRate(nil)
	if rate != 0 || amplitude != 0 {
		t.Errorf("got (%g, %g), want (0, 0)", rate, amplitude)
	}

	// Peaks zeroed by the weighting must not contribute.
	rate, amplitude = fundamentalRate([]modPeak{{rate: 40, weighted: 0}})
	if rate != 0 || amplitude != 0 {
		t.Errorf("got (%g, %g), want (0, 0)", rate, amplitude)
	}
}

func TestFundamentalRateSinglePeak(t *testing.T) {
	rate, amplitude := fundamentalRate([]modPeak{{rate: 70, weighted: 0.8}})
	if rate != 70 {
		t.Errorf("rate = %g, want 70", rate)
	}
	// A lone member sits at the centroid, so no damping applies.
	if math.Abs(amplitude-0.8) > 1e-12 {
		t.Errorf("amplitude = %g, want 0.8", amplitude)
	}
}

func TestComplexMembersIntegerRatios(t *testing.T) {
	peaks := []modPeak{
		{rate: 50, weighted: 1},
		{rate: 100.5, weighted: 1}, // ratio 2.01, within tolerance
		{rate: 160, weighted: 1},   // ratio 3.2, outside tolerance
		{rate: 200, weighted: 1},
	}

	members := complexMembers(peaks, 0)
	want := []int{0, 1, 3}
	if len(members) != len(want) {
		t.Fatalf("members = %v, want %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("members = %v, want %v", members, want)
		}
	}
}

func TestComplexMembersDeduplicatesRatio(t *testing.T) {
	// Two candidates for the second harmonic with equal deviation: the
	// earlier peak wins.
	peaks := []modPeak{
		{rate: 50, weighted: 1},
		{rate: 98, weighted: 1},
		{rate: 102, weighted: 1},
	}

	members := complexMembers(peaks, 0)
	if len(members) != 2 || members[0] != 0 || members[1] != 1 {
		t.Errorf("members = %v, want [0 1]", members)
	}
}

func TestGravityWeightedSumDampsOutliers(t *testing.T) {
	peaks := []modPeak{
		{rate: 50, weighted: 1},
		{rate: 100, weighted: 1},
		{rate: 150, weighted: 1},
	}
	members := []int{0, 1, 2}

	got := gravityWeightedSum(peaks, members)
	if got >= 3 {
		t.Errorf("sum = %g, want below the undamped total 3", got)
	}
	if got <= 1 {
		t.Errorf("sum = %g, want above a single member", got)
	}

	if gravityWeightedSum(peaks, nil) != 0 {
		t.Error("empty member set should sum to 0")
	}
}
