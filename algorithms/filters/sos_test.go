package filters

import (
	"math"
	"testing"
)

func TestSectionIdentity(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})
	for _, x := range []float64{1, -2, 0.5, 0} {
		if got := s.Process(x); got != x {
			t.Errorf("Process(%g) = %g, want %g", x, got, x)
		}
	}
}

func TestSectionGain(t *testing.T) {
	s := NewSection(Coefficients{B0: 2.5})
	out := s.ProcessBuffer([]float64{1, 2, 3})
	want := []float64{2.5, 5, 7.5}
	for i := range out {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %g, want %g", i, out[i], want[i])
		}
	}
}

func TestSectionFIRDelay(t *testing.T) {
	// y[n] = x[n-1] delays the impulse by one sample.
	s := NewSection(Coefficients{B1: 1})
	out := s.ProcessBuffer([]float64{1, 0, 0, 0})
	want := []float64{0, 1, 0, 0}
	for i := range out {
		if math.Abs(out[i]-want[i]) > 1e-15 {
			t.Errorf("out[%d] = %g, want %g", i, out[i], want[i])
		}
	}
}

func TestSectionOnePoleImpulse(t *testing.T) {
	// y[n] = x[n] + 0.5 y[n-1] has impulse response 0.5^n.
	s := NewSection(Coefficients{B0: 1, A1: -0.5})
	impulse := make([]float64, 8)
	impulse[0] = 1

	out := s.ProcessBuffer(impulse)
	for n := range out {
		want := math.Pow(0.5, float64(n))
		if math.Abs(out[n]-want) > 1e-12 {
			t.Errorf("h[%d] = %g, want %g", n, out[n], want)
		}
	}
}

func TestSectionReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 1, A1: -0.9})
	s.Process(1)
	s.Process(1)
	s.Reset()
	if got := s.Process(0); got != 0 {
		t.Errorf("after Reset, Process(0) = %g, want 0", got)
	}
}

func TestCascadeMatchesChainedSections(t *testing.T) {
	c1 := Coefficients{B0: 1, B1: 0.5, A1: -0.25}
	c2 := Coefficients{B0: 0.8, B2: 0.2, A2: 0.1}

	cascade := NewCascade([]Coefficients{c1, c2})
	s1 := NewSection(c1)
	s2 := NewSection(c2)

	input := []float64{1, -0.5, 0.25, 0.7, -1.2, 0.1, 0, 0.9}
	got := cascade.ProcessBuffer(input)
	want := s2.ProcessBuffer(s1.ProcessBuffer(input))

	for i := range input {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Errorf("cascade[%d] = %g, chained = %g", i, got[i], want[i])
		}
	}

	if cascade.NumSections() != 2 {
		t.Errorf("NumSections = %d, want 2", cascade.NumSections())
	}
}

func TestCascadeReset(t *testing.T) {
	c := NewCascade([]Coefficients{{B0: 1, A1: -0.7}, {B0: 1, A1: -0.3}})
	c.Process(1)
	c.Reset()
	if got := c.Process(0); got != 0 {
		t.Errorf("after Reset, Process(0) = %g, want 0", got)
	}
}
