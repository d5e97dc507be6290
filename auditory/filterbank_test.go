package auditory

import (
	"math"
	"testing"
)

func bandSine(fc float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * fc * float64(i) / SampleRate)
	}
	return x
}

func rms(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestFilterBankShape(t *testing.T) {
	fb := NewFilterBank()

	freqs := fb.CentreFreqs()
	if len(freqs) != NumBands {
		t.Fatalf("CentreFreqs len = %d, want %d", len(freqs), NumBands)
	}

	signal := bandSine(1000, 4800)
	out := fb.Process(signal)
	if len(out) != NumBands {
		t.Fatalf("Process returned %d bands, want %d", len(out), NumBands)
	}
	for z, band := range out {
		if len(band) != len(signal) {
			t.Fatalf("band %d length = %d, want %d", z, len(band), len(signal))
		}
	}
}

func TestFilterBankSelectivity(t *testing.T) {
	fb := NewFilterBank()
	freqs := fb.CentreFreqs()

	// A tone at the centre of one band must come through that band far
	// stronger than through a band a couple of octaves away.
	const onBand, offBand = 30, 10
	signal := bandSine(freqs[onBand], SampleRate/2)

	// Skip the filter transient before measuring.
	onOut := fb.ProcessBand(signal, onBand)
	offOut := fb.ProcessBand(signal, offBand)
	onRMS := rms(onOut[len(onOut)/4:])
	offRMS := rms(offOut[len(offOut)/4:])

	if onRMS < 10*offRMS {
		t.Errorf("selectivity too low: on-band RMS %g, off-band RMS %g", onRMS, offRMS)
	}

	// Near-unity gain at the band centre.
	inRMS := rms(signal[len(signal)/4:])
	if onRMS < 0.5*inRMS || onRMS > 1.5*inRMS {
		t.Errorf("on-band gain = %g, want near unity", onRMS/inRMS)
	}
}

func TestProcessBandRejectsBadIndex(t *testing.T) {
	fb := NewFilterBank()
	if fb.ProcessBand([]float64{1, 2, 3}, -1) != nil {
		t.Error("expected nil for negative band index")
	}
	if fb.ProcessBand([]float64{1, 2, 3}, NumBands) != nil {
		t.Error("expected nil for out-of-range band index")
	}
}

func TestProcessBandIsStateless(t *testing.T) {
	fb := NewFilterBank()
	signal := bandSine(500, 4800)

	a := fb.ProcessBand(signal, 20)
	b := fb.ProcessBand(signal, 20)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated ProcessBand differs at sample %d", i)
		}
	}
}
