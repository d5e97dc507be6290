package roughness

import "math"

// bandWeighting holds the perceptual weighting parameters of one band.
type bandWeighting struct {
	scale  float64 // roughScale
	fmax   float64 // modulation rate of maximum weight
	q2High float64
}

// newBandWeighting derives the weighting parameters for a band centred at
// fc Hz.
func newBandWeighting(fc float64) bandWeighting {
	w := bandWeighting{
		fmax: fmaxBase * (1 - fmaxScale*math.Exp(-fmaxDecay*fc/1000.0)),
	}
	if fc < 1000 {
		w.scale = roughScaleBelow1k
		w.q2High = weightQ2HighBelow
	} else {
		w.scale = roughScaleAbove1k
		w.q2High = weightQ2HighAbove
	}
	return w
}

// weightPeaks applies the per-band scaling and the high-modulation-rate
// weighting to every peak's amplitude. Rates below the modulation-spectrum
// resolution are not a valid modulation and are zeroed.
func (w bandWeighting) weightPeaks(peaks []modPeak) {
	for i := range peaks {
		if peaks[i].rate < modResolution {
			peaks[i].weighted = 0
			continue
		}
		peaks[i].weighted = peaks[i].amplitude * w.scale * w.high(peaks[i].rate)
	}
}

// high is the high-modulation-rate weighting curve: unity at and below
// fmax, rolling off logistically above it.
func (w bandWeighting) high(rate float64) float64 {
	if rate <= w.fmax || rate <= 0 || w.fmax <= 0 {
		return 1
	}
	d := (rate/w.fmax - w.fmax/rate) * weightQ1High
	return math.Pow(1/(1+d*d), w.q2High)
}

// low is the low-modulation-rate weighting curve applied to the
// fundamental amplitude: unity at and above fmax, rolling off below it.
func (w bandWeighting) low(rate float64) float64 {
	if rate >= w.fmax || rate <= 0 || w.fmax <= 0 {
		return 1
	}
	d := (rate/w.fmax - w.fmax/rate) * weightQ1Low
	return math.Pow(1/(1+d*d), weightQ2Low)
}

// lowRateWeight applies the low-rate curve and the amplitude floor to a
// fundamental (rate, amplitude) pair.
func (w bandWeighting) lowRateWeight(rate, amplitude float64) float64 {
	if rate <= 0 || amplitude <= 0 {
		return 0
	}
	weighted := amplitude * w.low(rate)
	if weighted < amplitudeFloor {
		return 0
	}
	return weighted
}
