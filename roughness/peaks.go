package roughness

import "sort"

// modPeak is one modulation-spectrum peak of a (block, band) cell.
type modPeak struct {
	bin       int
	amplitude float64 // 3-bin neighborhood sum of the averaged spectrum
	rate      float64 // refined modulation rate in Hz
	weighted  float64 // amplitude after perceptual weighting
}

// findPeaks locates up to maxPeaksPerBlock modulation peaks in the weighted
// spectrum of one (block, band) cell. DC and the edge bins are ignored.
// Peak amplitudes are read from the averaged (unclipped) spectrum.
func findPeaks(weighted, averaged []float64) []modPeak {
	half := len(weighted) / 2

	var bins []int
	for k := 1; k < half; k++ {
		if weighted[k] > weighted[k-1] && weighted[k] > weighted[k+1] {
			bins = append(bins, k)
		}
	}
	if len(bins) == 0 {
		return nil
	}

	if len(bins) > maxPeaksPerBlock {
		bins = topByProminence(weighted, bins, maxPeaksPerBlock)
	}

	// Discard peaks below the relative amplitude threshold.
	largest := 0.0
	for _, k := range bins {
		if weighted[k] > largest {
			largest = weighted[k]
		}
	}

	peaks := make([]modPeak, 0, len(bins))
	for _, k := range bins {
		if weighted[k] < peakRelThreshold*largest {
			continue
		}
		peaks = append(peaks, modPeak{
			bin:       k,
			amplitude: averaged[k-1] + averaged[k] + averaged[k+1],
			rate:      refineRate(weighted, k),
		})
	}

	return peaks
}

// topByProminence keeps the n most prominent peaks, ties broken by lower
// bin index, and returns them in ascending bin order.
func topByProminence(spectrum []float64, bins []int, n int) []int {
	type ranked struct {
		bin        int
		prominence float64
	}

	rankedBins := make([]ranked, len(bins))
	for i, k := range bins {
		rankedBins[i] = ranked{bin: k, prominence: prominence(spectrum, k)}
	}

	sort.SliceStable(rankedBins, func(i, j int) bool {
		if rankedBins[i].prominence != rankedBins[j].prominence {
			return rankedBins[i].prominence > rankedBins[j].prominence
		}
		return rankedBins[i].bin < rankedBins[j].bin
	})

	kept := make([]int, n)
	for i := 0; i < n; i++ {
		kept[i] = rankedBins[i].bin
	}
	sort.Ints(kept)
	return kept
}

// prominence measures how far a peak rises above the deeper of the two
// valleys separating it from higher terrain.
func prominence(spectrum []float64, peak int) float64 {
	height := spectrum[peak]

	leftMin := height
	for i := peak - 1; i >= 0; i-- {
		if spectrum[i] > height {
			break
		}
		if spectrum[i] < leftMin {
			leftMin = spectrum[i]
		}
	}

	rightMin := height
	for i := peak + 1; i < len(spectrum); i++ {
		if spectrum[i] > height {
			break
		}
		if spectrum[i] < rightMin {
			rightMin = spectrum[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return height - base
}

// refineRate estimates the continuous modulation rate of a peak: a
// three-point parabola gives a fractional-bin vertex, which is then
// corrected with the tabulated estimator-bias curve.
func refineRate(spectrum []float64, k int) float64 {
	y1 := spectrum[k-1]
	y2 := spectrum[k]
	y3 := spectrum[k+1]

	delta := 0.0
	if denom := y1 - 2*y2 + y3; denom != 0 {
		delta = 0.5 * (y1 - y3) / denom
	}
	if delta > 0.5 {
		delta = 0.5
	} else if delta < -0.5 {
		delta = -0.5
	}

	raw := (float64(k) + delta) * modResolution
	return raw + biasCorrection(delta)*modResolution
}

// biasCorrection interpolates the error-correction table at the
// fractional-bin offset delta in [-0.5, 0.5]. The table is sampled at 33
// offsets theta_i = -0.5 + i/32; the entry minimizing the offset residual
// anchors a sign-aware linear interpolation toward the neighboring entry.
func biasCorrection(delta float64) float64 {
	const step = 1.0 / 32.0

	best := 0
	bestResidual := residualAt(delta, 0)
	for i := 1; i < len(rateBiasTable); i++ {
		if r := residualAt(delta, i); r < bestResidual {
			bestResidual = r
			best = i
		}
	}

	theta := -0.5 + float64(best)*step
	switch {
	case delta > theta && best < len(rateBiasTable)-1:
		t := (delta - theta) / step
		return rateBiasTable[best] + t*(rateBiasTable[best+1]-rateBiasTable[best])
	case delta < theta && best > 0:
		t := (theta - delta) / step
		return rateBiasTable[best] + t*(rateBiasTable[best-1]-rateBiasTable[best])
	default:
		return rateBiasTable[best]
	}
}

func residualAt(delta float64, i int) float64 {
	theta := -0.5 + float64(i)/32.0
	r := delta - theta
	if r < 0 {
		return -r
	}
	return r
}
