package roughness

import (
	"math"

	"github.com/acousticlab/psymetrics/algorithms/common"
	"github.com/acousticlab/psymetrics/algorithms/spectral"
	"github.com/acousticlab/psymetrics/algorithms/stats"
	"github.com/acousticlab/psymetrics/algorithms/windowing"
	"github.com/acousticlab/psymetrics/auditory"
)

// modSpectra holds the modulation power spectra of one channel, indexed
// [block][band][bin] with envBlockSize bins per spectrum.
type modSpectra struct {
	// averaged is the loudness-scaled power spectrum after cross-band
	// noise-reduction averaging; peak amplitudes are read from it.
	averaged [][][]float64

	// weighted additionally carries the clipping weight; peaks are
	// located in it.
	weighted [][][]float64
}

// computeModSpectra windows each envelope block, computes its scaled power
// spectrum, and applies the cross-band noise reduction and the clipping
// weight.
func computeModSpectra(ba *bandAnalysis, workers int) *modSpectra {
	nb := ba.numBlocks

	raw := make([][][]float64, nb)
	for b := range raw {
		raw[b] = make([][]float64, auditory.NumBands)
	}

	window := windowing.NewHann(envBlockSize, false)
	winCoeffs := window.GetCoefficients()
	winRMS := window.RMS()

	forEachBand(workers, func(z int) {
		fft := spectral.NewFFT()
		windowed := make([]float64, envBlockSize)

		for b := 0; b < nb; b++ {
			env := ba.envelopes[b][z]

			// Periodic Hann normalized by its RMS, so window energy
			// does not bias the power estimate.
			energy := 0.0
			for i := range windowed {
				windowed[i] = env[i] * winCoeffs[i] / winRMS
				energy += windowed[i] * windowed[i]
			}

			power := fft.PowerSpectrum(windowed)

			basis := ba.basisLoudness[b][z]
			maxBasis := common.Max(ba.basisLoudness[b])
			denom := maxBasis * energy
			if denom == 0 {
				// Zero-energy guard: force the spectrum to zero.
				for k := range power {
					power[k] = 0
				}
			} else {
				scale := basis * basis / denom
				for k := range power {
					power[k] *= scale
				}
			}

			raw[b][z] = power
		}
	})

	ms := &modSpectra{
		averaged: make([][][]float64, nb),
		weighted: make([][][]float64, nb),
	}
	for b := 0; b < nb; b++ {
		ms.averaged[b] = averageAcrossBands(raw[b])
		ms.weighted[b] = applyClippingWeight(ms.averaged[b])
	}

	return ms
}

// averageAcrossBands applies the 3-point moving average over adjacent
// bands; the first and last band keep their own spectra.
func averageAcrossBands(spectra [][]float64) [][]float64 {
	out := make([][]float64, len(spectra))

	out[0] = append([]float64(nil), spectra[0]...)
	out[len(spectra)-1] = append([]float64(nil), spectra[len(spectra)-1]...)

	for z := 1; z < len(spectra)-1; z++ {
		avg := make([]float64, len(spectra[z]))
		for k := range avg {
			avg[k] = (spectra[z-1][k] + spectra[z][k] + spectra[z+1][k]) / 3.0
		}
		out[z] = avg
	}

	return out
}

// applyClippingWeight derives the noise-reduction weight from the summed
// spectrum and applies it to every band. The weight is computed on the
// lower spectrum half and mirrored onto the symmetric half.
func applyClippingWeight(averaged [][]float64) [][]float64 {
	n := envBlockSize
	half := n / 2

	summed := make([]float64, half+1)
	for k := 0; k <= half; k++ {
		for z := range averaged {
			summed[k] += averaged[z][k]
		}
	}

	med, err := stats.NewPercentiles().Median(summed[nrMedianLoBin : nrMedianHiBin+1])
	if err != nil {
		med = 0
	}

	wTilde := make([]float64, half+1)
	for k := 0; k <= half; k++ {
		decay := nrDecayBase * math.Exp(nrDecayRate*float64(k))
		if decay > 1 {
			decay = 1
		}
		wTilde[k] = nrGain * summed[k] / (med + 1e-10) * decay
	}

	wMax := common.Max(wTilde)

	weight := make([]float64, n)
	for k := 0; k <= half; k++ {
		if wTilde[k] < nrRelFloor*wMax {
			continue
		}
		w := common.Clamp(wTilde[k]-nrSubtract, 0, 1)
		weight[k] = w
		if k > 0 && k < half {
			weight[n-k] = w
		}
	}

	out := make([][]float64, len(averaged))
	for z := range averaged {
		spec := make([]float64, len(averaged[z]))
		for k := range spec {
			spec[k] = averaged[z][k] * weight[k]
		}
		out[z] = spec
	}

	return out
}
