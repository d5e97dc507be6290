package roughness

import "github.com/acousticlab/psymetrics/auditory"

// auditorySampleRate is the 48 kHz internal rate of the hearing model.
const auditorySampleRate = auditory.SampleRate

// Fixed analysis geometry at the 48 kHz internal rate.
const (
	blockSize = 16384 // samples per analysis block
	hopSize   = 4096  // 75 % block overlap

	downsampleFactor = 32 // envelope decimation: 48 kHz -> 1500 Hz
	envBlockSize     = blockSize / downsampleFactor

	envSampleRate = float64(auditorySampleRate) / downsampleFactor

	// modResolution is the modulation-spectrum bin width in Hz.
	modResolution = envSampleRate / envBlockSize

	// outputRate is the uniform output grid rate in Hz.
	outputRate = 50.0

	// fadeInSamples is the length of the raised-cosine fade applied to
	// the start of the signal after resampling (0.1 s at 48 kHz).
	fadeInSamples = 4800

	// minDuration is the shortest accepted signal in seconds.
	minDuration = 0.3
)

// Peak detection and harmonic grouping parameters.
const (
	maxPeaksPerBlock  = 10
	peakRelThreshold  = 0.05 // discard peaks below 5 % of the largest
	harmonicTolerance = 0.04 // relative deviation from an integer ratio
	gravityExponent   = 0.749
)

// Perceptual calibration.
const (
	// calibrationFactor scales transformed amplitudes to asper; fixed so
	// the reference signal (1 kHz, 60 dB, 100 % AM at 70 Hz) averages
	// 1 asper.
	calibrationFactor = 0.0562528

	// amplitudeFloor zeroes negligible weighted amplitudes.
	amplitudeFloor = 0.074376

	// Asymmetric smoothing time constants in seconds.
	riseTime = 0.0625
	fallTime = 0.5
)

// Noise-reduction (clipping weight) parameters of the modulation spectra.
const (
	nrGain        = 0.0856
	nrDecayBase   = 0.1891
	nrDecayRate   = 0.0120
	nrSubtract    = 0.1407
	nrRelFloor    = 0.05
	nrMedianLoBin = 2
	nrMedianHiBin = 16
)

// High/low modulation-rate weighting parameters.
const (
	roughScaleBelow1k = 0.3560
	roughScaleAbove1k = 0.8024

	weightQ1High       = 1.2822
	weightQ2HighBelow  = 0.2471
	weightQ2HighAbove  = 0.2962
	weightQ1Low        = 0.7066
	weightQ2Low        = 1.0967

	// fmax(z) = fmaxBase*(1 - fmaxScale*exp(-fmaxDecay*fc/1000)) is the
	// modulation rate of maximum roughness weight for a band centred at
	// fc.
	fmaxBase  = 72.6937
	fmaxScale = 1.1739
	fmaxDecay = 5.4583
)

// rateBiasTable is the tabulated modulation-rate error-correction curve:
// the bias of the three-point parabolic rate estimate, in bins, sampled at
// 33 fractional-bin offsets theta_i = -0.5 + i/32.
var rateBiasTable = [33]float64{
	0.0000, 0.0457, 0.0907, 0.1346, 0.1765, 0.2157, 0.2515, 0.2828,
	0.3084, 0.3269, 0.3364, 0.3348, 0.3188, 0.2844, 0.2259, 0.1351,
	0.0000, -0.1351, -0.2259, -0.2844, -0.3188, -0.3348, -0.3364, -0.3269,
	-0.3084, -0.2828, -0.2515, -0.2157, -0.1765, -0.1346, -0.0907, -0.0457,
	0.0000,
}

// statPercentiles are the exceedance percentiles reported in Statistics.
var statPercentiles = []int{1, 2, 3, 4, 5, 10, 20, 30, 40, 50, 60, 70, 80, 90, 95}
