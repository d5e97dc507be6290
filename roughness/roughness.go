// Package roughness implements the psychoacoustic roughness model of
// ECMA-418-2 (Sottek hearing model): a calibrated pressure signal is
// decomposed into 53 half-Bark auditory bands, the envelope modulation
// spectrum of each band is analyzed per overlapping block, modulation-rate
// peaks are grouped into harmonic complexes, and the perceptually weighted
// fundamental amplitudes are aggregated into time-dependent specific
// roughness, overall roughness and summary statistics in asper.
//
// The computation is a deterministic single pass over an in-memory buffer;
// for stereo input a combined binaural channel is derived by cell-wise RMS
// of the two ears.
package roughness

import (
	"fmt"

	"github.com/acousticlab/psymetrics/auditory"
	"github.com/acousticlab/psymetrics/logging"
)

// Analyzer computes roughness results. It is immutable after construction
// and safe for concurrent use by multiple goroutines.
type Analyzer struct {
	cfg         Config
	filterBank  *auditory.FilterBank
	centreFreqs []float64
	weightings  []bandWeighting
}

// New creates an analyzer for the given configuration.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fb := auditory.NewFilterBank()
	freqs := fb.CentreFreqs()

	weightings := make([]bandWeighting, len(freqs))
	for z, fc := range freqs {
		weightings[z] = newBandWeighting(fc)
	}

	return &Analyzer{
		cfg:         cfg,
		filterBank:  fb,
		centreFreqs: freqs,
		weightings:  weightings,
	}, nil
}

// NewDefault creates an analyzer with DefaultConfig.
func NewDefault() *Analyzer {
	a, err := New(DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid.
		panic(err)
	}
	return a
}

// Process analyzes a pressure-signal buffer laid out as
// [sample][channel] (1 or 2 channels) at the given native sample rate.
// The signal must be at least 300 ms long. Either the full result record
// is returned or an error before any output is produced.
func (a *Analyzer) Process(samples [][]float64, sampleRate int) (*Result, error) {
	channels, err := splitChannels(samples, sampleRate)
	if err != nil {
		return nil, err
	}
	if err := validateDuration(channels, sampleRate); err != nil {
		return nil, err
	}

	logging.Debug("roughness analysis started", logging.Fields{
		"channels":    len(channels),
		"sample_rate": sampleRate,
		"duration_s":  float64(len(channels[0])) / float64(sampleRate),
		"field_type":  a.cfg.FieldType,
	})

	a.progress("preprocess", 0)

	numChannels := len(channels)
	prepared := make([][]float64, numChannels)
	unpaddedLen := 0
	for ch, signal := range channels {
		p, n, err := preprocessChannel(signal, sampleRate)
		if err != nil {
			return nil, err
		}
		prepared[ch] = p
		unpaddedLen = n
	}

	timeIn := blockCentres(numBlocks(len(prepared[0])))
	timeOut := outputGrid(unpaddedLen)

	start := skipIndex(a.cfg.TransientSkip, len(timeOut))

	results := make([]ChannelResult, numChannels)
	specifics := make([][][]float64, numChannels)
	for ch := range prepared {
		specific, err := a.processChannel(prepared[ch], timeIn, timeOut, ch, numChannels)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		specifics[ch] = specific

		results[ch], err = assembleChannel(specific, start)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
	}

	result := &Result{
		Variant:         Mono,
		FieldType:       a.cfg.FieldType,
		BandCentreFreqs: a.filterBank.CentreFreqs(),
		TimeOut:         timeOut,
		TimeIn:          timeIn,
		Channels:        results,
	}

	if numChannels == 2 {
		result.Variant = StereoWithBinaural

		binauralSpecific := combineBinaural(specifics[0], specifics[1])
		binaural, err := assembleChannel(binauralSpecific, start)
		if err != nil {
			return nil, fmt.Errorf("binaural: %w", err)
		}
		result.Binaural = &binaural
	}

	a.progress("done", 1)
	return result, nil
}

// processChannel runs the per-channel pipeline through to the smoothed
// specific-roughness matrix.
func (a *Analyzer) processChannel(signal []float64, timeIn, timeOut []float64, ch, numChannels int) ([][]float64, error) {
	base := float64(ch) / float64(numChannels)
	span := 1.0 / float64(numChannels)

	earFilter, err := auditory.NewEarFilter(a.cfg.FieldType)
	if err != nil {
		return nil, err
	}
	filtered := earFilter.Process(signal)

	a.progress("filterbank", base+0.1*span)
	bandSignals := make([][]float64, auditory.NumBands)
	forEachBand(a.cfg.Workers, func(z int) {
		bandSignals[z] = a.filterBank.ProcessBand(filtered, z)
	})

	a.progress("envelope", base+0.35*span)
	ba := extractEnvelopes(bandSignals, a.centreFreqs, a.cfg.Workers)

	a.progress("modulation", base+0.6*span)
	ms := computeModSpectra(ba, a.cfg.Workers)

	a.progress("peaks", base+0.8*span)
	amplitudes := make([][]float64, ba.numBlocks)
	for b := 0; b < ba.numBlocks; b++ {
		amplitudes[b] = make([]float64, auditory.NumBands)
		for z := 0; z < auditory.NumBands; z++ {
			peaks := findPeaks(ms.weighted[b][z], ms.averaged[b][z])
			a.weightings[z].weightPeaks(peaks)

			rate, amplitude := fundamentalRate(peaks)
			amplitudes[b][z] = a.weightings[z].lowRateWeight(rate, amplitude)
		}
	}

	a.progress("aggregate", base+0.9*span)
	grid, err := interpolateToGrid(amplitudes, timeIn, timeOut)
	if err != nil {
		return nil, err
	}

	return transformSpecific(grid), nil
}

// assembleChannel derives the per-channel output arrays and statistics
// from a smoothed specific-roughness matrix.
func assembleChannel(specific [][]float64, start int) (ChannelResult, error) {
	overall := integrateBands(specific)

	stats, err := computeStatistics(overall, start)
	if err != nil {
		return ChannelResult{}, err
	}

	return ChannelResult{
		Specific:      specific,
		SpecificAvg:   bandAverages(specific, start),
		Instantaneous: overall,
		Stats:         stats,
	}, nil
}

// blockCentres returns the analysis block centre times in seconds.
func blockCentres(nb int) []float64 {
	centres := make([]float64, nb)
	for b := range centres {
		centres[b] = (float64(b)*hopSize + float64(blockSize)/2) / float64(auditorySampleRate)
	}
	return centres
}

// outputGrid returns the uniform 50 Hz time axis spanning the signal.
func outputGrid(unpaddedLen int) []float64 {
	duration := float64(unpaddedLen) / float64(auditorySampleRate)
	n := int(duration*outputRate) + 1

	grid := make([]float64, n)
	for l := range grid {
		grid[l] = float64(l) / outputRate
	}
	return grid
}

func (a *Analyzer) progress(stage string, fraction float64) {
	if a.cfg.Progress != nil {
		a.cfg.Progress(stage, fraction)
	}
}
