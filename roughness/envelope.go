package roughness

import (
	"sync"

	"github.com/acousticlab/psymetrics/algorithms/spectral"
	"github.com/acousticlab/psymetrics/auditory"
)

// bandAnalysis holds the per-block, per-band intermediates of one channel.
// All arrays are allocated once per invocation, sized from the input
// length, and never aliased across stages.
type bandAnalysis struct {
	numBlocks int

	// envelopes is the downsampled Hilbert envelope per block and band,
	// indexed [block][band][envSample].
	envelopes [][][]float64

	// basisLoudness is indexed [block][band].
	basisLoudness [][]float64
}

// extractEnvelopes segments each band signal into overlapping blocks and
// computes, per block, the basis loudness and the decimated magnitude of
// the analytic signal.
func extractEnvelopes(bandSignals [][]float64, centreFreqs []float64, workers int) *bandAnalysis {
	nb := numBlocks(len(bandSignals[0]))

	ba := &bandAnalysis{
		numBlocks:     nb,
		envelopes:     make([][][]float64, nb),
		basisLoudness: make([][]float64, nb),
	}
	for b := 0; b < nb; b++ {
		ba.envelopes[b] = make([][]float64, auditory.NumBands)
		ba.basisLoudness[b] = make([]float64, auditory.NumBands)
	}

	forEachBand(workers, func(z int) {
		fft := spectral.NewFFT()
		signal := bandSignals[z]
		block := make([]float64, blockSize)

		for b := 0; b < nb; b++ {
			start := b * hopSize
			end := start + blockSize
			if end > len(signal) {
				// Short tail blocks are zero-padded, never dropped.
				copy(block, signal[start:])
				for i := len(signal) - start; i < blockSize; i++ {
					block[i] = 0
				}
			} else {
				copy(block, signal[start:end])
			}

			ba.basisLoudness[b][z] = auditory.BasisLoudness(centreFreqs[z], block)

			env := fft.Envelope(block)
			ba.envelopes[b][z] = decimate(env, downsampleFactor)
		}
	})

	return ba
}

// decimate keeps every factor-th sample.
func decimate(x []float64, factor int) []float64 {
	out := make([]float64, len(x)/factor)
	for i := range out {
		out[i] = x[i*factor]
	}
	return out
}

// forEachBand runs fn for every band index, optionally fanning out over
// workers. Each invocation writes only band-local state, so the result is
// identical for any worker count.
func forEachBand(workers int, fn func(z int)) {
	if workers < 2 {
		for z := 0; z < auditory.NumBands; z++ {
			fn(z)
		}
		return
	}
	if workers > auditory.NumBands {
		workers = auditory.NumBands
	}

	var wg sync.WaitGroup
	bands := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for z := range bands {
				fn(z)
			}
		}()
	}

	for z := 0; z < auditory.NumBands; z++ {
		bands <- z
	}
	close(bands)
	wg.Wait()
}
