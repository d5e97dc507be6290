package roughness

import (
	"fmt"
	"math"

	"github.com/acousticlab/psymetrics/algorithms/resample"
	"github.com/acousticlab/psymetrics/logging"
)

// splitChannels validates the input buffer shape and returns one slice per
// channel. The expected layout is [sample][channel]; a [channel][sample]
// buffer with one or two rows is accepted with a warning and transposed.
func splitChannels(samples [][]float64, sampleRate int) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if len(samples) == 0 || len(samples[0]) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	numFrames := len(samples)
	numChannels := len(samples[0])

	if numChannels > 2 {
		// A wide first row can also mean the caller passed row vectors
		// of samples; accept that layout for 1 or 2 rows.
		if numFrames <= 2 {
			logging.Warn("signal appears transposed ([channel][sample]); auto-transposing",
				logging.Fields{"rows": numFrames, "cols": numChannels})
			return transposeRows(samples), nil
		}
		return nil, fmt.Errorf("at most 2 channels supported, got %d", numChannels)
	}

	for i, frame := range samples {
		if len(frame) != numChannels {
			return nil, fmt.Errorf("ragged signal buffer: frame %d has %d channels, want %d",
				i, len(frame), numChannels)
		}
	}

	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, numFrames)
		for i := range samples {
			channels[ch][i] = samples[i][ch]
		}
	}
	return channels, nil
}

func transposeRows(rows [][]float64) [][]float64 {
	channels := make([][]float64, len(rows))
	for ch, row := range rows {
		channels[ch] = make([]float64, len(row))
		copy(channels[ch], row)
	}
	return channels
}

// validateDuration rejects signals shorter than the minimum analysis
// duration at their native rate.
func validateDuration(channels [][]float64, sampleRate int) error {
	n := len(channels[0])
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != n {
			return fmt.Errorf("channel length mismatch: %d vs %d", len(channels[ch]), n)
		}
	}

	duration := float64(n) / float64(sampleRate)
	if duration < minDuration {
		return fmt.Errorf("signal too short: %.0f ms, need at least %.0f ms",
			duration*1000, minDuration*1000)
	}
	return nil
}

// preprocessChannel brings one channel to the internal 48 kHz rate, fades
// in the onset and zero-pads the tail so that analysis blocks tile the
// signal exactly. The second return value is the signal length at 48 kHz
// before padding, which defines the output time span.
func preprocessChannel(x []float64, sampleRate int) ([]float64, int, error) {
	signal := x
	if sampleRate != auditorySampleRate {
		resampled, err := resample.Resample(x, sampleRate, auditorySampleRate)
		if err != nil {
			return nil, 0, fmt.Errorf("resample to %d Hz: %w", auditorySampleRate, err)
		}
		signal = resampled
	} else {
		signal = make([]float64, len(x))
		copy(signal, x)
	}
	unpaddedLen := len(signal)

	// Raised-cosine fade-in against onset clicks.
	fade := fadeInSamples
	if fade > len(signal) {
		fade = len(signal)
	}
	for i := 0; i < fade; i++ {
		signal[i] *= 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(fade)))
	}

	// Pad the tail so (len-blockSize) is a whole number of hops.
	padded := len(signal)
	if padded < blockSize {
		padded = blockSize
	} else if rem := (padded - blockSize) % hopSize; rem != 0 {
		padded += hopSize - rem
	}
	if padded > len(signal) {
		signal = append(signal, make([]float64, padded-len(signal))...)
	}

	return signal, unpaddedLen, nil
}

// numBlocks returns the analysis block count of a padded signal.
func numBlocks(paddedLen int) int {
	return (paddedLen-blockSize)/hopSize + 1
}
