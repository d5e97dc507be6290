package roughness

import "github.com/acousticlab/psymetrics/auditory"

// Variant tags the output shape of a result.
type Variant int

const (
	// Mono is a single-channel result.
	Mono Variant = iota

	// Stereo is a two-channel result without a combined binaural channel.
	Stereo

	// StereoWithBinaural is a two-channel result carrying the combined
	// binaural channel derived from both ears. This is what the engine
	// produces for every stereo input.
	StereoWithBinaural
)

func (v Variant) String() string {
	switch v {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	case StereoWithBinaural:
		return "stereo+binaural"
	default:
		return "unknown"
	}
}

// Statistics aggregates a roughness time series after the transient skip.
type Statistics struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`

	// Percentiles holds R_x for x in {1,2,3,4,5,10,20,...,90,95}: the
	// roughness exceeded during x percent of the (skipped) time.
	Percentiles map[int]float64 `json:"percentiles"`
}

// ChannelResult holds the roughness arrays of one channel (or of the
// combined binaural channel).
type ChannelResult struct {
	// Specific is the time-dependent specific roughness in asper/Bark,
	// indexed [time][band]. All values are non-negative.
	Specific [][]float64 `json:"specific"`

	// SpecificAvg is the time-averaged specific roughness per band,
	// computed after the transient skip.
	SpecificAvg []float64 `json:"specific_avg"`

	// Instantaneous is the time-dependent overall roughness in asper.
	Instantaneous []float64 `json:"instantaneous"`

	// Stats aggregates Instantaneous after the transient skip.
	Stats Statistics `json:"stats"`
}

// Result is the complete output of one roughness analysis.
type Result struct {
	Variant   Variant            `json:"variant"`
	FieldType auditory.FieldType `json:"field_type"`

	// BandCentreFreqs are the 53 half-Bark band centre frequencies in Hz,
	// monotonically increasing.
	BandCentreFreqs []float64 `json:"band_centre_freqs"`

	// TimeOut is the uniform 50 Hz output time axis in seconds.
	TimeOut []float64 `json:"time_out"`

	// TimeIn is the axis of analysis block centres in seconds.
	TimeIn []float64 `json:"time_in"`

	// Channels holds one entry per input channel.
	Channels []ChannelResult `json:"channels"`

	// Binaural is the combined binaural channel; nil for mono input.
	Binaural *ChannelResult `json:"binaural,omitempty"`
}
