package roughness

import (
	"fmt"

	"github.com/acousticlab/psymetrics/auditory"
)

// ProgressFunc receives coarse pipeline progress: the stage name and a
// completion fraction in [0, 1]. It is only ever called synchronously from
// Process and is never required for correctness.
type ProgressFunc func(stage string, fraction float64)

// Config controls a roughness analysis run.
type Config struct {
	// FieldType selects the outer-ear transfer function. Defaults to
	// free-frontal incidence.
	FieldType auditory.FieldType `json:"field_type"`

	// TransientSkip is the initial duration in seconds excluded from the
	// statistics, avoiding filter start-up artifacts. Must be >= 0.
	TransientSkip float64 `json:"transient_skip"`

	// Workers bounds the number of goroutines used for the per-band
	// stages. Values below 2 select serial execution. Results are
	// identical for any worker count.
	Workers int `json:"workers,omitempty"`

	// Progress, when set, is notified at stage boundaries.
	Progress ProgressFunc `json:"-"`
}

// DefaultConfig returns the standard analysis configuration.
func DefaultConfig() Config {
	return Config{
		FieldType:     auditory.FreeFrontal,
		TransientSkip: 0.3,
	}
}

// Validate reports configuration errors before any computation starts.
func (c *Config) Validate() error {
	if !c.FieldType.Valid() {
		return fmt.Errorf("invalid field type %q (want %q or %q)",
			c.FieldType, auditory.FreeFrontal, auditory.Diffuse)
	}
	if c.TransientSkip < 0 {
		return fmt.Errorf("transient skip must be >= 0, got %g", c.TransientSkip)
	}
	return nil
}
