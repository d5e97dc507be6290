package auditory

import (
	"fmt"

	"github.com/acousticlab/psymetrics/algorithms/filters"
)

// FieldType selects the sound-field assumption of the outer-ear transfer
// function.
type FieldType string

const (
	// FreeFrontal models a frontally incident plane wave in a free field.
	FreeFrontal FieldType = "free-frontal"

	// Diffuse models a diffuse sound field.
	Diffuse FieldType = "diffuse"
)

// Valid reports whether ft is a recognized field type.
func (ft FieldType) Valid() bool {
	return ft == FreeFrontal || ft == Diffuse
}

// Outer/middle-ear transfer filter: a fixed cascade of eight biquad
// sections at 48 kHz. The first three sections carry the field-dependent
// outer-ear part, the rest model the middle ear.
var earFreeFrontal = []filters.Coefficients{
	{B0: 1.015896, B1: -1.925299, B2: 0.922118, A1: -1.925299, A2: 0.938014},
	{B0: 0.958943, B1: -1.806088, B2: 0.876439, A1: -1.806088, A2: 0.835382},
	{B0: 0.961372, B1: -1.763632, B2: 0.821788, A1: -1.763632, A2: 0.783160},
	{B0: 2.225804, B1: -1.434650, B2: -0.498204, A1: -1.434650, A2: 0.727599},
	{B0: 0.471735, B1: -0.366092, B2: 0.244145, A1: -0.366092, A2: -0.284120},
	{B0: 0.115267, B1: 0.000000, B2: -0.115267, A1: -1.796003, A2: 0.805838},
	{B0: 0.988029, B1: -1.912434, B2: 0.926132, A1: -1.912434, A2: 0.914161},
	{B0: 1.952238, B1: 0.162320, B2: -0.667994, A1: 0.162320, A2: 0.284244},
}

var earDiffuse = []filters.Coefficients{
	{B0: 0.998417, B1: -1.869876, B2: 0.887427, A1: -1.869876, A2: 0.885844},
	{B0: 0.993518, B1: -1.796998, B2: 0.843366, A1: -1.796998, A2: 0.836884},
	{B0: 0.990186, B1: -1.714054, B2: 0.775898, A1: -1.714054, A2: 0.766084},
	{B0: 2.225804, B1: -1.434650, B2: -0.498204, A1: -1.434650, A2: 0.727599},
	{B0: 0.471735, B1: -0.366092, B2: 0.244145, A1: -0.366092, A2: -0.284120},
	{B0: 0.115267, B1: 0.000000, B2: -0.115267, A1: -1.796003, A2: 0.805838},
	{B0: 0.988029, B1: -1.912434, B2: 0.926132, A1: -1.912434, A2: 0.914161},
	{B0: 1.952238, B1: 0.162320, B2: -0.667994, A1: 0.162320, A2: 0.284244},
}

// EarFilter applies the outer/middle-ear transfer function for one field
// type. Not safe for concurrent use; create one per goroutine.
type EarFilter struct {
	fieldType FieldType
	cascade   *filters.Cascade
}

// NewEarFilter creates the outer/middle-ear filter for the given field
// type. An unknown field type is a configuration error.
func NewEarFilter(ft FieldType) (*EarFilter, error) {
	var coeffs []filters.Coefficients
	switch ft {
	case FreeFrontal:
		coeffs = earFreeFrontal
	case Diffuse:
		coeffs = earDiffuse
	default:
		return nil, fmt.Errorf("invalid field type %q (want %q or %q)", ft, FreeFrontal, Diffuse)
	}

	return &EarFilter{
		fieldType: ft,
		cascade:   filters.NewCascade(coeffs),
	}, nil
}

// FieldType returns the configured sound field.
func (e *EarFilter) FieldType() FieldType {
	return e.fieldType
}

// Process filters the signal, returning a new buffer of the same length.
func (e *EarFilter) Process(signal []float64) []float64 {
	e.cascade.Reset()
	return e.cascade.ProcessBuffer(signal)
}
