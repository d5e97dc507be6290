package filters

// Coefficients holds one normalized biquad section (a0 == 1)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is a single second-order IIR filter in transposed direct form II
type Section struct {
	coeffs Coefficients
	z1, z2 float64
}

// NewSection creates a biquad section from normalized coefficients
func NewSection(coeffs Coefficients) *Section {
	return &Section{coeffs: coeffs}
}

// Process filters a single sample
func (s *Section) Process(x float64) float64 {
	c := &s.coeffs
	y := c.B0*x + s.z1
	s.z1 = c.B1*x - c.A1*y + s.z2
	s.z2 = c.B2*x - c.A2*y
	return y
}

// ProcessBuffer filters a buffer, returning a new slice
func (s *Section) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, x := range input {
		output[i] = s.Process(x)
	}
	return output
}

// Reset clears the section's delay state
func (s *Section) Reset() {
	s.z1, s.z2 = 0, 0
}

// Cascade is a chain of biquad sections applied in series
type Cascade struct {
	sections []*Section
}

// NewCascade builds a cascade from a list of section coefficients
func NewCascade(coeffs []Coefficients) *Cascade {
	sections := make([]*Section, len(coeffs))
	for i, c := range coeffs {
		sections[i] = NewSection(c)
	}
	return &Cascade{sections: sections}
}

// Process filters a single sample through all sections
func (c *Cascade) Process(x float64) float64 {
	y := x
	for _, s := range c.sections {
		y = s.Process(y)
	}
	return y
}

// ProcessBuffer filters a buffer through all sections, returning a new slice
func (c *Cascade) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, x := range input {
		output[i] = c.Process(x)
	}
	return output
}

// Reset clears the delay state of every section
func (c *Cascade) Reset() {
	for _, s := range c.sections {
		s.Reset()
	}
}

// NumSections returns the number of biquad sections in the cascade
func (c *Cascade) NumSections() int {
	return len(c.sections)
}
