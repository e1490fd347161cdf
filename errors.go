package orbitcast

import "fmt"

// DegenerateOrbitError is returned when a state vector does not describe a bound
// elliptical orbit: zero radius, zero angular momentum (rectilinear motion) or a
// non-positive semi-major axis (parabolic or hyperbolic case).
type DegenerateOrbitError struct {
	Reason string
}

func (e *DegenerateOrbitError) Error() string {
	return "degenerate orbit: " + e.Reason
}

// InvalidStepError is returned when the requested sampling step is not a strictly
// positive number of days.
type InvalidStepError struct {
	StepDays int
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid step of %d days, must be > 0", e.StepDays)
}

// ParseError is returned when the state vectors cannot be extracted from an
// ephemerides provider response.
type ParseError struct {
	Source string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse state vectors from %s: %s", e.Source, e.Detail)
}
