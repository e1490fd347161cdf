package orbitcast

import (
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

const (
	// nearZeroε is the eccentricity/node threshold below which the orbit is treated
	// as circular or equatorial and the corresponding angles are zeroed by convention.
	nearZeroε = 1e-8
	// clampNoiseε is the inverse-trig domain overshoot above which the clamp is
	// worth reporting: anything larger than rounding noise hints at a bad input.
	clampNoiseε = 1e-6
	// angleε is the test tolerance on angles: 0.005 degrees.
	angleε = (5e-3 / 360) * (2 * math.Pi)

	secondsPerDay = 86400.0
)

var logger kitlog.Logger = kitlog.NewNopLogger()

// SetLogger routes package diagnostics, such as inverse-trig clamp notices, to l.
func SetLogger(l kitlog.Logger) {
	logger = l
}

// StateVector is an instantaneous Cartesian state (km, km/s) at a given epoch.
type StateVector struct {
	R     []float64 // position, km
	V     []float64 // velocity, km/s
	Epoch time.Time
}

// RNorm returns the scalar distance in km.
func (s StateVector) RNorm() float64 {
	return norm(s.R)
}

// VNorm returns the scalar speed in km/s.
func (s StateVector) VNorm() float64 {
	return norm(s.V)
}

func (s StateVector) String() string {
	return fmt.Sprintf("R=%+v km\tV=%+v km/s @ %s", s.R, s.V, s.Epoch.UTC())
}

// OrbitalElements holds the classical orbital elements of a bound orbit along with
// the scalars derived for propagation. Computed once per state vector, never mutated.
type OrbitalElements struct {
	a, e, i, Ω, ω, ν0 float64
	e0, n             float64 // eccentric anomaly at epoch, mean motion (rad/s)
	periodS           float64
	periodDays        int
	Epoch             time.Time
	Origin            CelestialObject
}

// Elements returns the six classical orbital elements.
func (o OrbitalElements) Elements() (a, e, i, Ω, ω, ν float64) {
	return o.a, o.e, o.i, o.Ω, o.ω, o.ν0
}

// MeanMotion returns the mean motion in rad/s.
func (o OrbitalElements) MeanMotion() float64 {
	return o.n
}

// EccentricAnomaly0 returns the eccentric anomaly at the epoch.
func (o OrbitalElements) EccentricAnomaly0() float64 {
	return o.e0
}

// PeriodSeconds returns the exact orbital period in seconds.
func (o OrbitalElements) PeriodSeconds() float64 {
	return o.periodS
}

// PeriodDays returns the orbital period floored to whole days. The truncation is
// deliberate: it bounds the sampling loop, so the last sample of a full-orbit export
// falls short of one revolution by the fractional-day remainder.
func (o OrbitalElements) PeriodDays() int {
	return o.periodDays
}

// Period returns the period of this orbit.
func (o OrbitalElements) Period() time.Duration {
	// The time package does not trivially handle fractions of a second, so let's
	// compute this in a convoluted way...
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", o.periodS))
	return duration
}

// String implements the stringer interface (hence the value receiver)
func (o OrbitalElements) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f T=%dd", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.ν0), o.periodDays)
}

// NewElementsFromState derives the classical orbital elements from a Cartesian state
// vector about the given origin, as in Vallado's RV2COE. Only bound elliptical orbits
// are supported: rectilinear and unbound cases return a *DegenerateOrbitError.
func NewElementsFromState(sv StateVector, origin CelestialObject) (*OrbitalElements, error) {
	μ := origin.GM()
	r := norm(sv.R)
	v := norm(sv.V)
	if r == 0 {
		return nil, &DegenerateOrbitError{"zero radius"}
	}

	hVec := cross(sv.R, sv.V)
	h := norm(hVec)
	if h == 0 {
		return nil, &DegenerateOrbitError{"zero angular momentum"}
	}

	vxh := cross(sv.V, hVec)
	eVec := make([]float64, 3)
	for j := 0; j < 3; j++ {
		eVec[j] = vxh[j]/μ - sv.R[j]/r
	}
	e := norm(eVec)

	// Vis-viva.
	a := 1 / (2/r - v*v/μ)
	if a <= 0 {
		return nil, &DegenerateOrbitError{fmt.Sprintf("unbound orbit (a=%.1f km)", a)}
	}

	periodS := 2 * math.Pi * math.Sqrt(math.Pow(a, 3)/μ)
	periodDays := int(periodS / secondsPerDay)

	maxOvershoot := 0.0
	acos := func(x float64) float64 {
		if ov := overshoot1(x); ov > maxOvershoot {
			maxOvershoot = ov
		}
		return math.Acos(clamp1(x))
	}

	i := acos(hVec[2] / h)

	// Node vector.
	nVec := []float64{-hVec[1], hVec[0], 0}
	nn := math.Sqrt(nVec[0]*nVec[0] + nVec[1]*nVec[1])

	var Ω float64
	if nn != 0 {
		Ω = acos(nVec[0] / nn)
	}
	if nVec[1] < 0 {
		Ω = 2*math.Pi - Ω
	}

	var ω float64
	if nn != 0 && e > nearZeroε {
		ω = acos(dot(nVec, eVec) / (nn * e))
	}
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}

	var ν0 float64
	if e > nearZeroε {
		ν0 = acos(dot(eVec, sv.R) / (e * r))
	}
	if dot(sv.R, sv.V) < 0 {
		ν0 = 2*math.Pi - ν0
	}

	if maxOvershoot > clampNoiseε {
		logger.Log("level", "warning", "subsys", "orbit", "message", "acos argument clamped beyond rounding noise", "overshoot", maxOvershoot)
	}

	// Eccentric anomaly at epoch. The e >= 1 branch is only a guard: such orbits
	// were rejected above through the semi-major axis sign.
	e0 := ν0
	if e < 1 {
		e0 = 2 * math.Atan(math.Sqrt((1-e)/(1+e))*math.Tan(ν0/2))
	}

	n := math.Sqrt(μ / math.Pow(a, 3))

	return &OrbitalElements{a, e, i, Ω, ω, ν0, e0, n, periodS, periodDays, sv.Epoch, origin}, nil
}
