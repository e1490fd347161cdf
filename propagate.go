package orbitcast

import (
	"math"
	"time"
)

// keplerIterations is the fixed Newton-Raphson iteration count of the Kepler solver.
// There is no convergence check: the cost per step is constant and the residual is
// far below the export precision for planetary eccentricities.
const keplerIterations = 5

// Sample is a single propagated position at a given instant.
type Sample struct {
	DT       time.Time
	Position []float64 // km, inertial frame of the orbit origin
}

// Propagate samples the orbit over one full period in fixed steps of stepDays,
// starting at the element epoch. It emits floor(periodDays/stepDays)+1 samples: the
// floor-truncated period means the last sample stops short of a full revolution.
func Propagate(el *OrbitalElements, stepDays int) ([]Sample, error) {
	if stepDays <= 0 {
		return nil, &InvalidStepError{stepDays}
	}
	numSteps := el.periodDays / stepDays
	samples := make([]Sample, 0, numSteps+1)

	// The epoch residual E0 - e*sin(E0) is folded into every step's mean anomaly.
	m0 := el.e0 - el.e*math.Sin(el.e0)

	for k := 0; k <= numSteps; k++ {
		dt := float64(k*stepDays) * secondsPerDay
		M := el.n*dt + m0
		E := solveKepler(M, el.e)

		ν := M
		if el.e < 1 {
			ν = 2 * math.Atan(math.Sqrt((1+el.e)/(1-el.e))*math.Tan(E/2))
		}
		r := el.a * (1 - el.e*math.Cos(E))

		sν, cν := math.Sincos(ν)
		pos := PQW2ECI(el.i, el.ω, el.Ω, []float64{r * cν, r * sν, 0})

		samples = append(samples, Sample{
			DT:       el.Epoch.Add(time.Duration(k*stepDays) * 24 * time.Hour),
			Position: pos,
		})
	}
	return samples, nil
}

// solveKepler solves E - e*sin(E) = M for E via Newton-Raphson, seeded at M.
func solveKepler(M, e float64) float64 {
	E := M
	for it := 0; it < keplerIterations; it++ {
		E -= (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
	}
	return E
}
