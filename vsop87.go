package orbitcast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/julian"
	"github.com/soniakeys/meeus/planetposition"
	"github.com/soniakeys/meeus/pluto"
)

// VSOP87Source supplies heliocentric state vectors from the VSOP87 theory, as an
// offline alternative to the Horizons API. The position comes straight from the
// ephemerides; the velocity is reconstructed from vis-viva along the prograde
// direction, which is plenty for element derivation of near-circular planets.
type VSOP87Source struct {
	dir     string
	planets map[string]*planetposition.V87Planet
}

// NewVSOP87Source creates a source reading the VSOP87 data files from dir.
func NewVSOP87Source(dir string) *VSOP87Source {
	return &VSOP87Source{dir: dir, planets: make(map[string]*planetposition.V87Planet)}
}

// StateVector returns the Sun-centered state of the body at the given epoch.
func (s *VSOP87Source) StateVector(ctx context.Context, body CelestialObject, epoch time.Time) (StateVector, error) {
	if body.Name == Sun.Name {
		return StateVector{R: []float64{0, 0, 0}, V: []float64{0, 0, 0}, Epoch: epoch}, nil
	}
	var l, b, r float64
	if body.Name == Pluto.Name {
		// Special case in Sonia Keys' Meeus.
		lp, bp, rp := pluto.Heliocentric(julian.TimeToJD(epoch))
		l, b, r = lp.Rad(), bp.Rad(), rp
	} else {
		planet, err := s.load(body)
		if err != nil {
			return StateVector{}, err
		}
		lp, bp, rp := planet.Position2000(julian.TimeToJD(epoch))
		l, b, r = lp.Rad(), bp.Rad(), rp
	}
	r *= AU

	R := make([]float64, 3)
	sB, cB := math.Sincos(b)
	sL, cL := math.Sincos(l)
	R[0] = r * cB * cL
	R[1] = r * cB * sL
	R[2] = r * sB

	// Speed from vis-viva with the body's mean semi-major axis, along prograde.
	v := math.Sqrt(2*Sun.GM()/r - Sun.GM()/body.a)
	vDir := unit(cross(R, []float64{0, 0, -1}))
	V := make([]float64, 3)
	for i := 0; i < 3; i++ {
		V[i] = v * vDir[i]
	}
	return StateVector{R: R, V: V, Epoch: epoch}, nil
}

func (s *VSOP87Source) load(body CelestialObject) (*planetposition.V87Planet, error) {
	if planet, ok := s.planets[body.Name]; ok {
		return planet, nil
	}
	if body.HorizonsID < 199 || body.HorizonsID > 899 {
		return nil, fmt.Errorf("no VSOP87 theory for %s", body.Name)
	}
	ibody := body.HorizonsID/100 - 1 // planetposition.Mercury is 0
	planet, err := planetposition.LoadPlanetPath(ibody, s.dir)
	if err != nil {
		return nil, fmt.Errorf("could not load VSOP87 data for %s: %w", body.Name, err)
	}
	s.planets[body.Name] = planet
	return planet, nil
}
