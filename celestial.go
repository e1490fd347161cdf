package orbitcast

import (
	"fmt"
	"strings"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
)

// CelestialObject defines a celestial object.
type CelestialObject struct {
	Name       string
	Radius     float64
	a          float64
	μ          float64
	HorizonsID int // JPL Horizons COMMAND identifier, 0 for the Sun
	StepDays   int // default sampling step for a full-orbit export
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// SemiMajorAxis returns the mean heliocentric semi-major axis in km.
func (c CelestialObject) SemiMajorAxis() float64 {
	return c.a
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "mercury":
		return Mercury, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "neptune":
		return Neptune, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star. Its μ matches the JPL Horizons vector ephemerides.
var Sun = CelestialObject{"Sun", 695700, -1, 1.32712440018e11, 0, 0}

// Mercury is the first one.
var Mercury = CelestialObject{"Mercury", 2439.7, 57909050, 2.2032e4, 199, 1}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 6051.8, 108208601, 3.24858599e5, 299, 1}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 149598023, 3.98600433e5, 399, 1}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 227939282.5616, 4.28283100e4, 499, 1}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 778298361, 1.266865361e8, 599, 5}

// Saturn floats and that's really cool.
var Saturn = CelestialObject{"Saturn", 60268.0, 1429394133, 3.7931208e7, 699, 10}

// Uranus is no joke.
var Uranus = CelestialObject{"Uranus", 25559.0, 2875038615, 5.7939513e6, 799, 25}

// Neptune is deep blue.
var Neptune = CelestialObject{"Neptune", 24764.0, 4498252900, 6.836529e6, 899, 50}

// Pluto is not a planet and had that down ranking coming. It should have stayed in its lane.
var Pluto = CelestialObject{"Pluto", 1151.0, 5915799000, 9. * 1e2, 999, 100}

// Planets lists the Horizons targets in increasing distance from the Sun.
var Planets = []CelestialObject{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
