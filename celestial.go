package kepler

import (
	"fmt"
	"strings"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.495978707e8
	// GravitationalConstant is the Newtonian constant of gravitation in m^3 kg^-1 s^-2 (CODATA 2018).
	GravitationalConstant = 6.67430e-11
)

// CelestialObject defines the central body of an orbit.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km^3/s^2
}

// NewCelestialObject returns a central body from its name, radius and gravitational parameter μ.
// Unlike the predefined bodies, the units are those of the caller (e.g. m^3/s^2 works as long as it is consistent).
func NewCelestialObject(name string, radius, μ float64) CelestialObject {
	return CelestialObject{name, radius, μ}
}

// NewCelestialObjectFromMass returns a central body from its mass in kg, with μ in km^3/s^2.
func NewCelestialObjectFromMass(name string, radius, mass float64) CelestialObject {
	return CelestialObject{name, radius, GravitationalConstant * mass * 1e-9}
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, 1.32712440017987e11}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 3.986004418e5}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 4.28283100e4}

// Jupiter is big.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 1.266865361e8}
