package kepler

import "math"

const (
	// elementsε is the tolerance used to detect circular and equatorial orbits.
	elementsε = 1e-8
)

// Elements are the classical orbital elements, parametrized with the semi-latus rectum so that
// parabolic orbits are supported. All angles are in radians.
type Elements struct {
	P    float64 // Semi-latus rectum
	Ecc  float64 // Eccentricity
	Inc  float64 // Inclination
	RAAN float64 // Right ascension of the ascending node
	ArgP float64 // Argument of periapsis
	Nu   float64 // True anomaly, in [-π, π)
}

// Circular returns whether these elements describe a circular orbit.
func (oe Elements) Circular() bool {
	return oe.Ecc < elementsε
}

// Equatorial returns whether these elements describe an equatorial orbit, prograde or retrograde.
func (oe Elements) Equatorial() bool {
	return math.Abs(oe.Inc) < elementsε || math.Abs(oe.Inc-math.Pi) < elementsε
}

// COE2RV returns the position and velocity vectors from the classical orbital elements.
func COE2RV(μ float64, oe Elements) (R, V []float64) {
	sinν, cosν := math.Sincos(oe.Nu)
	r := oe.P / (1 + oe.Ecc*cosν)
	v := math.Sqrt(μ / oe.P)
	R = Rot313Vec(oe.ArgP, oe.Inc, oe.RAAN, []float64{r * cosν, r * sinν, 0})
	V = Rot313Vec(oe.ArgP, oe.Inc, oe.RAAN, []float64{-v * sinν, v * (oe.Ecc + cosν), 0})
	return
}

// RV2COE returns the classical orbital elements from the R and V vectors (cf. Vallado's RV2COE, page 113).
// For circular orbits the argument of periapsis is zero and ν is the argument of latitude; for equatorial
// orbits the RAAN is zero and ω is the longitude of periapsis; for circular equatorial ones ν is the true longitude.
// Longitudes of retrograde equatorial orbits are measured clockwise, so that COE2RV recovers R and V.
func RV2COE(μ float64, R, V []float64) (oe Elements) {
	hVec := cross(R, V)
	h := norm(hVec)
	n := cross([]float64{0, 0, 1}, hVec)
	r := norm(R)
	v2 := dot(V, V)
	rv := dot(R, V)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v2-μ/r)*R[i] - rv*V[i]) / μ
	}
	oe.Ecc = norm(eVec)
	oe.P = h * h / μ
	oe.Inc = math.Acos(hVec[2] / h)

	var ν float64
	retro := sign(hVec[2])
	switch circular, equatorial := oe.Circular(), oe.Equatorial(); {
	case equatorial && !circular:
		oe.ArgP = modulo(retro*math.Atan2(eVec[1], eVec[0]), 2*math.Pi)
		ν = math.Atan2(dot(hVec, cross(eVec, R))/h, dot(R, eVec))
	case !equatorial && circular:
		oe.RAAN = modulo(math.Atan2(n[1], n[0]), 2*math.Pi)
		ν = math.Atan2(dot(R, cross(hVec, n))/h, dot(R, n))
	case equatorial && circular:
		ν = retro * math.Atan2(R[1], R[0])
	default:
		μa := μ * oe.P / (1 - oe.Ecc*oe.Ecc)
		if μa > 0 {
			sinE := rv / math.Sqrt(μa)
			cosE := r*v2/μ - 1
			ν = E2Nu(math.Atan2(sinE, cosE), oe.Ecc)
		} else {
			sinhF := rv / math.Sqrt(-μa)
			coshF := r*v2/μ - 1
			ν = F2Nu(math.Log((coshF+sinhF)/(coshF-sinhF))/2, oe.Ecc)
		}
		oe.RAAN = modulo(math.Atan2(n[1], n[0]), 2*math.Pi)
		px := dot(R, n)
		py := dot(R, cross(hVec, n)) / h
		oe.ArgP = modulo(math.Atan2(py, px)-ν, 2*math.Pi)
	}
	oe.Nu = wrapπ(ν)
	return
}
