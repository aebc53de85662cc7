package tools

import (
	"math"
	"time"
)

// Hohmann computes an Hohmann transfer between two circular coplanar orbits of radii rI and rF about
// a body of gravitational parameter μ. It returns the departure and arrival velocities, and the time of flight.
// To get final computations:
// ΔvInit = vDepature - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, rF, μ float64) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * μ / rI) - (μ / aTransfer))
	vArrival = math.Sqrt((2 * μ / rF) - (μ / aTransfer))
	tof = time.Duration(math.Round(math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/μ) * float64(time.Second)))
	return
}

// GATurnAngle computes the turn angle of a flyby about a given body based on the radius of periapsis.
func GATurnAngle(vInf, rP, μ float64) float64 {
	ρ := math.Acos(1 / (1 + math.Pow(vInf, 2)*(rP/μ)))
	return math.Pi - 2*ρ
}

// GAPeriapsis is the inverse of GATurnAngle: it returns the radius of periapsis needed to turn by ψ.
func GAPeriapsis(vInf, ψ, μ float64) float64 {
	return (μ / math.Pow(vInf, 2)) * (1/math.Cos((math.Pi-ψ)/2) - 1)
}
