package kepler

import (
	"errors"
	"math"
)

// Farnocchia's time of flight propagation: every regime goes through the time elapsed since periapsis.
// Cf. Farnocchia, Cioci & Milani (2013), "Robust resolution of Kepler's equation in all eccentricity regimes".

// meanMotion returns the mean motion associated with the regime's mean anomaly.
func meanMotion(r Regime, ecc, μ, q float64) float64 {
	switch r {
	case StrongElliptic:
		return math.Sqrt(μ * math.Pow(1-ecc, 3) / math.Pow(q, 3))
	case StrongHyperbolic:
		return math.Sqrt(μ * math.Pow(ecc-1, 3) / math.Pow(q, 3))
	default:
		return math.Sqrt(μ / (2 * math.Pow(q, 3)))
	}
}

// timeOfFlightRegime refines the eccentricity regime with the position on the orbit: within the near
// parabolic band, an anomaly far enough from periapsis is handled with the strong formulas.
func timeOfFlightRegime(ν, ecc, δ float64) Regime {
	r := ClassifyEccentricity(ecc, δ)
	switch r {
	case NearParabolicLow:
		if δ <= 1-ecc*math.Cos(Nu2E(ν, ecc)) {
			return StrongElliptic
		}
	case NearParabolicHigh:
		if δ <= ecc*math.Cosh(Nu2F(ν, ecc))-1 {
			return StrongHyperbolic
		}
	}
	return r
}

// DeltaTFromNu returns the time elapsed since periapsis for the true anomaly ν in [-π, π),
// the eccentricity ecc, the gravitational parameter μ and the periapsis distance q.
// A true anomaly beyond the asymptotes of a hyperbola is never reached: NaN is returned without error.
func DeltaTFromNu(ν, ecc, μ, q, δ float64) (float64, error) {
	if !(ecc >= 0) {
		return math.NaN(), &DomainError{Quantity: "ecc", Value: ecc, Domain: "[0, ∞)"}
	}
	if !(ν >= -math.Pi && ν < math.Pi) {
		return math.NaN(), &DomainError{Quantity: "ν", Value: ν, Domain: "[-π, π)"}
	}
	if ecc > 1 && 1+ecc*math.Cos(ν) < 0 {
		return math.NaN(), nil
	}
	r := timeOfFlightRegime(ν, ecc, δ)
	var M float64
	switch r {
	case StrongElliptic:
		M = E2M(Nu2E(ν, ecc), ecc)
	case NearParabolicLow, NearParabolicHigh:
		// If |ν| is far from π this is bounded because the near parabolic region shrinks in its vicinity.
		var err error
		if M, err = D2MNearParabolic(Nu2D(ν), ecc); err != nil {
			return math.NaN(), err
		}
	case Parabolic:
		M = D2M(Nu2D(ν))
	case StrongHyperbolic:
		M = F2M(Nu2F(ν, ecc), ecc)
	}
	return M / meanMotion(r, ecc, μ, q), nil
}

// NuFromDeltaT returns the true anomaly reached Δt after periapsis. It is the inverse of DeltaTFromNu;
// elliptic propagations of several revolutions are wrapped.
func NuFromDeltaT(Δt, ecc, μ, q, δ float64) (float64, error) {
	ν, _, err := nuFromDeltaT(Δt, ecc, μ, q, δ)
	return ν, err
}

func nuFromDeltaT(Δt, ecc, μ, q, δ float64) (ν float64, converged bool, err error) {
	if !(ecc >= 0) {
		return math.NaN(), false, &DomainError{Quantity: "ecc", Value: ecc, Domain: "[0, ∞)"}
	}
	r := ClassifyEccentricity(ecc, δ)
	// Within the band, assume the strong regime and verify against the mean anomaly of the band boundary.
	// Check against |M| because the boundary anomaly could also be negative.
	switch r {
	case NearParabolicLow:
		Eδ := math.Acos((1 - δ) / ecc)
		if E2M(Eδ, ecc) <= math.Abs(meanMotion(StrongElliptic, ecc, μ, q)*Δt) {
			r = StrongElliptic
		}
	case NearParabolicHigh:
		Fδ := math.Acosh((1 + δ) / ecc)
		if F2M(Fδ, ecc) <= math.Abs(meanMotion(StrongHyperbolic, ecc, μ, q)*Δt) {
			r = StrongHyperbolic
		}
	}
	M := meanMotion(r, ecc, μ, q) * Δt
	switch r {
	case StrongElliptic:
		var E float64
		E, converged = m2E(wrapπ(M), ecc)
		ν = E2Nu(E, ecc)
	case StrongHyperbolic:
		var F float64
		F, converged = m2F(M, ecc)
		ν = F2Nu(F, ecc)
	case Parabolic:
		ν, converged = D2Nu(M2D(M)), true
	default:
		var D float64
		D, converged, err = m2DNearParabolic(M, ecc)
		ν = D2Nu(D)
	}
	return
}

// FarnocchiaCOE returns the true anomaly after a time of flight tof (in seconds, negative to propagate
// backward) for the orbit defined by the classical orbital elements. The orientation (inc, raan, argp)
// does not change in unperturbed two-body motion and is only accepted for symmetry with COE2RV.
func FarnocchiaCOE(μ, p, ecc, inc, raan, argp, ν, tof float64) (float64, error) {
	νf, _, err := farnocchia(μ, p, ecc, ν, tof, DefaultDelta)
	return νf, err
}

// farnocchia also reports whether the final Kepler solver converged.
func farnocchia(μ, p, ecc, ν, tof, δ float64) (float64, bool, error) {
	q := p / (1 + ecc)
	Δt0, err := DeltaTFromNu(wrapπ(ν), ecc, μ, q, δ)
	if err != nil {
		return math.NaN(), false, err
	}
	if math.IsNaN(Δt0) {
		return math.NaN(), true, nil
	}
	return nuFromDeltaT(Δt0+tof, ecc, μ, q, δ)
}

// ErrUnfeasible is returned when a state vector propagation lands beyond the asymptotes of a hyperbola.
var ErrUnfeasible = errors.New("true anomaly unreachable on this hyperbola")

// FarnocchiaRV propagates the state vectors R0 and V0 by tof seconds.
func FarnocchiaRV(μ float64, R0, V0 []float64, tof float64) (R, V []float64, err error) {
	if len(R0) != 3 || len(V0) != 3 {
		return nil, nil, errors.New("state vectors must be of dimension 3")
	}
	oe := RV2COE(μ, R0, V0)
	if oe.Nu, err = FarnocchiaCOE(μ, oe.P, oe.Ecc, oe.Inc, oe.RAAN, oe.ArgP, oe.Nu, tof); err != nil {
		return nil, nil, err
	}
	if math.IsNaN(oe.Nu) {
		return nil, nil, ErrUnfeasible
	}
	R, V = COE2RV(μ, oe)
	return
}
