package kepler

import "math"

// E2M converts the eccentric anomaly to the mean anomaly.
func E2M(E, ecc float64) float64 {
	return E - ecc*math.Sin(E)
}

// M2E solves Kepler's equation M = E - ecc sin(E) for the eccentric anomaly.
func M2E(M, ecc float64) float64 {
	E, _ := m2E(M, ecc)
	return E
}

func m2E(M, ecc float64) (float64, bool) {
	E0 := M + ecc
	if M < 0 {
		E0 = M - ecc
	}
	E, converged, _ := keplerNewton.Solve(E0,
		total(func(E float64) float64 { return E2M(E, ecc) - M }),
		total(func(E float64) float64 { return 1 - ecc*math.Cos(E) }))
	return E, converged
}

// F2M converts the hyperbolic anomaly to the mean anomaly.
func F2M(F, ecc float64) float64 {
	return ecc*math.Sinh(F) - F
}

// M2F solves the hyperbolic Kepler equation M = ecc sinh(F) - F for the hyperbolic anomaly.
func M2F(M, ecc float64) float64 {
	F, _ := m2F(M, ecc)
	return F
}

func m2F(M, ecc float64) (float64, bool) {
	F, converged, _ := keplerNewton.Solve(math.Asinh(M/ecc),
		total(func(F float64) float64 { return F2M(F, ecc) - M }),
		total(func(F float64) float64 { return ecc*math.Cosh(F) - 1 }))
	return F, converged
}

// E2Nu converts the eccentric anomaly to the true anomaly.
func E2Nu(E, ecc float64) float64 {
	return 2 * math.Atan(math.Sqrt((1+ecc)/(1-ecc))*math.Tan(E/2))
}

// Nu2E converts the true anomaly to the eccentric anomaly.
func Nu2E(ν, ecc float64) float64 {
	return 2 * math.Atan(math.Sqrt((1-ecc)/(1+ecc))*math.Tan(ν/2))
}

// F2Nu converts the hyperbolic anomaly to the true anomaly.
func F2Nu(F, ecc float64) float64 {
	return 2 * math.Atan(math.Sqrt((ecc+1)/(ecc-1))*math.Tanh(F/2))
}

// Nu2F converts the true anomaly to the hyperbolic anomaly.
// acosh only returns the magnitude, so the sign of ν is restored.
func Nu2F(ν, ecc float64) float64 {
	cosν := math.Cos(ν)
	coshF := (ecc + cosν) / (1 + ecc*cosν)
	if coshF < 1 && coshF > 1-1e-12 {
		// Rounding when ν ~ 0; beyond the asymptotes acosh yields NaN.
		coshF = 1
	}
	return math.Copysign(math.Acosh(coshF), ν)
}

// D2M converts the parabolic anomaly to the mean anomaly (Barker's equation).
func D2M(D float64) float64 {
	return D + D*D*D/3
}

// M2D inverts Barker's equation in closed form.
func M2D(M float64) float64 {
	B := 3 * M / 2
	A := math.Pow(B+math.Sqrt(1+B*B), 2./3)
	return 2 * A * B / (1 + A + A*A)
}

// D2Nu converts the parabolic anomaly to the true anomaly.
func D2Nu(D float64) float64 {
	return 2 * math.Atan(D)
}

// Nu2D converts the true anomaly to the parabolic anomaly.
func Nu2D(ν float64) float64 {
	return math.Tan(ν / 2)
}

// nearParabolicX returns the argument of the near parabolic series, failing unless |x| < 1.
func nearParabolicX(D, ecc float64) (float64, error) {
	x := (ecc - 1) / (ecc + 1) * D * D
	if !(math.Abs(x) < 1) {
		return x, &DomainError{Quantity: "x", Value: x, Domain: "|x| < 1"}
	}
	return x, nil
}

// D2MNearParabolic converts the parabolic anomaly to the mean anomaly for eccentricities close to one.
func D2MNearParabolic(D, ecc float64) (float64, error) {
	x, err := nearParabolicX(D, ecc)
	if err != nil {
		return math.NaN(), err
	}
	S, err := SeriesS(ecc, x, DefaultSeriesAtol)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(2/(1+ecc))*D + math.Sqrt(2/math.Pow(1+ecc, 3))*D*D*D*S, nil
}

// dD2MNearParabolic is the derivative of D2MNearParabolic with respect to D.
func dD2MNearParabolic(D, ecc float64) (float64, error) {
	x, err := nearParabolicX(D, ecc)
	if err != nil {
		return math.NaN(), err
	}
	S, err := SeriesDS(ecc, x, DefaultSeriesAtol)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(2/(1+ecc)) + math.Sqrt(2/math.Pow(1+ecc, 3))*D*D*S, nil
}

// M2DNearParabolic solves the near parabolic Kepler equation for the parabolic anomaly,
// seeded with the exact parabolic solution.
func M2DNearParabolic(M, ecc float64) (float64, error) {
	D, _, err := m2DNearParabolic(M, ecc)
	return D, err
}

func m2DNearParabolic(M, ecc float64) (float64, bool, error) {
	return nearParabolicNewton.Solve(M2D(M),
		func(D float64) (float64, error) {
			MD, err := D2MNearParabolic(D, ecc)
			return MD - M, err
		},
		func(D float64) (float64, error) { return dD2MNearParabolic(D, ecc) })
}

// M2Nu converts the mean anomaly to the true anomaly in any regime, where δ is the width
// of the near parabolic band (cf. DefaultDelta). Elliptic mean anomalies of several revolutions are wrapped.
func M2Nu(M, ecc, δ float64) (float64, error) {
	ν, _, err := m2Nu(M, ecc, δ)
	return ν, err
}

func m2Nu(M, ecc, δ float64) (ν float64, converged bool, err error) {
	var anomaly float64
	switch ClassifyEccentricity(ecc, δ) {
	case StrongElliptic:
		anomaly, converged = m2E(wrapπ(M), ecc)
		ν = E2Nu(anomaly, ecc)
	case NearParabolicLow, NearParabolicHigh:
		anomaly, converged, err = m2DNearParabolic(M, ecc)
		ν = D2Nu(anomaly)
	case Parabolic:
		ν, converged = D2Nu(M2D(M)), true
	default:
		anomaly, converged = m2F(M, ecc)
		ν = F2Nu(anomaly, ecc)
	}
	return
}

// Nu2M converts the true anomaly to the mean anomaly in any regime (cf. M2Nu).
func Nu2M(ν, ecc, δ float64) (float64, error) {
	switch ClassifyEccentricity(ecc, δ) {
	case StrongElliptic:
		return E2M(Nu2E(ν, ecc), ecc), nil
	case NearParabolicLow, NearParabolicHigh:
		return D2MNearParabolic(Nu2D(ν), ecc)
	case Parabolic:
		return D2M(Nu2D(ν)), nil
	default:
		return F2M(Nu2F(ν, ecc), ecc), nil
	}
}
