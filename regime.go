package kepler

import "fmt"

const (
	// DefaultDelta is the default width of the near parabolic band around ecc = 1.
	DefaultDelta = 1e-2
)

// Regime is the conic regime used to pick the anomaly conversion formulas.
type Regime uint8

const (
	// StrongElliptic is ecc < 1 - δ (or the near parabolic band far from periapsis).
	StrongElliptic Regime = iota + 1
	// NearParabolicLow is 1 - δ <= ecc < 1.
	NearParabolicLow
	// Parabolic is ecc == 1.
	Parabolic
	// NearParabolicHigh is 1 < ecc <= 1 + δ.
	NearParabolicHigh
	// StrongHyperbolic is ecc > 1 + δ (or the near parabolic band far from periapsis).
	StrongHyperbolic
)

func (r Regime) String() string {
	switch r {
	case StrongElliptic:
		return "strong elliptic"
	case NearParabolicLow:
		return "near parabolic (low)"
	case Parabolic:
		return "parabolic"
	case NearParabolicHigh:
		return "near parabolic (high)"
	case StrongHyperbolic:
		return "strong hyperbolic"
	default:
		return fmt.Sprintf("Regime(%d)", r)
	}
}

// NearParabolic returns whether this regime uses the series corrected parabolic anomaly.
func (r Regime) NearParabolic() bool {
	return r == NearParabolicLow || r == NearParabolicHigh
}

// ClassifyEccentricity returns the regime of an eccentricity given the near parabolic band width δ.
func ClassifyEccentricity(ecc, δ float64) Regime {
	switch {
	case ecc < 1-δ:
		return StrongElliptic
	case ecc < 1:
		return NearParabolicLow
	case ecc == 1:
		return Parabolic
	case ecc <= 1+δ:
		return NearParabolicHigh
	default:
		return StrongHyperbolic
	}
}
