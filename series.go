package kepler

import "math"

const (
	// DefaultSeriesAtol is the absolute tolerance on successive partial sums of the near parabolic series.
	DefaultSeriesAtol = 1e-12
)

// SeriesS returns S(x) = Σ (ecc - 1/(2k+3)) x^k, which tames the near parabolic singularity
// of D2MNearParabolic. Requires |x| < 1.
func SeriesS(ecc, x, atol float64) (float64, error) {
	return series(x, atol, func(k float64) float64 { return ecc - 1/(2*k+3) })
}

// SeriesDS returns Σ (ecc - 1/(2k+3)) (2k+3) x^k, the companion series used by the derivative
// of D2MNearParabolic. Requires |x| < 1.
func SeriesDS(ecc, x, atol float64) (float64, error) {
	return series(x, atol, func(k float64) float64 { return (ecc - 1/(2*k+3)) * (2*k + 3) })
}

// series accumulates coef(k) x^k until two partial sums differ by less than atol.
// There is no iteration cap: |x| < 1 guarantees convergence, and NaN is rejected.
func series(x, atol float64, coef func(k float64) float64) (float64, error) {
	if !(math.Abs(x) < 1) {
		return math.NaN(), &DomainError{Quantity: "x", Value: x, Domain: "|x| < 1"}
	}
	S := 0.
	for k := 0; ; k++ {
		Sprev := S
		S += coef(float64(k)) * math.Pow(x, float64(k))
		if math.Abs(S-Sprev) < atol {
			return S, nil
		}
	}
}
