package kepler

import "math"

const (
	// MaxNewtonIterations caps every Newton-Raphson solver of this package.
	MaxNewtonIterations = 50
	// KeplerTolerance is the step tolerance of the elliptic and hyperbolic Kepler solvers.
	KeplerTolerance = 1e-7
	// NearParabolicTolerance is the step tolerance of the near parabolic Kepler solver.
	// It is not the same as KeplerTolerance and the two must not be unified.
	NearParabolicTolerance = 1.48e-8
)

// Newton is a best-effort Newton-Raphson root finder: when MaxIter is reached
// without convergence, the last iterate is returned and no error is raised.
type Newton struct {
	Tolerance float64
	MaxIter   int
}

// Solve finds x such that f(x) = 0 starting from x0, where fPrime is the derivative of f.
// The returned boolean reports whether the step fell below the tolerance.
// An error is only returned when f or fPrime fail (e.g. domain violation).
func (n Newton) Solve(x0 float64, f, fPrime func(x float64) (float64, error)) (x float64, converged bool, err error) {
	x = x0
	for i := 0; i < n.MaxIter; i++ {
		var fx, dfx float64
		if fx, err = f(x); err != nil {
			return
		}
		if dfx, err = fPrime(x); err != nil {
			return
		}
		xNext := x - fx/dfx
		if math.Abs(xNext-x) < n.Tolerance {
			return xNext, true, nil
		}
		x = xNext
	}
	return x, false, nil
}

var (
	keplerNewton        = Newton{Tolerance: KeplerTolerance, MaxIter: MaxNewtonIterations}
	nearParabolicNewton = Newton{Tolerance: NearParabolicTolerance, MaxIter: MaxNewtonIterations}
)

// total adapts a function which cannot fail to the signature expected by Newton.Solve.
func total(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f(x), nil }
}
