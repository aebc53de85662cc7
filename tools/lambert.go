package tools

import (
	"errors"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	ε  = 1e-6                   // General epsilon
	tε = 1e-6                   // Time epsilon (1e-6 seconds)
	νε = (5e-5 / 180) * math.Pi // 0.00005 degrees
	// lambertMaxIter bounds the bisection on ψ.
	lambertMaxIter = 1000
)

// ErrLambertNoConvergence is returned when the bisection on ψ does not reach the time of flight.
var ErrLambertNoConvergence = errors.New("lambert: time of flight not reached")

// Lambert solves the Lambert boundary problem with universal variables (Vallado, algorithm 58):
// given the initial and final radii, the time of flight Δt0 in seconds and the gravitational parameter μ,
// it returns the needed initial and final velocities along with ψ which is the square of the difference
// in eccentric anomaly. The direction of motion dm is either 1 (short way), -1 (long way)
// or 0 to deduce it from the radii.
func Lambert(Ri, Rf *mat64.Vector, Δt0, dm, μ float64) (Vi, Vf *mat64.Vector, ψ float64, err error) {
	// Initialize return variables
	Vi = mat64.NewVector(3, nil)
	Vf = mat64.NewVector(3, nil)
	// Sanity checks
	Rir, _ := Ri.Dims()
	Rfr, _ := Rf.Dims()
	if Rir != Rfr || Rir != 3 {
		err = errors.New("initial and final radii must be 3x1 vectors")
		return
	}
	rI := mat64.Norm(Ri, 2)
	rF := mat64.Norm(Rf, 2)
	cosΔν := mat64.Dot(Ri, Rf) / (rI * rF)
	// Compute the direction of motion
	νI := math.Atan2(Ri.At(1, 0), Ri.At(0, 0))
	νF := math.Atan2(Rf.At(1, 0), Rf.At(0, 0))
	if dm == 0 {
		if νF-νI < math.Pi {
			dm = 1
		} else {
			dm = -1
		}
	} else if dm != 1 && dm != -1 {
		err = errors.New("direction of motion must be either 0, -1 or 1 (multi rev not supported)")
		return
	}
	A := dm * math.Sqrt(rI*rF*(1+cosΔν))
	if νF-νI < νε && floats.EqualWithinAbs(A, 0, ε) {
		err = errors.New("Δν ~=0 and A ~=0, cannot compute trajectory")
		return
	}
	ψ = 0
	ψup := 4 * math.Pow(math.Pi, 2)
	ψlow := -4 * math.Pi
	// Initial guesses for c2 and c3
	c2 := 1 / 2.
	c3 := 1 / 6.
	var Δt, y float64
	for iter := 0; math.Abs(Δt-Δt0) > tε; iter++ {
		if iter == lambertMaxIter {
			err = ErrLambertNoConvergence
			return
		}
		y = rI + rF + A*(ψ*c3-1)/math.Sqrt(c2)
		if A > 0 && y < 0 {
			// Readjust ψlow until y > 0.
			for y < 0 {
				ψ += 0.1
				c2, c3 = stumpff(ψ)
				y = rI + rF + A*(ψ*c3-1)/math.Sqrt(c2)
			}
		}
		χ := math.Sqrt(y / c2)
		Δt = (math.Pow(χ, 3)*c3 + A*math.Sqrt(y)) / math.Sqrt(μ)
		if Δt <= Δt0 {
			ψlow = ψ
		} else {
			ψup = ψ
		}
		ψ = (ψup + ψlow) / 2
		c2, c3 = stumpff(ψ)
	}
	f := 1 - y/rI
	gDot := 1 - y/rF
	g := (A * math.Sqrt(y/μ))
	// Compute velocities
	Rf2 := mat64.NewVector(3, nil)
	Vi.AddScaledVec(Rf, -f, Ri)
	Vi.ScaleVec(1/g, Vi)
	Rf2.ScaleVec(gDot, Rf)
	Vf.AddScaledVec(Rf2, -1, Ri)
	Vf.ScaleVec(1/g, Vf)
	return
}

// stumpff returns the c2 and c3 Stumpff functions of ψ.
func stumpff(ψ float64) (c2, c3 float64) {
	if ψ > ε {
		sψ := math.Sqrt(ψ)
		ssψ, csψ := math.Sincos(sψ)
		c2 = (1 - csψ) / ψ
		c3 = (sψ - ssψ) / math.Pow(sψ, 3)
	} else if ψ < -ε {
		sψ := math.Sqrt(-ψ)
		c2 = (1 - math.Cosh(sψ)) / ψ
		c3 = (math.Sinh(sψ) - sψ) / math.Pow(sψ, 3)
	} else {
		c2 = 1 / 2.
		c3 = 1 / 6.
	}
	return
}
