package kepler

import (
	"fmt"
	"math"
	"testing"

	"github.com/gonum/floats"
)

const eps = 1e-9

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinAbsOrRel(a[i], b[i], eps, eps) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal, modulo 2π.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Abs(a - b)
	if diff < eps || math.Abs(diff-2*math.Pi) < eps {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10fπ", diff/math.Pi)
}
