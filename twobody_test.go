package kepler

import (
	"math"
	"testing"

	"github.com/ChristopherRabotin/ode"
	"github.com/gonum/floats"
)

// twoBody is an ode.Integrable of the unperturbed two body problem in Cartesian coordinates.
type twoBody struct {
	μ            float64
	state        []float64
	steps, iters int
}

func (tb *twoBody) GetState() []float64 {
	return tb.state
}

func (tb *twoBody) SetState(t float64, s []float64) {
	tb.state = s
	tb.steps++
}

func (tb *twoBody) Stop(t float64) bool {
	return tb.steps >= tb.iters
}

func (tb *twoBody) Func(t float64, s []float64) []float64 {
	r := norm(s[:3])
	r3 := math.Pow(r, 3)
	return []float64{s[3], s[4], s[5], -tb.μ * s[0] / r3, -tb.μ * s[1] / r3, -tb.μ * s[2] / r3}
}

func TestFarnocchiaVersusRK4(t *testing.T) {
	μ := 398600.4418
	R0 := []float64{6.52536812e3, 6.86153183e3, 6.44911861e3}
	V0 := []float64{4.90227865e0, 5.53313957e0, -1.97571010e0}
	step := 1.
	tb := &twoBody{μ: μ, state: append(append([]float64{}, R0...), V0...), iters: 3600}
	ode.NewRK4(0, step, tb).Solve() // Blocking.
	if tb.steps != tb.iters {
		t.Fatalf("integrated %d steps instead of %d", tb.steps, tb.iters)
	}
	R, V, err := FarnocchiaRV(μ, R0, V0, float64(tb.steps)*step)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(R[i], tb.state[i], 1e-6) {
			t.Fatalf("R[%d]: Farnocchia=%f RK4=%f", i, R[i], tb.state[i])
		}
		if !floats.EqualWithinAbs(V[i], tb.state[i+3], 1e-9) {
			t.Fatalf("V[%d]: Farnocchia=%f RK4=%f", i, V[i], tb.state[i+3])
		}
	}
}
