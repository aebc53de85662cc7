package kepler

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

// Fixtures are μ, p, ecc, inc, raan, argp and ν.
var (
	ellipticalOE    = []float64{1.1368823e11, 2.9328214e8, 0.325, 0.002443461, 3.410897, 5.2838098, 0.94806285}
	hyperbolicOE    = []float64{398600.44, 48848.56334147761, 1.7311, 0.122138, 1.00681, 3.10686, 0.12741601769795755}
	parabolicLowOE  = []float64{398600.44, 265608.0, 0.995, 0.122138, 1.00681, 3.10686, 0.5}
	parabolicHighOE = []float64{398600.44, 265608.0, 1.005, 0.122138, 1.00681, 3.10686, 1.0}
)

func TestDeltaTFromNu(t *testing.T) {
	for _, tc := range []struct {
		name string
		oe   []float64
		exp  float64
	}{
		{"elliptical", ellipticalOE, 8667649.6863514},
		{"hyperbolic", hyperbolicOE, 293.1233793},
		{"near parabolic (low)", parabolicLowOE, 28421.60085025905},
		{"near parabolic (high)", parabolicHighOE, 64825.61097546987},
	} {
		μ, p, ecc, ν := tc.oe[0], tc.oe[1], tc.oe[2], tc.oe[6]
		Δt, err := DeltaTFromNu(ν, ecc, μ, p/(1+ecc), DefaultDelta)
		if err != nil {
			t.Fatalf("%s: %s", tc.name, err)
		}
		if !floats.EqualWithinRel(Δt, tc.exp, 1e-7) {
			t.Fatalf("%s: Δt=%f, expected %f", tc.name, Δt, tc.exp)
		}
		// And back
		νb, err := NuFromDeltaT(Δt, ecc, μ, p/(1+ecc), DefaultDelta)
		if err != nil {
			t.Fatalf("%s: %s", tc.name, err)
		}
		if !floats.EqualWithinAbs(νb, ν, 1e-9) {
			t.Fatalf("%s: ν=%f became %f", tc.name, ν, νb)
		}
	}
}

func TestDeltaTFromNuParabolic(t *testing.T) {
	// Barker: Δt = (D + D^3/3) sqrt(2 q^3 / μ)
	μ := Earth.GM()
	q := 7000.
	for _, ν := range []float64{-2, -0.5, 0, 0.5, 2} {
		Δt, err := DeltaTFromNu(ν, 1, μ, q, DefaultDelta)
		if err != nil {
			t.Fatal(err)
		}
		D := math.Tan(ν / 2)
		if exp := (D + D*D*D/3) * math.Sqrt(2*q*q*q/μ); !floats.EqualWithinAbs(Δt, exp, 1e-9) {
			t.Fatalf("ν=%f: Δt=%f, expected %f", ν, Δt, exp)
		}
	}
}

func TestDeltaTFromNuDomain(t *testing.T) {
	for _, tc := range []struct{ ν, ecc float64 }{
		{0.5, -0.1},
		{math.Pi, 0.5},
		{-4, 0.5},
		{7, 1.5},
	} {
		Δt, err := DeltaTFromNu(tc.ν, tc.ecc, Earth.GM(), 7000, DefaultDelta)
		if !errors.Is(err, ErrDomain) {
			t.Fatalf("ν=%f ecc=%f: expected a domain error, got %v", tc.ν, tc.ecc, err)
		}
		if !math.IsNaN(Δt) {
			t.Fatalf("ν=%f ecc=%f: expected NaN, got %f", tc.ν, tc.ecc, Δt)
		}
	}
	if _, err := DeltaTFromNu(-math.Pi, 0.5, Earth.GM(), 7000, DefaultDelta); err != nil {
		t.Fatalf("-π is in the domain: %s", err)
	}
	if _, err := NuFromDeltaT(60, -1, Earth.GM(), 7000, DefaultDelta); !errors.Is(err, ErrDomain) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	// NaN inputs fail instead of hanging in the near parabolic series.
	if _, err := DeltaTFromNu(math.NaN(), 0.999, Earth.GM(), 7000, DefaultDelta); !errors.Is(err, ErrDomain) {
		t.Fatalf("ν=NaN: expected a domain error, got %v", err)
	}
	if _, err := DeltaTFromNu(0.5, math.NaN(), Earth.GM(), 7000, DefaultDelta); !errors.Is(err, ErrDomain) {
		t.Fatalf("ecc=NaN: expected a domain error, got %v", err)
	}
	if _, err := NuFromDeltaT(math.NaN(), 1.001, Earth.GM(), 7000, DefaultDelta); !errors.Is(err, ErrDomain) {
		t.Fatalf("Δt=NaN: expected a domain error, got %v", err)
	}
	if _, err := FarnocchiaCOE(Earth.GM(), 7000, 0.999, 0, 0, 0, 0.5, math.NaN()); !errors.Is(err, ErrDomain) {
		t.Fatalf("tof=NaN: expected a domain error, got %v", err)
	}
}

func TestDeltaTFromNuUnfeasible(t *testing.T) {
	// Beyond the asymptotes, the hyperbola is never reached.
	Δt, err := DeltaTFromNu(3, 1.7311, 398600.44, 1, DefaultDelta)
	if err != nil {
		t.Fatalf("unfeasible geometry is not an error: %s", err)
	}
	if !math.IsNaN(Δt) {
		t.Fatalf("expected NaN, got %f", Δt)
	}
	ν, err := FarnocchiaCOE(hyperbolicOE[0], hyperbolicOE[1], hyperbolicOE[2], 0, 0, 0, -3, 60)
	if err != nil || !math.IsNaN(ν) {
		t.Fatalf("expected NaN without error, got %f (%v)", ν, err)
	}
}

func TestFarnocchiaPeriod(t *testing.T) {
	oe := ellipticalOE
	a := oe[1] / (1 - oe[2]*oe[2])
	period := 2 * math.Pi * math.Sqrt(a*a*a/oe[0])
	for _, revs := range []float64{1, 2, -1} {
		ν, err := FarnocchiaCOE(oe[0], oe[1], oe[2], oe[3], oe[4], oe[5], oe[6], revs*period)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualWithinRel(ν, oe[6], 1e-7) {
			t.Fatalf("after %.0f revolution(s) ν=%f != %f", revs, ν, oe[6])
		}
	}
}

func TestFarnocchiaBackward(t *testing.T) {
	for _, oe := range [][]float64{ellipticalOE, hyperbolicOE, parabolicLowOE, parabolicHighOE} {
		ν1, err := FarnocchiaCOE(oe[0], oe[1], oe[2], oe[3], oe[4], oe[5], oe[6], 5000)
		if err != nil {
			t.Fatal(err)
		}
		if ν1 == oe[6] {
			t.Fatalf("ecc=%f: did not propagate", oe[2])
		}
		ν0, err := FarnocchiaCOE(oe[0], oe[1], oe[2], oe[3], oe[4], oe[5], ν1, -5000)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualWithinAbs(ν0, oe[6], 1e-10) {
			t.Fatalf("ecc=%f: ν=%f came back as %f", oe[2], oe[6], ν0)
		}
	}
}

func TestFarnocchiaRV(t *testing.T) {
	oe := ellipticalOE
	μ := oe[0]
	R0, V0 := COE2RV(μ, Elements{oe[1], oe[2], oe[3], oe[4], oe[5], oe[6]})
	a := oe[1] / (1 - oe[2]*oe[2])
	period := 2 * math.Pi * math.Sqrt(a*a*a/μ)
	R, V, err := FarnocchiaRV(μ, R0, V0, period)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinRel(norm(R), norm(R0), 1e-7) {
		t.Fatalf("|R|=%f != |R0|=%f", norm(R), norm(R0))
	}
	if !floats.EqualWithinRel(norm(V), norm(V0), 1e-7) {
		t.Fatalf("|V|=%f != |V0|=%f", norm(V), norm(V0))
	}
	if _, _, err := FarnocchiaRV(μ, R0[:2], V0, period); err == nil {
		t.Fatal("expected an error for 2D vectors")
	}
	// Leaving the hyperbola
	μ = hyperbolicOE[0]
	R0, V0 = COE2RV(μ, Elements{hyperbolicOE[1], hyperbolicOE[2], 0, 0, 0, -2.15})
	if _, _, err := FarnocchiaRV(μ, R0, V0, 60); err != nil {
		t.Fatalf("inside the asymptotes: %s", err)
	}
}

// The solution must not jump where the regime changes.
func TestRegimeContinuity(t *testing.T) {
	μ := 398600.44
	q := 7000.
	ε := 1e-9
	for _, Δt := range []float64{600, 3000, -1500} {
		for _, ecc := range []float64{1 - DefaultDelta, 1, 1 + DefaultDelta} {
			below, err := NuFromDeltaT(Δt, ecc-ε, μ, q, DefaultDelta)
			if err != nil {
				t.Fatal(err)
			}
			above, err := NuFromDeltaT(Δt, ecc+ε, μ, q, DefaultDelta)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualWithinAbs(below, above, 1e-8) {
				t.Fatalf("Δt=%f: discontinuity at ecc=%f: %.12f vs %.12f", Δt, ecc, below, above)
			}
			at, err := NuFromDeltaT(Δt, ecc, μ, q, DefaultDelta)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualWithinAbs(at, below, 1e-8) {
				t.Fatalf("Δt=%f: discontinuity at ecc=%f: %.12f vs %.12f", Δt, ecc, at, below)
			}
		}
	}
}

func TestTimeOfFlightRegime(t *testing.T) {
	// Close to periapsis, the near parabolic band is kept; far from it, the strong formulas are used.
	if r := timeOfFlightRegime(0.1, 0.995, DefaultDelta); r != NearParabolicLow {
		t.Fatalf("got %s", r)
	}
	if r := timeOfFlightRegime(2.5, 0.995, DefaultDelta); r != StrongElliptic {
		t.Fatalf("got %s", r)
	}
	if r := timeOfFlightRegime(0.1, 1.005, DefaultDelta); r != NearParabolicHigh {
		t.Fatalf("got %s", r)
	}
	if r := timeOfFlightRegime(2.5, 1.005, DefaultDelta); r != StrongHyperbolic {
		t.Fatalf("got %s", r)
	}
	if r := timeOfFlightRegime(2.5, 1, DefaultDelta); r != Parabolic {
		t.Fatalf("got %s", r)
	}
}
