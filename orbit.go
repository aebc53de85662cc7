package kepler

import (
	"errors"
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/soniakeys/unit"
)

// ErrOpenOrbit is returned when a period is required from a parabolic or hyperbolic orbit.
var ErrOpenOrbit = errors.New("parabolic and hyperbolic orbits have no period")

// Orbit defines an orbit via its orbital elements at a given epoch.
type Orbit struct {
	p, ecc, i, Ω, ω, ν float64
	Origin             CelestialObject // Orbit origin
	Epoch              time.Time       // Epoch of the true anomaly
	δ                  float64         // Width of the near parabolic band
	logger             kitlog.Logger
}

// State is a sample of an orbit.
type State struct {
	DT   time.Time
	R, V []float64
	Nu   float64
}

// NewOrbitFromOE creates an orbit from the orbital elements. All angles must be in radians.
func NewOrbitFromOE(p, e, i, Ω, ω, ν float64, c CelestialObject, epoch time.Time) *Orbit {
	return &Orbit{p, e, i, Ω, ω, wrapπ(ν), c, epoch, DefaultDelta, kitlog.NewNopLogger()}
}

// NewOrbitFromRV returns orbital elements from the R and V vectors.
func NewOrbitFromRV(R, V []float64, c CelestialObject, epoch time.Time) *Orbit {
	oe := RV2COE(c.μ, R, V)
	return NewOrbitFromOE(oe.P, oe.Ecc, oe.Inc, oe.RAAN, oe.ArgP, oe.Nu, c, epoch)
}

// SetLogger sets the logger used to report propagation issues.
func (o *Orbit) SetLogger(logger kitlog.Logger) {
	o.logger = kitlog.With(logger, "subsys", "prop")
}

// SetDelta sets the width of the near parabolic band (DefaultDelta otherwise).
func (o *Orbit) SetDelta(δ float64) {
	o.δ = δ
}

// Regime returns the regime of this orbit given its near parabolic band.
func (o Orbit) Regime() Regime {
	return ClassifyEccentricity(o.ecc, o.δ)
}

// SemiParameter returns the semi-latus rectum.
func (o Orbit) SemiParameter() float64 {
	return o.p
}

// SemiMajorAxis returns the semi major axis, which is negative for hyperbolic orbits
// and infinite for parabolic ones.
func (o Orbit) SemiMajorAxis() float64 {
	return o.p / (1 - o.ecc*o.ecc)
}

// Periapsis returns the periapsis distance.
func (o Orbit) Periapsis() float64 {
	return o.p / (1 + o.ecc)
}

// Elements returns the classical orbital elements.
func (o Orbit) Elements() Elements {
	return Elements{o.p, o.ecc, o.i, o.Ω, o.ω, o.ν}
}

// RNorm returns the norm of the radius vector, but without computing the radius vector.
func (o Orbit) RNorm() float64 {
	return o.p / (1 + o.ecc*math.Cos(o.ν))
}

// RV returns the radius and velocity vectors.
func (o Orbit) RV() ([]float64, []float64) {
	return COE2RV(o.Origin.μ, o.Elements())
}

// R returns the radius vector.
func (o Orbit) R() (R []float64) {
	R, _ = o.RV()
	return R
}

// V returns the velocity vector.
func (o Orbit) V() (V []float64) {
	_, V = o.RV()
	return V
}

// Period returns the period of this orbit.
func (o Orbit) Period() (time.Duration, error) {
	if o.ecc >= 1 {
		return 0, ErrOpenOrbit
	}
	return seconds2duration(2 * math.Pi * math.Sqrt(math.Pow(o.SemiMajorAxis(), 3)/o.Origin.μ)), nil
}

// PropagateFor propagates the orbit by the time of flight (negative to go backward),
// updating its true anomaly and epoch.
func (o *Orbit) PropagateFor(tof time.Duration) error {
	ν, err := o.nuAfter(tof.Seconds())
	if err != nil {
		return err
	}
	o.ν = ν
	o.Epoch = o.Epoch.Add(tof)
	return nil
}

// PropagateTo propagates the orbit to the provided epoch.
func (o *Orbit) PropagateTo(epoch time.Time) error {
	return o.PropagateFor(epoch.Sub(o.Epoch))
}

// SampleAtEpoch returns the state at the provided epoch without changing the orbit.
func (o Orbit) SampleAtEpoch(epoch time.Time) (State, error) {
	ν, err := o.nuAfter(epoch.Sub(o.Epoch).Seconds())
	if err != nil {
		return State{}, err
	}
	R, V := o.SampleAtAngle(ν)
	return State{epoch, R, V, ν}, nil
}

// SampleAtAngle returns the radius and velocity vectors at the provided true anomaly.
func (o Orbit) SampleAtAngle(ν float64) (R, V []float64) {
	oe := o.Elements()
	oe.Nu = ν
	return COE2RV(o.Origin.μ, oe)
}

// Ephemeris samples the orbit over the span starting at start, every span/samples (truncated to the
// nanosecond). A zero span samples one period (an error for open orbits) and a zero start uses the orbit epoch.
func (o Orbit) Ephemeris(samples int, span time.Duration, start time.Time) ([]State, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("invalid number of samples %d", samples)
	}
	if span == 0 {
		var err error
		if span, err = o.Period(); err != nil {
			return nil, fmt.Errorf("span must be specified: %s", err)
		}
	}
	if start.IsZero() {
		start = o.Epoch
	}
	step := span / time.Duration(samples)
	states := make([]State, samples)
	for k := range states {
		st, err := o.SampleAtEpoch(start.Add(time.Duration(k) * step))
		if err != nil {
			return nil, err
		}
		states[k] = st
	}
	return states, nil
}

// nuAfter returns the true anomaly after tof seconds and logs the propagation issues.
func (o Orbit) nuAfter(tof float64) (float64, error) {
	ν, converged, err := farnocchia(o.Origin.μ, o.p, o.ecc, o.ν, tof, o.δ)
	if err != nil {
		o.logger.Log("level", "error", "regime", o.Regime(), "tof(s)", tof, "err", err)
		return ν, err
	}
	if math.IsNaN(ν) {
		o.logger.Log("level", "warning", "status", "unfeasible", "ν0", o.ν, "tof(s)", tof)
		return ν, ErrUnfeasible
	}
	if !converged {
		o.logger.Log("level", "warning", "status", "not converged", "regime", o.Regime(), "tof(s)", tof)
	}
	o.logger.Log("level", "debug", "ν0", o.ν, "ν", ν, "tof(s)", tof)
	return ν, nil
}

// String implements the stringer interface (hence the value receiver)
func (o Orbit) String() string {
	return fmt.Sprintf("p=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f (%s)", o.p, o.ecc, unit.Angle(o.i).Deg(), unit.Angle(o.Ω).Deg(), unit.Angle(o.ω).Deg(), unit.Angle(o.ν).Deg(), o.Regime())
}

// seconds2duration converts seconds to a duration, rounded to the nanosecond.
func seconds2duration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}
