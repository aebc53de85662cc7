package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ChristopherRabotin/kepler"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// This code only reads the scenario file, propagates the orbit and exports the ephemeris.

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "propagation scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log every propagation step")
}

func main() {
	flag.Parse()
	// Load scenario
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}
	conf, err := kepler.ConfigFromEnv()
	if err != nil {
		log.Fatalf("could not load configuration: %s", err)
	}

	centralBody, err := confReadBody()
	if err != nil {
		log.Fatal(err)
	}
	epoch := confReadJDEorTime("propagation.epoch")
	if epoch.IsZero() {
		epoch = time.Now().UTC()
	}

	// Read orbit
	var orbit *kepler.Orbit
	if viper.IsSet("state.r") {
		R, err := confReadVector("state.r")
		if err != nil {
			log.Fatal(err)
		}
		V, err := confReadVector("state.v")
		if err != nil {
			log.Fatal(err)
		}
		orbit = kepler.NewOrbitFromRV(R, V, centralBody, epoch)
	} else {
		p := viper.GetFloat64("orbit.p")
		e := viper.GetFloat64("orbit.ecc")
		if viper.IsSet("orbit.rA") {
			var a float64
			a, e = kepler.Radii2ae(viper.GetFloat64("orbit.rA"), viper.GetFloat64("orbit.rP"))
			p = a * (1 - e*e)
		}
		i := unit.AngleFromDeg(viper.GetFloat64("orbit.inc")).Rad()
		Ω := unit.AngleFromDeg(viper.GetFloat64("orbit.RAAN")).Rad()
		ω := unit.AngleFromDeg(viper.GetFloat64("orbit.argPeri")).Rad()
		ν := unit.AngleFromDeg(viper.GetFloat64("orbit.tAnomaly")).Rad()
		orbit = kepler.NewOrbitFromOE(p, e, i, Ω, ω, ν, centralBody, epoch)
	}
	delta := conf.Delta
	if viper.IsSet("propagation.delta") {
		delta = viper.GetFloat64("propagation.delta")
	}
	orbit.SetDelta(delta)
	if verbose {
		orbit.SetLogger(kepler.NewLogger(os.Stdout, scenario))
		log.Printf("[conf] %s around %s at %s", orbit, centralBody, epoch.Format(dateFormat))
	}

	// Sample the orbit, which does not change it.
	samples := viper.GetInt("propagation.samples")
	tof := viper.GetDuration("propagation.tof")
	var states []kepler.State
	if samples > 0 {
		if states, err = orbit.Ephemeris(samples, tof, epoch); err != nil {
			log.Fatalf("could not sample orbit: %s", err)
		}
	}

	if tof != 0 {
		if err := orbit.PropagateFor(tof); err != nil {
			log.Fatalf("could not propagate for %s: %s", tof, err)
		}
		R, V := orbit.RV()
		fmt.Printf("%s\n%s\nR=%+v\nV=%+v\n", orbit.Epoch.Format(dateFormat), orbit, R, V)
	}

	// Export
	exportConf := kepler.ExportConfig{
		Filename: viper.GetString("export.filename"),
		Cosmo:    viper.GetBool("export.cosmo"),
		AsCSV:    viper.GetBool("export.csv"),
	}
	dir := conf.OutputDir
	if viper.IsSet("export.directory") {
		dir = viper.GetString("export.directory")
	}
	if err := kepler.ExportEphemeris(exportConf, dir, states); err != nil {
		log.Fatalf("could not export: %s", err)
	}
}

func confReadBody() (kepler.CelestialObject, error) {
	if viper.IsSet("orbit.mu") {
		return kepler.NewCelestialObject("custom", viper.GetFloat64("orbit.radius"), viper.GetFloat64("orbit.mu")), nil
	}
	centralBodyName := viper.GetString("orbit.body")
	centralBody, err := kepler.CelestialObjectFromString(centralBodyName)
	if err != nil {
		return centralBody, fmt.Errorf("could not understand body `%s`: %s", centralBodyName, err)
	}
	return centralBody, nil
}

func confReadVector(key string) ([]float64, error) {
	raw, err := cast.ToSliceE(viper.Get(key))
	if err != nil {
		return nil, fmt.Errorf("%s: %s", key, err)
	}
	if len(raw) != 3 {
		return nil, fmt.Errorf("%s: expected 3 components, got %d", key, len(raw))
	}
	vec := make([]float64, 3)
	for i, val := range raw {
		if vec[i], err = cast.ToFloat64E(val); err != nil {
			return nil, fmt.Errorf("%s[%d]: %s", key, i, err)
		}
	}
	return vec, nil
}

func confReadJDEorTime(key string) (dt time.Time) {
	if !viper.IsSet(key) {
		return
	}
	jde := viper.GetFloat64(key)
	if jde == 0 {
		dt = viper.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return
}
