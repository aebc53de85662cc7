package kepler

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const dateFormat = "2006-01-02 15:04:05"

// ExportConfig defines what is written by ExportEphemeris.
type ExportConfig struct {
	Filename string
	Cosmo    bool // Cosmographia interpolated states (.xyzv)
	AsCSV    bool // Anomaly and state CSV
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.Cosmo && !c.AsCSV
}

// CgInterpolatedState is a Cosmographia interpolated state record.
type CgInterpolatedState struct {
	JD       float64
	Position []float64
	Velocity []float64
}

// FromText initializes from text.
// The `record` parameter must be an array of seven items.
func (i *CgInterpolatedState) FromText(record []string) error {
	if len(record) != 7 {
		return fmt.Errorf("expected 7 fields, got %d", len(record))
	}
	vals := make([]float64, 7)
	for k, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return err
		}
		vals[k] = val
	}
	i.JD = vals[0]
	i.Position = vals[1:4]
	i.Velocity = vals[4:7]
	return nil
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// ParseInterpolatedStates takes a string and converts that into a CgInterpolatedState.
func ParseInterpolatedStates(s string) ([]*CgInterpolatedState, error) {
	var states = []*CgInterpolatedState{}
	r := csv.NewReader(strings.NewReader(s))
	r.Comma = ' '
	r.Comment = '#'
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		state := CgInterpolatedState{}
		if err := state.FromText(record); err != nil {
			return nil, err
		}
		states = append(states, &state)
	}
	return states, nil
}

// WriteInterpolatedStates writes the states as Cosmographia interpolated states.
func WriteInterpolatedStates(w io.Writer, states []State) error {
	if len(states) == 0 {
		return nil
	}
	// Header
	if _, err := fmt.Fprintf(w, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Position in km
#   Velocity in km/sec
#   Simulation time start (UTC): %s`, time.Now().UTC(), states[0].DT.UTC()); err != nil {
		return err
	}
	for _, st := range states {
		asTxt := CgInterpolatedState{JD: julian.TimeToJD(st.DT), Position: st.R, Velocity: st.V}
		if _, err := io.WriteString(w, "\n"+asTxt.ToText()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteStatesCSV writes the states as CSV, with the true anomaly in degrees.
func WriteStatesCSV(w io.Writer, states []State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "jd", "nu", "x", "y", "z", "vx", "vy", "vz"}); err != nil {
		return err
	}
	for _, st := range states {
		record := []string{st.DT.UTC().Format(dateFormat), strconv.FormatFloat(julian.TimeToJD(st.DT), 'f', 6, 64), strconv.FormatFloat(Rad2deg(st.Nu), 'f', 6, 64)}
		for _, vec := range [][]float64{st.R, st.V} {
			for _, val := range vec {
				record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportEphemeris writes the states in the directory dir as configured.
func ExportEphemeris(conf ExportConfig, dir string, states []State) error {
	if conf.IsUseless() {
		return nil
	}
	if conf.Filename == "" {
		return fmt.Errorf("no filename provided")
	}
	export := func(filename string, write func(io.Writer, []State) error) error {
		f, err := os.Create(filepath.Join(dir, filename))
		if err != nil {
			return err
		}
		if err := write(f, states); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if conf.Cosmo {
		if err := export(fmt.Sprintf("prop-%s.xyzv", conf.Filename), WriteInterpolatedStates); err != nil {
			return err
		}
	}
	if conf.AsCSV {
		if err := export(fmt.Sprintf("states-%s.csv", conf.Filename), WriteStatesCSV); err != nil {
			return err
		}
	}
	return nil
}
