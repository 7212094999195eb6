package cfd

import (
	"math"
	"strconv"
	"strings"
)

// Flow describes the free stream of a run.
type Flow struct {
	Mach float64
	// Sweep is the leading-edge sweep angle in degrees. Zero disables the
	// sweep correction.
	Sweep       float64
	AoA         float64
	Pressure    float64
	Temperature float64
	Iterations  int
	RefLength   float64
	RefArea     float64

	// Reynolds is the free-stream Reynolds number based on ReynoldsLength.
	Reynolds       float64
	ReynoldsLength float64
	Output         string

	// Extra is merged into the generated options last and overrides them.
	// Names are upper-cased.
	Extra map[string]string
}

// EffectiveMach returns the Mach number seen by the section. The swept
// section sees Mach·sin(Sweep).
func (f Flow) EffectiveMach() float64 {
	if f.Sweep == 0 {
		return f.Mach
	}
	return f.Mach * math.Sin(f.Sweep*math.Pi/180)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Options returns the SU2 configuration of an inviscid run in f.
func (f Flow) Options() Options {
	o := Options{
		"PHYSICAL_PROBLEM": "EULER",
		"MACH_NUMBER":      ftoa(f.EffectiveMach()),
		"AOA":              ftoa(f.AoA),
		"MARKER_EULER":     "( " + AirfoilMarker + " )",
		"MARKER_FAR":       "( " + FarfieldMarker + " )",
	}
	if f.Pressure > 0 {
		o["FREESTREAM_PRESSURE"] = ftoa(f.Pressure)
	}
	if f.Temperature > 0 {
		o["FREESTREAM_TEMPERATURE"] = ftoa(f.Temperature)
	}
	if f.Iterations > 0 {
		o["EXT_ITER"] = strconv.Itoa(f.Iterations)
	}
	if f.RefLength > 0 {
		o["REF_LENGTH"] = ftoa(f.RefLength)
	}
	if f.RefArea > 0 {
		o["REF_AREA"] = ftoa(f.RefArea)
	}
	if f.Reynolds > 0 {
		o["REYNOLDS_NUMBER"] = ftoa(f.Reynolds)
	}
	if f.ReynoldsLength > 0 {
		o["REYNOLDS_LENGTH"] = ftoa(f.ReynoldsLength)
	}
	if f.Output != "" {
		o["OUTPUT_FORMAT"] = f.Output
	}
	for k, v := range f.Extra {
		o[strings.ToUpper(k)] = v
	}
	return o
}
