package core

import (
	"strconv"
	"time"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/cellstate"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeBool   ParamType = "bool"
	ParamTypeString ParamType = "string"
)

// Parameter is a single labelled value shown on the HUD.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures everything the HUD displays for one frame.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Status describes a running simulation.
type Status struct {
	Algorithm  algorithm.Kind
	Rule       string
	Step       int
	Generation uint64
	Population int
	Bounds     cellstate.Rect
	Paused     bool
	LastStep   time.Duration
	Window     cellstate.Rect
}

// Snapshot renders the status as HUD parameters.
func (s Status) Snapshot() ParameterSnapshot {
	bounds := "-"
	if s.Population > 0 {
		bounds = s.Bounds.String()
	}
	return ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Simulation", Params: []Parameter{
			{Key: "algorithm", Label: "Algorithm", Type: ParamTypeString, Value: s.Algorithm.String()},
			{Key: "rule", Label: "Rule", Type: ParamTypeString, Value: s.Rule},
			{Key: "step", Label: "Step", Type: ParamTypeInt, Value: strconv.Itoa(s.Step)},
			{Key: "paused", Label: "Paused", Type: ParamTypeBool, Value: strconv.FormatBool(s.Paused)},
		}},
		{Name: "State", Params: []Parameter{
			{Key: "generation", Label: "Generation", Type: ParamTypeInt, Value: strconv.FormatUint(s.Generation, 10)},
			{Key: "population", Label: "Population", Type: ParamTypeInt, Value: strconv.Itoa(s.Population)},
			{Key: "bounds", Label: "Bounds", Type: ParamTypeString, Value: bounds},
			{Key: "last_step_ms", Label: "Last step (ms)", Type: ParamTypeFloat,
				Value: strconv.FormatFloat(float64(s.LastStep)/float64(time.Millisecond), 'f', 2, 64)},
		}},
		{Name: "View", Params: []Parameter{
			{Key: "window", Label: "Window", Type: ParamTypeString, Value: s.Window.String()},
		}},
	}}
}

// Lookup returns the parameter with key.
func (p ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range p.Groups {
		for _, param := range g.Params {
			if param.Key == key {
				return param, true
			}
		}
	}
	return Parameter{}, false
}
