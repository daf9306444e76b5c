package core

import (
	"fmt"
	"io"
	"strconv"

	"cellca/pkg/ca"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeString denotes named choices.
	ParamTypeString ParamType = "string"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
)

// Parameter describes a single configuration value of a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current set of parameters of a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by sims that can describe themselves.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// EngineGroup describes the engine settings of cfg. Keys match ca.FromMap.
func EngineGroup(cfg ca.Config) ParameterGroup {
	return ParameterGroup{
		Name:    "engine",
		Summary: "neighbourhood and caching",
		Params: []Parameter{
			{Key: "r", Label: "Radius", Type: ParamTypeInt, Value: strconv.Itoa(cfg.Radius), Description: "neighbourhood radius"},
			{Key: "neighbourhood", Label: "Topology", Type: ParamTypeString, Value: string(cfg.Topology), Description: "Moore or von Neumann (2-D only)"},
			{Key: "memoize", Label: "Memoize", Type: ParamTypeString, Value: string(cfg.Memoize), Description: "none, flat or recursive"},
			{Key: "workers", Label: "Workers", Type: ParamTypeInt, Value: strconv.Itoa(cfg.Workers), Description: "parallel cell bands when not memoizing"},
			{Key: "flat_cache_size", Label: "Flat cache", Type: ParamTypeInt, Value: strconv.Itoa(cfg.FlatCacheSize), Description: "bounded flat cache entries, 0 for unbounded"},
		},
	}
}

// WriteTo prints the snapshot as indented key=value lines.
func (s ParameterSnapshot) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, g := range s.Groups {
		n, err := fmt.Fprintf(w, "%s: %s\n", g.Name, g.Summary)
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, p := range g.Params {
			n, err = fmt.Fprintf(w, "  %-16s %-10s %s\n", p.Key+"="+p.Value, "("+string(p.Type)+")", p.Description)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}
