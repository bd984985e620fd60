package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelSpec describes one model_type's periodic traffic shape, shared by
// every job of that type.
type ModelSpec struct {
	Interval [2]int64 `yaml:"interval"` // [lo, hi), 0 <= lo < hi <= T
	T        int64    `yaml:"t"`        // period length in ticks
	MsgLen   int64    `yaml:"msg_len"`  // bytes transferred per phase
}

// ModelTable maps model_type name to its ModelSpec.
type ModelTable map[string]ModelSpec

// Validate checks every entry's period invariant.
func (t ModelTable) Validate() error {
	for name, spec := range t {
		if spec.Interval[0] < 0 || spec.Interval[0] >= spec.Interval[1] || spec.Interval[1] > spec.T {
			return fmt.Errorf("model %q: invalid interval [%d,%d) for T=%d", name, spec.Interval[0], spec.Interval[1], spec.T)
		}
	}
	return nil
}

// LoadModelTable reads a ModelTable from a YAML file.
func LoadModelTable(path string) (ModelTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model table %s: %w", path, err)
	}
	var table ModelTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing model table %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// TopologyConfig groups Clos fabric parameters.
type TopologyConfig struct {
	NumSpines     int // number of spine switches
	NumTors       int // number of top-of-rack switches
	ServersPerTor int // servers attached to each ToR
	GPUsPerServer int // GPUs per server (server width)
}

// DefaultTopologyConfig returns the standard three-tier Clos shape used
// when no topology override is supplied.
func DefaultTopologyConfig() TopologyConfig {
	return TopologyConfig{
		NumSpines:     12,
		NumTors:       64,
		ServersPerTor: 6,
		GPUsPerServer: 8,
	}
}

// SolverMethod selects which shift-assignment solver the simulator runs
// each step.
type SolverMethod string

const (
	SolverNone    SolverMethod = ""
	SolverCassini SolverMethod = "cassini"
	SolverSteiner SolverMethod = "ours"
	SolverMaxKCut SolverMethod = "maxkcut"
)

// SimConfig groups every parameter that would otherwise be a package-level
// mutable global; it is constructed once and passed to NewSimulator.
type SimConfig struct {
	Topology           TopologyConfig
	ModelTable         ModelTable
	NumGPUs            int          // total GPU pool size
	UpdateTimeInterval int64        // fixed step window length (ticks)
	Method             SolverMethod // shift-assignment solver for this run
	MaxKCutClasses     int          // K for SolverMaxKCut (the run command's flag defaults it to 5)
	Seed               int64        // master seed for PartitionedRNG
	STPSolverPath      string       // directory containing the scipstp binary (SolverSteiner only)
	STPWorkDir         string       // scratch dir for .stp/.sol files
}
