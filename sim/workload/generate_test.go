package workload

import (
	"testing"

	"github.com/clossim/clossim/sim"
)

func TestGenerate_ProducesRequestedCount(t *testing.T) {
	cfg := GenerateConfig{
		JobCount:     5,
		ArrivalRate:  10,
		Durations:    []int64{10, 20, 30},
		CDFDurations: []float64{0.3, 0.7, 1.0},
		Sizes:        []int{1, 4, 8},
		CDFSizes:     []float64{0.5, 0.9, 1.0},
		ModelTypes:   []string{"llama"},
	}
	rng := sim.NewPartitionedRNG(1)
	jobs := Generate(cfg, rng)
	if len(jobs) != cfg.JobCount {
		t.Fatalf("Generate() produced %d jobs, want %d", len(jobs), cfg.JobCount)
	}
	for name, j := range jobs {
		if j.Name != name {
			t.Errorf("job %q has Name %q", name, j.Name)
		}
		if j.ModelType != "llama" {
			t.Errorf("job %q ModelType = %q, want llama", name, j.ModelType)
		}
		if j.State != sim.JobWaiting {
			t.Errorf("job %q State = %v, want JobWaiting", name, j.State)
		}
	}
}

func TestGenerate_DeterministicForSameSeed(t *testing.T) {
	cfg := GenerateConfig{
		JobCount:     8,
		ArrivalRate:  5,
		Durations:    []int64{10, 20},
		CDFDurations: []float64{0.5, 1.0},
		Sizes:        []int{1, 2},
		CDFSizes:     []float64{0.5, 1.0},
		ModelTypes:   []string{"llama", "gpt"},
	}
	jobsA := Generate(cfg, sim.NewPartitionedRNG(99))
	jobsB := Generate(cfg, sim.NewPartitionedRNG(99))

	for name, a := range jobsA {
		b, ok := jobsB[name]
		if !ok {
			t.Fatalf("job %q missing from second run", name)
		}
		if a.ArrivalTime != b.ArrivalTime || a.Duration != b.Duration || a.Size != b.Size || a.ModelType != b.ModelType {
			t.Errorf("job %q differs between runs: %+v vs %+v", name, a, b)
		}
	}
}
