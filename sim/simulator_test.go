package sim

import "testing"

func smallSimConfig() SimConfig {
	return SimConfig{
		Topology: TopologyConfig{
			NumSpines:     4,
			NumTors:       4,
			ServersPerTor: 2,
			GPUsPerServer: 4,
		},
		ModelTable: ModelTable{
			"llama": {Interval: [2]int64{0, 2}, T: 10, MsgLen: 1024},
		},
		NumGPUs:            16,
		UpdateTimeInterval: 5,
		Method:             SolverNone,
		Seed:               7,
	}
}

func TestRun_DeploysAndReleasesAllJobs(t *testing.T) {
	jobs := Jobs{
		"job1": {Name: "job1", ArrivalTime: 0, Duration: 10, Size: 4, ModelType: "llama", State: JobWaiting},
		"job2": {Name: "job2", ArrivalTime: 2, Duration: 10, Size: 4, ModelType: "llama", State: JobWaiting},
	}
	s := NewSimulator(smallSimConfig(), jobs)
	metrics, err := s.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if metrics == nil {
		t.Fatal("Run() returned nil metrics")
	}
	if len(s.waiting) != 0 {
		t.Errorf("expected all jobs deployed, %d still waiting", len(s.waiting))
	}
}

func TestRun_WithCassiniSolver(t *testing.T) {
	cfg := smallSimConfig()
	cfg.Method = SolverCassini
	jobs := Jobs{
		"job1": {Name: "job1", ArrivalTime: 0, Duration: 10, Size: 4, ModelType: "llama", State: JobWaiting},
		"job2": {Name: "job2", ArrivalTime: 0, Duration: 10, Size: 4, ModelType: "llama", State: JobWaiting},
	}
	s := NewSimulator(cfg, jobs)
	if _, err := s.Run(); err != nil {
		t.Fatalf("Run() with cassini solver: %v", err)
	}
}

func TestRun_SingleJob_NoPoolContention(t *testing.T) {
	jobs := Jobs{
		"solo": {Name: "solo", ArrivalTime: 0, Duration: 5, Size: 1, ModelType: "llama", State: JobWaiting},
	}
	cfg := smallSimConfig()
	s := NewSimulator(cfg, jobs)
	metrics, err := s.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if metrics.ComputeJCTInflation(jobs) != 0 {
		t.Error("a lone size-1 job should have no JCT inflation")
	}
}
