package sim

import "testing"

func TestComputeJCTInflation_IgnoresSmallJobs(t *testing.T) {
	m := &Metrics{Penalty: map[string]int64{"small": 100}}
	jobs := Jobs{
		"small": {Name: "small", Size: 4, Duration: 100},
	}
	if got := m.ComputeJCTInflation(jobs); got != 0 {
		t.Errorf("ComputeJCTInflation() = %v, want 0 (job size <= 8)", got)
	}
}

func TestComputeJCTInflation_WeightsBySize(t *testing.T) {
	m := &Metrics{Penalty: map[string]int64{"big1": 50, "big2": 100}}
	jobs := Jobs{
		"big1": {Name: "big1", Size: 16, Duration: 100},
		"big2": {Name: "big2", Size: 32, Duration: 100},
	}
	got := m.ComputeJCTInflation(jobs)
	// rate1=0.5 weight16, rate2=1.0 weight32 -> (0.5*16+1.0*32)/(16+32)
	want := (0.5*16 + 1.0*32) / 48.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ComputeJCTInflation() = %v, want %v", got, want)
	}
}

func TestComputeJCTInflation_NoEligibleJobs(t *testing.T) {
	m := &Metrics{Penalty: map[string]int64{}}
	jobs := Jobs{}
	if got := m.ComputeJCTInflation(jobs); got != 0 {
		t.Errorf("ComputeJCTInflation() = %v, want 0", got)
	}
}
