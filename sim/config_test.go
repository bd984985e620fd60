package sim

import "testing"

func TestModelTable_Validate_RejectsBadInterval(t *testing.T) {
	table := ModelTable{
		"bad": {Interval: [2]int64{5, 3}, T: 10, MsgLen: 100},
	}
	if err := table.Validate(); err == nil {
		t.Error("expected error for interval with lo >= hi")
	}
}

func TestModelTable_Validate_RejectsIntervalBeyondPeriod(t *testing.T) {
	table := ModelTable{
		"bad": {Interval: [2]int64{0, 20}, T: 10, MsgLen: 100},
	}
	if err := table.Validate(); err == nil {
		t.Error("expected error for interval exceeding T")
	}
}

func TestModelTable_Validate_AcceptsGoodEntry(t *testing.T) {
	table := ModelTable{
		"good": {Interval: [2]int64{0, 2}, T: 10, MsgLen: 100},
	}
	if err := table.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultTopologyConfig(t *testing.T) {
	cfg := DefaultTopologyConfig()
	if cfg.NumSpines != 12 || cfg.NumTors != 64 || cfg.ServersPerTor != 6 || cfg.GPUsPerServer != 8 {
		t.Errorf("DefaultTopologyConfig() = %+v, unexpected defaults", cfg)
	}
}
