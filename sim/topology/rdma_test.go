package topology

import "testing"

func TestRDMAOperateTuples_Pair(t *testing.T) {
	phases := RDMAOperateTuples([]int{0, 1}, 100)
	if len(phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(phases))
	}
	if phases[0][0] != (RDMATuple{0, 1, 100}) {
		t.Errorf("phase 0 tuple 0 = %+v", phases[0][0])
	}
	if phases[1][0].MsgLen != 200 {
		t.Errorf("phase 1 should double msg_len, got %d", phases[1][0].MsgLen)
	}
}

func TestRDMAOperateTuples_Quad(t *testing.T) {
	phases := RDMAOperateTuples([]int{0, 1, 2, 3}, 50)
	if len(phases) != 4 {
		t.Fatalf("got %d phases, want 4", len(phases))
	}
	for _, phase := range phases {
		if len(phase) != 4 {
			t.Errorf("phase %+v has %d tuples, want 4", phase, len(phase))
		}
	}
}

func TestRDMAOperateTuples_SingletonAndUnsupported(t *testing.T) {
	if got := RDMAOperateTuples([]int{0}, 10); got != nil {
		t.Errorf("singleton group = %v, want nil", got)
	}
	if got := RDMAOperateTuples([]int{0, 1, 2}, 10); got != nil {
		t.Errorf("unsupported group size 3 = %v, want nil", got)
	}
}
