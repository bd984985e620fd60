package solver

import (
	"testing"

	"github.com/clossim/clossim/sim/stpsolver"
)

// TestSolveSteiner_FallsBackToCassiniOnSolverFailure pins spec scenario 5:
// when the external Steiner solver is unavailable, solve("ours") must
// produce the same result as solve("cassini") run on the full bigraph.
func TestSolveSteiner_FallsBackToCassiniOnSolverFailure(t *testing.T) {
	steinerModel := newTestModel(t)
	cassiniModel := newTestModel(t)

	brokenSolver := stpsolver.NewSolver(t.TempDir() + "/does-not-exist")
	if err := SolveSteiner(steinerModel, brokenSolver, t.TempDir(), "t0"); err != nil {
		t.Fatalf("SolveSteiner returned error instead of falling back: %v", err)
	}
	SolveCassini(cassiniModel)

	for _, job := range []string{"job1", "job2"} {
		wantStart, wantEnd, _ := cassiniModel.JobPeriod(job)
		gotStart, gotEnd, _ := steinerModel.JobPeriod(job)
		if gotStart != wantStart || gotEnd != wantEnd {
			t.Errorf("%s period = [%d,%d), want [%d,%d) (cassini fallback mismatch)", job, gotStart, gotEnd, wantStart, wantEnd)
		}
	}
}
