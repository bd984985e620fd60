package traffic

import (
	"testing"

	"github.com/clossim/clossim/sim/topology"
)

func TestAddTrafficPattern_MergesByLeftWidening(t *testing.T) {
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	m.AddTrafficPattern(link, "job1", []Interval{{0, 2}}, 10)
	m.AddTrafficPattern(link, "job1", []Interval{{0, 3}}, 10)

	jobs := m.LinkPatterns()[link]
	got := jobs["job1"].Intervals[0]
	// Second add has width 3; existing low bound widens left by 3: 0-3=-3.
	if got != (Interval{-3, 2}) {
		t.Errorf("merged interval = %+v, want {-3, 2}", got)
	}
}

func TestAddTrafficPattern_PanicsOnInvalidInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for lo >= hi")
		}
	}()
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	m.AddTrafficPattern(link, "job1", []Interval{{Lo: 5, Hi: 5}}, 10)
}

func TestAddTrafficPattern_PanicsWhenHiExceedsPeriod(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for hi > T")
		}
	}()
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	m.AddTrafficPattern(link, "job1", []Interval{{Lo: 0, Hi: 11}}, 10)
}

func TestReleaseSingleJob_RemovesEmptyLinks(t *testing.T) {
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	m.AddTrafficPattern(link, "job1", []Interval{{0, 2}}, 10)
	m.ReleaseSingleJob("job1")
	if _, ok := m.LinkPatterns()[link]; ok {
		t.Error("link with no remaining jobs should be removed")
	}
}

func TestUpdateJobTimePeriods_ShiftsBothBounds(t *testing.T) {
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	m.AddJob("job1", 0, 100)
	m.AddTrafficPattern(link, "job1", []Interval{{0, 2}}, 10)
	m.UpdateJobTimePeriods(map[string]int64{"job1": 13})

	start, end, ok := m.JobPeriod("job1")
	if !ok {
		t.Fatal("job1 period missing")
	}
	// delay 13 mod T=10 -> shift of 3, applied to both bounds.
	if start != 3 || end != 103 {
		t.Errorf("period = [%d, %d), want [3, 103)", start, end)
	}
}

func TestReleaseJobs_EndsExpiredJobs(t *testing.T) {
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	m.AddJob("job1", 0, 50)
	m.AddTrafficPattern(link, "job1", []Interval{{0, 2}}, 10)

	released := m.ReleaseJobs(50)
	if len(released) != 1 || released[0] != "job1" {
		t.Errorf("ReleaseJobs(50) = %v, want [job1]", released)
	}
	if len(m.EndedJobs()) != 1 {
		t.Error("job1 should appear in EndedJobs")
	}
}

func TestReleaseJobs_OrdersDeterministicallyByEndTimeThenName(t *testing.T) {
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	// Insert in reverse-alphabetical, mixed-end-time order to make sure
	// the release queue -- not map iteration -- determines output order.
	m.AddJob("zeta", 0, 50)
	m.AddJob("beta", 0, 30)
	m.AddJob("alpha", 0, 30)
	for _, job := range []string{"zeta", "beta", "alpha"} {
		m.AddTrafficPattern(link, job, []Interval{{0, 2}}, 10)
	}

	released := m.ReleaseJobs(50)
	want := []string{"alpha", "beta", "zeta"}
	if len(released) != len(want) {
		t.Fatalf("ReleaseJobs(50) = %v, want %v", released, want)
	}
	for i, name := range want {
		if released[i] != name {
			t.Errorf("released[%d] = %q, want %q (order = %v)", i, released[i], name, released)
		}
	}
}

func TestJobList_And_LinkList(t *testing.T) {
	m := NewModel()
	l1 := topology.NewLink("ToR-0", "Spine-0")
	l2 := topology.NewLink("ToR-1", "Spine-0")
	m.AddTrafficPattern(l1, "job1", []Interval{{0, 2}}, 10)
	m.AddTrafficPattern(l2, "job2", []Interval{{0, 2}}, 10)

	jobs := m.JobList()
	if len(jobs) != 2 {
		t.Errorf("JobList() = %v, want 2 jobs", jobs)
	}
	links := m.LinkList()
	if len(links) != 2 {
		t.Errorf("LinkList() = %v, want 2 links", links)
	}
}

func TestUnify_NormalizesLoAcrossLinks(t *testing.T) {
	m := NewModel()
	l1 := topology.NewLink("ToR-0", "Spine-0")
	l2 := topology.NewLink("ToR-1", "Spine-0")
	m.AddTrafficPattern(l1, "job1", []Interval{{4, 6}}, 10)
	m.AddTrafficPattern(l2, "job1", []Interval{{1, 3}}, 10)

	m.Unify([]string{"job1"})

	for _, link := range []Link{l1, l2} {
		if got := m.LinkPatterns()[link]["job1"].Intervals[0].Lo; got != 1 {
			t.Errorf("link %v: Lo = %d, want 1", link, got)
		}
	}
	// Hi bounds are untouched by unify.
	if got := m.LinkPatterns()[l1]["job1"].Intervals[0].Hi; got != 6 {
		t.Errorf("l1 Hi = %d, want 6", got)
	}
}

func TestUnify_Idempotent(t *testing.T) {
	m := NewModel()
	l1 := topology.NewLink("ToR-0", "Spine-0")
	l2 := topology.NewLink("ToR-1", "Spine-0")
	m.AddTrafficPattern(l1, "job1", []Interval{{4, 6}}, 10)
	m.AddTrafficPattern(l2, "job1", []Interval{{1, 3}}, 10)

	m.Unify([]string{"job1"})
	first := m.LinkPatterns()[l1]["job1"].Intervals[0]
	m.Unify([]string{"job1"})
	second := m.LinkPatterns()[l1]["job1"].Intervals[0]

	if first != second {
		t.Errorf("unify not idempotent: first=%+v second=%+v", first, second)
	}
}

func TestJobDuration_SumsIntervals(t *testing.T) {
	m := NewModel()
	link := topology.NewLink("ToR-0", "Spine-0")
	m.AddTrafficPattern(link, "job1", []Interval{{0, 2}, {5, 8}}, 10)

	duration := m.JobDuration()[link]["job1"]
	if duration != 5 {
		t.Errorf("JobDuration = %d, want 5", duration)
	}
}
