// Package traffic tracks, per fabric link, the periodic traffic pattern
// each running job contributes, and calculates the scheduling conflicts
// those patterns create.
package traffic

import (
	"container/heap"
	"fmt"

	"github.com/clossim/clossim/sim/topology"
)

// Link aliases the fabric's unordered-pair link identity.
type Link = topology.Link

// Interval is a half-open tick range [Lo, Hi) within one period.
type Interval struct {
	Lo, Hi int64
}

// Pattern is one job's periodic traffic shape on one link: it repeats
// every T ticks, active during each Interval within a period.
type Pattern struct {
	Intervals []Interval
	T         int64
}

// Model holds the live per-link, per-job traffic patterns for a running
// simulation, plus each job's own time window and accumulated penalty.
type Model struct {
	linkPatterns map[Link]map[string]Pattern
	jobPeriod    map[string][2]int64
	running      []string
	ended        []string
	penalty      map[string]int64
	current      int64
}

// NewModel creates an empty traffic model.
func NewModel() *Model {
	return &Model{
		linkPatterns: make(map[Link]map[string]Pattern),
		jobPeriod:    make(map[string][2]int64),
		penalty:      make(map[string]int64),
	}
}

// AddJob registers a job's overall time window in the model.
func (m *Model) AddJob(job string, start, end int64) {
	m.running = append(m.running, job)
	m.jobPeriod[job] = [2]int64{start, end}
}

// AddTrafficPattern records job's traffic pattern on link. If the job
// already has a pattern on that link, the new intervals are merged by
// left-widening: each existing interval's low bound is pushed left by
// the new interval's width, matching repeated AllReduce phases
// accumulating duty cycle on the same link.
func (m *Model) AddTrafficPattern(link Link, job string, intervals []Interval, T int64) {
	for _, iv := range intervals {
		validateInterval(iv, T)
	}
	jobs, ok := m.linkPatterns[link]
	if !ok {
		jobs = make(map[string]Pattern)
		m.linkPatterns[link] = jobs
	}
	existing, ok := jobs[job]
	if !ok {
		jobs[job] = Pattern{Intervals: intervals, T: T}
		return
	}
	merged := make([]Interval, len(existing.Intervals))
	for i := range existing.Intervals {
		old := existing.Intervals[i]
		add := intervals[i]
		length := add.Hi - add.Lo
		merged[i] = Interval{Lo: old.Lo - length, Hi: old.Hi}
	}
	existing.Intervals = merged
	jobs[job] = existing
}

// validateInterval panics if interval violates the period invariant
// 0 <= lo < hi <= T. Callers are expected to pass intervals already
// validated against their model_type (sim.ModelTable.Validate runs at
// workload-load time, a recoverable error); a violation reaching here
// means calling code constructed an invalid interval directly — a
// contract bug, not recoverable input, so it aborts immediately.
func validateInterval(iv Interval, T int64) {
	if iv.Lo < 0 || iv.Lo >= iv.Hi || iv.Hi > T {
		panic(fmt.Sprintf("traffic: invalid interval [%d,%d) for period %d", iv.Lo, iv.Hi, T))
	}
}

// Unify normalizes, for each named job, every one of its (link, job)
// records to share the minimum Lo seen across its links — the earliest
// start dominates. It is idempotent: applying it twice leaves the state
// unchanged, since the second pass's minimum already equals every
// record's Lo.
func (m *Model) Unify(jobs []string) {
	for _, job := range jobs {
		loMin, found := int64(0), false
		for _, perJob := range m.linkPatterns {
			p, ok := perJob[job]
			if !ok {
				continue
			}
			for _, iv := range p.Intervals {
				if !found || iv.Lo < loMin {
					loMin, found = iv.Lo, true
				}
			}
		}
		if !found {
			continue
		}
		for _, perJob := range m.linkPatterns {
			p, ok := perJob[job]
			if !ok {
				continue
			}
			for i := range p.Intervals {
				p.Intervals[i].Lo = loMin
			}
			perJob[job] = p
		}
	}
}

// ReleaseSingleJob removes job from every link's traffic patterns and
// moves it from running to ended.
func (m *Model) ReleaseSingleJob(job string) {
	for link, jobs := range m.linkPatterns {
		delete(jobs, job)
		if len(jobs) == 0 {
			delete(m.linkPatterns, link)
		}
	}
	for i, r := range m.running {
		if r == job {
			m.running = append(m.running[:i], m.running[i+1:]...)
			break
		}
	}
	m.ended = append(m.ended, job)
}

// UpdateJobTimePeriods shifts each named job's time window by delay mod
// its period T, applied identically to both window bounds.
func (m *Model) UpdateJobTimePeriods(delays map[string]int64) {
	for job, delay := range delays {
		var T int64
		for _, jobs := range m.linkPatterns {
			if p, ok := jobs[job]; ok {
				T = p.T
				break
			}
		}
		if T == 0 {
			continue
		}
		shift := delay % T
		period := m.jobPeriod[job]
		period[0] += shift
		period[1] += shift
		m.jobPeriod[job] = period
	}
}

// UpdateTraffic advances the model's clock to newTime, computing each
// job's conflict-driven delay over the elapsed window and applying it to
// that job's time period, accumulating it into the job's total penalty.
func (m *Model) UpdateTraffic(newTime int64) {
	conflicts := JobConflicts(m.linkPatterns, m.jobPeriod, m.current, newTime)
	for job, c := range conflicts {
		m.penalty[job] += c
	}
	m.UpdateJobTimePeriods(conflicts)
	m.current = newTime
}

// releaseEntry is one running job's position in the release-ordering
// queue: its current end time and name.
type releaseEntry struct {
	endTime int64
	job     string
}

// releaseQueue orders running jobs for release by (end_time, job name),
// breaking ties on name so that jobs ending in the same step release in
// a deterministic order regardless of map iteration order.
type releaseQueue []releaseEntry

func (q releaseQueue) Len() int { return len(q) }
func (q releaseQueue) Less(i, j int) bool {
	if q[i].endTime != q[j].endTime {
		return q[i].endTime < q[j].endTime
	}
	return q[i].job < q[j].job
}
func (q releaseQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *releaseQueue) Push(x any)   { *q = append(*q, x.(releaseEntry)) }
func (q *releaseQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ReleaseJobs releases every running job whose time window ends at or
// before newTime, returning their names in deterministic (end_time, job
// name) order via a release-ordering heap.
func (m *Model) ReleaseJobs(newTime int64) []string {
	q := make(releaseQueue, 0, len(m.running))
	for _, job := range m.running {
		q = append(q, releaseEntry{endTime: m.jobPeriod[job][1], job: job})
	}
	heap.Init(&q)

	var released []string
	for q.Len() > 0 && q[0].endTime <= newTime {
		entry := heap.Pop(&q).(releaseEntry)
		m.ReleaseSingleJob(entry.job)
		released = append(released, entry.job)
	}
	return released
}

// JobList returns the distinct set of jobs currently present on any link.
func (m *Model) JobList() []string {
	seen := make(map[string]struct{})
	for _, jobs := range m.linkPatterns {
		for job := range jobs {
			seen[job] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for job := range seen {
		out = append(out, job)
	}
	return out
}

// LinkList returns every link currently carrying traffic.
func (m *Model) LinkList() []Link {
	out := make([]Link, 0, len(m.linkPatterns))
	for link := range m.linkPatterns {
		out = append(out, link)
	}
	return out
}

// JobDuration returns, for every (link, job) pair, the job's total active
// duration within one period on that link.
func (m *Model) JobDuration() map[Link]map[string]int64 {
	out := make(map[Link]map[string]int64, len(m.linkPatterns))
	for link, jobs := range m.linkPatterns {
		perJob := make(map[string]int64, len(jobs))
		for job, pattern := range jobs {
			var total int64
			for _, iv := range pattern.Intervals {
				total += iv.Hi - iv.Lo
			}
			perJob[job] = total
		}
		out[link] = perJob
	}
	return out
}

// LinkPatterns returns the live link→job→pattern map. Callers must treat
// it as read-only.
func (m *Model) LinkPatterns() map[Link]map[string]Pattern {
	return m.linkPatterns
}

// PeriodStart returns the job's current window start time.
func (m *Model) PeriodStart(job string) int64 {
	return m.jobPeriod[job][0]
}

// Penalty returns the job's total accumulated conflict delay so far.
func (m *Model) Penalty(job string) int64 {
	return m.penalty[job]
}

// EndedPenalties returns every job's accumulated conflict penalty,
// including jobs already released.
func (m *Model) EndedPenalties() map[string]int64 {
	out := make(map[string]int64, len(m.penalty))
	for job, p := range m.penalty {
		out[job] = p
	}
	return out
}

// JobPeriod returns the job's current [start, end) time window.
func (m *Model) JobPeriod(job string) (int64, int64, bool) {
	p, ok := m.jobPeriod[job]
	return p[0], p[1], ok
}

// EndedJobs returns every job released so far, in release order.
func (m *Model) EndedJobs() []string {
	return m.ended
}
