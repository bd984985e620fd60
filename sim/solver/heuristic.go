package solver

import (
	"sort"

	"github.com/clossim/clossim/sim/traffic"
)

// CalTimeShifts computes the per-link heuristic time shift for every job
// on that link: jobs are sorted by ascending period and packed into
// offsets equally spaced across the link's shortest period, T_min/m for
// m jobs on the link. The shift for job j is the distance from its
// current phase to its assigned offset, modulo its own period.
func CalTimeShifts(m *traffic.Model) map[traffic.Link]map[string]int64 {
	shifts := make(map[traffic.Link]map[string]int64)
	for link, jobs := range m.LinkPatterns() {
		shifts[link] = make(map[string]int64)
		if len(jobs) == 0 {
			continue
		}
		names := make([]string, 0, len(jobs))
		for name := range jobs {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			return jobs[names[i]].T < jobs[names[j]].T
		})

		tMin := jobs[names[0]].T
		step := tMin / int64(len(names))

		for i, name := range names {
			pattern := jobs[name]
			startTime := m.PeriodStart(name)
			intervalStart := pattern.Intervals[0].Lo
			T := pattern.T
			offset := int64(i) * step
			shifts[link][name] = mod(offset-(startTime+intervalStart), T)
		}
	}
	return shifts
}

// mod is the non-negative modulo used throughout the shift solvers —
// Go's % can return a negative result for a negative dividend.
func mod(a, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
