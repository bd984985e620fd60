package traffic

// Overlap rasterizes two jobs' periodic traffic patterns over the window
// [current, new) into boolean bitmasks and counts the ticks where both
// are active. Each pattern's intervals repeat every T ticks, offset by
// the job's own start time.
func Overlap(p1, p2 Pattern, start1, end1, start2, end2, current, newTime int64) int64 {
	width := newTime - current
	if width <= 0 {
		return 0
	}
	mask1 := rasterize(p1, start1, end1, current, newTime, width)
	mask2 := rasterize(p2, start2, end2, current, newTime, width)

	var count int64
	for i := range mask1 {
		if mask1[i] && mask2[i] {
			count++
		}
	}
	return count
}

func rasterize(p Pattern, start, end, current, newTime, width int64) []bool {
	mask := make([]bool, width)
	for _, iv := range p.Intervals {
		s, e := iv.Lo, iv.Hi
		for s+start < minI64(end, newTime) {
			if e+start <= current {
				s += p.T
				e += p.T
				continue
			}
			lo := maxI64(current, s+start) - current
			hi := minI64(newTime, e+start) - current
			for i := lo; i < hi; i++ {
				mask[i] = true
			}
			s += p.T
			e += p.T
		}
	}
	return mask
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// LinkJobConflicts returns, for every job present on one link, the sum of
// its pairwise overlap (in ticks) with every other job on that same link
// over [current, new).
func LinkJobConflicts(jobs map[string]Pattern, periods map[string][2]int64, current, newTime int64) map[string]int64 {
	conflicts := make(map[string]int64, len(jobs))
	for name := range jobs {
		conflicts[name] = 0
	}
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			pa, pb := periods[a], periods[b]
			c := Overlap(jobs[a], jobs[b], pa[0], pa[1], pb[0], pb[1], current, newTime)
			conflicts[a] += c
			conflicts[b] += c
		}
	}
	return conflicts
}

// JobConflicts computes, for every job, the maximum conflict it incurs
// across all links it traverses over [current, new) — the per-step delay
// each job's jobs time-period update should apply.
func JobConflicts(linkPatterns map[Link]map[string]Pattern, periods map[string][2]int64, current, newTime int64) map[string]int64 {
	jobConflicts := make(map[string]int64)
	for _, jobs := range linkPatterns {
		linkConflicts := LinkJobConflicts(jobs, periods, current, newTime)
		for name, c := range linkConflicts {
			if existing, ok := jobConflicts[name]; ok {
				if c > existing {
					jobConflicts[name] = c
				}
			} else {
				jobConflicts[name] = c
			}
		}
	}
	return jobConflicts
}
