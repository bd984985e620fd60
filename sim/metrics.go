package sim

// Metrics summarizes one completed run: per-job conflict penalty and the
// size-weighted job-completion-time inflation those penalties caused.
type Metrics struct {
	Penalty map[string]int64
}

// ComputeJCTInflation computes the size-weighted average fractional JCT
// increase across jobs larger than 8 GPUs: jobs[name].Duration is the
// job's unconflicted duration, and m.Penalty[name] the ticks added to it.
// Returns 0 if no job exceeds the size threshold.
func (m *Metrics) ComputeJCTInflation(jobs Jobs) float64 {
	var totalWeighted, totalSize float64
	for name, job := range jobs {
		if job.Size <= 8 {
			continue
		}
		if job.Duration == 0 {
			continue
		}
		rate := float64(m.Penalty[name]) / float64(job.Duration)
		totalWeighted += rate * float64(job.Size)
		totalSize += float64(job.Size)
	}
	if totalSize == 0 {
		return 0
	}
	return totalWeighted / totalSize
}
