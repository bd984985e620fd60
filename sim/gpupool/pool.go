// Package gpupool implements first-fit GPU slot allocation.
package gpupool

import "sort"

// Pool is a fixed-size ordered sequence of GPU slots; each slot is
// either free (empty string) or holds the name of the job occupying it.
type Pool struct {
	slots        []string
	deployedAt   map[string]int64
	releasedAt   map[string]int64
}

// New creates a pool of n GPU slots, all initially free.
func New(n int) *Pool {
	return &Pool{
		slots:      make([]string, n),
		deployedAt: make(map[string]int64),
		releasedAt: make(map[string]int64),
	}
}

// Size returns the total number of slots.
func (p *Pool) Size() int { return len(p.slots) }

// Assign scans the slot vector in index order and claims the first k
// free slots for job, recording the deploy time. Returns false (with no
// mutation) if fewer than k slots are free. First-fit, not compacting:
// repeated assign/release cycles can leave a job's slots non-contiguous
// in address space.
func (p *Pool) Assign(job string, k int, t int64) bool {
	free := 0
	for _, s := range p.slots {
		if s == "" {
			free++
		}
	}
	if free < k {
		return false
	}
	assigned := 0
	for i, s := range p.slots {
		if s == "" {
			p.slots[i] = job
			assigned++
			if assigned == k {
				break
			}
		}
	}
	p.deployedAt[job] = t
	return true
}

// Release clears every slot holding job and records the release time.
func (p *Pool) Release(job string, t int64) {
	for i, s := range p.slots {
		if s == job {
			p.slots[i] = ""
		}
	}
	p.releasedAt[job] = t
}

// GPUs returns the slot indices currently holding job, in index order.
func (p *Pool) GPUs(job string) []int {
	var out []int
	for i, s := range p.slots {
		if s == job {
			out = append(out, i)
		}
	}
	return out
}

// OccupationRate returns the fraction of slots currently occupied.
func (p *Pool) OccupationRate() float64 {
	if len(p.slots) == 0 {
		return 0
	}
	used := 0
	for _, s := range p.slots {
		if s != "" {
			used++
		}
	}
	return float64(used) / float64(len(p.slots))
}

// JobOccupancy returns, for every job currently occupying slots, the
// number of slots it holds.
func (p *Pool) JobOccupancy() map[string]int {
	counts := make(map[string]int)
	for _, s := range p.slots {
		if s != "" {
			counts[s]++
		}
	}
	return counts
}

// ElapsedSince returns now minus the job's deploy time, or false if the
// job was never deployed or has since been released.
func (p *Pool) ElapsedSince(job string, now int64) (int64, bool) {
	if _, released := p.releasedAt[job]; released {
		return 0, false
	}
	deployed, ok := p.deployedAt[job]
	if !ok {
		return 0, false
	}
	return now - deployed, true
}

// Snapshot is a point-in-time dump of pool occupancy, suitable for
// periodic reporting or debugging deployment state.
type Snapshot struct {
	JobOccupancy map[string]int `json:"job_npu_occupied"`
	Deployment   []string       `json:"job_deployment"`
}

// TakeSnapshot builds a Snapshot of the pool's current state. Its
// JobOccupancy is a map and carries no order of its own; encoding/json
// writes its keys in sorted order.
func (p *Pool) TakeSnapshot() Snapshot {
	occ := p.JobOccupancy()
	names := make([]string, 0, len(occ))
	for name := range occ {
		names = append(names, name)
	}
	sort.Strings(names)
	sorted := make(map[string]int, len(occ))
	for _, n := range names {
		sorted[n] = occ[n]
	}
	deployment := make([]string, len(p.slots))
	copy(deployment, p.slots)
	return Snapshot{JobOccupancy: sorted, Deployment: deployment}
}
