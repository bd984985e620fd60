package solver

import (
	"gonum.org/v1/gonum/graph"

	"github.com/clossim/clossim/sim/traffic"
)

// SolveCassini reconciles per-link time shifts within each connected
// component of the job/link bigraph directly, with no external solver:
// it is the cheap alternative to SolveSteiner.
func SolveCassini(m *traffic.Model) {
	bigraph := BuildFromTrafficModel(m)
	shifts := make(map[string]int64)
	for _, nodes := range ConnectedComponents(bigraph) {
		for job, shift := range BFSUnifyTimeShift(bigraph, nodes) {
			shifts[job] = shift
		}
	}
	m.UpdateJobTimePeriods(shifts)
}

// BFSUnifyTimeShift reconciles one connected component's per-edge time
// shifts into a single shift per job node, by BFS walking two hops at a
// time (job → link → job) and composing edge weights:
// shift(b) = shift(a) + weight(link,b) - weight(link,a).
// The component's job with the lexicographically smallest name is pinned
// at shift 0, so the start point does not depend on node order.
func BFSUnifyTimeShift(b *Bigraph, nodes []graph.Node) map[string]int64 {
	unified := make(map[string]int64)
	g := b.Underlying()

	allowed := make(map[int64]bool, len(nodes))
	for _, n := range nodes {
		allowed[n.ID()] = true
	}

	var startJob int64 = -1
	for _, n := range nodes {
		info := b.Info(n.ID())
		if info.Kind == KindJob && (startJob == -1 || info.Job < b.Info(startJob).Job) {
			startJob = n.ID()
		}
	}
	if startJob == -1 {
		return unified
	}

	startInfo := b.Info(startJob)
	unified[startInfo.Job] = 0
	visited := map[int64]bool{startJob: true}
	queue := []int64{startJob}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		currentShift := unified[b.Info(current).Job]

		to1 := g.From(current)
		for to1.Next() {
			mid := to1.Node().ID()
			if !allowed[mid] {
				continue
			}
			to2 := g.From(mid)
			for to2.Next() {
				next := to2.Node().ID()
				if next == current || visited[next] || !allowed[next] {
					continue
				}
				w1, _ := g.Weight(current, mid)
				w2, _ := g.Weight(mid, next)
				shift := currentShift + int64(w2) - int64(w1)
				info := b.Info(next)
				if info.Kind == KindJob {
					unified[info.Job] = shift
				}
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return unified
}
