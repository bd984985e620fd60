package solver

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/clossim/clossim/sim/traffic"
)

// ConflictGraph is the job-only weighted graph §4.5.4's max-k-cut
// partitions: an edge between two jobs is weighted by the number of
// links they both carry traffic on. This is distinct from the job/link
// bipartite graph (Bigraph) the heuristic, Cassini, and Steiner solvers
// build — max-k-cut never touches link nodes or the §4.5.1 per-link
// shift weights.
type ConflictGraph struct {
	g      *simple.WeightedUndirectedGraph
	jobID  map[string]int64
	names  map[int64]string
	nextID int64
}

// NewConflictGraph builds an empty job-conflict graph.
func NewConflictGraph() *ConflictGraph {
	return &ConflictGraph{
		g:     simple.NewWeightedUndirectedGraph(0, math.NaN()),
		jobID: make(map[string]int64),
		names: make(map[int64]string),
	}
}

func (c *ConflictGraph) node(job string) int64 {
	if id, ok := c.jobID[job]; ok {
		return id
	}
	id := c.nextID
	c.nextID++
	c.jobID[job] = id
	c.names[id] = job
	c.g.AddNode(simple.Node(id))
	return id
}

// addSharedLink increments the edge weight between a and b by one
// shared link, creating the edge at weight 1 if it doesn't exist yet.
func (c *ConflictGraph) addSharedLink(a, b string) {
	aID, bID := c.node(a), c.node(b)
	w, ok := c.g.Weight(aID, bID)
	if !ok {
		w = 0
	}
	c.g.SetWeightedEdge(c.g.NewWeightedEdge(simple.Node(aID), simple.Node(bID), w+1))
}

// Weight returns the number of links job a and job b share, and whether
// they share any.
func (c *ConflictGraph) Weight(a, b string) (float64, bool) {
	aID, ok := c.jobID[a]
	if !ok {
		return 0, false
	}
	bID, ok := c.jobID[b]
	if !ok {
		return 0, false
	}
	return c.g.Weight(aID, bID)
}

// Nodes returns every job node in the graph, in deterministic (name-
// sorted) order.
func (c *ConflictGraph) Nodes() []graph.Node {
	names := make([]string, 0, len(c.jobID))
	for name := range c.jobID {
		names = append(names, name)
	}
	sort.Strings(names)
	nodes := make([]graph.Node, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, simple.Node(c.jobID[name]))
	}
	return nodes
}

// Job returns the job name behind a node id.
func (c *ConflictGraph) Job(id int64) string { return c.names[id] }

// BuildConflictGraph builds the job-conflict graph restricted to
// jobNames: an edge between two of those jobs is weighted by the count
// of links both traverse. Jobs with no shared links still appear as
// isolated nodes so every named job gets a partition.
func BuildConflictGraph(m *traffic.Model, jobNames []string) *ConflictGraph {
	cg := NewConflictGraph()
	allowed := make(map[string]bool, len(jobNames))
	for _, name := range jobNames {
		allowed[name] = true
		cg.node(name)
	}
	for _, jobs := range m.LinkPatterns() {
		var names []string
		for name := range jobs {
			if allowed[name] {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				cg.addSharedLink(names[i], names[j])
			}
		}
	}
	return cg
}

// MaxKCut partitions the job-conflict graph's nodes into K classes,
// greedily maximizing total cut edge weight: each node is placed, in
// descending-degree order, into the class that currently minimizes its
// shared-link weight agreement with already-placed same-class jobs (a
// local-search approximation; no exact ILP solver is wired in, see the
// project's design notes).
func MaxKCut(cg *ConflictGraph, k int) map[int][]string {
	nodes := cg.Nodes()
	partitions := make(map[int][]string, k)
	for i := 1; i <= k; i++ {
		partitions[i] = nil
	}
	if len(nodes) <= k {
		for i, n := range nodes {
			partitions[i+1] = append(partitions[i+1], cg.Job(n.ID()))
		}
		return partitions
	}

	g := cg.g
	assignment := make(map[int64]int, len(nodes))

	order := append([]graph.Node{}, nodes...)
	sort.Slice(order, func(i, j int) bool {
		return g.From(order[i].ID()).Len() > g.From(order[j].ID()).Len()
	})

	for _, n := range order {
		best, bestWeight := 1, -1.0
		for class := 1; class <= k; class++ {
			var cutWeight float64
			to := g.From(n.ID())
			for to.Next() {
				neighbor := to.Node().ID()
				if assignment[neighbor] == class {
					continue
				}
				if _, assigned := assignment[neighbor]; !assigned {
					continue
				}
				w, _ := g.Weight(n.ID(), neighbor)
				cutWeight += w
			}
			if cutWeight > bestWeight {
				bestWeight = cutWeight
				best = class
			}
		}
		assignment[n.ID()] = best
		partitions[best] = append(partitions[best], cg.Job(n.ID()))
	}
	return partitions
}

// CalTimeShiftByMaxKCut assigns each partition a slot spaced evenly
// across jobNames' minimum period, then derives each job's shift toward
// its partition's slot the same way the heuristic solver anchors jobs
// to a start point.
func CalTimeShiftByMaxKCut(m *traffic.Model, jobNames []string, k int) map[string]int64 {
	cg := BuildConflictGraph(m, jobNames)
	partitions := MaxKCut(cg, k)

	var tMin int64 = -1
	for _, name := range jobNames {
		for _, jobs := range m.LinkPatterns() {
			if p, ok := jobs[name]; ok {
				if tMin == -1 || p.T < tMin {
					tMin = p.T
				}
			}
		}
	}
	if tMin <= 0 {
		return nil
	}

	shifts := make(map[string]int64)
	for class, names := range partitions {
		timeSpot := int64(class-1) * tMin / int64(k)
		for _, name := range names {
			var T, intervalStart int64 = tMin, 0
			for _, jobs := range m.LinkPatterns() {
				if p, ok := jobs[name]; ok {
					T = p.T
					intervalStart = p.Intervals[0].Lo
					break
				}
			}
			start := m.PeriodStart(name)
			shifts[name] = mod(timeSpot-(start+intervalStart), T)
		}
	}
	return shifts
}
