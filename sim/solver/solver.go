// Package solver computes per-link time shifts that spread out
// conflicting jobs' periodic traffic, using a handful of interchangeable
// strategies layered over a common job/link bipartite graph.
package solver

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/clossim/clossim/sim/traffic"
)

// NodeKind distinguishes a bigraph node's role.
type NodeKind int

const (
	KindJob NodeKind = iota
	KindLink
)

// NodeInfo is the bigraph's per-node metadata: its kind and, depending on
// kind, either its job name or its link.
type NodeInfo struct {
	Kind NodeKind
	Job  string
	Link traffic.Link
}

// Bigraph is the job-link bipartite graph: an edge (job, link) means the
// job carries traffic over that link, weighted by the link's per-link
// time shift for that job.
type Bigraph struct {
	g      *simple.WeightedUndirectedGraph
	info   map[int64]NodeInfo
	jobID  map[string]int64
	linkID map[traffic.Link]int64
	nextID int64
}

// NewBigraph builds an empty bigraph.
func NewBigraph() *Bigraph {
	return &Bigraph{
		g:      simple.NewWeightedUndirectedGraph(0, math.NaN()),
		info:   make(map[int64]NodeInfo),
		jobID:  make(map[string]int64),
		linkID: make(map[traffic.Link]int64),
	}
}

func (b *Bigraph) jobNode(job string) int64 {
	if id, ok := b.jobID[job]; ok {
		return id
	}
	id := b.nextID
	b.nextID++
	b.jobID[job] = id
	b.info[id] = NodeInfo{Kind: KindJob, Job: job}
	b.g.AddNode(simple.Node(id))
	return id
}

func (b *Bigraph) linkNode(link traffic.Link) int64 {
	if id, ok := b.linkID[link]; ok {
		return id
	}
	id := b.nextID
	b.nextID++
	b.linkID[link] = id
	b.info[id] = NodeInfo{Kind: KindLink, Link: link}
	b.g.AddNode(simple.Node(id))
	return id
}

// AddEdge connects job to link with the given weight (time shift).
func (b *Bigraph) AddEdge(job string, link traffic.Link, weight float64) {
	jID := b.jobNode(job)
	lID := b.linkNode(link)
	b.g.SetWeightedEdge(b.g.NewWeightedEdge(simple.Node(jID), simple.Node(lID), weight))
}

// Info returns the metadata for a node id.
func (b *Bigraph) Info(id int64) NodeInfo { return b.info[id] }

// Jobs returns every job node's name.
func (b *Bigraph) Jobs() []string {
	names := make([]string, 0, len(b.jobID))
	for name := range b.jobID {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Weight returns the edge weight between a job and link, and whether the
// edge exists.
func (b *Bigraph) Weight(job string, link traffic.Link) (float64, bool) {
	jID, ok := b.jobID[job]
	if !ok {
		return 0, false
	}
	lID, ok := b.linkID[link]
	if !ok {
		return 0, false
	}
	w, ok := b.g.Weight(jID, lID)
	return w, ok
}

// Underlying exposes the gonum graph for callers that need direct graph
// algorithms (connected components, BFS neighbor walks).
func (b *Bigraph) Underlying() *simple.WeightedUndirectedGraph { return b.g }

// ConnectedComponents splits the bigraph into its connected subgraphs, a
// time-shift solve being independent across components.
func ConnectedComponents(b *Bigraph) [][]graph.Node {
	return topo.ConnectedComponents(b.g)
}

// JobNames extracts just the job names from a bipartite component's
// node list, discarding link nodes. Used by solvers (max-k-cut) that
// operate on a job-only graph scoped to one bigraph component.
func JobNames(b *Bigraph, nodes []graph.Node) []string {
	var names []string
	for _, n := range nodes {
		if info := b.Info(n.ID()); info.Kind == KindJob {
			names = append(names, info.Job)
		}
	}
	return names
}

// BuildFromTrafficModel constructs the bipartite graph from a traffic
// model's current link patterns, weighting each job-link edge with the
// per-link heuristic time shift for that job (CalTimeShifts).
func BuildFromTrafficModel(m *traffic.Model) *Bigraph {
	b := NewBigraph()
	shifts := CalTimeShifts(m)
	for link, jobShifts := range shifts {
		for job, shift := range jobShifts {
			b.AddEdge(job, link, float64(shift))
		}
	}
	return b
}
