package solver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph"

	"github.com/clossim/clossim/sim/stpsolver"
	"github.com/clossim/clossim/sim/traffic"
)

// SolveSteiner reconciles every connected component of the job/link
// bigraph via an external Steiner-tree solve: each component becomes a
// .stp problem (job duration reciprocal as edge cost), is solved by the
// external binary, and the surviving edges are BFS-unified into a single
// shift per job. If the external solver is unavailable or crashes for a
// component, that component falls back to plain BFS reconciliation over
// its full bigraph (the Cassini path) rather than aborting the step —
// the solver boundary is a recoverable failure, not a fatal one. The
// model's job time periods are updated in place.
func SolveSteiner(m *traffic.Model, solver *stpsolver.Solver, workDir string, runTag string) error {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("preparing solver work dir %s: %w", workDir, err)
	}

	bigraph := BuildFromTrafficModel(m)
	components := ConnectedComponents(bigraph)
	duration := m.JobDuration()

	shifts := make(map[string]int64)
	for i, nodes := range components {
		problem, nodeList := buildSTPProblem(bigraph, nodes, duration)
		if problem.NumTerminals == 0 {
			continue
		}
		stpPath := filepath.Join(workDir, fmt.Sprintf("%s_%d.stp", runTag, i))
		solPath := filepath.Join(workDir, fmt.Sprintf("%s_%d.sol", runTag, i))

		solutionGraph, ok := solveComponent(solver, stpPath, solPath, problem, bigraph, nodeList)
		if !ok {
			solutionGraph = nodes
		}
		for job, shift := range BFSUnifyTimeShift(bigraph, solutionGraph) {
			shifts[job] = shift
		}
	}

	m.UpdateJobTimePeriods(shifts)
	return nil
}

// solveComponent writes, dispatches, and parses one component's Steiner
// problem. It reports ok=false on any failure of the external solver,
// leaving the caller to fall back to unrestricted BFS over the full
// component.
func solveComponent(solver *stpsolver.Solver, stpPath, solPath string, problem stpsolver.Problem, bigraph *Bigraph, nodeList []graph.Node) ([]graph.Node, bool) {
	if err := stpsolver.WriteFile(stpPath, problem); err != nil {
		logrus.Warnf("steiner solve: writing problem file %s: %v, falling back to BFS", stpPath, err)
		return nil, false
	}
	if err := solver.Solve(stpPath, solPath); err != nil {
		logrus.Warnf("steiner solve: external solver failed on %s: %v, falling back to BFS", stpPath, err)
		return nil, false
	}
	edges, err := stpsolver.ParseSolution(solPath)
	if err != nil {
		logrus.Warnf("steiner solve: parsing solution %s: %v, falling back to BFS", solPath, err)
		return nil, false
	}
	return subgraphFromSolution(bigraph, nodeList, edges), true
}

// buildSTPProblem lays out one component's nodes as 1-indexed job-then-
// link ids and emits an edge per (job, link) pair with non-zero duration.
func buildSTPProblem(b *Bigraph, nodes []graph.Node, duration map[traffic.Link]map[string]int64) (stpsolver.Problem, []graph.Node) {
	var jobs, links []graph.Node
	for _, n := range nodes {
		if b.Info(n.ID()).Kind == KindJob {
			jobs = append(jobs, n)
		} else {
			links = append(links, n)
		}
	}
	ordered := append(append([]graph.Node{}, jobs...), links...)

	var edges []stpsolver.Edge
	for ji, jn := range jobs {
		jobName := b.Info(jn.ID()).Job
		for li, ln := range links {
			link := b.Info(ln.ID()).Link
			d := duration[link][jobName]
			if d == 0 {
				continue
			}
			edges = append(edges, stpsolver.Edge{
				From: ji + 1,
				To:   len(jobs) + li + 1,
				Cost: 1.0 / float64(d),
			})
		}
	}

	return stpsolver.Problem{
		NumNodes:     len(ordered),
		NumTerminals: len(jobs),
		Edges:        edges,
	}, ordered
}

// subgraphFromSolution keeps only the job nodes and the link nodes that
// the solver's solution actually selected an edge for.
func subgraphFromSolution(b *Bigraph, nodeList []graph.Node, solutionEdges [][2]int) []graph.Node {
	keepLink := make(map[int64]bool)
	for _, e := range solutionEdges {
		if e[0] < 0 || e[0] >= len(nodeList) || e[1] < 0 || e[1] >= len(nodeList) {
			continue
		}
		n1, n2 := nodeList[e[0]], nodeList[e[1]]
		if b.Info(n1.ID()).Kind == KindLink {
			keepLink[n1.ID()] = true
		} else {
			keepLink[n2.ID()] = true
		}
	}

	var out []graph.Node
	for _, n := range nodeList {
		if b.Info(n.ID()).Kind == KindJob || keepLink[n.ID()] {
			out = append(out, n)
		}
	}
	return out
}
