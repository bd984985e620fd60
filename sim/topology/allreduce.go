package topology

import "math/bits"

// CommPair is an ordered GPU send pair within one halving-doubling stage.
type CommPair struct {
	Src, Dst int
}

// HDCommPairs returns the ordered GPU pairs of a halving-doubling
// AllReduce over group. Pairs are directional: (g[i], g[j]) and
// (g[j], g[i]) are both emitted since each side sends.
func HDCommPairs(group []int) []CommPair {
	n := len(group)
	if n <= 1 {
		return nil
	}

	var pairs []CommPair
	r := n - (1 << floorLog2(n))

	// Stage 1: pairwise reduce odd-indexed survivors into even-indexed ones.
	removed := make(map[int]bool, r)
	for i := 0; i < r; i++ {
		a, b := group[2*i], group[2*i+1]
		pairs = append(pairs, CommPair{a, b}, CommPair{b, a})
		removed[group[2*i+1]] = true
	}
	remain := make([]int, 0, n-r)
	for _, g := range group {
		if !removed[g] {
			remain = append(remain, g)
		}
	}

	// Stage 2: recursive halving-doubling over the survivors.
	for step := 1; step < n-r; step *= 2 {
		for i := 0; i < n-r; i += step * 2 {
			for j := 0; j < step; j++ {
				a, b := remain[i+j], remain[i+j+step]
				pairs = append(pairs, CommPair{a, b}, CommPair{b, a})
			}
		}
	}
	return pairs
}

func floorLog2(n int) int {
	return bits.Len(uint(n)) - 1
}

// HDGroupLinks returns the unordered set of links occupied by one HD
// AllReduce group's communication, deduplicated within the group.
func HDGroupLinks(topo *Clos, group []int) map[Link]struct{} {
	links := make(map[Link]struct{})
	for _, pair := range HDCommPairs(group) {
		for _, l := range topo.Route(pair.Src, pair.Dst) {
			links[l] = struct{}{}
		}
	}
	return links
}

// DPWays returns the data-parallel fan-out for a job's HD AllReduce:
// dp_ways = min(G/gpus_per_server, 4), floored at 1 so jobs smaller than
// one server still form a single group.
func DPWays(numGPUs, gpusPerServer int) int {
	ways := numGPUs / gpusPerServer
	if ways > 4 {
		ways = 4
	}
	if ways < 1 {
		ways = 1
	}
	return ways
}

// AllReduceGroups splits a job's GPU list into its per-data-parallel-way
// HD AllReduce groups by striding: group i is every per_way-th GPU
// starting at i.
func AllReduceGroups(topo *Clos, jobGPUs []int) [][]int {
	dpWays := DPWays(len(jobGPUs), topo.cfg.GPUsPerServer)
	perWay := len(jobGPUs) / dpWays
	groups := make([][]int, perWay)
	for i := 0; i < perWay; i++ {
		for j := i; j < len(jobGPUs); j += perWay {
			groups[i] = append(groups[i], jobGPUs[j])
		}
	}
	return groups
}

// HDLinkList returns the job's link list for an HD AllReduce: the
// concatenation, across every AllReduce group, of that group's link set
// (duplicates across groups retained).
func HDLinkList(topo *Clos, jobGPUs []int) []Link {
	var links []Link
	for _, group := range AllReduceGroups(topo, jobGPUs) {
		for l := range HDGroupLinks(topo, group) {
			links = append(links, l)
		}
	}
	return links
}
