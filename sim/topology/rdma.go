package topology

// RDMATuple is a single send operation within an AllReduce phase:
// (src, dst, bytes transferred).
type RDMATuple struct {
	Src, Dst int
	MsgLen   int64
}

// RDMAOperateTuples returns the per-phase RDMA send tuples that mirror
// one group's actual HD AllReduce send pattern. Only groups of size
// 1, 2, or 4 are defined; other sizes return nil (unspecified, treated
// as empty).
func RDMAOperateTuples(group []int, msgLen int64) [][]RDMATuple {
	switch len(group) {
	case 1:
		return nil
	case 2:
		a, b := group[0], group[1]
		return [][]RDMATuple{
			{{a, b, msgLen}, {b, a, msgLen}},
			{{a, b, msgLen * 2}, {b, a, msgLen * 2}},
		}
	case 4:
		a, b, c, d := group[0], group[1], group[2], group[3]
		return [][]RDMATuple{
			{{a, b, msgLen}, {b, a, msgLen}, {c, d, msgLen}, {d, c, msgLen}},
			{{a, c, msgLen}, {c, a, msgLen}, {b, d, msgLen}, {d, b, msgLen}},
			{{a, c, msgLen * 2}, {c, a, msgLen * 2}, {b, d, msgLen * 2}, {d, b, msgLen * 2}},
			{{a, b, msgLen * 2}, {b, a, msgLen * 2}, {c, d, msgLen * 2}, {d, c, msgLen * 2}},
		}
	default:
		return nil
	}
}

// JobRDMAOperateTuples returns the job-level RDMA tuples: job > AllReduce
// group > phase > tuple.
func JobRDMAOperateTuples(topo *Clos, jobGPUs []int, msgLen int64) [][][]RDMATuple {
	groups := AllReduceGroups(topo, jobGPUs)
	out := make([][][]RDMATuple, len(groups))
	for i, group := range groups {
		out[i] = RDMAOperateTuples(group, msgLen)
	}
	return out
}
