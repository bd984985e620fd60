// Package netsim emits per-job RDMA phase traces in the NetSim input
// file format, for feeding a downstream packet-level network simulator.
package netsim

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clossim/clossim/sim/topology"
)

// intraPhaseGap is the literal gap NetSim expects between phases that
// belong to the same RDMA operate trace.
const intraPhaseGap = 3000

// deltaScale converts a tick delta into NetSim's time unit.
const deltaScale = 1e7

// WritePhases writes one job's RDMA operate trace to
// <dir>/<job>/rdma_operate_<index>.txt. The opening phase header carries
// the delta from deployTime scaled by deltaScale; every later phase in
// the same file uses the literal NetSim intra-phase gap.
func WritePhases(dir, job string, index int, deployTime int64, phases [][]topology.RDMATuple) error {
	jobDir := filepath.Join(dir, job)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return fmt.Errorf("creating netsim job dir %s: %w", jobDir, err)
	}
	path := filepath.Join(jobDir, fmt.Sprintf("rdma_operate_%d.txt", index))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating netsim file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "stat rdma operate:")
	for i, phase := range phases {
		if i == 0 {
			fmt.Fprintf(w, "phase:%d\n", int64(float64(deployTime)*deltaScale))
		} else {
			fmt.Fprintf(w, "phase:%d\n", intraPhaseGap)
		}
		for _, tuple := range phase {
			fmt.Fprintf(w, "Type:rdma_send, src_node:%s, src_port:0, dst_node:%s, dst_port:0, priority:4, msg_len:%d\n",
				topology.GPUName(tuple.Src), topology.GPUName(tuple.Dst), tuple.MsgLen)
		}
	}
	return w.Flush()
}
