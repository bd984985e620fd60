// Package sim provides the core discrete-event simulation engine for the
// Clos-fabric training-cluster conflict simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go: Job and its lifecycle states (waiting → running → ended)
//   - config.go: the model table and SimConfig
//   - simulator.go: the time-stepped driver (release, deploy, unify, solve, advance)
//   - metrics.go: per-run conflict penalties and JCT inflation
//
// # Architecture
//
// The sim package owns workload lifecycle and the simulator loop; the
// supporting subsystems live in sub-packages:
//   - sim/topology/: Clos addressing, routing, and HD AllReduce → link set
//   - sim/gpupool/: first-fit GPU slot allocation
//   - sim/traffic/: per-link/per-job periodic flow bookkeeping and the
//     conflict calculator
//   - sim/solver/: the shift-assignment solvers (heuristic, Cassini BFS,
//     Steiner-tree, max-k-cut)
//   - sim/stpsolver/: the external Steiner-tree subprocess adapter
//   - sim/workload/: job generation (CDF sampling) and Jobs JSON I/O
//   - sim/netsim/: NetSim input-file emission
package sim
