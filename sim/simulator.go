package sim

import (
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/clossim/clossim/sim/gpupool"
	"github.com/clossim/clossim/sim/solver"
	"github.com/clossim/clossim/sim/stpsolver"
	"github.com/clossim/clossim/sim/topology"
	"github.com/clossim/clossim/sim/traffic"
)

// Simulator drives the fixed-window cluster conflict simulation: each
// step releases ended jobs, deploys newly arrived ones, records their
// collective traffic, reconciles conflicts, and runs the configured
// shift-assignment solver before advancing the clock.
type Simulator struct {
	cfg       SimConfig
	topo      *topology.Clos
	pool      *gpupool.Pool
	traffic   *traffic.Model
	rng       *PartitionedRNG
	stpSolver *stpsolver.Solver

	clock   int64
	waiting Jobs
	jobs    Jobs
	metrics Metrics
}

// NewSimulator builds a Simulator over the given job set.
func NewSimulator(cfg SimConfig, jobs Jobs) *Simulator {
	waiting := make(Jobs, len(jobs))
	for name, j := range jobs {
		waiting[name] = j
	}
	s := &Simulator{
		cfg:     cfg,
		topo:    topology.New(topology.Config(cfg.Topology)),
		pool:    gpupool.New(cfg.NumGPUs),
		traffic: traffic.NewModel(),
		rng:     NewPartitionedRNG(cfg.Seed),
		waiting: waiting,
		jobs:    jobs,
		metrics: Metrics{Penalty: make(map[string]int64)},
	}
	if cfg.Method == SolverSteiner {
		s.stpSolver = stpsolver.NewSolver(cfg.STPSolverPath)
	}
	return s
}

// Run executes the simulation to completion: every waiting job is
// eventually deployed and released. It returns the accumulated metrics.
func (s *Simulator) Run() (*Metrics, error) {
	for len(s.waiting) > 0 || len(s.traffic.EndedJobs()) < len(s.jobs) {
		nextTime := s.clock + s.cfg.UpdateTimeInterval

		for _, job := range s.released(nextTime) {
			s.pool.Release(job, nextTime)
		}

		var deployed []string
		for _, name := range s.arriving(nextTime) {
			job := s.waiting[name]
			deployTime := maxI64(job.ArrivalTime, s.clock)
			if !s.pool.Assign(name, job.Size, deployTime) {
				break
			}
			job.State = JobRunning
			s.allocateFlows(name, job, deployTime)
			delete(s.waiting, name)
			deployed = append(deployed, name)
		}
		s.traffic.Unify(deployed)

		s.traffic.UpdateTraffic(nextTime)

		if err := s.solve(); err != nil {
			return nil, err
		}

		s.clock = nextTime
		logrus.Debugf("advanced to t=%d, waiting=%d, running=%d", s.clock, len(s.waiting), len(s.pool.JobOccupancy()))
	}

	for name, p := range s.traffic.EndedPenalties() {
		s.metrics.Penalty[name] = p
	}
	return &s.metrics, nil
}

// released returns jobs whose time window ends at or before newTime and
// removes them from the traffic model.
func (s *Simulator) released(newTime int64) []string {
	return s.traffic.ReleaseJobs(newTime)
}

// arriving returns the still-waiting job names that arrive before
// newTime, in arrival-time order (ties broken by name for determinism).
func (s *Simulator) arriving(newTime int64) []string {
	var names []string
	for name, job := range s.waiting {
		if job.ArrivalTime < newTime {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		ji, jj := s.waiting[names[i]], s.waiting[names[j]]
		if ji.ArrivalTime != jj.ArrivalTime {
			return ji.ArrivalTime < jj.ArrivalTime
		}
		return names[i] < names[j]
	})
	return names
}

// allocateFlows maps a newly deployed job's GPU placement to its HD
// AllReduce link list and registers its periodic traffic pattern on
// every link it traverses.
func (s *Simulator) allocateFlows(name string, job *Job, deployTime int64) {
	s.traffic.AddJob(name, deployTime, deployTime+job.Duration)
	model, ok := s.cfg.ModelTable[job.ModelType]
	if !ok {
		return
	}
	gpus := s.pool.GPUs(name)
	links := topology.HDLinkList(s.topo, gpus)

	intervals := []traffic.Interval{{Lo: model.Interval[0], Hi: model.Interval[1]}}
	for _, link := range links {
		s.traffic.AddTrafficPattern(link, name, intervals, model.T)
	}
}

// solve runs the configured shift-assignment solver over the current
// traffic model.
func (s *Simulator) solve() error {
	switch s.cfg.Method {
	case SolverNone:
		return nil
	case SolverCassini:
		solver.SolveCassini(s.traffic)
		return nil
	case SolverSteiner:
		return solver.SolveSteiner(s.traffic, s.stpSolver, s.cfg.STPWorkDir, tickTag(s.clock))
	case SolverMaxKCut:
		return s.solveMaxKCut()
	default:
		return nil
	}
}

func (s *Simulator) solveMaxKCut() error {
	bigraph := solver.BuildFromTrafficModel(s.traffic)
	shifts := make(map[string]int64)
	for _, nodes := range solver.ConnectedComponents(bigraph) {
		jobNames := solver.JobNames(bigraph, nodes)
		for job, shift := range solver.CalTimeShiftByMaxKCut(s.traffic, jobNames, s.cfg.MaxKCutClasses) {
			shifts[job] = shift
		}
	}
	s.traffic.UpdateJobTimePeriods(shifts)
	return nil
}

func tickTag(t int64) string {
	return "t" + strconv.FormatInt(t, 10)
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
