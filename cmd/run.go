package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clossim/clossim/sim"
	"github.com/clossim/clossim/sim/workload"
)

var (
	jobsPath       string
	modelTablePath string
	numGPUs        int
	updateWindow   int64
	method         string
	maxKCutK       int
	seed           int64
	stpSolverPath  string
	stpWorkDir     string
	logLevel       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cluster conflict simulation over a Jobs JSON workload",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		table, err := sim.LoadModelTable(modelTablePath)
		if err != nil {
			logrus.Fatalf("loading model table: %v", err)
		}

		jobs, err := workload.LoadJobs(jobsPath)
		if err != nil {
			logrus.Fatalf("loading jobs: %v", err)
		}
		if err := jobs.Validate(table); err != nil {
			logrus.Fatalf("workload invalid: %v", err)
		}

		cfg := sim.SimConfig{
			Topology:           sim.DefaultTopologyConfig(),
			ModelTable:         table,
			NumGPUs:            numGPUs,
			UpdateTimeInterval: updateWindow,
			Method:             sim.SolverMethod(method),
			MaxKCutClasses:     maxKCutK,
			Seed:               seed,
			STPSolverPath:      stpSolverPath,
			STPWorkDir:         stpWorkDir,
		}

		logrus.Infof("starting simulation: %d jobs, %d GPUs, method=%s", len(jobs), numGPUs, method)
		s := sim.NewSimulator(cfg, jobs)
		metrics, err := s.Run()
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		inflation := metrics.ComputeJCTInflation(jobs)
		logrus.Infof("simulation complete. weighted JCT inflation: %.4f", inflation)
	},
}

func init() {
	runCmd.Flags().StringVar(&jobsPath, "jobs", "", "path to Jobs JSON workload file")
	runCmd.Flags().StringVar(&modelTablePath, "models", "", "path to model table YAML file")
	runCmd.Flags().IntVar(&numGPUs, "gpus", 3072, "total GPU pool size")
	runCmd.Flags().Int64Var(&updateWindow, "window", 50, "fixed simulation step window (ticks)")
	runCmd.Flags().StringVar(&method, "method", "", "shift-assignment solver: \"\", cassini, ours, or maxkcut")
	runCmd.Flags().IntVar(&maxKCutK, "maxkcut-k", 5, "number of partitions for the maxkcut solver")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "master RNG seed")
	runCmd.Flags().StringVar(&stpSolverPath, "stp-solver-dir", "", "directory containing the scipstp binary (ours solver only)")
	runCmd.Flags().StringVar(&stpWorkDir, "stp-workdir", "./tmp/stp", "scratch directory for .stp/.sol files")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	_ = runCmd.MarkFlagRequired("jobs")
	_ = runCmd.MarkFlagRequired("models")

	rootCmd.AddCommand(runCmd)
}
