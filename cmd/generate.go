package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clossim/clossim/sim"
	"github.com/clossim/clossim/sim/workload"
)

var (
	genJobCount    int
	genArrivalRate float64
	genOutPath     string
	genModels      []string
	genSeed        int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic Jobs JSON workload",
	Run: func(cmd *cobra.Command, args []string) {
		if len(genModels) == 0 {
			logrus.Fatalf("at least one --model flag is required")
		}
		cfg := workload.GenerateConfig{
			JobCount:     genJobCount,
			ArrivalRate:  genArrivalRate,
			Durations:    []int64{100, 500, 1000, 5000},
			CDFDurations: []float64{0.4, 0.7, 0.9, 1.0},
			Sizes:        []int{1, 2, 4, 8, 16, 32},
			CDFSizes:     []float64{0.3, 0.5, 0.7, 0.85, 0.95, 1.0},
			ModelTypes:   genModels,
		}
		rng := sim.NewPartitionedRNG(genSeed)
		jobs := workload.Generate(cfg, rng)
		if err := workload.SaveJobs(genOutPath, jobs); err != nil {
			logrus.Fatalf("saving jobs: %v", err)
		}
		logrus.Infof("wrote %d jobs to %s", len(jobs), genOutPath)
	},
}

func init() {
	generateCmd.Flags().IntVar(&genJobCount, "count", 100, "number of jobs to generate")
	generateCmd.Flags().Float64Var(&genArrivalRate, "rate", 50, "mean interarrival ticks")
	generateCmd.Flags().StringVar(&genOutPath, "out", "jobs.json", "output Jobs JSON path")
	generateCmd.Flags().StringArrayVar(&genModels, "model", nil, "model_type name available to generated jobs (repeatable)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "master RNG seed")

	rootCmd.AddCommand(generateCmd)
}
