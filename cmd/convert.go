package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clossim/clossim/sim"
	"github.com/clossim/clossim/sim/netsim"
	"github.com/clossim/clossim/sim/topology"
	"github.com/clossim/clossim/sim/workload"
)

var (
	convertJobsPath   string
	convertModelsPath string
	convertJobName    string
	convertOutDir     string
)

var convertCmd = &cobra.Command{
	Use:   "netsim",
	Short: "Emit one job's RDMA phase trace in NetSim input format",
	Run: func(cmd *cobra.Command, args []string) {
		table, err := sim.LoadModelTable(convertModelsPath)
		if err != nil {
			logrus.Fatalf("loading model table: %v", err)
		}
		jobs, err := workload.LoadJobs(convertJobsPath)
		if err != nil {
			logrus.Fatalf("loading jobs: %v", err)
		}
		job, ok := jobs[convertJobName]
		if !ok {
			logrus.Fatalf("job %q not found", convertJobName)
		}
		model, ok := table[job.ModelType]
		if !ok {
			logrus.Fatalf("unknown model_type %q", job.ModelType)
		}
		if job.Size <= 8 {
			logrus.Infof("job %s has size %d (intra-server); no NetSim trace emitted", convertJobName, job.Size)
			return
		}

		topo := topology.New(topology.Config(sim.DefaultTopologyConfig()))
		gpus := make([]int, job.Size)
		for i := range gpus {
			gpus[i] = i
		}
		phases := topology.JobRDMAOperateTuples(topo, gpus, model.MsgLen)

		for i, groupPhases := range phases {
			if err := netsim.WritePhases(convertOutDir, convertJobName, i, job.ArrivalTime, groupPhases); err != nil {
				logrus.Fatalf("writing netsim file: %v", err)
			}
		}
		logrus.Infof("wrote netsim trace for job %s to %s/%s", convertJobName, convertOutDir, convertJobName)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertJobsPath, "jobs", "", "path to Jobs JSON workload file")
	convertCmd.Flags().StringVar(&convertModelsPath, "models", "", "path to model table YAML file")
	convertCmd.Flags().StringVar(&convertJobName, "job", "", "job name to emit")
	convertCmd.Flags().StringVar(&convertOutDir, "out", ".", "output directory")
	_ = convertCmd.MarkFlagRequired("jobs")
	_ = convertCmd.MarkFlagRequired("models")
	_ = convertCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(convertCmd)
}
