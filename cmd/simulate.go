package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teeterq/teeter/core/sched"
	"github.com/teeterq/teeter/infra/logger"
	"github.com/teeterq/teeter/simulator"
)

var (
	simRequests  int
	simSyncRatio int
	simSyncFrac  float64
	simSeqProb   float64
	simSeed      int64
	simPullEvery int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a synthetic workload through the scheduler and print a summary",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simRequests, "requests", 1000, "number of requests to generate")
	simulateCmd.Flags().IntVar(&simSyncRatio, "sync-ratio", sched.DefaultSyncRatio, "sync requests per batch")
	simulateCmd.Flags().Float64Var(&simSyncFrac, "sync-fraction", 0.7, "share of sync requests")
	simulateCmd.Flags().Float64Var(&simSeqProb, "sequential-prob", 0.3, "probability of sequential follow-up requests")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "workload seed, 0 for random")
	simulateCmd.Flags().IntVar(&simPullEvery, "pull-every", 4, "dispatch a batch after this many arrivals")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	runner, err := simulator.NewRunner(
		sched.Config{SyncRatio: simSyncRatio},
		simulator.WorkloadConfig{
			Requests:       simRequests,
			SyncFraction:   simSyncFrac,
			SequentialProb: simSeqProb,
			Seed:           simSeed,
		},
		simulator.DeviceConfig{DispatchEvery: simPullEvery},
		logger.New("simulate"),
		nil,
	)
	if err != nil {
		return err
	}
	sum, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sum)
	return nil
}
