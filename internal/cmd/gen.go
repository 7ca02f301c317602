package cmd

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mthomas46/jirassic-pack-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var (
	genOut     string
	genBatches int
	genEvents  int
	genSeed    int64
)

var genFeatures = []string{
	"create_issue", "update_issue", "summarize_tickets",
	"gather_metrics", "bulk_operations", "sprint_board_management",
}

var genUsers = []string{"alice", "bob", "carol", "dave"}

var genErrors = []string{
	"Jira API returned 500",
	"request timed out",
	"invalid issue key",
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a sample log file in the recognized schema",
	Long: `Generate sample JSON Lines log data so the analytics have something
to chew on. Each batch run shares one correlation ID; a fraction of the
events are errors. Output rotates like a real application log.`,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVar(&genOut, "out", "", "output log file (default: the configured log file)")
	genCmd.Flags().IntVar(&genBatches, "batches", 10, "number of batch runs")
	genCmd.Flags().IntVar(&genEvents, "events", 20, "events per batch run")
	genCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = nondeterministic)")
}

func runGen(cmd *cobra.Command, args []string) error {
	out := genOut
	if out == "" {
		out = resolveLogFile()
	}

	rng := rand.New(rand.NewSource(genSeed))
	if genSeed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	w := logging.New(out)
	defer w.Close()

	total := 0
	for b := 0; b < genBatches; b++ {
		cid := uuid.NewString()
		feature := genFeatures[rng.Intn(len(genFeatures))]
		user := genUsers[rng.Intn(len(genUsers))]

		w.Event("INFO", feature, user, cid, fmt.Sprintf("Starting %s batch", feature))
		for i := 0; i < genEvents; i++ {
			if rng.Float64() < 0.15 {
				w.Event("ERROR", feature, user, cid, genErrors[rng.Intn(len(genErrors))])
			} else {
				w.Event("INFO", feature, user, cid, fmt.Sprintf("Processed item %d", i+1))
			}
			total++
		}
		w.Event("INFO", feature, user, cid, fmt.Sprintf("Completed %s batch", feature))
		total += 2
	}

	fmt.Printf("Wrote %d entries across %d batches to %s\n", total, genBatches, out)
	return nil
}
