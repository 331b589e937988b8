package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakmund/dirtrail/config"
	"github.com/oakmund/dirtrail/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past runs recorded in the local history store",
	RunE:  showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	repo, err := db.NewClient(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer repo.Close()

	if err := repo.CreateRunsTable(); err != nil {
		return fmt.Errorf("preparing run history: %w", err)
	}

	runs, err := repo.GetRuns()
	if err != nil {
		return fmt.Errorf("reading run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTATUS\tROOT\tRECIPIENT\tENTRIES\tERROR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.StartedAt.Format(time.DateTime), run.Status, run.Root,
			run.Recipient, run.Entries, run.Error)
	}
	w.Flush()
	return nil
}
