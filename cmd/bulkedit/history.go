package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/history"
)

var (
	historyLimit int
	historyClear bool

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show applied batch history",
		Long:  `List the journal of applied rename and remove batches, newest first.`,
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum records to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "drop all journal records")
	rootCmd.AddCommand(historyCmd)
}

// runHistory lists or clears the batch journal.
func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	j, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer j.Close()

	if historyClear {
		if err := j.Clear(); err != nil {
			return err
		}
		printInfo("history: journal cleared")
		return nil
	}

	if err := j.Prune(cfg.History.RetentionDays); err != nil {
		printWarn("history: prune failed: %v", err)
	}

	records, err := j.List(historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printInfo("history: no recorded batches")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tOPERATION\tAPPLIED\tFAILED\tFREED")
	for _, rec := range records {
		applied := len(rec.Renamed) + len(rec.Removed)
		freed := ""
		if rec.BytesFreed > 0 {
			freed = humanize.IBytes(uint64(rec.BytesFreed))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			humanize.Time(rec.Timestamp), rec.Operation, applied, rec.Failed, freed)
	}
	return tw.Flush()
}
