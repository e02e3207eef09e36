package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/history"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	historyOutputDir string
	historyPrune     bool
	historyKeep      int
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "List previously written manifests",
	Long: `Show the record of manifests written by generate, newest first.

Examples:
  stevedore history
  stevedore history -o out/           # history for a different output dir
  stevedore history --prune           # drop records beyond the retention limit
  stevedore history --prune --keep 5`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyOutputDir, "output-dir", "o", manifest.DefaultOutputDir, "Output directory the history belongs to")
	historyCmd.Flags().BoolVar(&historyPrune, "prune", false, "Drop records beyond the retention limit")
	historyCmd.Flags().IntVar(&historyKeep, "keep", history.DefaultKeep, "Records to keep when pruning")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	if historyPrune {
		removed, err := history.Prune(historyOutputDir, historyKeep)
		if err != nil {
			ui.Fatal("Prune history: %v", err)
		}
		ui.Success("Pruned %d record(s)", removed)
		return
	}

	records, err := history.List(historyOutputDir)
	if err != nil {
		ui.Fatal("Read history: %v", err)
	}

	if len(records) == 0 {
		ui.Info("No manifests written yet.")
		return
	}

	ui.Header("%-10s %-20s %-30s %s", "ID", "WRITTEN", "SERVICE", "PATH")
	for _, rec := range records {
		fmt.Printf("%-10s %-20s %-30s %s\n",
			rec.ID,
			rec.Written.Format("2006-01-02 15:04:05"),
			rec.Service+" ("+rec.Framework+")",
			rec.Path)
	}
}
