package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print stored-job statistics",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s := openStore(cfg, logger)
	defer s.Close()

	stats, err := s.Stats()
	if err != nil {
		logger.Error("failed to read stats", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Jobs stored:        %d\n", stats.TotalJobs)
	fmt.Printf("Average score:      %.1f\n", stats.AvgScore)
	fmt.Printf("High matches (80+): %d\n", stats.HighMatches)
	fmt.Printf("Fresh-grad fits:    %d\n", stats.FreshGradFit)

	if stats.LastScan != nil {
		ls := stats.LastScan
		fmt.Printf("Last scan:          %s (%d jobs from %d sources in %s)\n",
			ls.ScanTime.Local().Format("2006-01-02 15:04"),
			ls.JobsFound, ls.SourcesScanned, ls.Duration.Round(0))
	}

	if len(stats.ByCompany) > 0 {
		fmt.Println("\nTop companies:")
		for _, cc := range stats.ByCompany {
			fmt.Printf("  %-28s %d\n", cc.Company, cc.Count)
		}
	}
	return nil
}
