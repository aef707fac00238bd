package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var cleanDays int

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete jobs older than the retention window",
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&cleanDays, "days", 0, "retention in days (default: database.retention_days from config)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	days := cleanDays
	if days <= 0 {
		days = cfg.Database.RetentionDays
	}

	s := openStore(cfg, logger)
	defer s.Close()

	deleted, err := s.Clean(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		logger.Error("clean failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d jobs older than %d days\n", deleted, days)
	return nil
}
