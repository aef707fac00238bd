package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neilv/neilsearch/internal/browse"
	"github.com/neilv/neilsearch/internal/dashboard"
	"github.com/neilv/neilsearch/internal/model"
)

var (
	dashboardOut  string
	dashboardOpen bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the HTML dashboard",
	Long:  "Renders the stored jobs and stats into a static HTML page.",
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardOut, "output", "o", "", "output path (default: dashboard.output from config)")
	dashboardCmd.Flags().BoolVar(&dashboardOpen, "open", false, "open the rendered page in the default browser")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s := openStore(cfg, logger)
	defer s.Close()

	jobs, err := s.Jobs(model.JobQuery{})
	if err != nil {
		logger.Error("failed to read jobs", "error", err)
		os.Exit(1)
	}
	stats, err := s.Stats()
	if err != nil {
		logger.Error("failed to read stats", "error", err)
		os.Exit(1)
	}

	out := dashboardOut
	if out == "" {
		out = cfg.Dashboard.Output
	}

	r := dashboard.New(cfg.Dashboard.Title)
	if err := r.RenderFile(out, jobs, stats); err != nil {
		logger.Error("failed to render dashboard", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Dashboard with %d jobs written to %s\n", len(jobs), out)

	if dashboardOpen {
		abs, err := filepath.Abs(out)
		if err != nil {
			abs = out
		}
		browse.OpenURL("file://" + abs)
	}
	return nil
}
