package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/neilv/neilsearch/internal/browse"
	"github.com/neilv/neilsearch/internal/match"
	"github.com/neilv/neilsearch/internal/model"
	"github.com/neilv/neilsearch/internal/registry"
	"github.com/neilv/neilsearch/internal/scanner"
	"github.com/neilv/neilsearch/internal/vocab"
)

var (
	scanCompanies []string
	scanTier      int
	scanTop       int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan company boards and score new postings",
	Long: "Fetches postings from each company's board, scores them against the\n" +
		"saved profile, and stores anything not seen before.",
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanCompanies, "companies", nil, "comma-separated company keys to scan (default: all)")
	scanCmd.Flags().IntVar(&scanTier, "tier", 0, "scan only companies of this tier")
	scanCmd.Flags().IntVar(&scanTop, "top", 0, "scan only the first N companies in tier order")
	rootCmd.AddCommand(scanCmd)
}

// selectCompanies applies the --companies/--tier/--top narrowing to the
// merged company list.
func selectCompanies(all []registry.Company) []registry.Company {
	out := all
	if len(scanCompanies) > 0 {
		want := make(map[string]bool, len(scanCompanies))
		for _, k := range scanCompanies {
			want[strings.ToLower(strings.TrimSpace(k))] = true
		}
		var picked []registry.Company
		for _, c := range out {
			if want[c.Key] {
				picked = append(picked, c)
			}
		}
		out = picked
	}
	if scanTier > 0 {
		var picked []registry.Company
		for _, c := range out {
			if c.Tier == scanTier {
				picked = append(picked, c)
			}
		}
		out = picked
	}
	if scanTop > 0 && scanTop < len(out) {
		out = out[:scanTop]
	}
	return out
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s := openStore(cfg, logger)
	defer s.Close()

	sp, err := loadStoredProfile(s)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	companies := selectCompanies(cfg.MergedCompanies())
	if len(companies) == 0 {
		logger.Error("no companies selected to scan")
		os.Exit(1)
	}

	logger.Info("starting scan",
		"companies", len(companies),
		"profile_skills", len(sp.Profile.Skills),
		"source_timeout", cfg.Scan.SourceTimeout.String(),
	)

	httpClient := &http.Client{Timeout: cfg.Scan.SourceTimeout}
	n := setupNotifier(cfg, httpClient, logger)
	matcher := match.New(sp.Profile, cfg.Match.Weights, cfg.Match.Locations, vocab.Default())

	scanners := buildScanners(cfg, companies, matcher, s, n, httpClient, logger)
	if len(scanners) == 0 {
		logger.Error("no usable companies to scan")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := scanner.NewRunner(scanners, cfg.Scan.Delay, cfg.Scan.SourceTimeout, s, logger)
	start := time.Now()
	total, err := runner.Run(ctx)
	if err != nil {
		logger.Warn("scan interrupted", "error", err)
	}

	logger.Info("scan complete",
		"fetched", total.Fetched,
		"matched", total.Matched,
		"new", total.New,
		"duplicates", total.Duplicates,
		"took", time.Since(start).Round(time.Second).String(),
	)

	printTopMatches(s, logger)
	return nil
}

// printTopMatches shows the best-scoring jobs from the last day of scans.
func printTopMatches(s model.JobStore, logger *slog.Logger) {
	minScore := float64(browse.HighMatchScore)
	jobs, err := s.Jobs(model.JobQuery{MinScore: &minScore, Days: 1, Limit: 10})
	if err != nil {
		logger.Warn("failed to read top matches", "error", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	fmt.Printf("\nTop matches:\n")
	for _, j := range jobs {
		score := "  --"
		if j.Match != nil {
			score = fmt.Sprintf("%4.0f", j.Match.Score)
		}
		fmt.Printf("  %s  %-28s %s\n", score, truncate(j.Company, 28), truncate(j.Title, 60))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
