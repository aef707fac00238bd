package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/neilv/neilsearch/internal/adapter"
	"github.com/neilv/neilsearch/internal/ai"
	"github.com/neilv/neilsearch/internal/browse"
	"github.com/neilv/neilsearch/internal/config"
	"github.com/neilv/neilsearch/internal/filter"
	"github.com/neilv/neilsearch/internal/model"
	"github.com/neilv/neilsearch/internal/notifier"
	"github.com/neilv/neilsearch/internal/ratelimit"
	"github.com/neilv/neilsearch/internal/registry"
	"github.com/neilv/neilsearch/internal/retry"
	"github.com/neilv/neilsearch/internal/scanner"
	"github.com/neilv/neilsearch/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "neilsearch",
	Short: "AI/ML job radar with explainable match scoring",
	Long: "NeilSearch scans AI/ML company job boards, scores each posting against\n" +
		"your resume profile, and keeps the results in a local database.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: NEILSEARCH_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > NEILSEARCH_CONFIG env var > "./config.yaml".
// A missing file is an error only when it was named explicitly; the implicit
// ./config.yaml falls back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("NEILSEARCH_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func openStore(cfg *config.Config, logger *slog.Logger) *store.SQLiteStore {
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	return s
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func setupAnalyzer(cfg *config.Config, logger *slog.Logger) browse.Analyzer {
	if !cfg.AI.Enabled {
		return ai.NewNopAnalyzer()
	}
	client := &http.Client{Timeout: cfg.AI.Timeout}
	provider := ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, client)
	return ai.NewFitAnalyzer(provider, ai.FitTemplate, logger)
}

// loadStoredProfile fetches the saved candidate profile, failing with a hint
// to run the profile command first.
func loadStoredProfile(s *store.SQLiteStore) (*model.StoredProfile, error) {
	sp, err := s.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if sp == nil {
		return nil, fmt.Errorf("no candidate profile saved yet — run `neilsearch profile <resume.txt>` first")
	}
	return sp, nil
}

// buildScanners wires one CompanyScanner per company: adapter, shared
// ATS-level rate limiting, retries, relevance filter, scorer, store, notifier.
func buildScanners(
	cfg *config.Config,
	companies []registry.Company,
	scorer scanner.Scorer,
	jobStore model.JobStore,
	n model.Notifier,
	httpClient *http.Client,
	logger *slog.Logger,
) []*scanner.CompanyScanner {
	limiter := ratelimit.NewATSLimiter(cfg.RateLimit.MinDelay, cfg.RateLimit.ATSOverrides)
	jobFilter := filter.New(cfg.Filters.TitleKeywords, cfg.Filters.Locations, cfg.Filters.ExcludeLocations)

	var scanners []*scanner.CompanyScanner
	for _, c := range companies {
		fetcher, err := adapter.ForCompany(c, httpClient)
		if err != nil {
			logger.Warn("skipping company", "company", c.Name, "error", err)
			continue
		}
		fetcher = ratelimit.NewRateLimitedFetcher(fetcher, limiter, string(c.ATS))
		fetcher = retry.New(fetcher, 2, 5*time.Second, logger)

		s := scanner.NewCompanyScanner(c.Name, fetcher, jobFilter, scorer, jobStore, n, cfg.Scan.MinNotifyScore, logger)
		scanners = append(scanners, s)
		logger.Debug("registered company", "name", c.Name, "ats", c.ATS, "tier", c.Tier)
	}
	return scanners
}
