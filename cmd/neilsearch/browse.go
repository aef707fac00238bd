package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/neilv/neilsearch/internal/browse"
	"github.com/neilv/neilsearch/internal/model"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored jobs interactively (TUI)",
	Long:  "Shows the company picker, then a split-pane view of all jobs next to the high matches.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
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

	jobs, err := s.Jobs(model.JobQuery{})
	if err != nil {
		logger.Error("failed to read jobs", "error", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs stored yet — run `neilsearch scan` first.")
		return nil
	}

	// TUI output and log lines don't mix; keep the analyzer quiet.
	silent := slog.New(slog.NewTextHandler(io.Discard, nil))
	analyzer := setupAnalyzer(cfg, silent)

	entries := companyEntries(jobs)
	for {
		choice, err := browse.RunCompanyPicker(entries)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if choice < 0 {
			return nil
		}

		selected := jobs
		if choice > 0 { // entry 0 is "All companies"
			company := entries[choice].Company
			selected = nil
			for _, j := range jobs {
				if j.Company == company {
					selected = append(selected, j)
				}
			}
		}

		wantQuit, err := browse.Run(selected, sp.Profile, analyzer)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
			return nil
		}
		if wantQuit {
			return nil
		}
		// else: loop → back to picker
	}
}

// companyEntries builds the picker list: "All companies" first, then each
// company with its job count, alphabetically.
func companyEntries(jobs []model.Job) []model.CompanyCount {
	counts := make(map[string]int)
	for _, j := range jobs {
		counts[j.Company]++
	}
	entries := make([]model.CompanyCount, 0, len(counts)+1)
	entries = append(entries, model.CompanyCount{Company: "All companies", Count: len(jobs)})
	for c, n := range counts {
		entries = append(entries, model.CompanyCount{Company: c, Count: n})
	}
	sort.Slice(entries[1:], func(i, j int) bool {
		return entries[i+1].Company < entries[j+1].Company
	})
	return entries
}
