package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neilv/neilsearch/internal/model"
)

var (
	exportOut      string
	exportMinScore float64
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored jobs to CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "jobs.csv", "output CSV path")
	exportCmd.Flags().Float64Var(&exportMinScore, "min-score", 0, "only export jobs at or above this score")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s := openStore(cfg, logger)
	defer s.Close()

	q := model.JobQuery{}
	if exportMinScore > 0 {
		q.MinScore = &exportMinScore
	}
	jobs, err := s.Jobs(q)
	if err != nil {
		logger.Error("failed to read jobs", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		logger.Error("failed to create output file", "path", exportOut, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"company", "title", "location", "score", "skills_matched", "skills_missing", "url", "posted_at", "scraped_at"}
	if err := w.Write(header); err != nil {
		logger.Error("csv write failed", "error", err)
		os.Exit(1)
	}

	for _, j := range jobs {
		score := ""
		matched := ""
		missing := ""
		if j.Match != nil {
			score = strconv.FormatFloat(j.Match.Score, 'f', 1, 64)
			matched = strings.Join(j.Match.SkillsMatched, "; ")
			missing = strings.Join(j.Match.SkillsMissing, "; ")
		}
		posted := ""
		if j.PostedAt != nil {
			posted = j.PostedAt.Format("2006-01-02")
		}
		row := []string{
			j.Company, j.Title, j.Location, score, matched, missing,
			j.URL, posted, j.ScrapedAt.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			logger.Error("csv write failed", "error", err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("csv flush failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d jobs to %s\n", len(jobs), exportOut)
	return nil
}
