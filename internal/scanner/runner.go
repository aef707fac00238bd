package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

// Runner executes a set of company scanners sequentially with a polite pause
// between companies, then records the scan in the store. One Run call is one
// scan; scheduling repeated scans is the caller's business (cron, CI).
type Runner struct {
	scanners      []*CompanyScanner
	delay         time.Duration
	sourceTimeout time.Duration
	store         model.JobStore
	logger        *slog.Logger
}

// NewRunner creates a runner. delay is the pause between companies;
// sourceTimeout bounds each company's scan.
func NewRunner(scanners []*CompanyScanner, delay, sourceTimeout time.Duration, store model.JobStore, logger *slog.Logger) *Runner {
	return &Runner{
		scanners:      scanners,
		delay:         delay,
		sourceTimeout: sourceTimeout,
		store:         store,
		logger:        logger,
	}
}

// Run scans every company and records the aggregate. A failing company is
// logged and skipped; the scan continues with the rest.
func (r *Runner) Run(ctx context.Context) (ScanResult, error) {
	start := time.Now()
	r.logger.Info("starting scan", "companies", len(r.scanners))

	var total ScanResult
	scanned := 0
	for i, s := range r.scanners {
		if ctx.Err() != nil {
			break
		}

		res, err := r.scanOne(ctx, s)
		if err != nil {
			r.logger.Error("company scan failed", "company", s.Name, "error", err)
		} else {
			scanned++
			total.Fetched += res.Fetched
			total.Matched += res.Matched
			total.New += res.New
			total.Duplicates += res.Duplicates
		}

		if r.delay > 0 && i < len(r.scanners)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(r.delay):
			}
		}
	}

	record := model.ScanRecord{
		ScanTime:       start.UTC(),
		JobsFound:      total.New,
		SourcesScanned: scanned,
		Duration:       time.Since(start),
	}
	if err := r.store.RecordScan(record); err != nil {
		return total, err
	}

	r.logger.Info("scan complete",
		"sources", scanned,
		"fetched", total.Fetched,
		"new", total.New,
		"duration", record.Duration.Round(time.Millisecond).String(),
	)

	return total, ctx.Err()
}

func (r *Runner) scanOne(ctx context.Context, s *CompanyScanner) (ScanResult, error) {
	if r.sourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.sourceTimeout)
		defer cancel()
	}
	return s.Scan(ctx)
}
