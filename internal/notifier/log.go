package notifier

import (
	"log/slog"

	"github.com/neilv/neilsearch/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes high-scoring matches to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each match via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each job with company, title, location, URL, and its match
// score and explanation when scored. Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(jobs []model.Job) error {
	for _, j := range jobs {
		args := []any{"company", j.Company, "title", j.Title, "location", j.Location, "url", j.URL}
		if j.Match != nil {
			args = append(args, "score", j.Match.Score, "why", j.Match.Explanation)
		}
		if j.PostedAt != nil {
			args = append(args, "posted_at", *j.PostedAt)
		}
		n.logger.Info("job match", args...)
	}
	return nil
}
