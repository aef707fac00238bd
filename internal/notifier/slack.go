package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/neilv/neilsearch/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier sends match alerts to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts each match to Slack via webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends each job as a separate Slack message using Block Kit.
// Returns an error only if ALL messages fail. Individual failures are logged.
func (s *SlackNotifier) Notify(jobs []model.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	failures := 0
	for i, j := range jobs {
		if i > 0 {
			time.Sleep(500 * time.Millisecond)
		}

		if err := s.sendMessage(j); err != nil {
			s.logger.Error("slack notification failed", "company", j.Company, "title", j.Title, "error", err)
			failures++
		}
	}

	sent := len(jobs) - failures
	if failures == len(jobs) {
		return fmt.Errorf("all %d slack notifications failed", failures)
	}
	s.logger.Info("slack notifications complete", "sent", sent, "failed", failures)
	return nil
}

func (s *SlackNotifier) sendMessage(j model.Job) error {
	payload := buildPayload(j)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		secs, _ := strconv.Atoi(retryAfter)
		if secs <= 0 {
			secs = 1
		}
		s.logger.Warn("slack rate limited, retrying", "retry_after_secs", secs)
		time.Sleep(time.Duration(secs) * time.Second)

		resp2, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("post to slack (retry): %w", err)
		}
		defer resp2.Body.Close()

		if resp2.StatusCode != http.StatusOK {
			return fmt.Errorf("slack returned %d on retry", resp2.StatusCode)
		}
		s.logger.Info("slack message sent", "company", j.Company, "title", j.Title, "retried", true)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Info("slack message sent", "company", j.Company, "title", j.Title)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Fields   []slackText    `json:"fields,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

// SendTestMessage sends a dummy match notification to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	now := time.Now()
	testJob := model.Job{
		ID:        "test-001",
		Company:   "NeilSearch Test",
		Title:     "Test Notification — Integration Verified",
		Location:  "Everywhere",
		URL:       "https://github.com/neilv/neilsearch",
		PostedAt:  &now,
		ScrapedAt: now,
		Source:    "test",
		Match: &model.MatchResult{
			Score:         100,
			SkillsMatched: []string{"python", "pytorch"},
			Explanation:   "Excellent match! Test message from the notify command.",
		},
	}
	return n.Notify([]model.Job{testJob})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildPayload(j model.Job) slackPayload {
	postedText := "Just scanned"
	if j.PostedAt != nil {
		pst, err := time.LoadLocation("America/Los_Angeles")
		if err == nil {
			postedText = j.PostedAt.In(pst).Format(time.RFC1123)
		} else {
			postedText = j.PostedAt.Format(time.RFC1123)
		}
	}

	company := capitalize(j.Company)
	source := capitalize(j.Source)

	header := company + ": " + j.Title
	if j.Match != nil {
		header = fmt.Sprintf("%.0f%% — %s: %s", j.Match.Score, company, j.Title)
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "🎯 " + header},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Company:*\n" + company},
				{Type: "mrkdwn", Text: "*Location:*\n" + j.Location},
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Posted:*\n" + postedText},
				{Type: "mrkdwn", Text: "*Source:*\n" + source},
			},
		},
	}

	if j.Match != nil {
		matchText := "*Why:* " + j.Match.Explanation
		if len(j.Match.SkillsMatched) > 0 {
			matchText += "\n*Skills hit:* " + strings.Join(j.Match.SkillsMatched, ", ")
		}
		if len(j.Match.SkillsMissing) > 0 {
			matchText += "\n*Skills to brush up:* " + strings.Join(j.Match.SkillsMissing, ", ")
		}
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: matchText},
		})
	}

	blocks = append(blocks,
		slackBlock{
			Type: "actions",
			Elements: []slackElement{
				{
					Type:  "button",
					Text:  slackText{Type: "plain_text", Text: "Apply Now"},
					URL:   j.URL,
					Style: "primary",
				},
			},
		},
		slackBlock{Type: "divider"},
	)

	return slackPayload{Blocks: blocks}
}
