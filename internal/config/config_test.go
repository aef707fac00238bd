package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/neilv/neilsearch/internal/registry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/jobs.db
  retention_days: 14
scan:
  source_timeout: 45s
  delay: 1s
  min_notify_score: 80
rate_limit:
  min_delay: 3s
  ats_overrides:
    careers: 10s
filters:
  title_keywords:
    - machine learning
  locations:
    - Remote
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/jobs.db" || cfg.Database.RetentionDays != 14 {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Scan.SourceTimeout != 45*time.Second || cfg.Scan.Delay != 1*time.Second {
		t.Errorf("Scan = %+v", cfg.Scan)
	}
	if cfg.Scan.MinNotifyScore != 80 {
		t.Errorf("MinNotifyScore = %v, want 80", cfg.Scan.MinNotifyScore)
	}
	if cfg.RateLimit.MinDelayFor("careers") != 10*time.Second {
		t.Errorf("MinDelayFor(careers) = %v, want 10s", cfg.RateLimit.MinDelayFor("careers"))
	}
	if cfg.RateLimit.MinDelayFor("greenhouse") != 3*time.Second {
		t.Errorf("MinDelayFor(greenhouse) = %v, want 3s", cfg.RateLimit.MinDelayFor("greenhouse"))
	}
	if len(cfg.Filters.TitleKeywords) != 1 || cfg.Filters.TitleKeywords[0] != "machine learning" {
		t.Errorf("TitleKeywords = %v", cfg.Filters.TitleKeywords)
	}
	if len(cfg.Filters.Locations) != 1 || cfg.Filters.Locations[0] != "Remote" {
		t.Errorf("Locations = %v", cfg.Filters.Locations)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Database.Path != def.Database.Path {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, def.Database.Path)
	}
	if cfg.Scan.SourceTimeout != def.Scan.SourceTimeout {
		t.Errorf("SourceTimeout = %v, want %v", cfg.Scan.SourceTimeout, def.Scan.SourceTimeout)
	}
	if cfg.Match.Weights != def.Match.Weights {
		t.Errorf("Weights = %+v, want defaults", cfg.Match.Weights)
	}
	if len(cfg.Match.Locations) != len(def.Match.Locations) {
		t.Errorf("Locations rules = %d, want %d", len(cfg.Match.Locations), len(def.Match.Locations))
	}
	if len(cfg.Filters.TitleKeywords) == 0 {
		t.Error("TitleKeywords should default to the built-in list")
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q, want log", cfg.Notification.Type)
	}
	if cfg.AI.BaseURL != defaultOpenAIBaseURL {
		t.Errorf("AI.BaseURL = %q", cfg.AI.BaseURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "scan: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("NEILSEARCH_TEST_KEY", "sk-test-123")
	cfg, err := Load(writeConfig(t, `
ai:
  enabled: true
  model: gpt-4o-mini
  api_key: ${NEILSEARCH_TEST_KEY}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "sk-test-123" {
		t.Errorf("AI.APIKey = %q, want expanded env value", cfg.AI.APIKey)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "zero source timeout",
			content: "scan:\n  source_timeout: 0s\n",
			wantErr: "source_timeout",
		},
		{
			name:    "notify score out of range",
			content: "scan:\n  min_notify_score: 150\n",
			wantErr: "min_notify_score",
		},
		{
			name:    "bad notification type",
			content: "notification:\n  type: carrier_pigeon\n",
			wantErr: "notification.type",
		},
		{
			name:    "slack without webhook",
			content: "notification:\n  type: slack\n",
			wantErr: "webhook_url",
		},
		{
			name:    "slack with non-slack webhook",
			content: "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n",
			wantErr: "hooks.slack.com",
		},
		{
			name:    "ai enabled without key",
			content: "ai:\n  enabled: true\n  model: gpt-4o-mini\n",
			wantErr: "ai.api_key",
		},
		{
			name:    "new company without board token",
			content: "companies:\n  - key: acme\n    name: Acme\n    ats: greenhouse\n",
			wantErr: "board_token",
		},
		{
			name:    "new company with unknown ats",
			content: "companies:\n  - key: acme\n    name: Acme\n    ats: workday\n",
			wantErr: "unknown ats",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load: expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestMergedCompanies_Override(t *testing.T) {
	cfg := Default()
	cfg.Companies = []CompanyConfig{
		{Key: "openai", Tier: 4}, // demote an existing entry, keep its ATS details
		{Key: "acme", Name: "Acme AI", ATS: "lever", BoardToken: "acme"},
		{Key: "anthropic", Disabled: true},
	}

	merged := cfg.MergedCompanies()
	byKey := make(map[string]registry.Company)
	for _, c := range merged {
		byKey[c.Key] = c
	}

	if _, ok := byKey["anthropic"]; ok {
		t.Error("disabled company should be removed")
	}

	oa, ok := byKey["openai"]
	if !ok {
		t.Fatal("openai missing from merge")
	}
	if oa.Tier != 4 {
		t.Errorf("openai tier = %d, want override 4", oa.Tier)
	}
	if oa.ATS != registry.ATSAshby || oa.BoardToken == "" {
		t.Errorf("openai should keep registry ATS details, got %+v", oa)
	}

	acme, ok := byKey["acme"]
	if !ok {
		t.Fatal("added company missing from merge")
	}
	if acme.ATS != registry.ATSLever || acme.Tier != 6 {
		t.Errorf("acme = %+v, want lever ATS and default tier 6", acme)
	}

	for i := 1; i < len(merged); i++ {
		if merged[i-1].Tier > merged[i].Tier {
			t.Fatalf("merged companies not in tier order at %d", i)
		}
	}
}
