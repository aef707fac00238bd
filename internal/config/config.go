// Package config loads the YAML configuration file and folds it over the
// built-in defaults. Durations are written as Go duration strings in the
// file; environment variable references are expanded before parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/neilv/neilsearch/internal/filter"
	"github.com/neilv/neilsearch/internal/match"
	"github.com/neilv/neilsearch/internal/registry"
)

// Config is the root configuration for the NeilSearch scanner.
type Config struct {
	Database     DatabaseConfig
	Scan         ScanConfig
	RateLimit    RateLimitConfig
	Match        MatchConfig
	Filters      FilterConfig
	Notification NotificationConfig
	Companies    []CompanyConfig
	AI           AIConfig
	Dashboard    DashboardConfig
}

// DatabaseConfig locates the SQLite file and controls retention.
type DatabaseConfig struct {
	Path          string
	RetentionDays int // jobs older than this are removed by the clean command
}

// ScanConfig controls how a scan run walks the company list.
type ScanConfig struct {
	SourceTimeout  time.Duration // per-company fetch budget
	Delay          time.Duration // pause between companies
	MinNotifyScore float64       // matches at or above this score are sent to the notifier
}

// RateLimitConfig controls ATS-level rate limiting.
type RateLimitConfig struct {
	MinDelay     time.Duration            // minimum gap between requests to the same ATS
	ATSOverrides map[string]time.Duration // per-ATS overrides, keyed by ATS name
}

// MinDelayFor returns the configured delay for the given ATS, falling back to MinDelay.
func (r RateLimitConfig) MinDelayFor(ats string) time.Duration {
	if d, ok := r.ATSOverrides[ats]; ok {
		return d
	}
	return r.MinDelay
}

// MatchConfig overrides the scoring weights and location bonus table.
type MatchConfig struct {
	Weights   match.Weights
	Locations []match.LocationRule
}

// FilterConfig holds keyword and location filter settings.
type FilterConfig struct {
	TitleKeywords    []string
	Locations        []string
	ExcludeLocations []string
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// CompanyConfig is a config-file company entry. Entries are merged over the
// built-in registry by key: an entry with a known key overrides that entry,
// an unknown key adds a new company, and Disabled drops it from scans.
type CompanyConfig struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name"`
	ATS        string `yaml:"ats"`
	BoardToken string `yaml:"board_token"`
	CareersURL string `yaml:"careers_url"`
	Tier       int    `yaml:"tier"`
	Disabled   bool   `yaml:"disabled"`
}

// AIConfig controls the optional OpenAI fit-analysis layer.
type AIConfig struct {
	Enabled bool
	BaseURL string        // defaults to https://api.openai.com/v1
	Model   string        // OpenAI model identifier, e.g. "gpt-4o-mini"
	APIKey  string        // expanded from env var by Load
	Timeout time.Duration // per-request timeout
}

// DashboardConfig controls the static HTML dashboard.
type DashboardConfig struct {
	Output string // path the rendered dashboard is written to
	Title  string
}

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Database     rawDatabaseConfig  `yaml:"database"`
	Scan         rawScanConfig      `yaml:"scan"`
	RateLimit    rawRateLimitConfig `yaml:"rate_limit"`
	Match        rawMatchConfig     `yaml:"match"`
	Filters      rawFilterConfig    `yaml:"filters"`
	Notification NotificationConfig `yaml:"notification"`
	Companies    []CompanyConfig    `yaml:"companies"`
	AI           rawAIConfig        `yaml:"ai"`
	Dashboard    rawDashboardConfig `yaml:"dashboard"`
}

type rawDatabaseConfig struct {
	Path          string `yaml:"path"`
	RetentionDays *int   `yaml:"retention_days"`
}

type rawScanConfig struct {
	SourceTimeout  string   `yaml:"source_timeout"`
	Delay          string   `yaml:"delay"`
	MinNotifyScore *float64 `yaml:"min_notify_score"`
}

type rawRateLimitConfig struct {
	MinDelay     string            `yaml:"min_delay"`
	ATSOverrides map[string]string `yaml:"ats_overrides"`
}

type rawMatchConfig struct {
	Weights   *match.Weights       `yaml:"weights"`
	Locations []match.LocationRule `yaml:"locations"`
}

type rawFilterConfig struct {
	TitleKeywords    []string `yaml:"title_keywords"`
	Locations        []string `yaml:"locations"`
	ExcludeLocations []string `yaml:"exclude_locations"`
}

type rawAIConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

type rawDashboardConfig struct {
	Output string `yaml:"output"`
	Title  string `yaml:"title"`
}

// Default returns the configuration used when no config file exists: the
// built-in registry, default weights and filters, a local SQLite file, and
// the log notifier.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:          "neilsearch.db",
			RetentionDays: 30,
		},
		Scan: ScanConfig{
			SourceTimeout:  30 * time.Second,
			Delay:          2 * time.Second,
			MinNotifyScore: 70,
		},
		RateLimit: RateLimitConfig{
			MinDelay:     2 * time.Second,
			ATSOverrides: map[string]time.Duration{},
		},
		Match: MatchConfig{
			Weights:   match.DefaultWeights(),
			Locations: match.DefaultLocationRules(),
		},
		Filters: FilterConfig{
			TitleKeywords:    filter.DefaultTitleKeywords(),
			ExcludeLocations: filter.DefaultExcludedLocations(),
		},
		Notification: NotificationConfig{Type: "log"},
		AI: AIConfig{
			BaseURL: defaultOpenAIBaseURL,
			Timeout: 30 * time.Second,
		},
		Dashboard: DashboardConfig{
			Output: "dashboard.html",
			Title:  "NeilSearch",
		},
	}
}

// Load reads and parses the YAML config file at path, applies defaults,
// validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Database.Path != "" {
		cfg.Database.Path = raw.Database.Path
	}
	if raw.Database.RetentionDays != nil {
		cfg.Database.RetentionDays = *raw.Database.RetentionDays
	}

	if raw.Scan.SourceTimeout != "" {
		cfg.Scan.SourceTimeout, err = time.ParseDuration(raw.Scan.SourceTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse scan.source_timeout %q: %w", raw.Scan.SourceTimeout, err)
		}
	}
	if raw.Scan.Delay != "" {
		cfg.Scan.Delay, err = time.ParseDuration(raw.Scan.Delay)
		if err != nil {
			return nil, fmt.Errorf("parse scan.delay %q: %w", raw.Scan.Delay, err)
		}
	}
	if raw.Scan.MinNotifyScore != nil {
		cfg.Scan.MinNotifyScore = *raw.Scan.MinNotifyScore
	}

	if raw.RateLimit.MinDelay != "" {
		cfg.RateLimit.MinDelay, err = time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
	}
	for ats, s := range raw.RateLimit.ATSOverrides {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.ats_overrides[%q]: %w", ats, err)
		}
		cfg.RateLimit.ATSOverrides[ats] = d
	}

	if raw.Match.Weights != nil {
		cfg.Match.Weights = *raw.Match.Weights
	}
	if raw.Match.Locations != nil {
		cfg.Match.Locations = raw.Match.Locations
	}

	if raw.Filters.TitleKeywords != nil {
		cfg.Filters.TitleKeywords = raw.Filters.TitleKeywords
	}
	if raw.Filters.Locations != nil {
		cfg.Filters.Locations = raw.Filters.Locations
	}
	if raw.Filters.ExcludeLocations != nil {
		cfg.Filters.ExcludeLocations = raw.Filters.ExcludeLocations
	}

	if raw.Notification.Type != "" {
		cfg.Notification = raw.Notification
	}

	cfg.Companies = raw.Companies

	cfg.AI.Enabled = raw.AI.Enabled
	if raw.AI.BaseURL != "" {
		cfg.AI.BaseURL = raw.AI.BaseURL
	}
	cfg.AI.Model = raw.AI.Model
	cfg.AI.APIKey = raw.AI.APIKey
	if raw.AI.Timeout != "" {
		cfg.AI.Timeout, err = time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
	}

	if raw.Dashboard.Output != "" {
		cfg.Dashboard.Output = raw.Dashboard.Output
	}
	if raw.Dashboard.Title != "" {
		cfg.Dashboard.Title = raw.Dashboard.Title
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MergedCompanies folds the config-file company entries over the built-in
// registry and returns the result sorted by tier. Overrides replace the
// registry entry with the same key; unknown keys add new companies; entries
// marked disabled are removed.
func (c *Config) MergedCompanies() []registry.Company {
	merged := make(map[string]registry.Company)
	for _, rc := range registry.All() {
		merged[rc.Key] = rc
	}
	for _, cc := range c.Companies {
		if cc.Disabled {
			delete(merged, cc.Key)
			continue
		}
		entry := registry.Company{
			Key:        cc.Key,
			Name:       cc.Name,
			ATS:        registry.ATS(cc.ATS),
			BoardToken: cc.BoardToken,
			CareersURL: cc.CareersURL,
			Tier:       cc.Tier,
		}
		if prev, ok := merged[cc.Key]; ok {
			if entry.Name == "" {
				entry.Name = prev.Name
			}
			if entry.ATS == "" {
				entry.ATS = prev.ATS
			}
			if entry.BoardToken == "" {
				entry.BoardToken = prev.BoardToken
			}
			if entry.CareersURL == "" {
				entry.CareersURL = prev.CareersURL
			}
			if entry.Tier == 0 {
				entry.Tier = prev.Tier
			}
		} else if entry.Tier == 0 {
			entry.Tier = 6
		}
		merged[cc.Key] = entry
	}
	out := make([]registry.Company, 0, len(merged))
	for _, rc := range merged {
		out = append(out, rc)
	}
	registry.Sort(out)
	return out
}

func validate(cfg *Config) error {
	if cfg.Scan.SourceTimeout <= 0 {
		return fmt.Errorf("scan.source_timeout must be positive, got %v", cfg.Scan.SourceTimeout)
	}
	if cfg.Scan.Delay < 0 {
		return fmt.Errorf("scan.delay must not be negative, got %v", cfg.Scan.Delay)
	}
	if cfg.Scan.MinNotifyScore < 0 || cfg.Scan.MinNotifyScore > 100 {
		return fmt.Errorf("scan.min_notify_score must be between 0 and 100, got %v", cfg.Scan.MinNotifyScore)
	}
	if cfg.Database.RetentionDays <= 0 {
		return fmt.Errorf("database.retention_days must be positive, got %d", cfg.Database.RetentionDays)
	}

	w := cfg.Match.Weights
	for _, v := range []float64{w.Skills, w.RoleFit, w.CompanyTraits, w.ExperienceLevel, w.FreshGradFriendly} {
		if v < 0 {
			return fmt.Errorf("match.weights must not be negative")
		}
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	for _, cc := range cfg.Companies {
		if cc.Key == "" {
			return fmt.Errorf("companies entries must have a key")
		}
		if cc.Disabled {
			continue
		}
		if _, known := registry.Get(cc.Key); known {
			continue
		}
		switch registry.ATS(cc.ATS) {
		case registry.ATSGreenhouse, registry.ATSLever, registry.ATSAshby:
			if cc.BoardToken == "" {
				return fmt.Errorf("companies[%q]: board_token is required for ats %q", cc.Key, cc.ATS)
			}
		case registry.ATSCareers:
			if cc.CareersURL == "" {
				return fmt.Errorf("companies[%q]: careers_url is required for ats \"careers\"", cc.Key)
			}
		default:
			return fmt.Errorf("companies[%q]: unknown ats %q", cc.Key, cc.ATS)
		}
	}

	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required when ai.enabled is true")
		}
		if cfg.AI.BaseURL == "" {
			return fmt.Errorf("ai.base_url is required when ai.enabled is true")
		}
		if cfg.AI.Model == "" {
			return fmt.Errorf("ai.model is required when ai.enabled is true")
		}
	}

	return nil
}
