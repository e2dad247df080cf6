// Package config holds the immutable run configuration for the notifier job.
// The configuration is built once at process start, validated, and passed into
// every component; there is no ambient global state.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"blog-notify/internal/domain/entity"
	pkgconfig "blog-notify/pkg/config"
)

// Enrichment provider names accepted in ENRICHER_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config is the immutable run configuration.
type Config struct {
	// WebhookURL is the chat webhook endpoint for notifications.
	// Loaded from CHAT_WEBHOOK; must be an absolute URL with scheme and host.
	WebhookURL string

	// Project is the cloud project used by the Gemini enrichment provider.
	// Loaded from GOOGLE_CLOUD_PROJECT.
	Project string

	// Region is the cloud region used by the Gemini enrichment provider.
	// Loaded from AI_REGION.
	Region string

	// Provider selects the enrichment backend.
	// Loaded from ENRICHER_PROVIDER; defaults to "gemini".
	Provider string

	// MaxPostAge is the recency window; entries older than now-MaxPostAge are
	// dropped. Loaded from POST_MAX_AGE_HOURS; callers should match it to the
	// scheduling cadence to avoid both gaps and duplicate notifications.
	MaxPostAge time.Duration

	// Feeds is the ordered feed table. Entries are processed in table order,
	// which also fixes the cross-feed deduplication order.
	Feeds []Feed
}

// Load builds the run configuration from the environment.
// Missing or invalid gating values (webhook, and project/region for the
// default Gemini provider) return a fatal error; the caller must not touch
// any feed before Load succeeds.
func Load() (*Config, error) {
	cfg := &Config{
		WebhookURL: os.Getenv("CHAT_WEBHOOK"),
		Project:    os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Region:     os.Getenv("AI_REGION"),
		Provider:   pkgconfig.GetEnvString("ENRICHER_PROVIDER", ProviderGemini),
		MaxPostAge: time.Duration(pkgconfig.GetEnvInt("POST_MAX_AGE_HOURS", 24)) * time.Hour,
		Feeds:      DefaultFeeds(),
	}

	if path := os.Getenv("FEEDS_FILE"); path != "" {
		feeds, err := LoadFeedsFile(path)
		if err != nil {
			return nil, fmt.Errorf("load feeds file %s: %w", path, err)
		}
		cfg.Feeds = feeds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration gates described in the run contract.
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return &entity.ValidationError{Field: "CHAT_WEBHOOK", Message: "environment variable missing"}
	}
	if !isValidURL(c.WebhookURL) {
		return &entity.ValidationError{
			Field:   "CHAT_WEBHOOK",
			Message: fmt.Sprintf("not a valid URL [%s]", c.WebhookURL),
		}
	}

	switch c.Provider {
	case ProviderGemini:
		if c.Project == "" {
			return &entity.ValidationError{Field: "GOOGLE_CLOUD_PROJECT", Message: "environment variable missing"}
		}
		if c.Region == "" {
			return &entity.ValidationError{Field: "AI_REGION", Message: "environment variable missing"}
		}
	case ProviderClaude, ProviderOpenAI, ProviderNone:
		// API key presence is checked where the provider is constructed.
	default:
		return &entity.ValidationError{
			Field:   "ENRICHER_PROVIDER",
			Message: fmt.Sprintf("unknown provider [%s]", c.Provider),
		}
	}

	if c.MaxPostAge <= 0 {
		return &entity.ValidationError{Field: "POST_MAX_AGE_HOURS", Message: "must be positive"}
	}

	if len(c.Feeds) == 0 {
		return &entity.ValidationError{Field: "Feeds", Message: "feed table is empty"}
	}
	for i, feed := range c.Feeds {
		if err := feed.Validate(); err != nil {
			return fmt.Errorf("feed [%d]: %w", i, err)
		}
	}

	return nil
}

// isValidURL reports whether raw is an absolute URL with scheme and host.
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
