package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"blog-notify/internal/domain/entity"
)

// Feed is one entry of the feed table: a human-readable label and the
// RSS/Atom document URL it points to.
type Feed struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Validate checks that a feed table entry is usable.
func (f Feed) Validate() error {
	if f.Label == "" {
		return &entity.ValidationError{Field: "label", Message: "must not be empty"}
	}
	if f.URL == "" {
		return &entity.ValidationError{Field: "url", Message: "must not be empty"}
	}
	if !isValidURL(f.URL) {
		return &entity.ValidationError{Field: "url", Message: fmt.Sprintf("not a valid URL [%s]", f.URL)}
	}
	return nil
}

// DefaultFeeds returns the built-in feed table: the Google Cloud blog
// channels plus the GKE release notes feed. Order is significant.
func DefaultFeeds() []Feed {
	return []Feed{
		{Label: "APIs", URL: "https://cloudblog.withgoogle.com/products/api-management/rss/"},
		{Label: "AppDev", URL: "https://cloudblog.withgoogle.com/products/application-development/rss/"},
		{Label: "AppMod", URL: "https://cloudblog.withgoogle.com/products/application-modernization/rss/"},
		{Label: "K8s", URL: "https://cloudblog.withgoogle.com/products/containers-kubernetes/rss/"},
		{Label: "DevOps", URL: "https://cloudblog.withgoogle.com/products/devops-sre/rss/"},
		{Label: "Serverless", URL: "https://cloudblog.withgoogle.com/products/serverless/rss/"},
		{Label: "GKE feature log", URL: "https://cloud.google.com/feeds/gke-new-features-release-notes.xml"},
	}
}

// LoadFeedsFile reads a YAML feed table that replaces the built-in one.
// The file is an ordered list of {label, url} pairs:
//
//	- label: K8s
//	  url: https://cloudblog.withgoogle.com/products/containers-kubernetes/rss/
func LoadFeedsFile(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}

	var feeds []Feed
	if err := yaml.Unmarshal(data, &feeds); err != nil {
		return nil, fmt.Errorf("parse feeds file: %w", err)
	}
	if len(feeds) == 0 {
		return nil, fmt.Errorf("feeds file is empty")
	}
	return feeds, nil
}
