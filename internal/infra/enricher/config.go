// Package enricher provides generative-text enrichment for feed entries.
// It includes adapters for Gemini (Vertex AI), Claude (Anthropic) and OpenAI,
// each producing a short summary and a techiness score for an entry body.
// Every API call is attempted exactly once; a circuit breaker gates calls
// while a provider is known to be failing but never re-issues them.
package enricher

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	pkgconfig "blog-notify/pkg/config"
)

// ErrUnavailable is returned by providers that cannot serve enrichment,
// such as the NoOp provider. Callers treat it like any other enrichment
// failure: the corresponding message part is simply absent.
var ErrUnavailable = errors.New("enrichment unavailable")

// Enrichment operations recorded in metrics.
const (
	opSummarize = "summarize"
	opScore     = "score"
)

const (
	// summaryWordLimit bounds the summary length requested from the model.
	summaryWordLimit = 40

	// maxInputChars caps the entry body sent to a provider.
	maxInputChars = 10000

	minScore = 1
	maxScore = 5
)

// Config holds the provider-independent enrichment parameters.
type Config struct {
	// Model is the provider model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single API call.
	Timeout time.Duration
}

// loadConfig builds the enrichment configuration for a provider,
// with the model overridable through ENRICHER_MODEL.
func loadConfig(defaultModel string) Config {
	cfg := Config{
		Model:     pkgconfig.GetEnvString("ENRICHER_MODEL", defaultModel),
		MaxTokens: pkgconfig.GetEnvInt("ENRICHER_MAX_TOKENS", 256),
		Timeout:   pkgconfig.GetEnvDuration("ENRICHER_TIMEOUT", 60*time.Second),
	}

	slog.Info("Initialized enricher configuration",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Duration("timeout", cfg.Timeout))

	return cfg
}

// buildSummaryPrompt constructs the summarization prompt for an entry body.
func buildSummaryPrompt(body string) string {
	return fmt.Sprintf("You're a Google Cloud technical professional. Summarize the following with at most %d words: %s",
		summaryWordLimit, body)
}

// buildTechinessPrompt constructs the scoring prompt for an entry body.
// The model is asked for a bare digit so the answer survives ParseScore.
func buildTechinessPrompt(body string) string {
	return fmt.Sprintf("You're a Google Cloud technical professional. Rate how technical the following text is on a scale from %d (marketing) to %d (deeply technical). Answer with a single digit and nothing else: %s",
		minScore, maxScore, body)
}

// truncateInput caps the entry body sent to a provider.
func truncateInput(body string) string {
	if len(body) <= maxInputChars {
		return body
	}
	slog.Warn("entry body truncated for enrichment",
		slog.Int("original_length", len(body)),
		slog.Int("truncated_length", maxInputChars))
	return body[:maxInputChars]
}

// ParseScore extracts a techiness score from a raw model answer.
// The answer must be a bare integer between 1 and 5 after trimming
// whitespace; anything else is an error and the score is treated as absent.
func ParseScore(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	score, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("techiness answer is not a number: %q", raw)
	}
	if score < minScore || score > maxScore {
		return 0, fmt.Errorf("techiness score out of range: %d", score)
	}
	return score, nil
}
