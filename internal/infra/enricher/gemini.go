package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"blog-notify/internal/observability/metrics"
	"blog-notify/internal/resilience/circuitbreaker"
)

// Gemini enriches entries through the Vertex AI Gemini API.
// It authenticates with application default credentials against the
// configured project and region.
type Gemini struct {
	client         *genai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewGemini creates a Gemini enricher bound to a cloud project and region.
func NewGemini(ctx context.Context, project, region string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.GenerativeAPIConfig()),
		config:         loadConfig("gemini-2.0-flash"),
	}, nil
}

// Summarize generates a short summary of the entry body.
func (g *Gemini) Summarize(ctx context.Context, body string) (string, error) {
	return g.generate(ctx, opSummarize, buildSummaryPrompt(truncateInput(body)))
}

// ScoreTechiness rates how technical the entry body is on a 1..5 scale.
func (g *Gemini) ScoreTechiness(ctx context.Context, body string) (int, error) {
	raw, err := g.generate(ctx, opScore, buildTechinessPrompt(truncateInput(body)))
	if err != nil {
		return 0, err
	}
	return ParseScore(raw)
}

// generate performs one model call through the circuit breaker.
func (g *Gemini) generate(ctx context.Context, operation, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	start := time.Now()

	cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
		return g.doGenerate(ctx, prompt)
	})

	duration := time.Since(start)
	metrics.RecordEnrichment(operation, err == nil, duration)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("gemini api circuit breaker open, request rejected",
				slog.String("service", "gemini-api"),
				slog.String("request_id", requestID),
				slog.String("state", g.circuitBreaker.State().String()))
			return "", fmt.Errorf("gemini api unavailable: circuit breaker open")
		}
		slog.ErrorContext(ctx, "gemini api call failed",
			slog.String("request_id", requestID),
			slog.String("operation", operation),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", err
	}

	slog.InfoContext(ctx, "gemini api call completed",
		slog.String("request_id", requestID),
		slog.String("operation", operation),
		slog.Duration("duration", duration))

	return cbResult.(string), nil
}

// doGenerate performs the actual API call.
func (g *Gemini) doGenerate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(g.config.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	answer := resp.Text()
	if answer == "" {
		return "", fmt.Errorf("gemini api returned empty response")
	}
	return answer, nil
}
