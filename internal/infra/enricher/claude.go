package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"blog-notify/internal/observability/metrics"
	"blog-notify/internal/resilience/circuitbreaker"
)

// Claude enriches entries through Anthropic's Messages API.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewClaude creates a Claude enricher with the given API key.
func NewClaude(apiKey string) *Claude {
	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.GenerativeAPIConfig()),
		config:         loadConfig(string(anthropic.ModelClaudeSonnet4_5_20250929)),
	}
}

// Summarize generates a short summary of the entry body.
func (c *Claude) Summarize(ctx context.Context, body string) (string, error) {
	return c.generate(ctx, opSummarize, buildSummaryPrompt(truncateInput(body)))
}

// ScoreTechiness rates how technical the entry body is on a 1..5 scale.
func (c *Claude) ScoreTechiness(ctx context.Context, body string) (int, error) {
	raw, err := c.generate(ctx, opScore, buildTechinessPrompt(truncateInput(body)))
	if err != nil {
		return 0, err
	}
	return ParseScore(raw)
}

// generate performs one model call through the circuit breaker.
func (c *Claude) generate(ctx context.Context, operation, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	start := time.Now()

	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doGenerate(ctx, prompt)
	})

	duration := time.Since(start)
	metrics.RecordEnrichment(operation, err == nil, duration)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("service", "claude-api"),
				slog.String("request_id", requestID),
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: circuit breaker open")
		}
		slog.ErrorContext(ctx, "claude api call failed",
			slog.String("request_id", requestID),
			slog.String("operation", operation),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", err
	}

	slog.InfoContext(ctx, "claude api call completed",
		slog.String("request_id", requestID),
		slog.String("operation", operation),
		slog.Duration("duration", duration))

	return cbResult.(string), nil
}

// doGenerate performs the actual API call.
func (c *Claude) doGenerate(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}
	return textBlock.Text, nil
}
