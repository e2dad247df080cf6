package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"blog-notify/internal/observability/metrics"
	"blog-notify/internal/resilience/circuitbreaker"
)

// OpenAI enriches entries through OpenAI's chat completion API.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewOpenAI creates an OpenAI enricher with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.GenerativeAPIConfig()),
		config:         loadConfig(openai.GPT4oMini),
	}
}

// Summarize generates a short summary of the entry body.
func (o *OpenAI) Summarize(ctx context.Context, body string) (string, error) {
	return o.generate(ctx, opSummarize, buildSummaryPrompt(truncateInput(body)))
}

// ScoreTechiness rates how technical the entry body is on a 1..5 scale.
func (o *OpenAI) ScoreTechiness(ctx context.Context, body string) (int, error) {
	raw, err := o.generate(ctx, opScore, buildTechinessPrompt(truncateInput(body)))
	if err != nil {
		return 0, err
	}
	return ParseScore(raw)
}

// generate performs one model call through the circuit breaker.
func (o *OpenAI) generate(ctx context.Context, operation, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	start := time.Now()

	cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doGenerate(ctx, prompt)
	})

	duration := time.Since(start)
	metrics.RecordEnrichment(operation, err == nil, duration)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("service", "openai-api"),
				slog.String("request_id", requestID),
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("openai api unavailable: circuit breaker open")
		}
		slog.ErrorContext(ctx, "openai api call failed",
			slog.String("request_id", requestID),
			slog.String("operation", operation),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", err
	}

	slog.InfoContext(ctx, "openai api call completed",
		slog.String("request_id", requestID),
		slog.String("operation", operation),
		slog.Duration("duration", duration))

	return cbResult.(string), nil
}

// doGenerate performs the actual API call.
func (o *OpenAI) doGenerate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
