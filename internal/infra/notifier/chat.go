package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"blog-notify/internal/domain/entity"
	"blog-notify/internal/observability/metrics"
)

// ChatConfig contains configuration for chat webhook notifications.
type ChatConfig struct {
	// WebhookURL is the chat Incoming Webhook URL (includes authentication token)
	WebhookURL string

	// Timeout is the HTTP request timeout for webhook calls
	Timeout time.Duration
}

// ChatNotifier posts messages to a chat space via Incoming Webhook.
// Each delivery is attempted exactly once; only HTTP 200 counts as success.
type ChatNotifier struct {
	config      ChatConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// chatPayload is the JSON body posted to the webhook.
type chatPayload struct {
	Text string `json:"text"`
}

// WebhookError reports a webhook delivery rejected by the remote end.
type WebhookError struct {
	StatusCode int
	Body       string
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("webhook returned status %d: %s", e.StatusCode, e.Body)
}

// NewChatNotifier creates a ChatNotifier with the specified configuration.
// The rate limiter is set to 1 request/second with burst of 1 to match
// typical incoming-webhook limits.
func NewChatNotifier(config ChatConfig) *ChatNotifier {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &ChatNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
	}
}

// NotifyPost renders the message for a post and delivers it to the webhook.
func (c *ChatNotifier) NotifyPost(ctx context.Context, post *entity.Post) error {
	requestID := uuid.New().String()

	if err := c.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	message := BuildMessage(post)
	err := c.sendWebhookRequest(ctx, message)
	metrics.RecordNotification(err == nil)

	if err != nil {
		slog.ErrorContext(ctx, "chat notification failed",
			slog.String("request_id", requestID),
			slog.String("url", post.URL),
			slog.String("error", err.Error()))
		return err
	}

	slog.InfoContext(ctx, "chat notification sent",
		slog.String("request_id", requestID),
		slog.String("url", post.URL))
	return nil
}

// sendWebhookRequest posts one message to the webhook.
// Only a 200 response is treated as success; the body of any other
// response is carried in the returned WebhookError.
func (c *ChatNotifier) sendWebhookRequest(ctx context.Context, message string) error {
	jsonData, err := json.Marshal(chatPayload{Text: message})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return &WebhookError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return nil
}
