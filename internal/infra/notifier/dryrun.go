package notifier

import (
	"context"
	"log/slog"

	"blog-notify/internal/domain/entity"
)

// DryRunNotifier logs the rendered message instead of posting it.
// It is used when NOTIFIER_DRY_RUN is set, so a run against production
// feeds can be inspected without touching the chat space.
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new DryRunNotifier.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// NotifyPost logs the message and reports success.
func (d *DryRunNotifier) NotifyPost(ctx context.Context, post *entity.Post) error {
	slog.InfoContext(ctx, "dry run notification",
		slog.String("url", post.URL),
		slog.String("message", BuildMessage(post)))
	return nil
}
