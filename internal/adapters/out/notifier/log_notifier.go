// Package notifier provides NotificationSender adapters.
package notifier

import (
	"context"
	"log/slog"

	"orderflow/internal/core/ports"
)

// LogNotifier is a NotificationSender that records notifications in the
// structured log. Stands in for the push/SMS/email collaborator in
// development and in environments without a delivery provider.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

// Send logs the notification and reports success.
func (n *LogNotifier) Send(ctx context.Context, notification ports.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"recipient", notification.RecipientID,
		"template", notification.TemplateKey,
		"context", notification.Context)
	return nil
}
