package ports

import "context"

// Notification is one outward message produced by the side-effect dispatcher
// after a committed transition. Delivery mechanism (push/SMS/email/realtime
// broadcast) is entirely the collaborator's concern.
type Notification struct {
	RecipientID string
	TemplateKey string
	Context     map[string]string
}

// NotificationSender delivers notifications to their recipients.
// Implementations are best-effort: a failed delivery is logged by the
// dispatcher and never affects the transition that produced it.
type NotificationSender interface {
	Send(ctx context.Context, notification Notification) error
}
