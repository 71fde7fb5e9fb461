// Package notify is the notification channel: fire-and-forget delivery of
// invitation emails. Failures are logged and never block the triggering
// operation.
package notify

import (
	"context"
	"log/slog"

	"github.com/mbrandeis/taskloom/internal/domain"
)

// Notifier delivers an invitation notice to its addressee.
type Notifier interface {
	InviteSent(ctx context.Context, inv *domain.Invitation)
}

// LogNotifier writes notifications to the log. Used in development and as the
// fallback when no broker is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) InviteSent(ctx context.Context, inv *domain.Invitation) {
	n.log.InfoContext(ctx, "invitation notice",
		"email", inv.Email,
		"project", inv.ProjectName,
		"role", string(inv.Role),
		"invited_by", inv.InvitedBy,
	)
}

// NoopNotifier ignores all notifications. Used by tests.
type NoopNotifier struct{}

func (NoopNotifier) InviteSent(context.Context, *domain.Invitation) {}
