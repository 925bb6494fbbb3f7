package notifier

import (
	"context"
	"log/slog"

	"printmarket/internal/usecase/commands"
)

// SlogNotifier emits transition events as structured log records. It
// stands in for the email/push adapter; the Notify contract is
// best-effort and must return quickly.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(ctx context.Context, event commands.TransitionEvent) error {
	n.logger.LogAttrs(ctx, slog.LevelInfo, "request transition",
		slog.String("request_id", event.RequestID.String()),
		slog.String("old_status", event.OldStatus.String()),
		slog.String("new_status", event.NewStatus.String()),
		slog.String("actor_id", event.ActorID.String()),
	)
	return nil
}
