// Package notify is the fire-and-forget acknowledgment side channel. Every
// mutating operation reports its outcome here; delivery failures are never
// surfaced to the caller.
package notify

import (
	"context"
	"log/slog"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Notifier interface {
	Notify(ctx context.Context, kind Kind, title, message string)
}

// LogNotifier writes notifications to the application log. It is the default
// implementation; a push/email notifier can replace it without touching the
// services.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notify")}
}

func (n *LogNotifier) Notify(_ context.Context, kind Kind, title, message string) {
	n.logger.Info("notification",
		"kind", string(kind),
		"title", title,
		"message", message,
	)
}

// Noop discards all notifications. Used in tests.
type Noop struct{}

func (Noop) Notify(context.Context, Kind, string, string) {}
