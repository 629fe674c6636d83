// Package notify combines notifiers.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"starmap/internal/core/ports"
)

var (
	_ ports.Notifier = Multi(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

// Multi sends to every notifier, even after one fails, and joins the errors.
type Multi []ports.Notifier

func (m Multi) Send(ctx context.Context, n ports.Notification) error {
	var err error
	for _, notifier := range m {
		err = errors.Join(err, notifier.Send(ctx, n))
	}
	return err
}

// LogNotifier only logs. It stands in when no transport is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (l *LogNotifier) Send(ctx context.Context, n ports.Notification) error {
	l.logger.InfoContext(ctx, "order fulfilled",
		"orderId", n.OrderID,
		"orderName", n.OrderName,
		"artifactUrl", n.ArtifactURL,
	)
	return nil
}
