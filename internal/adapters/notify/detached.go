package notify

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
)

const dispatchTimeout = 30 * time.Second

// Detached wraps a Notifier so Send returns immediately and delivery runs
// in its own goroutine with its own error boundary. Core operations must
// never block on, or fail because of, third-party delivery.
type Detached struct {
	inner  portssvc.Notifier
	logger *slog.Logger
}

func NewDetached(inner portssvc.Notifier, logger *slog.Logger) *Detached {
	return &Detached{inner: inner, logger: logger}
}

var _ portssvc.Notifier = (*Detached)(nil)

// Send dispatches in the background. The request context is deliberately
// not propagated: delivery must outlive the response cycle.
func (d *Detached) Send(_ context.Context, msg portssvc.Notification) error {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("notification dispatch panicked", "recover", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := d.inner.Send(ctx, msg); err != nil {
			d.logger.Error("notification dispatch failed",
				"channel", msg.Channel, "recipient", msg.Recipient, "error", err)
			return
		}
		d.logger.Info("notification dispatched", "channel", msg.Channel, "recipient", msg.Recipient)
	}()
	return nil
}

// LogNotifier writes notifications to the log instead of delivering them.
// Used when no broker is configured (local dev, tests).
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Send(_ context.Context, msg portssvc.Notification) error {
	n.logger.Info("notification (log only)",
		"channel", msg.Channel, "recipient", msg.Recipient, "subject", msg.Subject)
	return nil
}
