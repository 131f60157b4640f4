package services

import (
	"context"

	"github.com/nagorik/citizen-registry/internal/core/domain"
)

// Notification is one outbound message. Channel selects the delivery
// transport; Recipient is the phone number or email address.
type Notification struct {
	Channel   domain.ContactChannel `json:"channel"`
	Recipient string                `json:"recipient"`
	Subject   string                `json:"subject"`
	Body      string                `json:"body"`
}

// Notifier is the stateless outbound-notification port. Delivery is
// fire-and-forget from the caller's perspective: implementations own their
// error handling and must never block or fail the calling operation.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
