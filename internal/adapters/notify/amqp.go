// Package notify contains outbound-notification adapters implementing the
// Notifier port. Delivery failures are logged and returned to the caller,
// which is expected to treat them as non-fatal.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	portssvc "github.com/nagorik/citizen-registry/internal/core/ports/services"
)

// AMQPNotifier publishes notifications to a durable RabbitMQ queue consumed
// by the delivery workers (email/SMS gateways). A connection per publish
// keeps the adapter stateless; throughput here is registration-scale, not
// streaming-scale.
type AMQPNotifier struct {
	url       string
	queueName string
}

func NewAMQPNotifier(url, queueName string) *AMQPNotifier {
	return &AMQPNotifier{url: url, queueName: queueName}
}

var _ portssvc.Notifier = (*AMQPNotifier)(nil)

func (n *AMQPNotifier) Send(ctx context.Context, msg portssvc.Notification) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return fmt.Errorf("notify: dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("notify: channel open failed: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(n.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("notify: queue declare failed: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: marshal failed: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", n.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("notify: publish failed: %w", err)
	}
	return nil
}
