package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	orderingSvc "dms/internal/domain/services/ordering"
)

// Dispatcher publishes CloudEvents to the connection's exchange
type Dispatcher struct {
	mu     sync.Mutex
	ch     *amqp.Channel
	conn   *Connection
	source string
	logger *slog.Logger
}

// NewDispatcher opens a dedicated publishing channel. source becomes the
// CloudEvents source attribute of every published event.
func NewDispatcher(conn *Connection, source string, logger *slog.Logger) (*Dispatcher, error) {
	ch, err := conn.channel()
	if err != nil {
		return nil, err
	}
	return &Dispatcher{ch: ch, conn: conn, source: source, logger: logger}, nil
}

// Publish sends payload with eventType as both the CloudEvents type and routing key
func (d *Dispatcher) Publish(ctx context.Context, eventType string, payload any) error {
	envelope, err := NewEnvelope(d.source, eventType, payload)
	if err != nil {
		return err
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	msg := amqp.Publishing{
		ContentType:  ContentTypeCloudEvents,
		DeliveryMode: amqp.Persistent,
		MessageId:    envelope.ID(),
		Type:         eventType,
		Timestamp:    envelope.Time(),
		AppId:        d.source,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ch.PublishWithContext(ctx, d.conn.Exchange(), eventType, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	d.logger.Debug("event published", "type", eventType, "id", envelope.ID(), "exchange", d.conn.Exchange())
	return nil
}

// Close closes the publishing channel
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ch.Close()
}

var _ orderingSvc.Publisher = (*Dispatcher)(nil)
