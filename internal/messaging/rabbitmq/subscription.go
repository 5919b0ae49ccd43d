package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"dms/internal/domain"
	orderingSvc "dms/internal/domain/services/ordering"
)

// Subscription consumes one event type from the exchange through a durable
// queue named "<app>.<event type>"
type Subscription struct {
	conn      *Connection
	appName   string
	eventType string
	logger    *slog.Logger
}

// NewSubscription creates a subscription for eventType
func NewSubscription(conn *Connection, appName, eventType string, logger *slog.Logger) *Subscription {
	return &Subscription{conn: conn, appName: appName, eventType: eventType, logger: logger}
}

// QueueName returns the queue the subscription consumes from
func (s *Subscription) QueueName() string {
	return s.appName + "." + s.eventType
}

// Run consumes deliveries one at a time until ctx is cancelled or the broker
// closes the channel
func (s *Subscription) Run(ctx context.Context, handler orderingSvc.EventHandler) error {
	ch, err := s.conn.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}

	queue := s.QueueName()
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, s.eventType, s.conn.Exchange(), false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue, err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, s.appName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	s.logger.Info("subscription started", "queue", queue, "event", s.eventType)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("subscription stopped", "queue", queue)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("delivery channel for %s closed by broker", queue)
			}
			s.process(ctx, d, handler)
		}
	}
}

// process runs the handler for one delivery and settles it. Malformed
// deliveries and handler panics are rejected without requeue. A delivery whose
// handling was cut short by shutdown is requeued for redelivery. Everything
// else is acknowledged, including terminal handler failures.
func (s *Subscription) process(ctx context.Context, d amqp.Delivery, handler orderingSvc.EventHandler) {
	logger := s.logger.With("message_id", d.MessageId, "delivery_tag", d.DeliveryTag)

	event, err := DecodeDelivery(d.Body, d.MessageId, d.Type)
	if err != nil {
		logger.Error("rejecting malformed delivery", "error", err)
		s.settle(logger, d, false)
		return
	}
	if event.Type == "" {
		event.Type = s.eventType
	}

	if err := s.safeHandle(ctx, handler, event); err != nil {
		if ctx.Err() != nil {
			logger.Warn("requeueing delivery interrupted by shutdown", "event_id", event.ID, "error", err)
			s.requeue(logger, d)
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			logger.Warn("rejecting invalid event", "event_id", event.ID, "error", err)
			s.settle(logger, d, false)
			return
		}
		logger.Debug("event handling failed", "event_id", event.ID, "error", err)
	}

	s.settle(logger, d, true)
}

func (s *Subscription) safeHandle(ctx context.Context, handler orderingSvc.EventHandler, event orderingSvc.InboundEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in event handler", "event_id", event.ID, "panic", r)
			err = fmt.Errorf("%w: handler panic: %v", domain.ErrValidation, r)
		}
	}()
	return handler.Handle(ctx, event)
}

func (s *Subscription) settle(logger *slog.Logger, d amqp.Delivery, ack bool) {
	var err error
	if ack {
		err = d.Ack(false)
	} else {
		err = d.Nack(false, false)
	}
	if err != nil {
		logger.Error("failed to settle delivery", "ack", ack, "error", err)
	}
}

func (s *Subscription) requeue(logger *slog.Logger, d amqp.Delivery) {
	if err := d.Nack(false, true); err != nil {
		logger.Error("failed to requeue delivery", "error", err)
	}
}
