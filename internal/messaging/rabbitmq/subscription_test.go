package rabbitmq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"dms/internal/domain"
	orderingSvc "dms/internal/domain/services/ordering"
)

type fakeAcknowledger struct {
	acks    int
	nacks   int
	requeue bool
}

func (a *fakeAcknowledger) Ack(uint64, bool) error { a.acks++; return nil }
func (a *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacks++
	a.requeue = requeue
	return nil
}
func (a *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	a.nacks++
	a.requeue = requeue
	return nil
}

type handlerFunc func(ctx context.Context, event orderingSvc.InboundEvent) error

func (f handlerFunc) Handle(ctx context.Context, event orderingSvc.InboundEvent) error {
	return f(ctx, event)
}

func TestSubscription_Process(t *testing.T) {
	validBody := []byte(`{"TranslationDocumentId":42,"PartCount":3}`)

	tests := []struct {
		name        string
		body        []byte
		handlerErr  error
		panics      bool
		wantAck     bool
		wantHandled bool
	}{
		{"success is acked", validBody, nil, false, true, true},
		{"terminal failure is acked", validBody, fmt.Errorf("%w: down", domain.ErrUpstream), false, true, true},
		{"invalid event is rejected", validBody, fmt.Errorf("%w: bad", domain.ErrValidation), false, false, true},
		{"malformed body is rejected", []byte("not json"), nil, false, false, false},
		{"panic is rejected", validBody, nil, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := NewSubscription(nil, "dms-projection", "CreateDocumentPartEvent", slog.New(slog.NewTextHandler(io.Discard, nil)))
			ack := &fakeAcknowledger{}
			handled := false

			handler := handlerFunc(func(_ context.Context, event orderingSvc.InboundEvent) error {
				handled = true
				if event.Type != "CreateDocumentPartEvent" {
					t.Errorf("event type = %q, want subscription event type as fallback", event.Type)
				}
				if tt.panics {
					panic("boom")
				}
				return tt.handlerErr
			})

			sub.process(context.Background(), amqp.Delivery{Acknowledger: ack, Body: tt.body, MessageId: "m-1", DeliveryTag: 1}, handler)

			if handled != tt.wantHandled {
				t.Errorf("handled = %v, want %v", handled, tt.wantHandled)
			}
			if tt.wantAck && (ack.acks != 1 || ack.nacks != 0) {
				t.Errorf("acks=%d nacks=%d, want a single ack", ack.acks, ack.nacks)
			}
			if !tt.wantAck && (ack.nacks != 1 || ack.acks != 0 || ack.requeue) {
				t.Errorf("acks=%d nacks=%d requeue=%v, want a single nack without requeue", ack.acks, ack.nacks, ack.requeue)
			}
		})
	}
}

func TestSubscription_ProcessRequeuesOnShutdown(t *testing.T) {
	tests := []struct {
		name       string
		handlerErr error
		wantAck    bool
	}{
		{"interrupted handler is requeued", fmt.Errorf("load document: %w", context.Canceled), false},
		{"interrupted validation failure is requeued", fmt.Errorf("%w: decode: %v", domain.ErrValidation, context.Canceled), false},
		{"completed handler is still acked", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := NewSubscription(nil, "dms-projection", "CreateDocumentPartEvent", slog.New(slog.NewTextHandler(io.Discard, nil)))
			ack := &fakeAcknowledger{}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			handler := handlerFunc(func(context.Context, orderingSvc.InboundEvent) error {
				cancel()
				return tt.handlerErr
			})

			sub.process(ctx, amqp.Delivery{Acknowledger: ack, Body: []byte(`{"TranslationDocumentId":42}`), MessageId: "m-1", DeliveryTag: 1}, handler)

			if tt.wantAck {
				if ack.acks != 1 || ack.nacks != 0 {
					t.Errorf("acks=%d nacks=%d, want a single ack", ack.acks, ack.nacks)
				}
				return
			}
			if ack.nacks != 1 || ack.acks != 0 || !ack.requeue {
				t.Errorf("acks=%d nacks=%d requeue=%v, want a single nack with requeue", ack.acks, ack.nacks, ack.requeue)
			}
		})
	}
}

func TestSubscription_QueueName(t *testing.T) {
	sub := NewSubscription(nil, "dms-projection", "CreateDocumentPartEvent", nil)
	if got := sub.QueueName(); got != "dms-projection.CreateDocumentPartEvent" {
		t.Errorf("QueueName() = %q", got)
	}
}
