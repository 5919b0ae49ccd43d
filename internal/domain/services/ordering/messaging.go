package ordering

import (
	"context"
	"time"
)

// InboundEvent is a decoded bus delivery. Data holds the JSON payload.
type InboundEvent struct {
	ID     string
	Type   string
	Source string
	Time   time.Time
	Data   []byte
}

// EventHandler processes one inbound event. Returning an error wrapping
// domain.ErrValidation marks the delivery as malformed.
type EventHandler interface {
	Handle(ctx context.Context, event InboundEvent) error
}

// Publisher sends an event to the message bus. eventType doubles as the routing key.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// DeliveryGuard remembers which deliveries have already been handled
type DeliveryGuard interface {
	// Claim returns true the first time key is seen within ttl
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets key so a later redelivery is handled again
	Release(ctx context.Context, key string) error
}
