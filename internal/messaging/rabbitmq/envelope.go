package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	"dms/internal/domain"
	orderingSvc "dms/internal/domain/services/ordering"
)

// CloudEvents structured mode content type
const ContentTypeCloudEvents = "application/cloudevents+json"

// NewEnvelope wraps payload in a CloudEvent with a fresh id
func NewEnvelope(source, eventType string, payload any) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetID(uuid.NewString())
	e.SetSource(source)
	e.SetType(eventType)
	e.SetTime(time.Now().UTC())
	if err := e.SetData(cloudevents.ApplicationJSON, payload); err != nil {
		return e, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	if err := e.Validate(); err != nil {
		return e, fmt.Errorf("invalid %s envelope: %w", eventType, err)
	}
	return e, nil
}

// DecodeDelivery reads a delivery body. Structured CloudEvents are unwrapped;
// any other JSON document is taken as a bare payload identified by the
// transport message id and type.
func DecodeDelivery(body []byte, messageID, messageType string) (orderingSvc.InboundEvent, error) {
	if !json.Valid(body) {
		return orderingSvc.InboundEvent{}, fmt.Errorf("%w: delivery body is not json", domain.ErrValidation)
	}

	var header struct {
		SpecVersion string `json:"specversion"`
	}
	_ = json.Unmarshal(body, &header)

	if header.SpecVersion == "" {
		return orderingSvc.InboundEvent{
			ID:   messageID,
			Type: messageType,
			Data: body,
		}, nil
	}

	e := cloudevents.NewEvent()
	if err := json.Unmarshal(body, &e); err != nil {
		return orderingSvc.InboundEvent{}, fmt.Errorf("%w: decode cloudevent: %v", domain.ErrValidation, err)
	}
	if err := e.Validate(); err != nil {
		return orderingSvc.InboundEvent{}, fmt.Errorf("%w: invalid cloudevent: %v", domain.ErrValidation, err)
	}

	return orderingSvc.InboundEvent{
		ID:     e.ID(),
		Type:   e.Type(),
		Source: e.Source(),
		Time:   e.Time(),
		Data:   e.Data(),
	}, nil
}
