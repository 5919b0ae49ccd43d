package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"dms/internal/domain"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := map[string]any{"TranslationDocumentId": 42, "PartCount": 3}

	envelope, err := NewEnvelope("dms", "CreateDocumentPartEvent", payload)
	if err != nil {
		t.Fatalf("NewEnvelope() error = %v", err)
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeDelivery(body, "transport-id", "")
	if err != nil {
		t.Fatalf("DecodeDelivery() error = %v", err)
	}

	if got.ID != envelope.ID() || got.ID == "transport-id" {
		t.Errorf("ID = %q, want the envelope id %q", got.ID, envelope.ID())
	}
	if got.Type != "CreateDocumentPartEvent" || got.Source != "dms" {
		t.Errorf("Type/Source = %q/%q", got.Type, got.Source)
	}

	var data map[string]any
	if err := json.Unmarshal(got.Data, &data); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if data["TranslationDocumentId"] != float64(42) {
		t.Errorf("payload = %v", data)
	}
}

func TestDecodeDelivery_BarePayload(t *testing.T) {
	body := []byte(`{"TranslationDocumentId":42,"PartCount":3}`)

	got, err := DecodeDelivery(body, "msg-1", "CreateDocumentPartEvent")
	if err != nil {
		t.Fatalf("DecodeDelivery() error = %v", err)
	}
	if got.ID != "msg-1" || got.Type != "CreateDocumentPartEvent" {
		t.Errorf("got %+v, want transport id and type", got)
	}
	if string(got.Data) != string(body) {
		t.Errorf("Data = %s, want body unchanged", got.Data)
	}
}

func TestDecodeDelivery_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "hello"},
		{"truncated", `{"TranslationDocumentId":`},
		{"cloudevent without id", `{"specversion":"1.0","type":"X","source":"s"}`},
		{"unknown spec version", `{"specversion":"9.9","id":"1","type":"X","source":"s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDelivery([]byte(tt.body), "m", "")
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("DecodeDelivery() error = %v, want ErrValidation", err)
			}
		})
	}
}
