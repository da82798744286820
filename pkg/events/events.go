package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeMessageMatched   = "message.matched"
	TypeMessageUnmatched = "message.unmatched"

	defaultProducer = "conveyancing-inbox"
)

type Meta struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Producer      string    `json:"producer,omitempty"`
	Time          time.Time `json:"time"`
	Type          string    `json:"type"`
}

type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

// NewEnvelope wraps data under a fresh event id. The event type doubles as the
// routing key.
func NewEnvelope(eventType string, correlationID string, data any) Envelope {
	return Envelope{
		Meta: Meta{
			ID:            uuid.NewString(),
			CorrelationID: correlationID,
			Producer:      defaultProducer,
			Time:          time.Now().UTC(),
			Type:          eventType,
		},
		Data: data,
	}
}
