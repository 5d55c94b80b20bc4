package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "APPLICATION_SUBMITTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by all marketplace events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeApplicationSubmitted = "APPLICATION_SUBMITTED"
	TypeApplicationDecided   = "APPLICATION_DECIDED"
)

func NewApplicationSubmitted(applicationId, userId, lenderId string, userScore int) Event {
	return BaseEvent{
		Type: TypeApplicationSubmitted,
		Data: map[string]interface{}{
			"application_id": applicationId,
			"user_id":        userId,
			"lender_id":      lenderId,
			"user_score":     userScore,
		},
		OccurredAt: time.Now(),
	}
}

func NewApplicationDecided(applicationId, userId, lenderId, status string) Event {
	return BaseEvent{
		Type: TypeApplicationDecided,
		Data: map[string]interface{}{
			"application_id": applicationId,
			"user_id":        userId,
			"lender_id":      lenderId,
			"status":         status,
		},
		OccurredAt: time.Now(),
	}
}
