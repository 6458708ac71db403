// Package event defines the domain events emitted after user mutations and
// the publisher port they leave through. Events are immutable once built:
// construct, publish, forget.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/arkadata/userhub/internal/domain/entity"
)

// Event types and aggregate types form a closed set.
const (
	TypeUserCreated = "user.created"
	TypeUserUpdated = "user.updated"

	AggregateUser = "user"
)

// Envelope is the stable header carried by every event on the bus.
type Envelope struct {
	EventID       string `json:"eventId"`
	EventType     string `json:"eventType"`
	AggregateID   string `json:"aggregateId"`
	AggregateType string `json:"aggregateType"`
	CreatedAt     string `json:"createdAt"`
}

func newEnvelope(eventType, aggregateID, aggregateType string) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// Event is anything publishable on the bus.
type Event interface {
	Header() Envelope
}

// UserCreated announces a newly created user.
type UserCreated struct {
	Envelope
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (e UserCreated) Header() Envelope { return e.Envelope }

// NewUserCreated builds a user.created event for the given user.
func NewUserCreated(userID, email, name string) UserCreated {
	return UserCreated{
		Envelope: newEnvelope(TypeUserCreated, userID, AggregateUser),
		Email:    email,
		Name:     name,
	}
}

// UserUpdated announces a field-level diff of a successful patch.
type UserUpdated struct {
	Envelope
	Changes entity.Changes `json:"changes"`
}

func (e UserUpdated) Header() Envelope { return e.Envelope }

// NewUserUpdated builds a user.updated event carrying the change record.
func NewUserUpdated(userID string, changes entity.Changes) UserUpdated {
	return UserUpdated{
		Envelope: newEnvelope(TypeUserUpdated, userID, AggregateUser),
		Changes:  changes,
	}
}
