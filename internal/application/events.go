package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/grandlux-hotels/service-reservation/pkg/kafka"
)

// EventSource identifies this service as the CloudEvents source.
const EventSource = "service-reservation"

// Topics.
const (
	TopicReservationEvents = "reservation.events"
	TopicFrontdeskEvents   = "frontdesk.events"
)

// Event types published on reservation.events.
const (
	ReservationCreated   = "reservation.created"
	ReservationUpdated   = "reservation.updated"
	ReservationCancelled = "reservation.cancelled"
	ReservationConfirmed = "reservation.confirmed"
	ReservationDeleted   = "reservation.deleted"
)

// Event types consumed from frontdesk.events.
const (
	ReservationConfirmationRequested = "reservation.confirmation_requested"
)

// ReservationEvent is the payload for reservation lifecycle events.
type ReservationEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	ClientID        uuid.UUID `json:"client_id"`
	RoomID          uuid.UUID `json:"room_id"`
	CheckInDate     string    `json:"check_in_date"`
	CheckOutDate    string    `json:"check_out_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReservationDeletedEvent is the payload for hard deletes.
type ReservationDeletedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ConfirmationRequestedEvent is the front-desk trigger that confirms a
// pending reservation.
type ConfirmationRequestedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ConfirmedBy   string    `json:"confirmed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher publishes CloudEvents to the message bus.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}
