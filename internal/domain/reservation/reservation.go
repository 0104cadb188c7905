package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// Guest count bounds enforced by the engine. The cap is global and does not
// depend on room capacity.
const (
	MinGuests = 1
	MaxGuests = 10
)

// Reservation is the aggregate root for the booking domain. It references
// its client and room by ID only; snapshots are resolved at the engine
// boundary.
type Reservation struct {
	id              uuid.UUID
	clientID        uuid.UUID
	roomID          uuid.UUID
	stay            Stay
	numberOfGuests  int
	totalPriceCents int64
	currency        string
	status          Status
	specialRequests string

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a reservation with a derived price. An empty status defaults
// to PENDING; any valid status is accepted as an initial state.
func New(
	clientID, roomID uuid.UUID,
	stay Stay,
	numberOfGuests int,
	pricePerNightCents int64,
	currency string,
	specialRequests string,
	status Status,
) (*Reservation, error) {
	if clientID == uuid.Nil {
		return nil, domain.NewValidationError("client ID is required")
	}
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if numberOfGuests < MinGuests || numberOfGuests > MaxGuests {
		return nil, domain.NewValidationError(fmt.Sprintf("number of guests must be between %d and %d", MinGuests, MaxGuests))
	}
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid reservation status: %s", status))
	}

	now := time.Now().UTC()
	return &Reservation{
		id:              uuid.New(),
		clientID:        clientID,
		roomID:          roomID,
		stay:            stay,
		numberOfGuests:  numberOfGuests,
		totalPriceCents: stay.TotalPriceCents(pricePerNightCents),
		currency:        currency,
		status:          status,
		specialRequests: specialRequests,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Reservation from persistence data (no validation).
func Reconstruct(
	id, clientID, roomID uuid.UUID,
	stay Stay,
	numberOfGuests int,
	totalPriceCents int64,
	currency string,
	status Status,
	specialRequests string,
	version int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		clientID:        clientID,
		roomID:          roomID,
		stay:            stay,
		numberOfGuests:  numberOfGuests,
		totalPriceCents: totalPriceCents,
		currency:        currency,
		status:          status,
		specialRequests: specialRequests,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) ClientID() uuid.UUID     { return r.clientID }
func (r *Reservation) RoomID() uuid.UUID       { return r.roomID }
func (r *Reservation) Stay() Stay              { return r.stay }
func (r *Reservation) CheckInDate() Date       { return r.stay.CheckIn }
func (r *Reservation) CheckOutDate() Date      { return r.stay.CheckOut }
func (r *Reservation) NumberOfGuests() int     { return r.numberOfGuests }
func (r *Reservation) TotalPriceCents() int64  { return r.totalPriceCents }
func (r *Reservation) Currency() string        { return r.currency }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) SpecialRequests() string { return r.specialRequests }
func (r *Reservation) Version() int64          { return r.version }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }

// IsActive reports whether the reservation still occupies its room.
func (r *Reservation) IsActive() bool {
	return r.status != StatusCancelled
}

// --- Behavior ---

// Rebook moves the reservation to a room and stay, recomputing the total
// price from the room's nightly rate.
func (r *Reservation) Rebook(roomID uuid.UUID, stay Stay, pricePerNightCents int64) {
	r.roomID = roomID
	r.stay = stay
	r.totalPriceCents = stay.TotalPriceCents(pricePerNightCents)
	r.updatedAt = time.Now().UTC()
}

// ReassignClient points the reservation at a different client.
func (r *Reservation) ReassignClient(clientID uuid.UUID) {
	r.clientID = clientID
	r.updatedAt = time.Now().UTC()
}

// SetGuests updates the guest count within the global bounds.
func (r *Reservation) SetGuests(n int) error {
	if n < MinGuests || n > MaxGuests {
		return domain.NewValidationError(fmt.Sprintf("number of guests must be between %d and %d", MinGuests, MaxGuests))
	}
	r.numberOfGuests = n
	r.updatedAt = time.Now().UTC()
	return nil
}

// SetSpecialRequests replaces the free-text special requests.
func (r *Reservation) SetSpecialRequests(s string) {
	r.specialRequests = s
	r.updatedAt = time.Now().UTC()
}

// TransitionTo moves the reservation to the target status through the state
// machine. Setting the current status again is a no-op.
func (r *Reservation) TransitionTo(target Status) error {
	if target == r.status {
		return nil
	}
	if !r.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(r.status), string(target))
	}
	r.status = target
	r.updatedAt = time.Now().UTC()
	return nil
}

// Confirm transitions a pending reservation to CONFIRMED.
func (r *Reservation) Confirm() error {
	return r.TransitionTo(StatusConfirmed)
}

// Cancel force-sets the status to CANCELLED regardless of the current state.
// Cancelling an already-cancelled reservation is a no-op.
func (r *Reservation) Cancel() {
	if r.status == StatusCancelled {
		return
	}
	r.status = StatusCancelled
	r.updatedAt = time.Now().UTC()
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}
