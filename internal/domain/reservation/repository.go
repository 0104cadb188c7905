package reservation

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for reservations.
type Repository interface {
	// FindByID retrieves a reservation by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindAll retrieves every reservation, in store order.
	FindAll(ctx context.Context) ([]*Reservation, error)

	// FindByClientID retrieves reservations referencing a client.
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*Reservation, error)

	// FindByRoomID retrieves reservations referencing a room.
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*Reservation, error)

	// FindConflicting returns non-cancelled reservations on the room whose
	// window collides with stay under the inclusive-boundary rule.
	// excludeID, when not uuid.Nil, removes one reservation from the
	// conflict set (a reservation never conflicts with itself).
	FindConflicting(ctx context.Context, roomID uuid.UUID, stay Stay, excludeID uuid.UUID) ([]*Reservation, error)

	// ExistsByID reports whether a reservation with the given ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save persists a new reservation.
	Save(ctx context.Context, res *Reservation) error

	// Update persists changes with an optimistic version check.
	Update(ctx context.Context, res *Reservation) error

	// Delete removes a reservation permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns reservation counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
