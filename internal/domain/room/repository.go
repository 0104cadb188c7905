package room

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for the room catalog.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindAll(ctx context.Context) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}
