package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for the client directory.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context) ([]*Client, error)
	Save(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
