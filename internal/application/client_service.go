package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	clientDomain "github.com/grandlux-hotels/service-reservation/internal/domain/client"
)

// CreateClientRequest is the request DTO for registering a client.
type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

// UpdateClientRequest is the request DTO for partially updating a client.
type UpdateClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ClientDTO is the API response representation of a client.
type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientService implements use cases for the client directory.
type ClientService struct {
	clients clientDomain.Repository
	logger  *zap.Logger
}

// NewClientService creates a new ClientService.
func NewClientService(clients clientDomain.Repository, logger *zap.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

// CreateClient registers a client in the directory.
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientDTO, error) {
	cli, err := clientDomain.New(req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, cli); err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.logger.Info("client created", zap.String("client_id", cli.ID().String()))
	dto := toClientDTO(cli)
	return &dto, nil
}

// GetClient returns a single client by ID.
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	cli, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toClientDTO(cli)
	return &dto, nil
}

// ListClients returns the whole directory.
func (s *ClientService) ListClients(ctx context.Context) ([]ClientDTO, error) {
	clients, err := s.clients.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	dtos := make([]ClientDTO, len(clients))
	for i, cli := range clients {
		dtos[i] = toClientDTO(cli)
	}
	return dtos, nil
}

// UpdateClient applies partial changes to a client.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientDTO, error) {
	cli, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cli.Update(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, cli); err != nil {
		return nil, err
	}

	s.logger.Info("client updated", zap.String("client_id", id.String()))
	dto := toClientDTO(cli)
	return &dto, nil
}

// DeleteClient removes a client from the directory.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}

func toClientDTO(cli *clientDomain.Client) ClientDTO {
	return ClientDTO{
		ID:        cli.ID(),
		FirstName: cli.FirstName(),
		LastName:  cli.LastName(),
		Email:     cli.Email(),
		Phone:     cli.Phone(),
		CreatedAt: cli.CreatedAt(),
		UpdatedAt: cli.UpdatedAt(),
	}
}
