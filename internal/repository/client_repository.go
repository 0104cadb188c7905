package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	clientDomain "github.com/grandlux-hotels/service-reservation/internal/domain/client"
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// ClientModel is the GORM model for the clients table.
type ClientModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"not null;size:100"`
	LastName  string    `gorm:"not null;size:100"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Phone     string    `gorm:"size:30"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ClientModel) TableName() string {
	return "clients"
}

// GormClientRepository is the GORM-based implementation of the client repository.
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository.
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID retrieves a client by its unique identifier.
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	var model ClientModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Client", id.String())
		}
		return nil, fmt.Errorf("failed to find client by ID: %w", err)
	}
	return toDomainClient(&model), nil
}

// FindAll retrieves the whole directory ordered by last name.
func (r *GormClientRepository) FindAll(ctx context.Context) ([]*clientDomain.Client, error) {
	var models []ClientModel
	if err := r.db.WithContext(ctx).Order("last_name, first_name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*clientDomain.Client, len(models))
	for i := range models {
		clients[i] = toDomainClient(&models[i])
	}
	return clients, nil
}

// Save persists a new client.
func (r *GormClientRepository) Save(ctx context.Context, cli *clientDomain.Client) error {
	if err := r.db.WithContext(ctx).Create(toClientModel(cli)).Error; err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// Update persists changes with an optimistic version check.
func (r *GormClientRepository) Update(ctx context.Context, cli *clientDomain.Client) error {
	model := toClientModel(cli)

	expectedVersion := cli.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ClientModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"first_name": model.FirstName,
			"last_name":  model.LastName,
			"email":      model.Email,
			"phone":      model.Phone,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("client was modified by another transaction")
	}
	return nil
}

// Delete removes a client from the directory.
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ClientModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Client", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toClientModel(cli *clientDomain.Client) *ClientModel {
	return &ClientModel{
		ID:        cli.ID(),
		FirstName: cli.FirstName(),
		LastName:  cli.LastName(),
		Email:     cli.Email(),
		Phone:     cli.Phone(),
		Version:   cli.Version(),
		CreatedAt: cli.CreatedAt(),
		UpdatedAt: cli.UpdatedAt(),
	}
}

func toDomainClient(m *ClientModel) *clientDomain.Client {
	return clientDomain.Reconstruct(
		m.ID,
		m.FirstName, m.LastName, m.Email, m.Phone,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
