package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roomDomain "github.com/grandlux-hotels/service-reservation/internal/domain/room"
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RoomNumber         string          `gorm:"uniqueIndex;not null;size:10"`
	RoomType           string          `gorm:"not null;size:50"`
	PricePerNightCents int64           `gorm:"not null"`
	Currency           string          `gorm:"not null;size:3"`
	Capacity           int             `gorm:"not null"`
	Description        string          `gorm:"type:text"`
	Amenities          json.RawMessage `gorm:"type:jsonb"`
	Available          bool            `gorm:"not null;default:true"`
	Version            int64           `gorm:"not null;default:1"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// GormRoomRepository is the GORM-based implementation of the room repository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID retrieves a room by its unique identifier.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toDomainRoom(&model)
}

// FindAll retrieves the whole catalog ordered by room number.
func (r *GormRoomRepository) FindAll(ctx context.Context) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).Order("room_number").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i := range models {
		rm, err := toDomainRoom(&models[i])
		if err != nil {
			return nil, err
		}
		rooms[i] = rm
	}
	return rooms, nil
}

// Save persists a new room.
func (r *GormRoomRepository) Save(ctx context.Context, rm *roomDomain.Room) error {
	model, err := toRoomModel(rm)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Update persists changes with an optimistic version check.
func (r *GormRoomRepository) Update(ctx context.Context, rm *roomDomain.Room) error {
	model, err := toRoomModel(rm)
	if err != nil {
		return err
	}

	expectedVersion := rm.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"room_number":           model.RoomNumber,
			"room_type":             model.RoomType,
			"price_per_night_cents": model.PricePerNightCents,
			"currency":              model.Currency,
			"capacity":              model.Capacity,
			"description":           model.Description,
			"amenities":             model.Amenities,
			"available":             model.Available,
			"version":               model.Version,
			"updated_at":            model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("room was modified by another transaction")
	}
	return nil
}

// Delete removes a room from the catalog.
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RoomModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toRoomModel(rm *roomDomain.Room) (*RoomModel, error) {
	amenities, err := json.Marshal(rm.Amenities())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amenities: %w", err)
	}
	return &RoomModel{
		ID:                 rm.ID(),
		RoomNumber:         rm.RoomNumber(),
		RoomType:           string(rm.RoomType()),
		PricePerNightCents: rm.PricePerNightCents(),
		Currency:           rm.Currency(),
		Capacity:           rm.Capacity(),
		Description:        rm.Description(),
		Amenities:          amenities,
		Available:          rm.IsAvailable(),
		Version:            rm.Version(),
		CreatedAt:          rm.CreatedAt(),
		UpdatedAt:          rm.UpdatedAt(),
	}, nil
}

func toDomainRoom(m *RoomModel) (*roomDomain.Room, error) {
	var amenities []string
	if len(m.Amenities) > 0 {
		if err := json.Unmarshal(m.Amenities, &amenities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal amenities: %w", err)
		}
	}
	return roomDomain.Reconstruct(
		m.ID,
		m.RoomNumber,
		roomDomain.Type(m.RoomType),
		m.PricePerNightCents,
		m.Currency,
		m.Capacity,
		m.Description,
		amenities,
		m.Available,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
