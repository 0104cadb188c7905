package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grandlux-hotels/service-reservation/internal/domain/reservation"
	roomDomain "github.com/grandlux-hotels/service-reservation/internal/domain/room"
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// CreateRoomRequest is the request DTO for adding a room to the catalog.
type CreateRoomRequest struct {
	RoomNumber         string   `json:"room_number" binding:"required"`
	RoomType           string   `json:"room_type" binding:"required"`
	PricePerNightCents int64    `json:"price_per_night_cents" binding:"required,gt=0"`
	Currency           string   `json:"currency"`
	Capacity           int      `json:"capacity" binding:"required,gt=0"`
	Description        string   `json:"description"`
	Amenities          []string `json:"amenities"`
}

// UpdateRoomRequest is the request DTO for partially updating a room.
type UpdateRoomRequest struct {
	RoomNumber         string   `json:"room_number"`
	RoomType           string   `json:"room_type"`
	PricePerNightCents int64    `json:"price_per_night_cents"`
	Capacity           int      `json:"capacity"`
	Description        string   `json:"description"`
	Amenities          []string `json:"amenities"`
	Available          *bool    `json:"available"`
}

// RoomDTO is the API response representation of a room.
type RoomDTO struct {
	ID                 uuid.UUID `json:"id"`
	RoomNumber         string    `json:"room_number"`
	RoomType           string    `json:"room_type"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	Currency           string    `json:"currency"`
	Capacity           int       `json:"capacity"`
	Description        string    `json:"description,omitempty"`
	Amenities          []string  `json:"amenities,omitempty"`
	Available          bool      `json:"available"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultCurrency applies when a room is created without one.
const DefaultCurrency = "EUR"

// RoomService implements use cases for the room catalog.
type RoomService struct {
	rooms        roomDomain.Repository
	reservations reservation.Repository
	logger       *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(rooms roomDomain.Repository, reservations reservation.Repository, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, reservations: reservations, logger: logger}
}

// CreateRoom adds a room to the catalog.
func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomDTO, error) {
	roomType, err := roomDomain.ParseType(req.RoomType)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	rm, err := roomDomain.New(
		req.RoomNumber, roomType,
		req.PricePerNightCents, currency,
		req.Capacity, req.Description, req.Amenities,
	)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.Save(ctx, rm); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	s.logger.Info("room created",
		zap.String("room_id", rm.ID().String()),
		zap.String("room_number", rm.RoomNumber()),
	)
	dto := toRoomDTO(rm)
	return &dto, nil
}

// GetRoom returns a single room by ID.
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomDTO, error) {
	rm, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRoomDTO(rm)
	return &dto, nil
}

// ListRooms returns the whole catalog.
func (s *RoomService) ListRooms(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.rooms.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm)
	}
	return dtos, nil
}

// UpdateRoom applies partial changes to a room.
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	rm, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var roomType roomDomain.Type
	if req.RoomType != "" {
		roomType, err = roomDomain.ParseType(req.RoomType)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	}

	if err := rm.Update(req.RoomNumber, roomType, req.PricePerNightCents, req.Capacity, req.Description, req.Amenities, req.Available); err != nil {
		return nil, err
	}
	if err := s.rooms.Update(ctx, rm); err != nil {
		return nil, err
	}

	s.logger.Info("room updated", zap.String("room_id", id.String()))
	dto := toRoomDTO(rm)
	return &dto, nil
}

// DeleteRoom removes a room from the catalog. Rooms still referenced by
// active reservations cannot be deleted.
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.rooms.FindByID(ctx, id); err != nil {
		return err
	}

	existing, err := s.reservations.FindByRoomID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check room reservations: %w", err)
	}
	for _, res := range existing {
		if res.IsActive() {
			return domain.NewConflictError("room has active reservations and cannot be deleted")
		}
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("room deleted", zap.String("room_id", id.String()))
	return nil
}

func toRoomDTO(rm *roomDomain.Room) RoomDTO {
	return RoomDTO{
		ID:                 rm.ID(),
		RoomNumber:         rm.RoomNumber(),
		RoomType:           string(rm.RoomType()),
		PricePerNightCents: rm.PricePerNightCents(),
		Currency:           rm.Currency(),
		Capacity:           rm.Capacity(),
		Description:        rm.Description(),
		Amenities:          rm.Amenities(),
		Available:          rm.IsAvailable(),
		CreatedAt:          rm.CreatedAt(),
		UpdatedAt:          rm.UpdatedAt(),
	}
}
