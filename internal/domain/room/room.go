package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// Type classifies a room.
type Type string

const (
	TypeSingle Type = "SINGLE"
	TypeDouble Type = "DOUBLE"
	TypeSuite  Type = "SUITE"
	TypeDeluxe Type = "DELUXE"
)

// IsValid returns true if the room type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case TypeSingle, TypeDouble, TypeSuite, TypeDeluxe:
		return true
	}
	return false
}

// ParseType converts a string to a room Type, rejecting unknown values.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid room type: %s", s)
	}
	return t, nil
}

// Room is the catalog entry for a bookable room. Read-mostly from the
// booking engine's perspective.
type Room struct {
	id                 uuid.UUID
	roomNumber         string
	roomType           Type
	pricePerNightCents int64
	currency           string
	capacity           int
	description        string
	amenities          []string
	available          bool

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a room catalog entry with validated fields.
func New(
	roomNumber string,
	roomType Type,
	pricePerNightCents int64,
	currency string,
	capacity int,
	description string,
	amenities []string,
) (*Room, error) {
	if roomNumber == "" {
		return nil, domain.NewValidationError("room number is required")
	}
	if !roomType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
	}
	if pricePerNightCents <= 0 {
		return nil, domain.NewValidationError("price per night must be positive")
	}
	if capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be positive")
	}

	now := time.Now().UTC()
	return &Room{
		id:                 uuid.New(),
		roomNumber:         roomNumber,
		roomType:           roomType,
		pricePerNightCents: pricePerNightCents,
		currency:           currency,
		capacity:           capacity,
		description:        description,
		amenities:          amenities,
		available:          true,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	roomNumber string,
	roomType Type,
	pricePerNightCents int64,
	currency string,
	capacity int,
	description string,
	amenities []string,
	available bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:                 id,
		roomNumber:         roomNumber,
		roomType:           roomType,
		pricePerNightCents: pricePerNightCents,
		currency:           currency,
		capacity:           capacity,
		description:        description,
		amenities:          amenities,
		available:          available,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID             { return r.id }
func (r *Room) RoomNumber() string        { return r.roomNumber }
func (r *Room) RoomType() Type            { return r.roomType }
func (r *Room) PricePerNightCents() int64 { return r.pricePerNightCents }
func (r *Room) Currency() string          { return r.currency }
func (r *Room) Capacity() int             { return r.capacity }
func (r *Room) Description() string       { return r.description }
func (r *Room) Amenities() []string       { return r.amenities }
func (r *Room) IsAvailable() bool         { return r.available }
func (r *Room) Version() int64            { return r.version }
func (r *Room) CreatedAt() time.Time      { return r.createdAt }
func (r *Room) UpdatedAt() time.Time      { return r.updatedAt }

// Update applies partial changes to the catalog entry.
func (r *Room) Update(
	roomNumber string,
	roomType Type,
	pricePerNightCents int64,
	capacity int,
	description string,
	amenities []string,
	available *bool,
) error {
	if roomNumber != "" {
		r.roomNumber = roomNumber
	}
	if roomType != "" {
		if !roomType.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
		}
		r.roomType = roomType
	}
	if pricePerNightCents != 0 {
		if pricePerNightCents < 0 {
			return domain.NewValidationError("price per night must be positive")
		}
		r.pricePerNightCents = pricePerNightCents
	}
	if capacity != 0 {
		if capacity < 0 {
			return domain.NewValidationError("capacity must be positive")
		}
		r.capacity = capacity
	}
	if description != "" {
		r.description = description
	}
	if amenities != nil {
		r.amenities = amenities
	}
	if available != nil {
		r.available = *available
	}
	r.version++
	r.updatedAt = time.Now().UTC()
	return nil
}
