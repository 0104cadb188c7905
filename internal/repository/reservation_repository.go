package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grandlux-hotels/service-reservation/internal/domain/reservation"
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID `gorm:"type:uuid;index;not null"`
	RoomID          uuid.UUID `gorm:"type:uuid;index;not null"`
	CheckInDate     time.Time `gorm:"type:date;not null;index"`
	CheckOutDate    time.Time `gorm:"type:date;not null"`
	NumberOfGuests  int       `gorm:"not null"`
	TotalPriceCents int64     `gorm:"not null"`
	Currency        string    `gorm:"not null;size:3"`
	Status          string    `gorm:"not null;size:20;index"`
	SpecialRequests string    `gorm:"size:1000"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of the
// reservation repository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID retrieves a reservation by its unique identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Reservation", id.String())
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model), nil
}

// FindAll retrieves every reservation in creation order.
func (r *GormReservationRepository) FindAll(ctx context.Context) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return toDomainReservations(models), nil
}

// FindByClientID retrieves reservations referencing the client.
func (r *GormReservationRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations by client: %w", err)
	}
	return toDomainReservations(models), nil
}

// FindByRoomID retrieves reservations referencing the room.
func (r *GormReservationRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations by room: %w", err)
	}
	return toDomainReservations(models), nil
}

// FindConflicting returns non-cancelled reservations on the room whose
// window collides with stay. Boundaries are inclusive on both sides, so a
// stay whose check-in equals another's check-out conflicts; this mirrors
// reservation.Stay.ConflictsWith.
func (r *GormReservationRepository) FindConflicting(ctx context.Context, roomID uuid.UUID, stay reservation.Stay, excludeID uuid.UUID) ([]*reservation.Reservation, error) {
	checkIn := stay.CheckIn.Time()
	checkOut := stay.CheckOut.Time()

	q := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(reservation.StatusCancelled)).
		Where(
			"(check_in_date BETWEEN ? AND ?) OR (check_out_date BETWEEN ? AND ?) OR (? BETWEEN check_in_date AND check_out_date)",
			checkIn, checkOut, checkIn, checkOut, checkIn,
		)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var models []ReservationModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find conflicting reservations: %w", err)
	}
	return toDomainReservations(models), nil
}

// ExistsByID reports whether a reservation with the given ID exists.
func (r *GormReservationRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check reservation existence: %w", err)
	}
	return count > 0, nil
}

// Save persists a new reservation.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	model := toReservationModel(res)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// Update persists changes with an optimistic version check: the row is only
// written when its stored version matches the version before IncrementVersion.
func (r *GormReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	model := toReservationModel(res)

	expectedVersion := res.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"client_id":         model.ClientID,
			"room_id":           model.RoomID,
			"check_in_date":     model.CheckInDate,
			"check_out_date":    model.CheckOutDate,
			"number_of_guests":  model.NumberOfGuests,
			"total_price_cents": model.TotalPriceCents,
			"currency":          model.Currency,
			"status":            model.Status,
			"special_requests":  model.SpecialRequests,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("reservation was modified by another transaction")
	}
	return nil
}

// Delete removes a reservation permanently.
func (r *GormReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ReservationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Reservation", id.String())
	}
	return nil
}

// CountByStatus returns reservation counts grouped by status.
func (r *GormReservationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion helpers ---

func toReservationModel(res *reservation.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:              res.ID(),
		ClientID:        res.ClientID(),
		RoomID:          res.RoomID(),
		CheckInDate:     res.CheckInDate().Time(),
		CheckOutDate:    res.CheckOutDate().Time(),
		NumberOfGuests:  res.NumberOfGuests(),
		TotalPriceCents: res.TotalPriceCents(),
		Currency:        res.Currency(),
		Status:          string(res.Status()),
		SpecialRequests: res.SpecialRequests(),
		Version:         res.Version(),
		CreatedAt:       res.CreatedAt(),
		UpdatedAt:       res.UpdatedAt(),
	}
}

func toDomainReservation(m *ReservationModel) *reservation.Reservation {
	stay := reservation.Stay{
		CheckIn:  reservation.DateOf(m.CheckInDate),
		CheckOut: reservation.DateOf(m.CheckOutDate),
	}
	return reservation.Reconstruct(
		m.ID, m.ClientID, m.RoomID,
		stay,
		m.NumberOfGuests,
		m.TotalPriceCents,
		m.Currency,
		reservation.Status(m.Status),
		m.SpecialRequests,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainReservations(models []ReservationModel) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(models))
	for i := range models {
		out[i] = toDomainReservation(&models[i])
	}
	return out
}
