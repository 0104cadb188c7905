package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	clientDomain "github.com/grandlux-hotels/service-reservation/internal/domain/client"
	"github.com/grandlux-hotels/service-reservation/internal/domain/reservation"
	roomDomain "github.com/grandlux-hotels/service-reservation/internal/domain/room"
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
	"github.com/grandlux-hotels/service-reservation/pkg/kafka"
)

// ReservationRequest carries the fields for creating or updating a
// reservation. Update uses the same shape as create.
type ReservationRequest struct {
	ClientID        uuid.UUID        `json:"client_id" binding:"required"`
	RoomID          uuid.UUID        `json:"room_id" binding:"required"`
	CheckInDate     reservation.Date `json:"check_in_date" binding:"required"`
	CheckOutDate    reservation.Date `json:"check_out_date" binding:"required"`
	NumberOfGuests  int              `json:"number_of_guests" binding:"required,min=1,max=10"`
	SpecialRequests string           `json:"special_requests"`
	Status          string           `json:"status"`
}

// ClientInfo is the client snapshot embedded in a reservation response.
type ClientInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
}

// RoomInfo is the room snapshot embedded in a reservation response.
type RoomInfo struct {
	ID                 uuid.UUID `json:"id"`
	RoomNumber         string    `json:"room_number"`
	RoomType           string    `json:"room_type"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	Capacity           int       `json:"capacity"`
	Amenities          []string  `json:"amenities,omitempty"`
}

// ReservationDTO is the response representation of a reservation, enriched
// with current client and room snapshots.
type ReservationDTO struct {
	ID              uuid.UUID        `json:"id"`
	Client          ClientInfo       `json:"client"`
	Room            RoomInfo         `json:"room"`
	CheckInDate     reservation.Date `json:"check_in_date"`
	CheckOutDate    reservation.Date `json:"check_out_date"`
	NumberOfGuests  int              `json:"number_of_guests"`
	TotalPriceCents int64            `json:"total_price_cents"`
	Currency        string           `json:"currency"`
	Status          string           `json:"status"`
	SpecialRequests string           `json:"special_requests,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ReservationStatsDTO holds reservation counts for the admin surface.
type ReservationStatsDTO struct {
	TotalReservations int64            `json:"total_reservations"`
	ByStatus          map[string]int64 `json:"by_status"`
}

// ReservationService is the booking engine: it admits requested stays
// against existing bookings, derives prices, and drives the reservation
// lifecycle.
type ReservationService struct {
	reservations reservation.Repository
	rooms        roomDomain.Repository
	clients      clientDomain.Repository
	locks        *roomLocks
	producer     EventPublisher
	logger       *zap.Logger
}

// NewReservationService creates the booking engine.
func NewReservationService(
	reservations reservation.Repository,
	rooms roomDomain.Repository,
	clients clientDomain.Repository,
	producer EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		clients:      clients,
		locks:        newRoomLocks(),
		producer:     producer,
		logger:       logger,
	}
}

// CreateReservation admits a requested stay. Preconditions are checked in
// order: date ordering, client existence, room existence, then the conflict
// check, which is held atomic with the insert by the per-room lock.
func (s *ReservationService) CreateReservation(ctx context.Context, req ReservationRequest) (*ReservationDTO, error) {
	stay, err := reservation.NewStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	status, err := parseRequestStatus(req.Status)
	if err != nil {
		return nil, err
	}

	cli, err := s.clients.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	rm, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(rm.ID())
	defer unlock()

	conflicts, err := s.reservations.FindConflicting(ctx, rm.ID(), stay, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, domain.NewConflictError(fmt.Sprintf(
			"room %s is not available for %s to %s", rm.RoomNumber(), stay.CheckIn, stay.CheckOut))
	}

	res, err := reservation.New(
		cli.ID(), rm.ID(), stay,
		req.NumberOfGuests,
		rm.PricePerNightCents(), rm.Currency(),
		req.SpecialRequests,
		status,
	)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", res.ID().String()),
		zap.String("room_number", rm.RoomNumber()),
		zap.Int("nights", stay.Nights()),
	)
	s.publishReservationEvent(ctx, ReservationCreated, res)

	dto := toReservationDTO(res, cli, rm)
	return &dto, nil
}

// GetReservation returns a reservation enriched with current client and
// room snapshots.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, res)
}

// ListReservations returns every reservation, enriched as in GetReservation.
func (s *ReservationService) ListReservations(ctx context.Context) ([]ReservationDTO, error) {
	all, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	clientCache := make(map[uuid.UUID]*clientDomain.Client)
	roomCache := make(map[uuid.UUID]*roomDomain.Room)

	dtos := make([]ReservationDTO, 0, len(all))
	for _, res := range all {
		cli, ok := clientCache[res.ClientID()]
		if !ok {
			cli, err = s.clients.FindByID(ctx, res.ClientID())
			if err != nil {
				return nil, err
			}
			clientCache[res.ClientID()] = cli
		}
		rm, ok := roomCache[res.RoomID()]
		if !ok {
			rm, err = s.rooms.FindByID(ctx, res.RoomID())
			if err != nil {
				return nil, err
			}
			roomCache[res.RoomID()] = rm
		}
		dtos = append(dtos, toReservationDTO(res, cli, rm))
	}
	return dtos, nil
}

// UpdateReservation applies a full update. The conflict check re-runs only
// when the room or dates changed, excluding the reservation itself.
func (s *ReservationService) UpdateReservation(ctx context.Context, id uuid.UUID, req ReservationRequest) (*ReservationDTO, error) {
	existing, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stay, err := reservation.NewStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	roomChanged := existing.RoomID() != req.RoomID
	windowChanged := roomChanged || !existing.Stay().Equal(stay)

	if windowChanged {
		unlock := s.locks.Lock(req.RoomID)
		defer unlock()

		conflicts, err := s.reservations.FindConflicting(ctx, req.RoomID, stay, existing.ID())
		if err != nil {
			return nil, fmt.Errorf("conflict check failed: %w", err)
		}
		if len(conflicts) > 0 {
			return nil, domain.NewConflictError(fmt.Sprintf(
				"room is not available for %s to %s", stay.CheckIn, stay.CheckOut))
		}
	}

	if existing.ClientID() != req.ClientID {
		cli, err := s.clients.FindByID(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		existing.ReassignClient(cli.ID())
	}

	// The effective room is fetched even when unchanged: the total price is
	// recomputed from its current nightly rate.
	rm, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	existing.Rebook(rm.ID(), stay, rm.PricePerNightCents())
	if err := existing.SetGuests(req.NumberOfGuests); err != nil {
		return nil, err
	}
	existing.SetSpecialRequests(req.SpecialRequests)

	if req.Status != "" {
		status, err := reservation.ParseStatus(req.Status)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		if err := existing.TransitionTo(status); err != nil {
			return nil, err
		}
	}

	existing.IncrementVersion()
	if err := s.reservations.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info("reservation updated", zap.String("reservation_id", id.String()))
	s.publishReservationEvent(ctx, ReservationUpdated, existing)

	cli, err := s.clients.FindByID(ctx, existing.ClientID())
	if err != nil {
		return nil, err
	}
	dto := toReservationDTO(existing, cli, rm)
	return &dto, nil
}

// CancelReservation force-sets the status to CANCELLED. Cancelling an
// already-cancelled reservation succeeds without changing state.
func (s *ReservationService) CancelReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res.Cancel()
	res.IncrementVersion()
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("reservation cancelled", zap.String("reservation_id", id.String()))
	s.publishReservationEvent(ctx, ReservationCancelled, res)

	return s.enrich(ctx, res)
}

// ConfirmReservation transitions a pending reservation to CONFIRMED. It is
// driven by the front-desk confirmation consumer.
func (s *ReservationService) ConfirmReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := res.Confirm(); err != nil {
		return nil, err
	}

	res.IncrementVersion()
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("reservation confirmed", zap.String("reservation_id", id.String()))
	s.publishReservationEvent(ctx, ReservationConfirmed, res)

	return s.enrich(ctx, res)
}

// DeleteReservation removes a reservation permanently. No cascading side
// effects on client or room.
func (s *ReservationService) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	exists, err := s.reservations.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check reservation existence: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError("Reservation", id.String())
	}

	if err := s.reservations.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("reservation deleted", zap.String("reservation_id", id.String()))
	s.publishDeleted(ctx, id)
	return nil
}

// GetReservationStats returns reservation counts grouped by status.
func (s *ReservationService) GetReservationStats(ctx context.Context) (*ReservationStatsDTO, error) {
	counts, err := s.reservations.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &ReservationStatsDTO{TotalReservations: total, ByStatus: counts}, nil
}

// --- Helpers ---

func parseRequestStatus(s string) (reservation.Status, error) {
	if s == "" {
		return "", nil
	}
	status, err := reservation.ParseStatus(s)
	if err != nil {
		return "", domain.NewValidationError(err.Error())
	}
	return status, nil
}

func (s *ReservationService) enrich(ctx context.Context, res *reservation.Reservation) (*ReservationDTO, error) {
	cli, err := s.clients.FindByID(ctx, res.ClientID())
	if err != nil {
		return nil, err
	}
	rm, err := s.rooms.FindByID(ctx, res.RoomID())
	if err != nil {
		return nil, err
	}
	dto := toReservationDTO(res, cli, rm)
	return &dto, nil
}

func toReservationDTO(res *reservation.Reservation, cli *clientDomain.Client, rm *roomDomain.Room) ReservationDTO {
	return ReservationDTO{
		ID: res.ID(),
		Client: ClientInfo{
			ID:        cli.ID(),
			FirstName: cli.FirstName(),
			LastName:  cli.LastName(),
			Email:     cli.Email(),
			Phone:     cli.Phone(),
		},
		Room: RoomInfo{
			ID:                 rm.ID(),
			RoomNumber:         rm.RoomNumber(),
			RoomType:           string(rm.RoomType()),
			PricePerNightCents: rm.PricePerNightCents(),
			Capacity:           rm.Capacity(),
			Amenities:          rm.Amenities(),
		},
		CheckInDate:     res.CheckInDate(),
		CheckOutDate:    res.CheckOutDate(),
		NumberOfGuests:  res.NumberOfGuests(),
		TotalPriceCents: res.TotalPriceCents(),
		Currency:        res.Currency(),
		Status:          string(res.Status()),
		SpecialRequests: res.SpecialRequests(),
		CreatedAt:       res.CreatedAt(),
		UpdatedAt:       res.UpdatedAt(),
	}
}

func (s *ReservationService) publishReservationEvent(ctx context.Context, eventType string, res *reservation.Reservation) {
	evt := ReservationEvent{
		ReservationID:   res.ID(),
		ClientID:        res.ClientID(),
		RoomID:          res.RoomID(),
		CheckInDate:     res.CheckInDate().String(),
		CheckOutDate:    res.CheckOutDate().String(),
		TotalPriceCents: res.TotalPriceCents(),
		Currency:        res.Currency(),
		Status:          string(res.Status()),
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, eventType, res.ID().String(), evt)
}

func (s *ReservationService) publishDeleted(ctx context.Context, id uuid.UUID) {
	evt := ReservationDeletedEvent{ReservationID: id, OccurredAt: time.Now().UTC()}
	s.publishEvent(ctx, ReservationDeleted, id.String(), evt)
}

// publishEvent is fire-and-forget: a bus outage must not fail the booking
// call that already committed.
func (s *ReservationService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(EventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, TopicReservationEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
