//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandlux-hotels/service-reservation/internal/application"
	"github.com/grandlux-hotels/service-reservation/internal/domain/reservation"
	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

// TestConfirmationRequested_ConfirmsReservation verifies that when a
// ConfirmationRequestedEvent is published to frontdesk.events, the service
// picks it up and transitions the pending reservation to CONFIRMED.
func TestConfirmationRequested_ConfirmsReservation(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	clientID := uuid.New()
	roomID := uuid.New()
	seedClientAndRoom(t, infra.DB, clientID, roomID)

	checkIn, _ := reservation.ParseDate("2026-03-01")
	checkOut, _ := reservation.ParseDate("2026-03-03")
	created, err := stack.Service.CreateReservation(context.Background(), application.ReservationRequest{
		ClientID:       clientID,
		RoomID:         roomID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 2,
	})
	require.NoError(t, err)
	require.Equal(t, string(reservation.StatusPending), created.Status)
	require.Equal(t, int64(20000), created.TotalPriceCents)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Publish ConfirmationRequestedEvent.
	evt := application.ConfirmationRequestedEvent{
		ReservationID: created.ID,
		ConfirmedBy:   "frontdesk-01",
		OccurredAt:    time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, application.TopicFrontdeskEvents,
		"service-frontdesk", application.ReservationConfirmationRequested, created.ID.String(), evt)

	// Assert: reservation transitions to CONFIRMED.
	model := waitForReservationStatus(t, infra.DB, created.ID, string(reservation.StatusConfirmed), 15*time.Second)
	assert.Equal(t, int64(20000), model.TotalPriceCents)

	// Assert: ReservationConfirmed on reservation.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, application.TopicReservationEvents,
		application.ReservationConfirmed, 15*time.Second)

	var confirmed application.ReservationEvent
	require.NoError(t, ce.ParseData(&confirmed))
	assert.Equal(t, created.ID, confirmed.ReservationID)
	assert.Equal(t, string(reservation.StatusConfirmed), confirmed.Status)
	assert.Equal(t, "2026-03-01", confirmed.CheckInDate)
	assert.Equal(t, "EUR", confirmed.Currency)
}

// TestCreateReservation_ConflictAgainstDatabase verifies that the SQL overlap
// predicate rejects a second booking whose check-in lands on an existing
// check-out day, and admits one that starts the day after.
func TestCreateReservation_ConflictAgainstDatabase(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupReservationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	clientID := uuid.New()
	roomID := uuid.New()
	seedClientAndRoom(t, infra.DB, clientID, roomID)

	request := func(checkIn, checkOut string) application.ReservationRequest {
		in, _ := reservation.ParseDate(checkIn)
		out, _ := reservation.ParseDate(checkOut)
		return application.ReservationRequest{
			ClientID:       clientID,
			RoomID:         roomID,
			CheckInDate:    in,
			CheckOutDate:   out,
			NumberOfGuests: 2,
		}
	}

	ctx := context.Background()
	_, err := stack.Service.CreateReservation(ctx, request("2026-03-01", "2026-03-03"))
	require.NoError(t, err)

	_, err = stack.Service.CreateReservation(ctx, request("2026-03-03", "2026-03-05"))
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	_, err = stack.Service.CreateReservation(ctx, request("2026-03-04", "2026-03-06"))
	require.NoError(t, err)
}
