package reservation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandlux-hotels/service-reservation/pkg/domain"
)

func newTestReservation(t *testing.T, status Status) *Reservation {
	t.Helper()
	stay := mustStay(t, NewDate(2026, time.March, 1), NewDate(2026, time.March, 3))
	res, err := New(uuid.New(), uuid.New(), stay, 2, 10000, "EUR", "", status)
	require.NoError(t, err)
	return res
}

func TestNew_DefaultsToPending(t *testing.T) {
	res := newTestReservation(t, "")
	assert.Equal(t, StatusPending, res.Status())
	assert.Equal(t, int64(1), res.Version())
}

func TestNew_DerivesPriceFromNightlyRate(t *testing.T) {
	res := newTestReservation(t, "")
	assert.Equal(t, int64(20000), res.TotalPriceCents())
	assert.Equal(t, "EUR", res.Currency())
}

func TestNew_AcceptsAnyValidInitialStatus(t *testing.T) {
	res := newTestReservation(t, StatusConfirmed)
	assert.Equal(t, StatusConfirmed, res.Status())
}

func TestNew_RejectsGuestCountOutOfBounds(t *testing.T) {
	stay := mustStay(t, NewDate(2026, time.March, 1), NewDate(2026, time.March, 3))

	_, err := New(uuid.New(), uuid.New(), stay, 0, 10000, "EUR", "", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = New(uuid.New(), uuid.New(), stay, 11, 10000, "EUR", "", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestNew_RejectsMissingReferences(t *testing.T) {
	stay := mustStay(t, NewDate(2026, time.March, 1), NewDate(2026, time.March, 3))

	_, err := New(uuid.Nil, uuid.New(), stay, 2, 10000, "EUR", "", "")
	assert.True(t, domain.IsValidation(err))

	_, err = New(uuid.New(), uuid.Nil, stay, 2, 10000, "EUR", "", "")
	assert.True(t, domain.IsValidation(err))
}

func TestStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
}

func TestTransitionTo_SameStatusIsNoOp(t *testing.T) {
	res := newTestReservation(t, StatusPending)
	require.NoError(t, res.TransitionTo(StatusPending))
	assert.Equal(t, StatusPending, res.Status())
}

func TestTransitionTo_RejectsInvalidTransition(t *testing.T) {
	res := newTestReservation(t, StatusCancelled)

	err := res.TransitionTo(StatusConfirmed)
	require.Error(t, err)

	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidState, domainErr.Code)
}

func TestConfirm(t *testing.T) {
	res := newTestReservation(t, StatusPending)
	require.NoError(t, res.Confirm())
	assert.Equal(t, StatusConfirmed, res.Status())

	cancelled := newTestReservation(t, StatusCancelled)
	assert.Error(t, cancelled.Confirm())
}

func TestCancel_IsIdempotent(t *testing.T) {
	res := newTestReservation(t, StatusConfirmed)

	res.Cancel()
	assert.Equal(t, StatusCancelled, res.Status())
	assert.False(t, res.IsActive())

	res.Cancel()
	assert.Equal(t, StatusCancelled, res.Status())
}

func TestRebook_RecomputesPrice(t *testing.T) {
	res := newTestReservation(t, "")

	newRoom := uuid.New()
	longer := mustStay(t, NewDate(2026, time.March, 5), NewDate(2026, time.March, 8))
	res.Rebook(newRoom, longer, 15000)

	assert.Equal(t, newRoom, res.RoomID())
	assert.Equal(t, int64(45000), res.TotalPriceCents())
}

func TestSetGuests_Bounds(t *testing.T) {
	res := newTestReservation(t, "")

	require.NoError(t, res.SetGuests(10))
	assert.Equal(t, 10, res.NumberOfGuests())

	assert.Error(t, res.SetGuests(0))
	assert.Error(t, res.SetGuests(11))
	assert.Equal(t, 10, res.NumberOfGuests())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("ARCHIVED")
	assert.Error(t, err)
}
