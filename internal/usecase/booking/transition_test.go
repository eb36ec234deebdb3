package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func pendingBooking(p *models.Property) *models.BookingRequest {
	b := &models.BookingRequest{
		PropertyID:    p.ID,
		GuestID:       uuid.New(),
		CheckInDate:   date("2025-06-01"),
		CheckOutDate:  date("2025-06-03"),
		BookingStatus: "pending",
	}
	b.ID = uuid.New()
	return b
}

func TestOwnerConfirms(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)
	p := shortTerm("100")
	b := pendingBooking(p)

	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetBooking", ctx, b.ID).Return(b, nil)
	repo.On("LockProperty", ctx, p.ID).Return(p, nil)
	repo.On("LockBooking", ctx, b.ID).Return(b, nil)
	repo.On("UpdateBooking", ctx, b).Return(nil)

	uc := NewTransitionBooking(repo, newDispatcher())
	fixed := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	got, err := uc.Execute(ctx, TransitionInput{BookingID: b.ID, ActorID: p.OwnerID, Action: ActionConfirm})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.BookingStatus)
	assert.Equal(t, fixed, *got.ConfirmedAt)
}

func TestGuestMayOnlyCancel(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)
	p := shortTerm("100")
	b := pendingBooking(p)

	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetBooking", ctx, b.ID).Return(b, nil)
	repo.On("LockProperty", ctx, p.ID).Return(p, nil)
	repo.On("LockBooking", ctx, b.ID).Return(b, nil)
	repo.On("UpdateBooking", ctx, b).Return(nil)

	uc := NewTransitionBooking(repo, newDispatcher())

	_, err := uc.Execute(ctx, TransitionInput{BookingID: b.ID, ActorID: b.GuestID, Action: ActionConfirm})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	got, err := uc.Execute(ctx, TransitionInput{BookingID: b.ID, ActorID: b.GuestID, Action: ActionCancel})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.BookingStatus)

	_, err = uc.Execute(ctx, TransitionInput{BookingID: b.ID, ActorID: p.OwnerID, Action: ActionConfirm})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompletePastBookings(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)

	fixed := time.Date(2025, 6, 10, 3, 15, 0, 0, time.UTC)
	due := []models.BookingRequest{
		{BookingStatus: "confirmed", CheckOutDate: date("2025-06-09")},
		{BookingStatus: "cancelled", CheckOutDate: date("2025-06-10")},
	}
	due[0].ID, due[1].ID = uuid.New(), uuid.New()
	repo.On("ListConfirmedEndingBy", ctx, date("2025-06-10")).Return(due, nil)
	repo.On("MarkCompleted", ctx, due[0].ID, fixed).Return(true, nil)

	uc := NewCompletePastBookings(repo, newDispatcher(), quietLogger())
	uc.now = func() time.Time { return fixed }

	n, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertNumberOfCalls(t, "MarkCompleted", 1)
	repo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
}

func TestCompletePastBookingsSkipsRowCancelledMeanwhile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)

	fixed := time.Date(2025, 6, 10, 3, 15, 0, 0, time.UTC)
	due := []models.BookingRequest{{BookingStatus: "confirmed", CheckOutDate: date("2025-06-09")}}
	due[0].ID = uuid.New()
	repo.On("ListConfirmedEndingBy", ctx, date("2025-06-10")).Return(due, nil)
	repo.On("MarkCompleted", ctx, due[0].ID, fixed).Return(false, nil)

	uc := NewCompletePastBookings(repo, newDispatcher(), quietLogger())
	uc.now = func() time.Time { return fixed }

	n, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTransitionUsesStatusReadUnderLock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)
	p := shortTerm("100")
	seen := pendingBooking(p)

	// Cancelled by another request between the first read and the lock.
	locked := *seen
	locked.BookingStatus = "cancelled"

	repo.On("Transaction", ctx).Return(nil)
	repo.On("GetBooking", ctx, seen.ID).Return(seen, nil)
	repo.On("LockProperty", ctx, p.ID).Return(p, nil)
	repo.On("LockBooking", ctx, seen.ID).Return(&locked, nil)

	uc := NewTransitionBooking(repo, newDispatcher())
	_, err := uc.Execute(ctx, TransitionInput{BookingID: seen.ID, ActorID: p.OwnerID, Action: ActionConfirm})

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	repo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
}

func TestListBookingsClampsPage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)
	guest := uuid.New()

	repo.On("ListBookings", ctx, domain.ListFilter{GuestID: &guest, Limit: MaxPageSize}).
		Return([]models.BookingRequest{}, int64(0), nil)

	_, _, err := NewListBookings(repo).Execute(ctx, domain.ListFilter{GuestID: &guest, Limit: 1000, Offset: -5})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetBookingVisibility(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepo)
	p := shortTerm("100")
	b := pendingBooking(p)

	repo.On("GetBooking", ctx, b.ID).Return(b, nil)
	repo.On("GetProperty", ctx, p.ID).Return(p, nil)

	uc := NewGetBooking(repo)

	_, err := uc.Execute(ctx, b.ID, b.GuestID)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, b.ID, p.OwnerID)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, b.ID, uuid.New())
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
