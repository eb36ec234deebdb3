package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// errNotVisible hides bookings from users who are neither guest nor owner.
var errNotVisible = httperr.ErrNotFound("booking_not_found")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.BookingRequest, int64, error) {

	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.repo.ListBookings(ctx, f)
}

// ForProperty lists a property's bookings for its owner.
func (uc *ListBookings) ForProperty(
	ctx context.Context,
	propertyID uuid.UUID,
	actorID uuid.UUID,
	f domain.ListFilter,
) ([]models.BookingRequest, int64, error) {

	p, err := uc.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	if p.OwnerID != actorID {
		return nil, 0, httperr.ErrForbidden("not_owner")
	}
	f.PropertyID = &propertyID
	f.GuestID = nil
	return uc.Execute(ctx, f)
}

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

// Execute returns the booking when the actor is its guest or the property
// owner.
func (uc *GetBooking) Execute(
	ctx context.Context,
	id uuid.UUID,
	actorID uuid.UUID,
) (*models.BookingRequest, error) {

	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID == actorID {
		return b, nil
	}
	p, err := uc.repo.GetProperty(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, errNotVisible
	}
	return b, nil
}
