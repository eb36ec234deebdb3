package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type ListFilter struct {
	GuestID    *uuid.UUID
	PropertyID *uuid.UUID
	Status     string
	Limit      int
	Offset     int
}

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Any error rolls it back.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Property --------
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	// LockProperty loads the property with a row lock held until the
	// surrounding transaction ends.
	LockProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetShortTermRental(ctx context.Context, propertyID uuid.UUID) (*models.ShortTermRental, error)

	// -------- Availability --------
	FetchBlocks(ctx context.Context, propertyID uuid.UUID, r DateRange) ([]models.PropertyAvailability, error)
	FetchActiveBookings(ctx context.Context, propertyID uuid.UUID, r DateRange) ([]models.BookingRequest, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.BookingRequest) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.BookingRequest, error)
	// LockBooking re-reads the booking with a row lock held until the
	// surrounding transaction ends.
	LockBooking(ctx context.Context, id uuid.UUID) (*models.BookingRequest, error)
	UpdateBooking(ctx context.Context, b *models.BookingRequest) error
	ListBookings(ctx context.Context, f ListFilter) ([]models.BookingRequest, int64, error)
	ListConfirmedEndingBy(ctx context.Context, day models.Date) ([]models.BookingRequest, error)
	// MarkCompleted completes the booking only if it is still confirmed and
	// reports whether it did.
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}
