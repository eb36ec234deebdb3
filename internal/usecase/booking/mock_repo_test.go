package booking

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *MockRepo) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockRepo) LockProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockRepo) GetShortTermRental(ctx context.Context, propertyID uuid.UUID) (*models.ShortTermRental, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShortTermRental), args.Error(1)
}

func (m *MockRepo) FetchBlocks(ctx context.Context, propertyID uuid.UUID, r domain.DateRange) ([]models.PropertyAvailability, error) {
	args := m.Called(ctx, propertyID, r)
	return args.Get(0).([]models.PropertyAvailability), args.Error(1)
}

func (m *MockRepo) FetchActiveBookings(ctx context.Context, propertyID uuid.UUID, r domain.DateRange) ([]models.BookingRequest, error) {
	args := m.Called(ctx, propertyID, r)
	return args.Get(0).([]models.BookingRequest), args.Error(1)
}

func (m *MockRepo) CreateBooking(ctx context.Context, b *models.BookingRequest) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepo) GetBooking(ctx context.Context, id uuid.UUID) (*models.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRequest), args.Error(1)
}

func (m *MockRepo) LockBooking(ctx context.Context, id uuid.UUID) (*models.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRequest), args.Error(1)
}

func (m *MockRepo) UpdateBooking(ctx context.Context, b *models.BookingRequest) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepo) ListBookings(ctx context.Context, f domain.ListFilter) ([]models.BookingRequest, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.BookingRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepo) ListConfirmedEndingBy(ctx context.Context, day models.Date) ([]models.BookingRequest, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]models.BookingRequest), args.Error(1)
}

func (m *MockRepo) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(quietLogger())
}
