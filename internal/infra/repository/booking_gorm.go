package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Property
// --------------------------------------------------

func (r *BookingGormRepository) GetProperty(
	ctx context.Context,
	id uuid.UUID,
) (*models.Property, error) {
	return findProperty(ctx, r.db, id, false)
}

func (r *BookingGormRepository) LockProperty(
	ctx context.Context,
	id uuid.UUID,
) (*models.Property, error) {
	return findProperty(ctx, r.db, id, true)
}

func (r *BookingGormRepository) GetShortTermRental(
	ctx context.Context,
	propertyID uuid.UUID,
) (*models.ShortTermRental, error) {

	var str models.ShortTermRental
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&str).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &str, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) FetchBlocks(
	ctx context.Context,
	propertyID uuid.UUID,
	rng domain.DateRange,
) ([]models.PropertyAvailability, error) {

	var blocks []models.PropertyAvailability
	if err := r.db.WithContext(ctx).
		Where(
			"property_id = ? AND available_from <= ? AND (available_to IS NULL OR available_to >= ?)",
			propertyID,
			rng.LastNight(),
			rng.CheckIn,
		).
		Order("available_from ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BookingGormRepository) FetchActiveBookings(
	ctx context.Context,
	propertyID uuid.UUID,
	rng domain.DateRange,
) ([]models.BookingRequest, error) {

	var bookings []models.BookingRequest
	if err := r.db.WithContext(ctx).
		Where(
			"property_id = ? AND booking_status IN ? AND check_in_date < ? AND check_out_date > ?",
			propertyID,
			domain.BlockingStatuses,
			rng.CheckOut,
			rng.CheckIn,
		).
		Order("check_in_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.BookingRequest,
) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrConflict(domain.ReasonBookingConflict)
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.BookingRequest, error) {

	var b models.BookingRequest
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "booking_not_found")
	}
	return &b, nil
}

func (r *BookingGormRepository) LockBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.BookingRequest, error) {

	var b models.BookingRequest
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "booking_not_found")
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.BookingRequest,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.BookingRequest, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.BookingRequest{})
	if f.GuestID != nil {
		q = q.Where("guest_id = ?", *f.GuestID)
	}
	if f.PropertyID != nil {
		q = q.Where("property_id = ?", *f.PropertyID)
	}
	if f.Status != "" {
		q = q.Where("booking_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.BookingRequest
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingGormRepository) ListConfirmedEndingBy(
	ctx context.Context,
	day models.Date,
) ([]models.BookingRequest, error) {

	var bookings []models.BookingRequest
	if err := r.db.WithContext(ctx).
		Where("booking_status = ? AND check_out_date <= ?", string(domain.StatusConfirmed), day).
		Order("check_out_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) MarkCompleted(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.BookingRequest{}).
		Where("id = ? AND booking_status = ?", id, string(domain.StatusConfirmed)).
		Updates(map[string]any{
			"booking_status": string(domain.StatusCompleted),
			"completed_at":   at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
