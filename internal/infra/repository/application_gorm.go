package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/application"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type ApplicationGormRepository struct {
	db *gorm.DB
}

func NewApplicationGormRepository(db *gorm.DB) *ApplicationGormRepository {
	return &ApplicationGormRepository{db: db}
}

func (r *ApplicationGormRepository) GetProperty(
	ctx context.Context,
	id uuid.UUID,
) (*models.Property, error) {
	return findProperty(ctx, r.db, id, false)
}

func (r *ApplicationGormRepository) HasActiveApplication(
	ctx context.Context,
	propertyID uuid.UUID,
	applicantID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RentalApplication{}).
		Where(
			"property_id = ? AND applicant_id = ? AND application_status IN ?",
			propertyID,
			applicantID,
			domain.ActiveStatuses,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ApplicationGormRepository) CreateApplication(
	ctx context.Context,
	app *models.RentalApplication,
) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *ApplicationGormRepository) GetApplication(
	ctx context.Context,
	id uuid.UUID,
) (*models.RentalApplication, error) {

	var app models.RentalApplication
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "application_not_found")
	}
	return &app, nil
}

func (r *ApplicationGormRepository) UpdateApplication(
	ctx context.Context,
	app *models.RentalApplication,
) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *ApplicationGormRepository) ListApplications(
	ctx context.Context,
	propertyID *uuid.UUID,
	applicantID *uuid.UUID,
) ([]models.RentalApplication, error) {

	q := r.db.WithContext(ctx).Model(&models.RentalApplication{})
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	if applicantID != nil {
		q = q.Where("applicant_id = ?", *applicantID)
	}

	var out []models.RentalApplication
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Repository = (*ApplicationGormRepository)(nil)
