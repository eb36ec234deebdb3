package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type Repository interface {
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	HasActiveApplication(ctx context.Context, propertyID, applicantID uuid.UUID) (bool, error)
	CreateApplication(ctx context.Context, app *models.RentalApplication) error
	GetApplication(ctx context.Context, id uuid.UUID) (*models.RentalApplication, error)
	UpdateApplication(ctx context.Context, app *models.RentalApplication) error
	ListApplications(ctx context.Context, propertyID *uuid.UUID, applicantID *uuid.UUID) ([]models.RentalApplication, error)
}
