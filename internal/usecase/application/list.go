package application

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/application"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type GetApplication struct {
	repo domain.Repository
}

func NewGetApplication(repo domain.Repository) *GetApplication {
	return &GetApplication{repo: repo}
}

// Execute hides the application from anyone but the applicant and the
// people managing the property.
func (uc *GetApplication) Execute(ctx context.Context, id, actorID uuid.UUID) (*models.RentalApplication, error) {
	app, err := uc.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID == actorID {
		return app, nil
	}
	property, err := uc.repo.GetProperty(ctx, app.PropertyID)
	if err != nil {
		return nil, err
	}
	if !managesProperty(property, actorID) {
		return nil, httperr.ErrNotFound("application_not_found")
	}
	return app, nil
}

type ListApplications struct {
	repo domain.Repository
}

func NewListApplications(repo domain.Repository) *ListApplications {
	return &ListApplications{repo: repo}
}

// ForApplicant lists what the actor submitted.
func (uc *ListApplications) ForApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.RentalApplication, error) {
	return uc.repo.ListApplications(ctx, nil, &applicantID)
}

// ForProperty lists the applications received by a property the actor manages.
func (uc *ListApplications) ForProperty(ctx context.Context, propertyID, actorID uuid.UUID) ([]models.RentalApplication, error) {
	property, err := uc.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !managesProperty(property, actorID) {
		return nil, httperr.ErrForbidden("not_owner")
	}
	return uc.repo.ListApplications(ctx, &propertyID, nil)
}
