package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/application"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type SubmitApplicationInput struct {
	PropertyID  uuid.UUID
	ApplicantID uuid.UUID

	PersonalInformation   datatypes.JSON
	EmploymentInformation datatypes.JSON
	RentalHistory         datatypes.JSON
	FinancialInformation  datatypes.JSON
	PetsInformation       datatypes.JSON
	EmergencyContacts     datatypes.JSON

	BackgroundCheckConsent bool
	CreditCheckConsent     bool

	MoveInDate         *models.Date
	LeaseTermRequested *int
	AdditionalNotes    string
}

type SubmitApplication struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitApplication(repo domain.Repository, audit *audit.Dispatcher) *SubmitApplication {
	return &SubmitApplication{repo: repo, audit: audit}
}

func (uc *SubmitApplication) Execute(
	ctx context.Context,
	in SubmitApplicationInput,
) (*models.RentalApplication, error) {

	if len(in.PersonalInformation) == 0 || string(in.PersonalInformation) == "null" {
		return nil, httperr.ErrValidation("missing_personal_information")
	}

	property, err := uc.repo.GetProperty(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, httperr.ErrValidation("property_inactive")
	}
	if !property.IsLongTerm() {
		return nil, httperr.ErrValidation("property_not_long_term")
	}

	active, err := uc.repo.HasActiveApplication(ctx, in.PropertyID, in.ApplicantID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, httperr.ErrConflict("application_already_active")
	}

	app := &models.RentalApplication{
		PropertyID:             in.PropertyID,
		ApplicantID:            in.ApplicantID,
		ApplicationStatus:      string(domain.StatusSubmitted),
		PersonalInformation:    in.PersonalInformation,
		EmploymentInformation:  in.EmploymentInformation,
		RentalHistory:          in.RentalHistory,
		FinancialInformation:   in.FinancialInformation,
		PetsInformation:        in.PetsInformation,
		EmergencyContacts:      in.EmergencyContacts,
		BackgroundCheckConsent: in.BackgroundCheckConsent,
		CreditCheckConsent:     in.CreditCheckConsent,
		MoveInDate:             in.MoveInDate,
		LeaseTermRequested:     in.LeaseTermRequested,
		AdditionalNotes:        in.AdditionalNotes,
	}
	if err := uc.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ApplicantID,
		Action:   "application_submitted",
		Entity:   "application",
		EntityID: &app.ID,
		Metadata: map[string]any{"property_id": in.PropertyID},
	})
	return app, nil
}

// ======================================================
// STATUS
// ======================================================

type UpdateStatusInput struct {
	ApplicationID uuid.UUID
	ActorID       uuid.UUID
	Status        string
}

// UpdateStatus lets the property owner or listing agent review and decide,
// and the applicant withdraw.
type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *UpdateStatus) Execute(ctx context.Context, in UpdateStatusInput) (*models.RentalApplication, error) {
	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	app, err := uc.repo.GetApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	if next == domain.StatusWithdrawn {
		if app.ApplicantID != in.ActorID {
			return nil, httperr.ErrForbidden("forbidden")
		}
	} else {
		property, err := uc.repo.GetProperty(ctx, app.PropertyID)
		if err != nil {
			return nil, err
		}
		if !managesProperty(property, in.ActorID) {
			return nil, httperr.ErrForbidden("not_owner")
		}
	}

	prev := app.ApplicationStatus
	if err := domain.Transition(app, next, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "application_" + string(next),
		Entity:   "application",
		EntityID: &app.ID,
		Metadata: map[string]any{"from": prev, "to": app.ApplicationStatus},
	})
	return app, nil
}

func managesProperty(p *models.Property, actor uuid.UUID) bool {
	if p.OwnerID == actor {
		return true
	}
	return p.ListingAgentID != nil && *p.ListingAgentID == actor
}
