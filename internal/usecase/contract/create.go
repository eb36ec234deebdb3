package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	appdomain "github.com/BruksfildServices01/rental-platform/internal/domain/application"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/contract"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// CreateContractInput either names an approved application, in which case
// property and parties come from it, or names the property and tenant.
type CreateContractInput struct {
	ActorID       uuid.UUID
	ApplicationID *uuid.UUID
	PropertyID    uuid.UUID
	TenantID      uuid.UUID

	ContractTerms   datatypes.JSON
	MonthlyRent     decimal.Decimal
	SecurityDeposit decimal.NullDecimal
	LeaseStartDate  models.Date
	LeaseEndDate    models.Date
}

type CreateContract struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateContract(repo domain.Repository, audit *audit.Dispatcher) *CreateContract {
	return &CreateContract{repo: repo, audit: audit}
}

func (uc *CreateContract) Execute(ctx context.Context, in CreateContractInput) (*models.Contract, error) {
	if !in.LeaseEndDate.Time.After(in.LeaseStartDate.Time) {
		return nil, httperr.ErrValidation("invalid_lease_dates")
	}
	if !in.MonthlyRent.IsPositive() {
		return nil, httperr.ErrValidation("invalid_monthly_rent")
	}

	propertyID, tenantID := in.PropertyID, in.TenantID
	if in.ApplicationID != nil {
		app, err := uc.repo.GetApplication(ctx, *in.ApplicationID)
		if err != nil {
			return nil, err
		}
		if appdomain.Status(app.ApplicationStatus) != appdomain.StatusApproved {
			return nil, httperr.ErrConflict("application_not_approved")
		}
		propertyID, tenantID = app.PropertyID, app.ApplicantID
	}
	if tenantID == uuid.Nil {
		return nil, httperr.ErrValidation("invalid_request")
	}

	property, err := uc.repo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != in.ActorID {
		return nil, httperr.ErrForbidden("not_owner")
	}

	c := &models.Contract{
		PropertyID:      property.ID,
		TenantID:        tenantID,
		LandlordID:      property.OwnerID,
		ApplicationID:   in.ApplicationID,
		ContractType:    domain.TypeLeaseAgreement,
		ContractStatus:  string(domain.StatusDraft),
		ContractTerms:   in.ContractTerms,
		MonthlyRent:     in.MonthlyRent,
		SecurityDeposit: in.SecurityDeposit,
		LeaseStartDate:  in.LeaseStartDate,
		LeaseEndDate:    in.LeaseEndDate,
		LeaseTermMonths: monthsBetween(in.LeaseStartDate.Time, in.LeaseEndDate.Time),
	}
	if err := uc.repo.CreateContract(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "contract_created",
		Entity:   "contract",
		EntityID: &c.ID,
		Metadata: map[string]any{"property_id": c.PropertyID, "tenant_id": c.TenantID},
	})
	return c, nil
}

// monthsBetween counts whole calendar months, at least one.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 1 {
		return 1
	}
	return months
}
