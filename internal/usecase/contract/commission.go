package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	"github.com/BruksfildServices01/rental-platform/internal/domain/commission"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/contract"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type CreateCommissionInput struct {
	ActorID        uuid.UUID
	ContractID     uuid.UUID
	AgentID        uuid.UUID
	CommissionType string
	Rate           decimal.Decimal
	BaseAmount     decimal.Decimal
	DueDate        *models.Date
}

type CreateCommission struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateCommission(repo domain.Repository, audit *audit.Dispatcher) *CreateCommission {
	return &CreateCommission{repo: repo, audit: audit}
}

func (uc *CreateCommission) Execute(ctx context.Context, in CreateCommissionInput) (*models.CommissionTracking, error) {
	if in.CommissionType == "" {
		in.CommissionType = string(commission.TypeListing)
	}
	kind, err := commission.ParseType(in.CommissionType)
	if err != nil {
		return nil, err
	}
	amount, err := commission.Amount(in.BaseAmount, in.Rate)
	if err != nil {
		return nil, err
	}

	c, err := uc.repo.GetContract(ctx, in.ContractID)
	if err != nil {
		return nil, err
	}
	if c.LandlordID != in.ActorID {
		return nil, httperr.ErrForbidden("not_owner")
	}

	ct := &models.CommissionTracking{
		ContractID:       c.ID,
		AgentID:          in.AgentID,
		CommissionType:   string(kind),
		CommissionRate:   in.Rate,
		BaseAmount:       in.BaseAmount,
		CommissionAmount: amount,
		CommissionStatus: string(commission.StatusPending),
		DueDate:          in.DueDate,
	}
	if err := uc.repo.CreateCommission(ctx, ct); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "commission_created",
		Entity:   "commission",
		EntityID: &ct.ID,
		Metadata: map[string]any{"contract_id": c.ID, "amount": amount.StringFixed(2)},
	})
	return ct, nil
}

type TransitionCommissionInput struct {
	CommissionID uuid.UUID
	ActorID      uuid.UUID
	Status       string
	TransferID   string
}

type TransitionCommission struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewTransitionCommission(repo domain.Repository, audit *audit.Dispatcher) *TransitionCommission {
	return &TransitionCommission{repo: repo, audit: audit, now: utcNow}
}

// Execute is reserved to the landlord of the commission's contract.
func (uc *TransitionCommission) Execute(ctx context.Context, in TransitionCommissionInput) (*models.CommissionTracking, error) {
	next, err := commission.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ct, err := uc.repo.GetCommission(ctx, in.CommissionID)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetContract(ctx, ct.ContractID)
	if err != nil {
		return nil, err
	}
	if c.LandlordID != in.ActorID {
		return nil, httperr.ErrForbidden("not_owner")
	}

	if err := commission.Transition(ct, next, in.TransferID, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateCommission(ctx, ct); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "commission_" + string(next),
		Entity:   "commission",
		EntityID: &ct.ID,
	})
	return ct, nil
}

type ListCommissions struct {
	repo domain.Repository
}

func NewListCommissions(repo domain.Repository) *ListCommissions {
	return &ListCommissions{repo: repo}
}

func (uc *ListCommissions) Execute(ctx context.Context, agentID uuid.UUID) ([]models.CommissionTracking, error) {
	return uc.repo.ListCommissionsForAgent(ctx, agentID)
}
