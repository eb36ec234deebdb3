package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type Repository interface {
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*models.RentalApplication, error)

	CreateContract(ctx context.Context, c *models.Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	UpdateContract(ctx context.Context, c *models.Contract) error
	ListContractsForParty(ctx context.Context, partyID uuid.UUID) ([]models.Contract, error)

	CreateCommission(ctx context.Context, c *models.CommissionTracking) error
	GetCommission(ctx context.Context, id uuid.UUID) (*models.CommissionTracking, error)
	UpdateCommission(ctx context.Context, c *models.CommissionTracking) error
	ListCommissionsForAgent(ctx context.Context, agentID uuid.UUID) ([]models.CommissionTracking, error)
}
