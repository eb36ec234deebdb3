package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/contract"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type ContractGormRepository struct {
	db *gorm.DB
}

func NewContractGormRepository(db *gorm.DB) *ContractGormRepository {
	return &ContractGormRepository{db: db}
}

func (r *ContractGormRepository) GetProperty(
	ctx context.Context,
	id uuid.UUID,
) (*models.Property, error) {
	return findProperty(ctx, r.db, id, false)
}

func (r *ContractGormRepository) GetApplication(
	ctx context.Context,
	id uuid.UUID,
) (*models.RentalApplication, error) {

	var app models.RentalApplication
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "application_not_found")
	}
	return &app, nil
}

// --------------------------------------------------
// Contract
// --------------------------------------------------

func (r *ContractGormRepository) CreateContract(
	ctx context.Context,
	c *models.Contract,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractGormRepository) GetContract(
	ctx context.Context,
	id uuid.UUID,
) (*models.Contract, error) {

	var c models.Contract
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "contract_not_found")
	}
	return &c, nil
}

func (r *ContractGormRepository) UpdateContract(
	ctx context.Context,
	c *models.Contract,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractGormRepository) ListContractsForParty(
	ctx context.Context,
	partyID uuid.UUID,
) ([]models.Contract, error) {

	var out []models.Contract
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? OR landlord_id = ?", partyID, partyID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Commission
// --------------------------------------------------

func (r *ContractGormRepository) CreateCommission(
	ctx context.Context,
	c *models.CommissionTracking,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractGormRepository) GetCommission(
	ctx context.Context,
	id uuid.UUID,
) (*models.CommissionTracking, error) {

	var c models.CommissionTracking
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "commission_not_found")
	}
	return &c, nil
}

func (r *ContractGormRepository) UpdateCommission(
	ctx context.Context,
	c *models.CommissionTracking,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractGormRepository) ListCommissionsForAgent(
	ctx context.Context,
	agentID uuid.UUID,
) ([]models.CommissionTracking, error) {

	var out []models.CommissionTracking
	if err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Repository = (*ContractGormRepository)(nil)
