package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type ViewingGormRepository struct {
	db *gorm.DB
}

func NewViewingGormRepository(db *gorm.DB) *ViewingGormRepository {
	return &ViewingGormRepository{db: db}
}

func (r *ViewingGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ViewingGormRepository{db: tx})
	})
}

// LockAgent takes a PostgreSQL advisory lock scoped to the transaction.
// Other dialects run without it; SQLite already serializes writers.
func (r *ViewingGormRepository) LockAgent(
	ctx context.Context,
	agentID uuid.UUID,
) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "viewing-agent:"+agentID.String()).
		Error
}

func (r *ViewingGormRepository) GetProperty(
	ctx context.Context,
	id uuid.UUID,
) (*models.Property, error) {
	return findProperty(ctx, r.db, id, false)
}

func (r *ViewingGormRepository) FetchScheduledSlots(
	ctx context.Context,
	agentID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.ViewingSchedule, error) {

	var slots []models.ViewingSchedule
	if err := r.db.WithContext(ctx).
		Where(
			"agent_id = ? AND viewing_status = ? AND scheduled_date >= ? AND scheduled_date < ?",
			agentID,
			string(domain.StatusScheduled),
			from.UTC(),
			to.UTC(),
		).
		Order("scheduled_date ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ViewingGormRepository) CreateViewing(
	ctx context.Context,
	v *models.ViewingSchedule,
) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ViewingGormRepository) GetViewing(
	ctx context.Context,
	id uuid.UUID,
) (*models.ViewingSchedule, error) {

	var v models.ViewingSchedule
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "viewing_not_found")
	}
	return &v, nil
}

func (r *ViewingGormRepository) UpdateViewing(
	ctx context.Context,
	v *models.ViewingSchedule,
) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *ViewingGormRepository) ListViewings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.ViewingSchedule, error) {

	q := r.db.WithContext(ctx).Model(&models.ViewingSchedule{})
	if f.PropertyID != nil {
		q = q.Where("property_id = ?", *f.PropertyID)
	}
	if f.AgentID != nil {
		q = q.Where("agent_id = ?", *f.AgentID)
	}
	if f.From != nil {
		q = q.Where("scheduled_date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("scheduled_date < ?", f.To.UTC())
	}
	if f.Status != "" {
		q = q.Where("viewing_status = ?", f.Status)
	}

	var out []models.ViewingSchedule
	if err := q.Order("scheduled_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ViewingGormRepository)(nil)
