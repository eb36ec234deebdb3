package viewing

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type ListViewings struct {
	repo domain.Repository
}

func NewListViewings(repo domain.Repository) *ListViewings {
	return &ListViewings{repo: repo}
}

func (uc *ListViewings) Execute(ctx context.Context, f domain.ListFilter) ([]models.ViewingSchedule, error) {
	return uc.repo.ListViewings(ctx, f)
}

type GetViewing struct {
	repo domain.Repository
}

func NewGetViewing(repo domain.Repository) *GetViewing {
	return &GetViewing{repo: repo}
}

func (uc *GetViewing) Execute(ctx context.Context, id uuid.UUID) (*models.ViewingSchedule, error) {
	return uc.repo.GetViewing(ctx, id)
}
