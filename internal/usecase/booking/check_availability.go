package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type CheckAvailabilityInput struct {
	PropertyID uuid.UUID
	CheckIn    models.Date
	CheckOut   models.Date
}

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (domain.Availability, error) {

	rng, err := domain.NewDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return domain.Availability{}, err
	}

	if _, err := uc.repo.GetProperty(ctx, in.PropertyID); err != nil {
		return domain.Availability{}, err
	}

	return evaluate(ctx, uc.repo, in.PropertyID, rng)
}

// evaluate loads blocks and active bookings for rng and applies the
// availability rules. Shared with CreateBookingRequest inside its
// transaction.
func evaluate(
	ctx context.Context,
	repo domain.Repository,
	propertyID uuid.UUID,
	rng domain.DateRange,
) (domain.Availability, error) {

	blocks, err := repo.FetchBlocks(ctx, propertyID, rng)
	if err != nil {
		return domain.Availability{}, err
	}

	bookings, err := repo.FetchActiveBookings(ctx, propertyID, rng)
	if err != nil {
		return domain.Availability{}, err
	}

	return domain.Evaluate(rng, blocks, bookings), nil
}
