package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/domain/pricing"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type QuoteInput struct {
	PropertyID uuid.UUID
	Nights     int
	Guests     int
	Pets       int
}

// Quote prices a stay without reserving it.
type Quote struct {
	repo domain.Repository
}

func NewQuote(repo domain.Repository) *Quote {
	return &Quote{repo: repo}
}

func (uc *Quote) Execute(ctx context.Context, in QuoteInput) (pricing.Breakdown, error) {
	if in.Nights < 1 {
		return pricing.Breakdown{}, httperr.ErrValidation("invalid_date_range")
	}

	property, err := uc.repo.GetProperty(ctx, in.PropertyID)
	if err != nil {
		return pricing.Breakdown{}, err
	}

	return price(ctx, uc.repo, property, in.Nights, in.Guests, in.Pets)
}

func price(
	ctx context.Context,
	repo domain.Repository,
	property *models.Property,
	nights, guests, pets int,
) (pricing.Breakdown, error) {

	if !property.IsShortTerm() {
		return pricing.Breakdown{}, httperr.ErrValidation("property_not_short_term")
	}

	str, err := repo.GetShortTermRental(ctx, property.ID)
	if err != nil {
		return pricing.Breakdown{}, err
	}

	return pricing.Compute(pricing.Input{
		NightlyRate: property.PricePerNight,
		Nights:      nights,
		Guests:      guests,
		Pets:        pets,
		Fees:        pricing.FeesFrom(str),
	})
}
