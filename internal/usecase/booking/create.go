package booking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingRequestInput struct {
	PropertyID uuid.UUID
	GuestID    uuid.UUID

	CheckIn  models.Date
	CheckOut models.Date

	NumGuests int
	NumPets   int

	SpecialRequests  string
	GuestInformation datatypes.JSON
}

// ======================================================
// USE CASE
// ======================================================

type CreateBookingRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBookingRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBookingRequest {
	return &CreateBookingRequest{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBookingRequest) Execute(
	ctx context.Context,
	in CreateBookingRequestInput,
) (*models.BookingRequest, error) {

	// --------------------------------------------------
	// 1. Input, before touching the store
	// --------------------------------------------------
	rng, err := domain.NewDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if in.NumGuests < 1 {
		return nil, httperr.ErrValidation("invalid_guest_count")
	}
	if in.NumPets < 0 {
		return nil, httperr.ErrValidation("invalid_pet_count")
	}

	var created *models.BookingRequest

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 2. Property, locked for the rest of the transaction
		// --------------------------------------------------
		property, err := tx.LockProperty(ctx, in.PropertyID)
		if err != nil {
			return err
		}
		if !property.IsActive {
			return httperr.ErrValidation("property_inactive")
		}
		if !property.IsShortTerm() {
			return httperr.ErrValidation("property_not_short_term")
		}

		// --------------------------------------------------
		// 3. Stay length
		// --------------------------------------------------
		str, err := tx.GetShortTermRental(ctx, property.ID)
		if err != nil {
			return err
		}
		if err := checkStayLength(str, rng.Nights()); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4. Blocks and overlapping bookings
		// --------------------------------------------------
		avail, err := evaluate(ctx, tx, property.ID, rng)
		if err != nil {
			return err
		}
		if !avail.Available {
			return httperr.ErrConflict(avail.Reason)
		}

		// --------------------------------------------------
		// 5. Price, always before the insert
		// --------------------------------------------------
		quote, err := price(ctx, tx, property, rng.Nights(), in.NumGuests, in.NumPets)
		if err != nil {
			return err
		}

		b := &models.BookingRequest{
			PropertyID:       property.ID,
			GuestID:          in.GuestID,
			CheckInDate:      rng.CheckIn,
			CheckOutDate:     rng.CheckOut,
			NumGuests:        in.NumGuests,
			NumPets:          in.NumPets,
			TotalAmount:      quote.Total,
			BookingStatus:    string(domain.InitialStatus()),
			SpecialRequests:  in.SpecialRequests,
			GuestInformation: in.GuestInformation,
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				ActorID:  &in.GuestID,
				Action:   "booking_conflict",
				Entity:   "property",
				EntityID: &in.PropertyID,
				Metadata: map[string]any{
					"check_in":  rng.CheckIn.String(),
					"check_out": rng.CheckOut.String(),
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.GuestID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &created.ID,
		Metadata: map[string]any{"total_amount": created.TotalAmount.StringFixed(2)},
	})

	return created, nil
}

func checkStayLength(str *models.ShortTermRental, nights int) error {
	if str == nil {
		return nil
	}
	if str.MinimumNights > 0 && nights < str.MinimumNights {
		return httperr.ErrValidation("below_minimum_nights")
	}
	if str.MaximumNights != nil && nights > *str.MaximumNights {
		return httperr.ErrValidation("above_maximum_nights")
	}
	return nil
}
