package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

type TransitionInput struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	Action    Action
}

// TransitionBooking applies a status change. The guest may cancel; the
// property owner may confirm, cancel or complete.
type TransitionBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.BookingRequest, error) {

	var b *models.BookingRequest

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetBooking(ctx, in.BookingID)
		if err != nil {
			return err
		}

		property, err := tx.LockProperty(ctx, current.PropertyID)
		if err != nil {
			return err
		}
		// Writers serialize on the property lock; the status read before it
		// may already be stale.
		b, err = tx.LockBooking(ctx, in.BookingID)
		if err != nil {
			return err
		}
		if err := authorize(in, b, property); err != nil {
			return err
		}

		now := uc.now()
		switch in.Action {
		case ActionConfirm:
			err = domain.Confirm(b, now)
		case ActionCancel:
			err = domain.Cancel(b, now)
		case ActionComplete:
			err = domain.Complete(b, now)
		default:
			err = httperr.ErrValidation("invalid_request")
		}
		if err != nil {
			return err
		}

		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ActorID,
		Action:   "booking_" + string(in.Action),
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func authorize(in TransitionInput, b *models.BookingRequest, p *models.Property) error {
	if in.ActorID == p.OwnerID {
		return nil
	}
	if in.ActorID == b.GuestID && in.Action == ActionCancel {
		return nil
	}
	return httperr.ErrForbidden("forbidden")
}
