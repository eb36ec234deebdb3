package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// CompletePastBookings marks confirmed stays whose check-out day has been
// reached as completed.
type CompletePastBookings struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *slog.Logger
	now   func() time.Time
}

func NewCompletePastBookings(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CompletePastBookings {
	return &CompletePastBookings{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Execute returns how many bookings were completed. A failing row is logged
// and skipped; a row cancelled since the listing is left alone.
func (uc *CompletePastBookings) Execute(ctx context.Context) (int, error) {
	now := uc.now()

	due, err := uc.repo.ListConfirmedEndingBy(ctx, models.NewDate(now))
	if err != nil {
		return 0, err
	}

	done := 0
	for i := range due {
		b := &due[i]
		if err := domain.Complete(b, now); err != nil {
			uc.log.Warn("skip booking completion", "booking_id", b.ID, "error", err)
			continue
		}
		ok, err := uc.repo.MarkCompleted(ctx, b.ID, now)
		if err != nil {
			uc.log.Error("complete booking", "booking_id", b.ID, "error", err)
			continue
		}
		if !ok {
			uc.log.Info("booking changed before completion", "booking_id", b.ID)
			continue
		}
		done++
		uc.audit.Dispatch(audit.Event{
			Action:   "booking_complete",
			Entity:   "booking",
			EntityID: &b.ID,
			Metadata: map[string]any{"source": "scheduler"},
		})
	}
	return done, nil
}
