package booking

import (
	"time"

	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func Confirm(b *models.BookingRequest, now time.Time) error {
	if err := CanConfirm(Status(b.BookingStatus)); err != nil {
		return err
	}
	b.BookingStatus = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.BookingRequest, now time.Time) error {
	if err := CanCancel(Status(b.BookingStatus)); err != nil {
		return err
	}
	b.BookingStatus = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.BookingRequest, now time.Time) error {
	if err := CanComplete(Status(b.BookingStatus)); err != nil {
		return err
	}
	b.BookingStatus = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
