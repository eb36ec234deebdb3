package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BookingRequest is a guest's stay. CheckOutDate is exclusive: the guest
// leaves that morning and the night before is the last one billed.
type BookingRequest struct {
	Base

	PropertyID uuid.UUID `gorm:"type:uuid;index:idx_booking_property_dates;not null" json:"property_id"`
	GuestID    uuid.UUID `gorm:"type:uuid;index;not null" json:"guest_id"`

	CheckInDate  Date `gorm:"type:date;index:idx_booking_property_dates;not null" json:"check_in_date"`
	CheckOutDate Date `gorm:"type:date;not null" json:"check_out_date"`

	NumGuests int `gorm:"not null" json:"num_guests"`
	NumPets   int `gorm:"not null" json:"num_pets"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	BookingStatus string `gorm:"size:20;not null;index" json:"booking_status"`

	SpecialRequests  string         `gorm:"type:text" json:"special_requests"`
	GuestInformation datatypes.JSON `json:"guest_information"`
	PaymentIntentID  string         `gorm:"size:100" json:"payment_intent_id"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (b *BookingRequest) Nights() int {
	return b.CheckInDate.DaysUntil(b.CheckOutDate)
}
