package booking

import "github.com/BruksfildServices01/rental-platform/internal/models"

const (
	ReasonDatesBlocked    = "dates_blocked"
	ReasonBookingConflict = "booking_conflict"
)

type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// BlockCovers reports whether an availability block touches any night of r.
// Blocks are closed ranges; a nil AvailableTo extends forever.
func BlockCovers(b models.PropertyAvailability, r DateRange) bool {
	if b.AvailableFrom.After(r.LastNight().Time) {
		return false
	}
	if b.AvailableTo != nil && b.AvailableTo.Before(r.CheckIn.Time) {
		return false
	}
	return true
}

// Evaluate decides availability of r from the blocks and bookings loaded for
// the property. Only unavailable blocks and blocking bookings count.
func Evaluate(r DateRange, blocks []models.PropertyAvailability, bookings []models.BookingRequest) Availability {
	for _, b := range blocks {
		if !b.IsAvailable && BlockCovers(b, r) {
			return Availability{Reason: ReasonDatesBlocked}
		}
	}
	for _, b := range bookings {
		if !Status(b.BookingStatus).IsBlocking() {
			continue
		}
		if r.Overlaps(DateRange{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}) {
			return Availability{Reason: ReasonBookingConflict}
		}
	}
	return Availability{Available: true}
}
