package booking

import (
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// DateRange is a stay [CheckIn, CheckOut). CheckOut is never billed.
type DateRange struct {
	CheckIn  models.Date
	CheckOut models.Date
}

func NewDateRange(checkIn, checkOut models.Date) (DateRange, error) {
	if !checkOut.After(checkIn.Time) {
		return DateRange{}, httperr.ErrValidation("invalid_date_range")
	}
	return DateRange{CheckIn: checkIn, CheckOut: checkOut}, nil
}

func (r DateRange) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

// LastNight is the final night of the stay.
func (r DateRange) LastNight() models.Date {
	return r.CheckOut.AddDays(-1)
}

// Overlaps uses half-open semantics, so back-to-back stays do not overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.CheckIn.Before(o.CheckOut.Time) && o.CheckIn.Before(r.CheckOut.Time)
}
