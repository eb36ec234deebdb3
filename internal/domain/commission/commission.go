package commission

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
)

type Type string

const (
	TypeListing  Type = "listing"
	TypeSelling  Type = "selling"
	TypeReferral Type = "referral"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeListing, TypeSelling, TypeReferral:
		return Type(s), nil
	}
	return "", httperr.ErrValidation("invalid_commission_type")
}

// Amount is base * rate rounded to cents. rate must be in [0, 1].
func Amount(base, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, httperr.ErrValidation("invalid_commission_rate")
	}
	if base.IsNegative() {
		return decimal.Decimal{}, httperr.ErrValidation("invalid_base_amount")
	}
	return base.Mul(rate).Round(2), nil
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusPaid, StatusFailed},
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusPaid, StatusFailed:
		return Status(s), nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

func Transition(c *models.CommissionTracking, next Status, transferID string, now time.Time) error {
	ok := false
	for _, allowed := range transitions[Status(c.CommissionStatus)] {
		if allowed == next {
			ok = true
			break
		}
	}
	if !ok {
		return httperr.ErrConflict("invalid_state")
	}
	c.CommissionStatus = string(next)
	if transferID != "" {
		c.TransferID = transferID
	}
	if next == StatusPaid {
		c.PaidAt = &now
	}
	return nil
}
