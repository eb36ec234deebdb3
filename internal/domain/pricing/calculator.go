package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// IncludedGuests is the number of guests covered by the nightly rate.
const IncludedGuests = 2

// Fees is the optional fee schedule of a short-term property.
type Fees struct {
	Cleaning        decimal.NullDecimal
	ExtraGuest      decimal.NullDecimal
	Pet             decimal.NullDecimal
	SecurityDeposit decimal.NullDecimal
}

func FeesFrom(str *models.ShortTermRental) Fees {
	if str == nil {
		return Fees{}
	}
	return Fees{
		Cleaning:        str.CleaningFee,
		ExtraGuest:      str.ExtraGuestFee,
		Pet:             str.PetFee,
		SecurityDeposit: str.SecurityDeposit,
	}
}

type Input struct {
	NightlyRate decimal.NullDecimal
	Nights      int
	Guests      int
	Pets        int
	Fees        Fees
}

type Breakdown struct {
	NightlyRate     decimal.Decimal     `json:"nightly_rate"`
	Nights          int                 `json:"nights"`
	Accommodation   decimal.Decimal     `json:"accommodation"`
	CleaningFee     decimal.Decimal     `json:"cleaning_fee"`
	ExtraGuests     int                 `json:"extra_guests"`
	ExtraGuestFee   decimal.Decimal     `json:"extra_guest_fee"`
	PetFee          decimal.Decimal     `json:"pet_fee"`
	Total           decimal.Decimal     `json:"total"`
	SecurityDeposit decimal.NullDecimal `json:"security_deposit"`
}

// Compute returns the total and its components. The deposit is reported
// but never added to the total.
func Compute(in Input) (Breakdown, error) {
	if !in.NightlyRate.Valid {
		return Breakdown{}, httperr.ErrDataIntegrity("missing_nightly_rate")
	}
	if in.Nights < 1 {
		return Breakdown{}, httperr.ErrValidation("invalid_date_range")
	}
	if in.Guests < 1 {
		return Breakdown{}, httperr.ErrValidation("invalid_guest_count")
	}
	if in.Pets < 0 {
		return Breakdown{}, httperr.ErrValidation("invalid_pet_count")
	}

	out := Breakdown{
		NightlyRate:     in.NightlyRate.Decimal,
		Nights:          in.Nights,
		Accommodation:   in.NightlyRate.Decimal.Mul(decimal.NewFromInt(int64(in.Nights))),
		CleaningFee:     decimal.Zero,
		ExtraGuestFee:   decimal.Zero,
		PetFee:          decimal.Zero,
		SecurityDeposit: in.Fees.SecurityDeposit,
	}

	if in.Fees.Cleaning.Valid {
		out.CleaningFee = in.Fees.Cleaning.Decimal
	}
	if extra := in.Guests - IncludedGuests; extra > 0 && in.Fees.ExtraGuest.Valid {
		out.ExtraGuests = extra
		out.ExtraGuestFee = in.Fees.ExtraGuest.Decimal.Mul(decimal.NewFromInt(int64(extra)))
	}
	if in.Pets > 0 && in.Fees.Pet.Valid {
		out.PetFee = in.Fees.Pet.Decimal.Mul(decimal.NewFromInt(int64(in.Pets)))
	}

	out.Total = out.Accommodation.Add(out.CleaningFee).Add(out.ExtraGuestFee).Add(out.PetFee)
	return out, nil
}

func Total(in Input) (decimal.Decimal, error) {
	b, err := Compute(in)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return b.Total, nil
}
