package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	PropertyTypeShortTerm = "short_term"
	PropertyTypeLongTerm  = "long_term"
)

type Property struct {
	Base

	OwnerID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"owner_id"`
	ListingAgentID *uuid.UUID `gorm:"type:uuid;index" json:"listing_agent_id"`

	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	PropertyType string `gorm:"size:20;not null;index" json:"property_type"`

	Address datatypes.JSON `json:"address"`

	PricePerNight decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price_per_night"`
	PricePerMonth decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price_per_month"`

	Bedrooms   int            `json:"bedrooms"`
	Bathrooms  int            `json:"bathrooms"`
	SquareFeet *int           `json:"square_feet"`
	Amenities  datatypes.JSON `json:"amenities"`

	IsActive bool `gorm:"not null" json:"is_active"`

	ShortTerm *ShortTermRental `gorm:"foreignKey:PropertyID" json:"short_term_rental,omitempty"`
	LongTerm  *LongTermRental  `gorm:"foreignKey:PropertyID" json:"long_term_rental,omitempty"`
}

func (p *Property) IsShortTerm() bool {
	return p.PropertyType == PropertyTypeShortTerm
}

func (p *Property) IsLongTerm() bool {
	return p.PropertyType == PropertyTypeLongTerm
}

// ShortTermRental is the nightly fee schedule of a short-term property.
type ShortTermRental struct {
	Base

	PropertyID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"property_id"`

	MinimumNights      int    `gorm:"not null" json:"minimum_nights"`
	MaximumNights      *int   `json:"maximum_nights"`
	InstantBook        bool   `json:"instant_book"`
	CheckInTime        string `gorm:"size:5" json:"check_in_time"`
	CheckOutTime       string `gorm:"size:5" json:"check_out_time"`
	HouseRules         string `gorm:"type:text" json:"house_rules"`
	CancellationPolicy string `gorm:"size:20" json:"cancellation_policy"`

	CleaningFee     decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"cleaning_fee"`
	SecurityDeposit decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"security_deposit"`
	ExtraGuestFee   decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"extra_guest_fee"`
	PetFee          decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"pet_fee"`
}

func NewShortTermRental(propertyID uuid.UUID) *ShortTermRental {
	return &ShortTermRental{
		PropertyID:         propertyID,
		MinimumNights:      1,
		CheckInTime:        "15:00",
		CheckOutTime:       "11:00",
		CancellationPolicy: "moderate",
	}
}

type LongTermRental struct {
	Base

	PropertyID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"property_id"`

	LeaseTermMonths int                 `gorm:"not null" json:"lease_term_months"`
	SecurityDeposit decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"security_deposit"`
	PetDeposit      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"pet_deposit"`
	ApplicationFee  decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"application_fee"`

	IncomeRequirementMultiplier decimal.Decimal `gorm:"type:numeric(4,2)" json:"income_requirement_multiplier"`
	CreditScoreMinimum          *int            `json:"credit_score_minimum"`
	BackgroundCheckRequired     bool            `json:"background_check_required"`
	ReferencesRequired          int             `json:"references_required"`

	AvailableDate *Date  `gorm:"type:date" json:"available_date"`
	LeaseTerms    string `gorm:"type:text" json:"lease_terms"`
}

func NewLongTermRental(propertyID uuid.UUID) *LongTermRental {
	return &LongTermRental{
		PropertyID:                  propertyID,
		LeaseTermMonths:             12,
		IncomeRequirementMultiplier: decimal.NewFromInt(3),
		BackgroundCheckRequired:     true,
		ReferencesRequired:          2,
	}
}

// PropertyAvailability is an owner-declared open or blocked period. A nil
// AvailableTo leaves the period open ended; otherwise it is inclusive.
type PropertyAvailability struct {
	Base

	PropertyID uuid.UUID `gorm:"type:uuid;index:idx_availability_property_from;not null" json:"property_id"`

	AvailableFrom Date  `gorm:"type:date;index:idx_availability_property_from;not null" json:"available_from"`
	AvailableTo   *Date `gorm:"type:date" json:"available_to"`
	IsAvailable   bool  `gorm:"not null" json:"is_available"`

	ReasonUnavailable string `gorm:"size:100" json:"reason_unavailable"`
	Notes             string `gorm:"type:text" json:"notes"`
}

func (PropertyAvailability) TableName() string {
	return "property_availability"
}
