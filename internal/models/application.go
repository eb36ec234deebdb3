package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RentalApplication struct {
	Base

	PropertyID  uuid.UUID `gorm:"type:uuid;index:idx_application_property_applicant;not null" json:"property_id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;index:idx_application_property_applicant;not null" json:"applicant_id"`

	ApplicationStatus string `gorm:"size:20;not null;index" json:"application_status"`

	PersonalInformation   datatypes.JSON `gorm:"not null" json:"personal_information"`
	EmploymentInformation datatypes.JSON `json:"employment_information"`
	RentalHistory         datatypes.JSON `json:"rental_history"`
	FinancialInformation  datatypes.JSON `json:"financial_information"`
	PetsInformation       datatypes.JSON `json:"pets_information"`
	EmergencyContacts     datatypes.JSON `json:"emergency_contacts"`

	BackgroundCheckConsent bool `json:"background_check_consent"`
	CreditCheckConsent     bool `json:"credit_check_consent"`

	MoveInDate         *Date  `gorm:"type:date" json:"move_in_date"`
	LeaseTermRequested *int   `json:"lease_term_requested"`
	AdditionalNotes    string `gorm:"type:text" json:"additional_notes"`

	ReviewedAt *time.Time `json:"reviewed_at"`
	DecidedAt  *time.Time `json:"decided_at"`
}
