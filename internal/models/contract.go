package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Contract struct {
	Base

	PropertyID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"property_id"`
	TenantID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"tenant_id"`
	LandlordID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"landlord_id"`
	ApplicationID *uuid.UUID `gorm:"type:uuid;index" json:"application_id"`

	ContractType   string         `gorm:"size:30;not null" json:"contract_type"`
	ContractStatus string         `gorm:"size:20;not null;index" json:"contract_status"`
	ContractTerms  datatypes.JSON `json:"contract_terms"`

	MonthlyRent     decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"monthly_rent"`
	SecurityDeposit decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"security_deposit"`
	LeaseStartDate  Date                `gorm:"type:date;not null" json:"lease_start_date"`
	LeaseEndDate    Date                `gorm:"type:date;not null" json:"lease_end_date"`
	LeaseTermMonths int                 `json:"lease_term_months"`

	DocumentURL string `gorm:"size:500" json:"document_url"`

	TenantSignedAt   *time.Time `json:"tenant_signed_at"`
	LandlordSignedAt *time.Time `json:"landlord_signed_at"`
	FullyExecutedAt  *time.Time `json:"fully_executed_at"`
}

type CommissionTracking struct {
	Base

	ContractID uuid.UUID `gorm:"type:uuid;index;not null" json:"contract_id"`
	AgentID    uuid.UUID `gorm:"type:uuid;index;not null" json:"agent_id"`

	CommissionType   string          `gorm:"size:20;not null" json:"commission_type"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(5,4);not null" json:"commission_rate"`
	BaseAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_amount"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"commission_amount"`

	CommissionStatus string `gorm:"size:20;not null;index" json:"commission_status"`
	TransferID       string `gorm:"size:100" json:"transfer_id"`
	DueDate          *Date  `gorm:"type:date" json:"due_date"`

	PaidAt *time.Time `json:"paid_at"`
}

func (CommissionTracking) TableName() string {
	return "commission_tracking"
}
