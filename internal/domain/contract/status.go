package contract

import (
	"time"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusSent            Status = "sent"
	StatusPartiallySigned Status = "partially_signed"
	StatusCompleted       Status = "completed"
	StatusExpired         Status = "expired"
)

const TypeLeaseAgreement = "lease_agreement"

type Signer string

const (
	SignerTenant   Signer = "tenant"
	SignerLandlord Signer = "landlord"
)

func ParseSigner(s string) (Signer, error) {
	switch Signer(s) {
	case SignerTenant, SignerLandlord:
		return Signer(s), nil
	}
	return "", httperr.ErrValidation("invalid_signer")
}

func Send(c *models.Contract) error {
	if Status(c.ContractStatus) != StatusDraft {
		return httperr.ErrConflict("invalid_state")
	}
	c.ContractStatus = string(StatusSent)
	return nil
}

// Sign records one party's signature. The second signature executes the
// contract.
func Sign(c *models.Contract, who Signer, now time.Time) error {
	st := Status(c.ContractStatus)
	if st != StatusSent && st != StatusPartiallySigned {
		return httperr.ErrConflict("invalid_state")
	}

	switch who {
	case SignerTenant:
		if c.TenantSignedAt != nil {
			return httperr.ErrConflict("already_signed")
		}
		c.TenantSignedAt = &now
	case SignerLandlord:
		if c.LandlordSignedAt != nil {
			return httperr.ErrConflict("already_signed")
		}
		c.LandlordSignedAt = &now
	default:
		return httperr.ErrValidation("invalid_signer")
	}

	if c.TenantSignedAt != nil && c.LandlordSignedAt != nil {
		c.ContractStatus = string(StatusCompleted)
		c.FullyExecutedAt = &now
		return nil
	}
	c.ContractStatus = string(StatusPartiallySigned)
	return nil
}

func Expire(c *models.Contract) error {
	if Status(c.ContractStatus) == StatusCompleted || Status(c.ContractStatus) == StatusExpired {
		return httperr.ErrConflict("invalid_state")
	}
	c.ContractStatus = string(StatusExpired)
	return nil
}
