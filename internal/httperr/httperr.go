package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError writes err using its business kind. Unknown errors become a 500
// with fallbackCode and are attached to the gin context for the request log.
func FromError(c *gin.Context, err error, fallbackCode string) {
	var be BusinessError
	switch {
	case errors.As(err, &be):
		Write(c, be.Kind.Status(), be.Code, messages[be.Code])
	case IsExclusionConflict(err):
		Conflict(c, "booking_conflict", messages["booking_conflict"])
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "not_found", "Resource not found.")
	default:
		_ = c.Error(err)
		Internal(c, fallbackCode, "Internal error.")
	}
}

var messages = map[string]string{
	"invalid_request":              "Invalid request payload.",
	"invalid_id":                   "Invalid identifier.",
	"invalid_date":                 "Invalid date.",
	"invalid_date_range":           "Check-out must be after check-in.",
	"invalid_duration":             "Duration must be between 15 and 120 minutes.",
	"invalid_guest_count":          "At least one guest is required.",
	"invalid_pet_count":            "Pet count cannot be negative.",
	"invalid_state":                "Operation not allowed in the current state.",
	"invalid_status":               "Unknown status.",
	"invalid_commission_type":      "Unknown commission type.",
	"missing_personal_information": "Personal information is required.",
	"invalid_document":             "A document file is required.",
	"property_not_found":           "Property not found.",
	"property_inactive":            "Property is not active.",
	"property_not_short_term":      "Property is not a short-term rental.",
	"property_not_long_term":       "Property is not a long-term rental.",
	"booking_not_found":            "Booking not found.",
	"viewing_not_found":            "Viewing not found.",
	"application_not_found":        "Application not found.",
	"contract_not_found":           "Contract not found.",
	"commission_not_found":         "Commission not found.",
	"dates_blocked":                "The property is blocked for these dates.",
	"booking_conflict":             "The property is already booked for these dates.",
	"agent_unavailable":            "The agent is not available at this time.",
	"below_minimum_nights":         "Stay is shorter than the minimum nights.",
	"above_maximum_nights":         "Stay is longer than the maximum nights.",
	"missing_nightly_rate":         "Property has no nightly rate configured.",
	"application_already_active":   "An active application already exists for this property.",
	"application_not_approved":     "Application must be approved first.",
	"invalid_lease_dates":          "Lease end must be after lease start.",
	"invalid_monthly_rent":         "Monthly rent must be positive.",
	"invalid_commission_rate":      "Commission rate must be between 0 and 1.",
	"invalid_base_amount":          "Base amount cannot be negative.",
	"invalid_fee":                  "Fees cannot be negative.",
	"invalid_price":                "Price is missing for the property type.",
	"invalid_property_type":        "Unknown property type.",
	"invalid_signer":               "Signer must be tenant or landlord.",
	"already_signed":               "This party has already signed.",
	"document_storage_unavailable": "Document storage is not configured.",
	"not_owner":                    "Only the owner can perform this action.",
	"forbidden":                    "Not allowed.",
}
