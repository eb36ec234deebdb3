package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/httpresp"
	"github.com/BruksfildServices01/rental-platform/internal/middleware"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type PropertyHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPropertyHandler(db *gorm.DB, audit *audit.Dispatcher) *PropertyHandler {
	return &PropertyHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePropertyRequest struct {
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description"`
	PropertyType   string              `json:"property_type" binding:"required"`
	ListingAgentID *uuid.UUID          `json:"listing_agent_id"`
	Address        datatypes.JSON      `json:"address"`
	PricePerNight  decimal.NullDecimal `json:"price_per_night"`
	PricePerMonth  decimal.NullDecimal `json:"price_per_month"`
	Bedrooms       int                 `json:"bedrooms"`
	Bathrooms      int                 `json:"bathrooms"`
	SquareFeet     *int                `json:"square_feet"`
	Amenities      datatypes.JSON      `json:"amenities"`
}

type ShortTermDetailsRequest struct {
	MinimumNights      *int                `json:"minimum_nights"`
	MaximumNights      *int                `json:"maximum_nights"`
	InstantBook        *bool               `json:"instant_book"`
	CheckInTime        *string             `json:"check_in_time"`
	CheckOutTime       *string             `json:"check_out_time"`
	HouseRules         *string             `json:"house_rules"`
	CancellationPolicy *string             `json:"cancellation_policy"`
	CleaningFee        decimal.NullDecimal `json:"cleaning_fee"`
	SecurityDeposit    decimal.NullDecimal `json:"security_deposit"`
	ExtraGuestFee      decimal.NullDecimal `json:"extra_guest_fee"`
	PetFee             decimal.NullDecimal `json:"pet_fee"`
}

type LongTermDetailsRequest struct {
	LeaseTermMonths             *int                `json:"lease_term_months"`
	SecurityDeposit             decimal.NullDecimal `json:"security_deposit"`
	PetDeposit                  decimal.NullDecimal `json:"pet_deposit"`
	ApplicationFee              decimal.NullDecimal `json:"application_fee"`
	IncomeRequirementMultiplier *decimal.Decimal    `json:"income_requirement_multiplier"`
	CreditScoreMinimum          *int                `json:"credit_score_minimum"`
	BackgroundCheckRequired     *bool               `json:"background_check_required"`
	ReferencesRequired          *int                `json:"references_required"`
	AvailableDate               *models.Date        `json:"available_date"`
	LeaseTerms                  *string             `json:"lease_terms"`
}

type AvailabilityBlockRequest struct {
	AvailableFrom     models.Date  `json:"available_from"`
	AvailableTo       *models.Date `json:"available_to"`
	IsAvailable       *bool        `json:"is_available"`
	ReasonUnavailable string       `json:"reason_unavailable"`
	Notes             string       `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func positive(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsPositive()
}

func negative(ds ...decimal.NullDecimal) bool {
	for _, d := range ds {
		if d.Valid && d.Decimal.IsNegative() {
			return true
		}
	}
	return false
}

// ownedProperty loads :id and checks the caller owns it. It writes the error
// response itself.
func (h *PropertyHandler) ownedProperty(c *gin.Context) (*models.Property, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	var p models.Property
	if err := h.db.WithContext(c.Request.Context()).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "property_not_found", "Property not found.")
			return nil, false
		}
		httperr.Internal(c, "property_get_failed", "Internal error.")
		return nil, false
	}
	if p.OwnerID != middleware.UserID(c) {
		httperr.Forbidden(c, "not_owner", "Only the owner can perform this action.")
		return nil, false
	}
	return &p, true
}

func (h *PropertyHandler) record(c *gin.Context, action string, id uuid.UUID, meta any) {
	actor := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		ActorID:  &actor,
		Action:   action,
		Entity:   "property",
		EntityID: &id,
		Metadata: meta,
	})
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	switch req.PropertyType {
	case models.PropertyTypeShortTerm:
		if !positive(req.PricePerNight) {
			httperr.BadRequest(c, "invalid_price", "Price is missing for the property type.")
			return
		}
	case models.PropertyTypeLongTerm:
		if !positive(req.PricePerMonth) {
			httperr.BadRequest(c, "invalid_price", "Price is missing for the property type.")
			return
		}
	default:
		httperr.BadRequest(c, "invalid_property_type", "Unknown property type.")
		return
	}
	if negative(req.PricePerNight, req.PricePerMonth) {
		httperr.BadRequest(c, "invalid_price", "Price is missing for the property type.")
		return
	}

	p := models.Property{
		OwnerID:        middleware.UserID(c),
		ListingAgentID: req.ListingAgentID,
		Title:          req.Title,
		Description:    req.Description,
		PropertyType:   req.PropertyType,
		Address:        req.Address,
		PricePerNight:  req.PricePerNight,
		PricePerMonth:  req.PricePerMonth,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		SquareFeet:     req.SquareFeet,
		Amenities:      req.Amenities,
		IsActive:       true,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		if p.IsShortTerm() {
			p.ShortTerm = models.NewShortTermRental(p.ID)
			return tx.Create(p.ShortTerm).Error
		}
		p.LongTerm = models.NewLongTermRental(p.ID)
		return tx.Create(p.LongTerm).Error
	})
	if err != nil {
		httperr.Internal(c, "property_create_failed", "Internal error.")
		return
	}

	h.record(c, "property_created", p.ID, map[string]any{"property_type": p.PropertyType})
	httpresp.Created(c, p)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var p models.Property
	err := h.db.WithContext(c.Request.Context()).
		Preload("ShortTerm").
		Preload("LongTerm").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "property_not_found", "Property not found.")
			return
		}
		httperr.Internal(c, "property_get_failed", "Internal error.")
		return
	}
	httpresp.OK(c, p)
}

// Deactivate hides the listing; existing bookings stay intact.
func (h *PropertyHandler) Deactivate(c *gin.Context) {
	p, ok := h.ownedProperty(c)
	if !ok {
		return
	}
	p.IsActive = false
	if err := h.db.WithContext(c.Request.Context()).
		Model(p).
		Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "property_update_failed", "Internal error.")
		return
	}
	h.record(c, "property_deactivated", p.ID, nil)
	httpresp.OK(c, p)
}

func (h *PropertyHandler) UpsertShortTerm(c *gin.Context) {
	p, ok := h.ownedProperty(c)
	if !ok {
		return
	}
	if !p.IsShortTerm() {
		httperr.BadRequest(c, "property_not_short_term", "Property is not a short-term rental.")
		return
	}

	var req ShortTermDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	if negative(req.CleaningFee, req.SecurityDeposit, req.ExtraGuestFee, req.PetFee) {
		httperr.BadRequest(c, "invalid_fee", "Fees cannot be negative.")
		return
	}
	if (req.MinimumNights != nil && *req.MinimumNights < 1) ||
		(req.MaximumNights != nil && *req.MaximumNights < 1) {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	db := h.db.WithContext(c.Request.Context())
	var str models.ShortTermRental
	err := db.Where("property_id = ?", p.ID).First(&str).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		str = *models.NewShortTermRental(p.ID)
	} else if err != nil {
		httperr.Internal(c, "property_update_failed", "Internal error.")
		return
	}

	if req.MinimumNights != nil {
		str.MinimumNights = *req.MinimumNights
	}
	if req.MaximumNights != nil {
		str.MaximumNights = req.MaximumNights
	}
	if req.InstantBook != nil {
		str.InstantBook = *req.InstantBook
	}
	if req.CheckInTime != nil {
		str.CheckInTime = *req.CheckInTime
	}
	if req.CheckOutTime != nil {
		str.CheckOutTime = *req.CheckOutTime
	}
	if req.HouseRules != nil {
		str.HouseRules = *req.HouseRules
	}
	if req.CancellationPolicy != nil {
		str.CancellationPolicy = *req.CancellationPolicy
	}
	if req.CleaningFee.Valid {
		str.CleaningFee = req.CleaningFee
	}
	if req.SecurityDeposit.Valid {
		str.SecurityDeposit = req.SecurityDeposit
	}
	if req.ExtraGuestFee.Valid {
		str.ExtraGuestFee = req.ExtraGuestFee
	}
	if req.PetFee.Valid {
		str.PetFee = req.PetFee
	}

	if err := db.Save(&str).Error; err != nil {
		httperr.Internal(c, "property_update_failed", "Internal error.")
		return
	}
	h.record(c, "property_short_term_updated", p.ID, nil)
	httpresp.OK(c, str)
}

func (h *PropertyHandler) UpsertLongTerm(c *gin.Context) {
	p, ok := h.ownedProperty(c)
	if !ok {
		return
	}
	if !p.IsLongTerm() {
		httperr.BadRequest(c, "property_not_long_term", "Property is not a long-term rental.")
		return
	}

	var req LongTermDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	if negative(req.SecurityDeposit, req.PetDeposit, req.ApplicationFee) {
		httperr.BadRequest(c, "invalid_fee", "Fees cannot be negative.")
		return
	}

	db := h.db.WithContext(c.Request.Context())
	var ltr models.LongTermRental
	err := db.Where("property_id = ?", p.ID).First(&ltr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ltr = *models.NewLongTermRental(p.ID)
	} else if err != nil {
		httperr.Internal(c, "property_update_failed", "Internal error.")
		return
	}

	if req.LeaseTermMonths != nil {
		ltr.LeaseTermMonths = *req.LeaseTermMonths
	}
	if req.SecurityDeposit.Valid {
		ltr.SecurityDeposit = req.SecurityDeposit
	}
	if req.PetDeposit.Valid {
		ltr.PetDeposit = req.PetDeposit
	}
	if req.ApplicationFee.Valid {
		ltr.ApplicationFee = req.ApplicationFee
	}
	if req.IncomeRequirementMultiplier != nil {
		ltr.IncomeRequirementMultiplier = *req.IncomeRequirementMultiplier
	}
	if req.CreditScoreMinimum != nil {
		ltr.CreditScoreMinimum = req.CreditScoreMinimum
	}
	if req.BackgroundCheckRequired != nil {
		ltr.BackgroundCheckRequired = *req.BackgroundCheckRequired
	}
	if req.ReferencesRequired != nil {
		ltr.ReferencesRequired = *req.ReferencesRequired
	}
	if req.AvailableDate != nil {
		ltr.AvailableDate = req.AvailableDate
	}
	if req.LeaseTerms != nil {
		ltr.LeaseTerms = *req.LeaseTerms
	}

	if err := db.Save(&ltr).Error; err != nil {
		httperr.Internal(c, "property_update_failed", "Internal error.")
		return
	}
	h.record(c, "property_long_term_updated", p.ID, nil)
	httpresp.OK(c, ltr)
}

func (h *PropertyHandler) AddAvailability(c *gin.Context) {
	p, ok := h.ownedProperty(c)
	if !ok {
		return
	}

	var req AvailabilityBlockRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.AvailableFrom.IsZero() {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	if req.AvailableTo != nil && req.AvailableTo.Before(req.AvailableFrom.Time) {
		httperr.BadRequest(c, "invalid_date_range", "Check-out must be after check-in.")
		return
	}

	block := models.PropertyAvailability{
		PropertyID:        p.ID,
		AvailableFrom:     req.AvailableFrom,
		AvailableTo:       req.AvailableTo,
		IsAvailable:       req.IsAvailable == nil || *req.IsAvailable,
		ReasonUnavailable: req.ReasonUnavailable,
		Notes:             req.Notes,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&block).Error; err != nil {
		httperr.Internal(c, "availability_create_failed", "Internal error.")
		return
	}

	h.record(c, "availability_block_added", p.ID, map[string]any{
		"block_id":     block.ID,
		"is_available": block.IsAvailable,
	})
	httpresp.Created(c, block)
}

func (h *PropertyHandler) ListAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var blocks []models.PropertyAvailability
	if err := h.db.WithContext(c.Request.Context()).
		Where("property_id = ?", id).
		Order("available_from ASC").
		Find(&blocks).Error; err != nil {
		httperr.Internal(c, "availability_list_failed", "Internal error.")
		return
	}
	httpresp.List(c, blocks)
}
