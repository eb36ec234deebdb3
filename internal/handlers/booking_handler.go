package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/booking"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/httpresp"
	"github.com/BruksfildServices01/rental-platform/internal/middleware"
	"github.com/BruksfildServices01/rental-platform/internal/models"
	bookinguc "github.com/BruksfildServices01/rental-platform/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *bookinguc.CreateBookingRequest
	transition *bookinguc.TransitionBooking
	list       *bookinguc.ListBookings
	get        *bookinguc.GetBooking
	check      *bookinguc.CheckAvailability
	quote      *bookinguc.Quote
}

func NewBookingHandler(
	create *bookinguc.CreateBookingRequest,
	transition *bookinguc.TransitionBooking,
	list *bookinguc.ListBookings,
	get *bookinguc.GetBooking,
	check *bookinguc.CheckAvailability,
	quote *bookinguc.Quote,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		transition: transition,
		list:       list,
		get:        get,
		check:      check,
		quote:      quote,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	PropertyID       uuid.UUID      `json:"property_id" binding:"required"`
	CheckInDate      models.Date    `json:"check_in_date"`
	CheckOutDate     models.Date    `json:"check_out_date"`
	NumGuests        int            `json:"num_guests"`
	NumPets          int            `json:"num_pets"`
	SpecialRequests  string         `json:"special_requests"`
	GuestInformation datatypes.JSON `json:"guest_information"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), bookinguc.CreateBookingRequestInput{
		PropertyID:       req.PropertyID,
		GuestID:          middleware.UserID(c),
		CheckIn:          req.CheckInDate,
		CheckOut:         req.CheckOutDate,
		NumGuests:        req.NumGuests,
		NumPets:          req.NumPets,
		SpecialRequests:  req.SpecialRequests,
		GuestInformation: req.GuestInformation,
	})
	if err != nil {
		httperr.FromError(c, err, "booking_create_failed")
		return
	}
	httpresp.Created(c, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	b, err := h.get.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "booking_get_failed")
		return
	}
	httpresp.OK(c, b)
}

// ListMine lists the caller's bookings as a guest.
func (h *BookingHandler) ListMine(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}
	guest := middleware.UserID(c)
	f := domain.ListFilter{GuestID: &guest, Status: c.Query("status"), Limit: limit, Offset: offset}

	items, total, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err, "booking_list_failed")
		return
	}
	httpresp.Page(c, items, total, clampLimit(limit), max(offset, 0))
}

func (h *BookingHandler) ListForProperty(c *gin.Context) {
	propertyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}
	f := domain.ListFilter{Status: c.Query("status"), Limit: limit, Offset: offset}

	items, total, err := h.list.ForProperty(c.Request.Context(), propertyID, middleware.UserID(c), f)
	if err != nil {
		httperr.FromError(c, err, "booking_list_failed")
		return
	}
	httpresp.Page(c, items, total, clampLimit(limit), max(offset, 0))
}

func (h *BookingHandler) Confirm(c *gin.Context)  { h.move(c, bookinguc.ActionConfirm) }
func (h *BookingHandler) Cancel(c *gin.Context)   { h.move(c, bookinguc.ActionCancel) }
func (h *BookingHandler) Complete(c *gin.Context) { h.move(c, bookinguc.ActionComplete) }

func (h *BookingHandler) move(c *gin.Context, action bookinguc.Action) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	b, err := h.transition.Execute(c.Request.Context(), bookinguc.TransitionInput{
		BookingID: id,
		ActorID:   middleware.UserID(c),
		Action:    action,
	})
	if err != nil {
		httperr.FromError(c, err, "booking_transition_failed")
		return
	}
	httpresp.OK(c, b)
}

// Availability answers GET /properties/:id/availability?check_in=&check_out=.
func (h *BookingHandler) Availability(c *gin.Context) {
	propertyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	in, ok := dateValue(c, c.Query("check_in"))
	if !ok {
		return
	}
	out, ok := dateValue(c, c.Query("check_out"))
	if !ok {
		return
	}
	h.availability(c, propertyID, in, out)
}

// AvailableOn checks the single night starting at :date.
func (h *BookingHandler) AvailableOn(c *gin.Context) {
	propertyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	day, ok := dateValue(c, c.Param("date"))
	if !ok {
		return
	}
	h.availability(c, propertyID, day, day.AddDays(1))
}

func (h *BookingHandler) availability(c *gin.Context, propertyID uuid.UUID, in, out models.Date) {
	res, err := h.check.Execute(c.Request.Context(), bookinguc.CheckAvailabilityInput{
		PropertyID: propertyID,
		CheckIn:    in,
		CheckOut:   out,
	})
	if err != nil {
		httperr.FromError(c, err, "availability_check_failed")
		return
	}
	httpresp.OK(c, gin.H{
		"property_id":    propertyID,
		"check_in_date":  in,
		"check_out_date": out,
		"available":      res.Available,
		"reason":         res.Reason,
	})
}

func (h *BookingHandler) Quote(c *gin.Context) {
	propertyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	nights, ok := intQuery(c, "nights", 0)
	if !ok {
		return
	}
	guests, ok := intQuery(c, "guests", 1)
	if !ok {
		return
	}
	pets, ok := intQuery(c, "pets", 0)
	if !ok {
		return
	}

	breakdown, err := h.quote.Execute(c.Request.Context(), bookinguc.QuoteInput{
		PropertyID: propertyID,
		Nights:     nights,
		Guests:     guests,
		Pets:       pets,
	})
	if err != nil {
		httperr.FromError(c, err, "quote_failed")
		return
	}
	httpresp.OK(c, breakdown)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return bookinguc.DefaultPageSize
	}
	return min(limit, bookinguc.MaxPageSize)
}
