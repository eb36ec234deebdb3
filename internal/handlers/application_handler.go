package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/httpresp"
	"github.com/BruksfildServices01/rental-platform/internal/middleware"
	"github.com/BruksfildServices01/rental-platform/internal/models"
	applicationuc "github.com/BruksfildServices01/rental-platform/internal/usecase/application"
)

type ApplicationHandler struct {
	submit *applicationuc.SubmitApplication
	status *applicationuc.UpdateStatus
	get    *applicationuc.GetApplication
	list   *applicationuc.ListApplications
}

func NewApplicationHandler(
	submit *applicationuc.SubmitApplication,
	status *applicationuc.UpdateStatus,
	get *applicationuc.GetApplication,
	list *applicationuc.ListApplications,
) *ApplicationHandler {
	return &ApplicationHandler{submit: submit, status: status, get: get, list: list}
}

type SubmitApplicationRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`

	PersonalInformation   datatypes.JSON `json:"personal_information"`
	EmploymentInformation datatypes.JSON `json:"employment_information"`
	RentalHistory         datatypes.JSON `json:"rental_history"`
	FinancialInformation  datatypes.JSON `json:"financial_information"`
	PetsInformation       datatypes.JSON `json:"pets_information"`
	EmergencyContacts     datatypes.JSON `json:"emergency_contacts"`

	BackgroundCheckConsent bool `json:"background_check_consent"`
	CreditCheckConsent     bool `json:"credit_check_consent"`

	MoveInDate         *models.Date `json:"move_in_date"`
	LeaseTermRequested *int         `json:"lease_term_requested"`
	AdditionalNotes    string       `json:"additional_notes"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.submit.Execute(c.Request.Context(), applicationuc.SubmitApplicationInput{
		PropertyID:             req.PropertyID,
		ApplicantID:            middleware.UserID(c),
		PersonalInformation:    req.PersonalInformation,
		EmploymentInformation:  req.EmploymentInformation,
		RentalHistory:          req.RentalHistory,
		FinancialInformation:   req.FinancialInformation,
		PetsInformation:        req.PetsInformation,
		EmergencyContacts:      req.EmergencyContacts,
		BackgroundCheckConsent: req.BackgroundCheckConsent,
		CreditCheckConsent:     req.CreditCheckConsent,
		MoveInDate:             req.MoveInDate,
		LeaseTermRequested:     req.LeaseTermRequested,
		AdditionalNotes:        req.AdditionalNotes,
	})
	if err != nil {
		httperr.FromError(c, err, "application_submit_failed")
		return
	}
	httpresp.Created(c, app)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	app, err := h.get.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "application_get_failed")
		return
	}
	httpresp.OK(c, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	items, err := h.list.ForApplicant(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "application_list_failed")
		return
	}
	httpresp.List(c, items)
}

func (h *ApplicationHandler) ListForProperty(c *gin.Context) {
	propertyID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	items, err := h.list.ForProperty(c.Request.Context(), propertyID, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "application_list_failed")
		return
	}
	httpresp.List(c, items)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.status.Execute(c.Request.Context(), applicationuc.UpdateStatusInput{
		ApplicationID: id,
		ActorID:       middleware.UserID(c),
		Status:        req.Status,
	})
	if err != nil {
		httperr.FromError(c, err, "application_status_failed")
		return
	}
	httpresp.OK(c, app)
}
