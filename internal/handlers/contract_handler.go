package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/httpresp"
	"github.com/BruksfildServices01/rental-platform/internal/middleware"
	"github.com/BruksfildServices01/rental-platform/internal/models"
	contractuc "github.com/BruksfildServices01/rental-platform/internal/usecase/contract"
)

// maxDocumentBytes bounds multipart contract uploads.
const maxDocumentBytes = 20 << 20

// ======================================================
// HANDLER
// ======================================================

type ContractHandler struct {
	create      *contractuc.CreateContract
	send        *contractuc.SendContract
	sign        *contractuc.SignContract
	attach      *contractuc.AttachDocument
	get         *contractuc.GetContract
	list        *contractuc.ListContracts
	commission  *contractuc.CreateCommission
	transition  *contractuc.TransitionCommission
	commissions *contractuc.ListCommissions
}

type ContractUseCases struct {
	Create      *contractuc.CreateContract
	Send        *contractuc.SendContract
	Sign        *contractuc.SignContract
	Attach      *contractuc.AttachDocument
	Get         *contractuc.GetContract
	List        *contractuc.ListContracts
	Commission  *contractuc.CreateCommission
	Transition  *contractuc.TransitionCommission
	Commissions *contractuc.ListCommissions
}

func NewContractHandler(uc ContractUseCases) *ContractHandler {
	return &ContractHandler{
		create:      uc.Create,
		send:        uc.Send,
		sign:        uc.Sign,
		attach:      uc.Attach,
		get:         uc.Get,
		list:        uc.List,
		commission:  uc.Commission,
		transition:  uc.Transition,
		commissions: uc.Commissions,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateContractRequest struct {
	ApplicationID   *uuid.UUID          `json:"application_id"`
	PropertyID      uuid.UUID           `json:"property_id"`
	TenantID        uuid.UUID           `json:"tenant_id"`
	ContractTerms   datatypes.JSON      `json:"contract_terms"`
	MonthlyRent     decimal.Decimal     `json:"monthly_rent"`
	SecurityDeposit decimal.NullDecimal `json:"security_deposit"`
	LeaseStartDate  models.Date         `json:"lease_start_date"`
	LeaseEndDate    models.Date         `json:"lease_end_date"`
}

type SignContractRequest struct {
	Signer string `json:"signer" binding:"required"`
}

type CreateCommissionRequest struct {
	AgentID        uuid.UUID       `json:"agent_id" binding:"required"`
	CommissionType string          `json:"commission_type"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DueDate        *models.Date    `json:"due_date"`
}

type UpdateCommissionRequest struct {
	Status     string `json:"commission_status" binding:"required"`
	TransferID string `json:"transfer_id"`
}

// ======================================================
// CONTRACTS
// ======================================================

func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.create.Execute(c.Request.Context(), contractuc.CreateContractInput{
		ActorID:         middleware.UserID(c),
		ApplicationID:   req.ApplicationID,
		PropertyID:      req.PropertyID,
		TenantID:        req.TenantID,
		ContractTerms:   req.ContractTerms,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		LeaseStartDate:  req.LeaseStartDate,
		LeaseEndDate:    req.LeaseEndDate,
	})
	if err != nil {
		httperr.FromError(c, err, "contract_create_failed")
		return
	}
	httpresp.Created(c, ct)
}

func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ct, err := h.get.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "contract_get_failed")
		return
	}
	httpresp.OK(c, ct)
}

func (h *ContractHandler) ListMine(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "contract_list_failed")
		return
	}
	httpresp.List(c, items)
}

func (h *ContractHandler) Send(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ct, err := h.send.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "contract_send_failed")
		return
	}
	httpresp.OK(c, ct)
}

func (h *ContractHandler) Sign(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req SignContractRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := h.sign.Execute(c.Request.Context(), id, middleware.UserID(c), req.Signer)
	if err != nil {
		httperr.FromError(c, err, "contract_sign_failed")
		return
	}
	httpresp.OK(c, ct)
}

// UploadDocument takes a multipart "file" field.
func (h *ContractHandler) UploadDocument(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_document", "A document file is required.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_document", "A document file is required.")
		return
	}
	defer f.Close()

	ct, err := h.attach.Execute(c.Request.Context(), contractuc.AttachDocumentInput{
		ContractID:  id,
		ActorID:     middleware.UserID(c),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		httperr.FromError(c, err, "contract_document_failed")
		return
	}
	httpresp.OK(c, ct)
}

// ======================================================
// COMMISSIONS
// ======================================================

func (h *ContractHandler) CreateCommission(c *gin.Context) {
	contractID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req CreateCommissionRequest
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.commission.Execute(c.Request.Context(), contractuc.CreateCommissionInput{
		ActorID:        middleware.UserID(c),
		ContractID:     contractID,
		AgentID:        req.AgentID,
		CommissionType: req.CommissionType,
		Rate:           req.CommissionRate,
		BaseAmount:     req.BaseAmount,
		DueDate:        req.DueDate,
	})
	if err != nil {
		httperr.FromError(c, err, "commission_create_failed")
		return
	}
	httpresp.Created(c, ct)
}

func (h *ContractHandler) UpdateCommission(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCommissionRequest
	if !bindJSON(c, &req) {
		return
	}

	ct, err := h.transition.Execute(c.Request.Context(), contractuc.TransitionCommissionInput{
		CommissionID: id,
		ActorID:      middleware.UserID(c),
		Status:       req.Status,
		TransferID:   req.TransferID,
	})
	if err != nil {
		httperr.FromError(c, err, "commission_update_failed")
		return
	}
	httpresp.OK(c, ct)
}

// ListMyCommissions lists commissions earned by the calling agent.
func (h *ContractHandler) ListMyCommissions(c *gin.Context) {
	items, err := h.commissions.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "commission_list_failed")
		return
	}
	httpresp.List(c, items)
}
