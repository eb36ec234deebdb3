package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/rental-platform/internal/domain/viewing"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/httpresp"
	"github.com/BruksfildServices01/rental-platform/internal/middleware"
	viewinguc "github.com/BruksfildServices01/rental-platform/internal/usecase/viewing"
)

// ======================================================
// HANDLER
// ======================================================

type ViewingHandler struct {
	schedule   *viewinguc.ScheduleViewing
	reschedule *viewinguc.RescheduleViewing
	complete   *viewinguc.CompleteViewing
	cancel     *viewinguc.CancelViewing
	slots      *viewinguc.ListAvailableSlots
	conflicts  *viewinguc.FindConflicts
	list       *viewinguc.ListViewings
	get        *viewinguc.GetViewing
	loc        *time.Location
}

type ViewingUseCases struct {
	Schedule   *viewinguc.ScheduleViewing
	Reschedule *viewinguc.RescheduleViewing
	Complete   *viewinguc.CompleteViewing
	Cancel     *viewinguc.CancelViewing
	Slots      *viewinguc.ListAvailableSlots
	Conflicts  *viewinguc.FindConflicts
	List       *viewinguc.ListViewings
	Get        *viewinguc.GetViewing
}

func NewViewingHandler(uc ViewingUseCases, loc *time.Location) *ViewingHandler {
	return &ViewingHandler{
		schedule:   uc.Schedule,
		reschedule: uc.Reschedule,
		complete:   uc.Complete,
		cancel:     uc.Cancel,
		slots:      uc.Slots,
		conflicts:  uc.Conflicts,
		list:       uc.List,
		get:        uc.Get,
		loc:        loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleViewingRequest struct {
	PropertyID      uuid.UUID  `json:"property_id" binding:"required"`
	AgentID         uuid.UUID  `json:"agent_id" binding:"required"`
	ApplicantID     *uuid.UUID `json:"applicant_id"`
	ScheduledDate   time.Time  `json:"scheduled_date"`
	DurationMinutes int        `json:"duration_minutes"`
	Notes           string     `json:"notes"`
}

type RescheduleViewingRequest struct {
	ScheduledDate   time.Time `json:"scheduled_date"`
	DurationMinutes int       `json:"duration_minutes"`
}

type CompleteViewingRequest struct {
	AgentNotes string         `json:"agent_notes"`
	Feedback   datatypes.JSON `json:"feedback"`
}

// ======================================================
// ENDPOINTS
// ======================================================

// Schedule books a viewing. Applicants book for themselves when
// applicant_id is omitted.
func (h *ViewingHandler) Schedule(c *gin.Context) {
	var req ScheduleViewingRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.UserID(c)
	applicant := req.ApplicantID
	if applicant == nil && actor != req.AgentID {
		applicant = &actor
	}

	v, err := h.schedule.Execute(c.Request.Context(), viewinguc.ScheduleViewingInput{
		PropertyID:      req.PropertyID,
		AgentID:         req.AgentID,
		ApplicantID:     applicant,
		ActorID:         actor,
		Start:           req.ScheduledDate,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "viewing_schedule_failed")
		return
	}
	httpresp.Created(c, v)
}

// Slots answers GET /agents/:id/slots?date=YYYY-MM-DD&duration=30.
func (h *ViewingHandler) Slots(c *gin.Context) {
	agentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	day, ok := dateValue(c, c.Query("date"))
	if !ok {
		return
	}
	duration, ok := intQuery(c, "duration", domain.DefaultDurationMinutes)
	if !ok {
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), viewinguc.ListAvailableSlotsInput{
		AgentID:         agentID,
		Date:            day.Time,
		DurationMinutes: duration,
	})
	if err != nil {
		httperr.FromError(c, err, "viewing_slots_failed")
		return
	}

	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = s.In(h.loc)
	}
	httpresp.OK(c, gin.H{
		"agent_id":         agentID,
		"date":             day,
		"duration_minutes": duration,
		"slots":            out,
	})
}

// Conflicts answers GET /agents/:id/conflicts?start=RFC3339&duration=30.
func (h *ViewingHandler) Conflicts(c *gin.Context) {
	agentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	start, ok := timeQuery(c, "start")
	if !ok {
		return
	}
	duration, ok := intQuery(c, "duration", domain.DefaultDurationMinutes)
	if !ok {
		return
	}

	busy, err := h.conflicts.Execute(c.Request.Context(), viewinguc.FindConflictsInput{
		AgentID:         agentID,
		Start:           start,
		DurationMinutes: duration,
	})
	if err != nil {
		httperr.FromError(c, err, "viewing_conflicts_failed")
		return
	}
	httpresp.OK(c, gin.H{"agent_id": agentID, "start": start, "has_conflict": busy})
}

func (h *ViewingHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	v, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "viewing_get_failed")
		return
	}
	httpresp.OK(c, v)
}

func (h *ViewingHandler) List(c *gin.Context) {
	f := domain.ListFilter{Status: c.Query("status")}
	var ok bool
	if f.PropertyID, ok = optionalUUIDQuery(c, "property_id"); !ok {
		return
	}
	if f.AgentID, ok = optionalUUIDQuery(c, "agent_id"); !ok {
		return
	}
	if c.Query("from") != "" {
		from, ok := timeQuery(c, "from")
		if !ok {
			return
		}
		f.From = &from
	}
	if c.Query("to") != "" {
		to, ok := timeQuery(c, "to")
		if !ok {
			return
		}
		f.To = &to
	}

	items, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err, "viewing_list_failed")
		return
	}
	httpresp.List(c, items)
}

func (h *ViewingHandler) Complete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req CompleteViewingRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	v, err := h.complete.Execute(c.Request.Context(), viewinguc.CompleteViewingInput{
		ViewingID:  id,
		ActorID:    middleware.UserID(c),
		AgentNotes: req.AgentNotes,
		Feedback:   req.Feedback,
	})
	if err != nil {
		httperr.FromError(c, err, "viewing_complete_failed")
		return
	}
	httpresp.OK(c, v)
}

func (h *ViewingHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	v, err := h.cancel.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "viewing_cancel_failed")
		return
	}
	httpresp.OK(c, v)
}

func (h *ViewingHandler) Reschedule(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req RescheduleViewingRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.reschedule.Execute(c.Request.Context(), viewinguc.RescheduleViewingInput{
		ViewingID:       id,
		ActorID:         middleware.UserID(c),
		Start:           req.ScheduledDate,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.FromError(c, err, "viewing_reschedule_failed")
		return
	}
	httpresp.Created(c, v)
}
