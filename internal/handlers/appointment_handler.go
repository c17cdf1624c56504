package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/dto"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/client-followup/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	reschedule *ucAppointment.RescheduleAppointment
	cancel     *ucAppointment.CancelAppointment
	finalize   *ucAppointment.FinalizeAppointment
	list       *ucAppointment.ListAppointments
	get        *ucAppointment.GetAppointment

	timezone string
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	cancel *ucAppointment.CancelAppointment,
	finalize *ucAppointment.FinalizeAppointment,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	timezone string,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		reschedule: reschedule,
		cancel:     cancel,
		finalize:   finalize,
		list:       list,
		get:        get,
		timezone:   timezone,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    string    `json:"client_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type FinalizeAppointmentRequest struct {
	StartedAt           time.Time `json:"started_at" binding:"required"`
	Summary             string    `json:"summary" binding:"required"`
	Outcome             string    `json:"outcome" binding:"required"`
	NextAppointmentDate time.Time `json:"next_appointment_date" binding:"required"`
}

// ======================================================
// COMMANDS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		ScheduledAt: req.ScheduledAt,
		UserID:      actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		AppointmentID: c.Param("id"),
		ScheduledAt:   req.ScheduledAt,
		UserID:        actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		AppointmentID: c.Param("id"),
		Reason:        req.Reason,
		UserID:        actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Finalize(c *gin.Context) {
	var req FinalizeAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.finalize.Execute(c.Request.Context(), ucAppointment.FinalizeAppointmentInput{
		AppointmentID:       c.Param("id"),
		UserID:              actorID(c),
		StartedAt:           req.StartedAt,
		Summary:             req.Summary,
		Outcome:             req.Outcome,
		NextAppointmentDate: req.NextAppointmentDate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// QUERIES
// ======================================================

// List filters by start_date/end_date (RFC3339) or by a single local
// date=YYYY-MM-DD, plus an optional status.
func (h *AppointmentHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	in := ucAppointment.ListAppointmentsInput{
		Page:     page,
		PageSize: size,
		Status:   c.Query("status"),
	}

	var err error
	if date := c.Query("date"); date != "" {
		in.StartDate, in.EndDate, err = dayBounds(date, h.timezone)
	} else {
		if in.StartDate, err = parseTimeQuery(c, "start_date"); err == nil {
			in.EndDate, err = parseTimeQuery(c, "end_date")
		}
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.MapPage(out, dto.NewAppointmentListDTO))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
