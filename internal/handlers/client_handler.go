package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/dto"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/httpresp"
	ucClient "github.com/BruksfildServices01/client-followup/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	list       *ucClient.ListClients
	get        *ucClient.GetClient
	create     *ucClient.CreateClient
	update     *ucClient.UpdateClient
	deactivate *ucClient.DeactivateClient
	transfer   *ucClient.TransferClient
	history    *ucClient.ClientHistory
}

func NewClientHandler(
	list *ucClient.ListClients,
	get *ucClient.GetClient,
	create *ucClient.CreateClient,
	update *ucClient.UpdateClient,
	deactivate *ucClient.DeactivateClient,
	transfer *ucClient.TransferClient,
	history *ucClient.ClientHistory,
) *ClientHandler {
	return &ClientHandler{
		list:       list,
		get:        get,
		create:     create,
		update:     update,
		deactivate: deactivate,
		transfer:   transfer,
		history:    history,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type FieldValueRequest struct {
	FieldID string `json:"field_id" binding:"required"`
	Value   string `json:"value"`
}

type CreateClientRequest struct {
	Whatsapp    string              `json:"whatsapp" binding:"required,whatsapp"`
	Notes       *string             `json:"notes"`
	AssignedTo  string              `json:"assigned_to" binding:"required"`
	ScheduledAt time.Time           `json:"scheduled_at" binding:"required"`
	FieldValues []FieldValueRequest `json:"field_values" binding:"dive"`
	TagIDs      []string            `json:"tag_ids"`
}

type UpdateClientRequest struct {
	Whatsapp    *string             `json:"whatsapp" binding:"omitempty,whatsapp"`
	Notes       *string             `json:"notes"`
	FieldValues []FieldValueRequest `json:"field_values" binding:"dive"`
}

type TransferClientRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required"`
}

func toFieldValues(in []FieldValueRequest) []ucClient.FieldValueInput {
	out := make([]ucClient.FieldValueInput, 0, len(in))
	for _, v := range in {
		out = append(out, ucClient.FieldValueInput{FieldID: v.FieldID, Value: v.Value})
	}
	return out
}

// ======================================================
// QUERIES
// ======================================================

// List returns active clients ordered by their next OPEN appointment.
func (h *ClientHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	out, err := h.list.Execute(c.Request.Context(), ucClient.ListClientsInput{
		Page:     page,
		PageSize: size,
		Search:   c.Query("search"),
		TagIDs:   listQuery(c, "tag_ids"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.MapPage(out, dto.NewClientDTO))
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewClientDetailDTO(client))
}

func (h *ClientHandler) History(c *gin.Context) {
	page, size := pageParams(c)

	out, err := h.history.Execute(c.Request.Context(), ucClient.ClientHistoryInput{
		ClientID: c.Param("id"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// COMMANDS
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	assignee := req.AssignedTo

	res, err := h.create.Execute(ctx, ucClient.CreateClientInput{
		Whatsapp:    req.Whatsapp,
		Notes:       req.Notes,
		AssignedTo:  &assignee,
		UserID:      actorID(c),
		ScheduledAt: req.ScheduledAt,
		FieldValues: toFieldValues(req.FieldValues),
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	client, err := h.get.Execute(ctx, res.Client.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"client":      dto.NewClientDetailDTO(client),
		"appointment": res.Appointment,
	})
}

// Update never changes the assignee; that goes through Transfer.
func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if !bindPatch(c, &req, "assigned_to") {
		return
	}

	client, err := h.update.Execute(c.Request.Context(), ucClient.UpdateClientInput{
		ID:          c.Param("id"),
		UserID:      actorID(c),
		Whatsapp:    req.Whatsapp,
		Notes:       req.Notes,
		FieldValues: toFieldValues(req.FieldValues),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewClientDetailDTO(client))
}

func (h *ClientHandler) Deactivate(c *gin.Context) {
	client, err := h.deactivate.Execute(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewClientDTO(client))
}

func (h *ClientHandler) Transfer(c *gin.Context) {
	var req TransferClientRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.transfer.Execute(c.Request.Context(), ucClient.TransferClientInput{
		ClientID:      c.Param("id"),
		NewAssigneeID: req.AssignedTo,
		UserID:        actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"client":                  dto.NewClientDTO(res.Client),
		"moved_open_appointments": res.MovedOpenAppointments,
	})
}
