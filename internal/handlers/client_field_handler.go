package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/client-followup/internal/domain/clientfield"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/httpresp"
	"github.com/BruksfildServices01/client-followup/internal/models"
	ucField "github.com/BruksfildServices01/client-followup/internal/usecase/clientfield"
)

type ClientFieldHandler struct {
	list       *ucField.ListFields
	create     *ucField.CreateField
	update     *ucField.UpdateField
	deactivate *ucField.DeactivateField
	reorder    *ucField.ReorderFields
}

func NewClientFieldHandler(
	list *ucField.ListFields,
	create *ucField.CreateField,
	update *ucField.UpdateField,
	deactivate *ucField.DeactivateField,
	reorder *ucField.ReorderFields,
) *ClientFieldHandler {
	return &ClientFieldHandler{
		list:       list,
		create:     create,
		update:     update,
		deactivate: deactivate,
		reorder:    reorder,
	}
}

// --------- Requests ---------

type CreateFieldRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Type     string   `json:"type" binding:"required,oneof=TEXT NUMBER DATE SELECT CHECKBOX"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
	Order    int      `json:"order" binding:"gte=0"`
}

type UpdateFieldRequest struct {
	Name     *string   `json:"name" binding:"omitempty,max=100"`
	Required *bool     `json:"required"`
	Order    *int      `json:"order" binding:"omitempty,gte=0"`
	Options  *[]string `json:"options"`
}

type ReorderItem struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order" binding:"gte=0"`
}

type ReorderFieldsRequest struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

// --------- Handlers ---------

func (h *ClientFieldHandler) List(c *gin.Context) {
	fields, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, fields)
}

func (h *ClientFieldHandler) Create(c *gin.Context) {
	var req CreateFieldRequest
	if !bindJSON(c, &req) {
		return
	}

	f, err := h.create.Execute(c.Request.Context(), ucField.CreateFieldInput{
		Name:     req.Name,
		Type:     models.FieldType(req.Type),
		Required: req.Required,
		Options:  req.Options,
		Order:    req.Order,
		UserID:   actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, f)
}

// Update rejects "type": a field's type is fixed at creation.
func (h *ClientFieldHandler) Update(c *gin.Context) {
	var req UpdateFieldRequest
	if !bindPatch(c, &req, "type") {
		return
	}

	f, err := h.update.Execute(c.Request.Context(), ucField.UpdateFieldInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Required: req.Required,
		Order:    req.Order,
		Options:  req.Options,
		UserID:   actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, f)
}

func (h *ClientFieldHandler) Deactivate(c *gin.Context) {
	f, err := h.deactivate.Execute(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, f)
}

func (h *ClientFieldHandler) Reorder(c *gin.Context) {
	var req ReorderFieldsRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]domain.OrderUpdate, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderUpdate{ID: it.ID, Order: it.Order})
	}

	fields, err := h.reorder.Execute(c.Request.Context(), items)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, fields)
}
