package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/httpresp"
	ucTag "github.com/BruksfildServices01/client-followup/internal/usecase/tag"
)

type TagHandler struct {
	tags *ucTag.Service
}

func NewTagHandler(tags *ucTag.Service) *TagHandler {
	return &TagHandler{tags: tags}
}

// --------- Requests ---------

type CreateTagRequest struct {
	Name  string  `json:"name" binding:"required,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

// --------- Handlers ---------

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, tags)
}

func (h *TagHandler) Create(c *gin.Context) {
	var req CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.tags.Create(c.Request.Context(), ucTag.CreateTagInput{
		Name:      req.Name,
		Color:     req.Color,
		CreatedBy: actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, t)
}

func (h *TagHandler) Update(c *gin.Context) {
	var req UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.tags.Update(c.Request.Context(), ucTag.UpdateTagInput{
		ID:     c.Param("id"),
		Name:   req.Name,
		Color:  req.Color,
		UserID: actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, t)
}

func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tags.Delete(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *TagHandler) LinkClient(c *gin.Context) {
	if err := h.tags.LinkClient(c.Request.Context(), c.Param("id"), c.Param("clientId")); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *TagHandler) UnlinkClient(c *gin.Context) {
	if err := h.tags.UnlinkClient(c.Request.Context(), c.Param("id"), c.Param("clientId")); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
