package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/httpresp"
	ucUser "github.com/BruksfildServices01/client-followup/internal/usecase/user"
)

type UserHandler struct {
	users *ucUser.Directory
}

func NewUserHandler(users *ucUser.Directory) *UserHandler {
	return &UserHandler{users: users}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type DeactivateUserRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=255"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Create(c.Request.Context(), ucUser.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ActorID:  actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Update(c.Request.Context(), ucUser.UpdateUserInput{
		ID:      c.Param("id"),
		Name:    req.Name,
		Email:   req.Email,
		ActorID: actorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), c.Param("id"), req.Password, actorID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// Deactivate blocks the caller from deactivating their own account.
func (h *UserHandler) Deactivate(c *gin.Context) {
	var req DeactivateUserRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Deactivate(c.Request.Context(), c.Param("id"), req.Reason, actorID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *UserHandler) Reactivate(c *gin.Context) {
	u, err := h.users.Reactivate(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, u)
}
