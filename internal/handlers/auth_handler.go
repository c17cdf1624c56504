package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/client-followup/internal/usecase/auth"
)

type AuthHandler struct {
	login *ucAuth.Login
}

func NewAuthHandler(login *ucAuth.Login) *AuthHandler {
	return &AuthHandler{login: login}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), ucAuth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}
