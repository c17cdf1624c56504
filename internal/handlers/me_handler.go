package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/httpresp"
	ucUser "github.com/BruksfildServices01/client-followup/internal/usecase/user"
)

type MeHandler struct {
	users *ucUser.Directory
}

func NewMeHandler(users *ucUser.Directory) *MeHandler {
	return &MeHandler{users: users}
}

// GetMe returns the caller with their assigned clients and OPEN appointments.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := actorID(c)
	if userID == "" {
		httperr.Unauthorized(c, "user_not_in_context", "Unauthorized.")
		return
	}

	detail, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":              detail.User.Ref(),
		"clients":           detail.Clients,
		"open_appointments": detail.OpenAppointments,
	})
}
