package user

import (
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

// CanDeactivate blocks a user from deactivating their own account.
func CanDeactivate(actorID, targetID string) error {
	if actorID != "" && actorID == targetID {
		return httperr.ErrBusiness("self_deactivation", "you cannot deactivate your own account")
	}
	return nil
}

func Deactivate(u *models.User, reason *string) {
	u.Banned = true
	u.BanReason = reason
}

func Reactivate(u *models.User) {
	u.Banned = false
	u.BanReason = nil
	u.BanExpires = nil
}
