package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/config"
	userDomain "github.com/BruksfildServices01/client-followup/internal/domain/user"
	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/session"
	ucAuth "github.com/BruksfildServices01/client-followup/internal/usecase/auth"
)

const ContextUserID = "userID"

// AuthMiddleware resolves the bearer token into ContextUserID and rejects
// deactivated users. The redis ban list answers first; the user row is the
// fallback.
func AuthMiddleware(
	cfg *config.Config,
	users userDomain.Repository,
	bans *session.BanList,
) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, "invalid_authorization_header")
			return
		}

		userID, err := ucAuth.ParseToken(secret, parts[1])
		if err != nil {
			abort(c, "invalid_token")
			return
		}

		ctx := c.Request.Context()
		banned, known := bans.IsBanned(ctx, userID)
		if !known {
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				if httperr.IsRecordNotFound(err) {
					abort(c, "invalid_token")
					return
				}
				httperr.Respond(c, err)
				c.Abort()
				return
			}
			banned = u.Banned
		}
		if banned {
			abort(c, "user_deactivated")
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func abort(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Unauthorized.",
	})
}

// CurrentUserID returns the authenticated user id, or "" on public routes.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
