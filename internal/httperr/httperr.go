package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindBusiness:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err using its kind. Internal failures are logged and
// reported with a generic message.
func Respond(c *gin.Context, err error) {
	var de *Error
	if errors.As(err, &de) {
		Write(c, StatusFor(de.Kind), de.Code, de.Message)
		return
	}

	if KindOf(err) == KindConflict {
		Write(c, http.StatusConflict, "conflict", "Resource already exists.")
		return
	}

	slog.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	Internal(c, "internal_error", "Internal error.")
}
