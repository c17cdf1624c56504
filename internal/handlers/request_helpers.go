package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/middleware"
)

// bindJSON binds and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// bindPatch binds a partial update and rejects any of the immutable keys.
func bindPatch(c *gin.Context, req any, immutable ...string) bool {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	for _, key := range immutable {
		if _, ok := raw[key]; ok {
			httperr.BadRequest(c, "immutable_field", key+" cannot be changed here")
			return false
		}
	}
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, size
}

// listQuery accepts both ?k=a,b and ?k=a&k=b.
func listQuery(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func actorID(c *gin.Context) string {
	return middleware.CurrentUserID(c)
}
