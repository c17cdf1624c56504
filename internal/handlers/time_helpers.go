package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-followup/internal/httperr"
	"github.com/BruksfildServices01/client-followup/internal/timezone"
)

// parseTimeQuery reads an RFC3339 query param. An absent param yields nil.
func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_"+key, key+" must be an ISO-8601 datetime")
	}
	return &t, nil
}

// dayBounds turns a YYYY-MM-DD day in tz into inclusive UTC bounds.
func dayBounds(date, tz string) (*time.Time, *time.Time, error) {
	start, end, err := timezone.DayRange(date, tz)
	if err != nil {
		return nil, nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	end = end.Add(-time.Nanosecond)
	return &start, &end, nil
}
