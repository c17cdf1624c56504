package client

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/models"
)

// NextOpenAppointment returns the soonest OPEN appointment time among the
// client's loaded appointments, or nil. Other statuses are ignored.
func NextOpenAppointment(c *models.Client) *time.Time {
	var next *time.Time
	for i := range c.Appointments {
		ap := &c.Appointments[i]
		if appointment.Status(ap.Status) != appointment.StatusOpen {
			continue
		}
		if next == nil || ap.ScheduledAt.Before(*next) {
			t := ap.ScheduledAt
			next = &t
		}
	}
	return next
}

// SortByNextOpenAppointment orders clients by their soonest OPEN appointment
// ascending; clients without one go last, keeping their relative order.
func SortByNextOpenAppointment(clients []models.Client) {
	keys := make(map[string]*time.Time, len(clients))
	for i := range clients {
		keys[clients[i].ID] = NextOpenAppointment(&clients[i])
	}

	sort.SliceStable(clients, func(i, j int) bool {
		a, b := keys[clients[i].ID], keys[clients[j].ID]
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// Paginate slices an already sorted set.
func Paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
