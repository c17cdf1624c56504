package dto

import (
	"time"

	"github.com/BruksfildServices01/client-followup/internal/models"
)

type AppointmentListDTO struct {
	ID             string          `json:"id"`
	ScheduledAt    time.Time       `json:"scheduled_at"`
	Status         string          `json:"status"`
	ClientID       string          `json:"client_id"`
	ClientWhatsapp string          `json:"client_whatsapp"`
	Assignee       *models.UserRef `json:"assignee"`
	CancelReason   *string         `json:"cancel_reason,omitempty"`
}

func NewAppointmentListDTO(a *models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:           a.ID,
		ScheduledAt:  a.ScheduledAt,
		Status:       a.Status,
		ClientID:     a.ClientID,
		Assignee:     a.Assignee.Ref(),
		CancelReason: a.CancelReason,
	}
	if a.Client != nil {
		out.ClientWhatsapp = a.Client.Whatsapp
	}
	return out
}

// MapPage converts the items of p with fn, keeping the paging fields.
func MapPage[T, U any](p *Page[T], fn func(*T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, fn(&p.Items[i]))
	}
	return NewPage(items, p.Total, p.Page, p.PageSize)
}
