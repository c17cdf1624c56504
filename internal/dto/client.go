package dto

import (
	"time"

	"github.com/BruksfildServices01/client-followup/internal/domain/appointment"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/validators"
)

type FieldValueDTO struct {
	FieldID   string           `json:"field_id"`
	FieldName string           `json:"field_name"`
	FieldType models.FieldType `json:"field_type"`
	Value     string           `json:"value"`
}

type TagDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type ClientDTO struct {
	ID              string          `json:"id"`
	Whatsapp        string          `json:"whatsapp"`
	WhatsappDisplay string          `json:"whatsapp_display"`
	WhatsappLink    string          `json:"whatsapp_link"`
	Notes           *string         `json:"notes"`
	Assignee        *models.UserRef `json:"assignee"`
	DeletedAt       *time.Time      `json:"deleted_at"`

	FieldValues []FieldValueDTO `json:"field_values"`
	Tags        []TagDTO        `json:"tags"`

	NextAppointmentAt *time.Time           `json:"next_appointment_at"`
	Appointments      []models.Appointment `json:"appointments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClientDTO flattens the preloaded relations of c. NextAppointmentAt is
// the earliest OPEN appointment among those loaded.
func NewClientDTO(c *models.Client) ClientDTO {
	out := ClientDTO{
		ID:              c.ID,
		Whatsapp:        c.Whatsapp,
		WhatsappDisplay: validators.FormatWhatsApp(c.Whatsapp),
		WhatsappLink:    validators.WhatsAppLink(c.Whatsapp),
		Notes:           c.Notes,
		Assignee:        c.Assignee.Ref(),
		DeletedAt:       c.DeletedAt,
		FieldValues:     make([]FieldValueDTO, 0, len(c.FieldValues)),
		Tags:            make([]TagDTO, 0, len(c.Tags)),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	for _, v := range c.FieldValues {
		fv := FieldValueDTO{FieldID: v.FieldID, Value: v.Value}
		if v.Field != nil {
			fv.FieldName = v.Field.Name
			fv.FieldType = v.Field.Type
		}
		out.FieldValues = append(out.FieldValues, fv)
	}

	for _, ct := range c.Tags {
		if ct.Tag == nil {
			continue
		}
		out.Tags = append(out.Tags, TagDTO{ID: ct.Tag.ID, Name: ct.Tag.Name, Color: ct.Tag.Color})
	}

	for i := range c.Appointments {
		ap := &c.Appointments[i]
		if ap.Status != string(appointment.StatusOpen) {
			continue
		}
		if out.NextAppointmentAt == nil || ap.ScheduledAt.Before(*out.NextAppointmentAt) {
			at := ap.ScheduledAt
			out.NextAppointmentAt = &at
		}
	}

	return out
}

// NewClientDetailDTO also carries the full appointment list.
func NewClientDetailDTO(c *models.Client) ClientDTO {
	out := NewClientDTO(c)
	out.Appointments = c.Appointments
	return out
}
