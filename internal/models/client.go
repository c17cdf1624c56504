package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is a tracked contact. DeletedAt is a soft-delete marker managed
// explicitly (not gorm's automatic soft delete) so history reads still see it.
type Client struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Whatsapp   string     `gorm:"size:20;not null" json:"whatsapp"`
	Notes      *string    `gorm:"type:text" json:"notes"`
	AssignedTo *string    `gorm:"size:36;index" json:"assigned_to"`
	Assignee   *User      `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	DeletedAt  *time.Time `gorm:"index" json:"deleted_at"`

	FieldValues  []ClientFieldValue `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;" json:"field_values,omitempty"`
	Tags         []ClientTag        `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;" json:"tags,omitempty"`
	Appointments []Appointment      `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;" json:"appointments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	c.ID = ensureID(c.ID)
	return nil
}

func (c *Client) IsDeleted() bool {
	return c.DeletedAt != nil
}

const HistoryCreated = "CREATED"

// ClientHistory is an append-only log of client lifecycle events.
type ClientHistory struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	ClientID  string         `gorm:"size:36;index;not null" json:"client_id"`
	Type      string         `gorm:"size:30;not null" json:"type"`
	Data      datatypes.JSON `json:"data"`
	CreatedBy string         `gorm:"size:36;not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (h *ClientHistory) BeforeCreate(*gorm.DB) error {
	h.ID = ensureID(h.ID)
	return nil
}
