package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ClientID string  `gorm:"size:36;index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	AssignedTo string `gorm:"size:36;index;not null" json:"assigned_to"`
	Assignee   *User  `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`

	CreatedBy string `gorm:"size:36;not null" json:"created_by"`
	Creator   *User  `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	ScheduledAt time.Time `gorm:"index;not null" json:"scheduled_at"`
	Status      string    `gorm:"size:20;index;not null" json:"status"`

	CancelReason *string    `gorm:"size:500" json:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelled_at"`

	Interaction *Interaction `gorm:"foreignKey:AppointmentID" json:"interaction,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	a.ID = ensureID(a.ID)
	return nil
}
