package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Interaction is written once when an appointment is finalized and never
// updated afterwards.
type Interaction struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	AppointmentID string `gorm:"size:36;uniqueIndex;not null" json:"appointment_id"`
	ClientID      string `gorm:"size:36;index;not null" json:"client_id"`
	UserID        string `gorm:"size:36;not null" json:"user_id"`
	User          *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `gorm:"index" json:"ended_at"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	Outcome   string    `gorm:"type:text;not null" json:"outcome"`

	Snapshot datatypes.JSONType[InteractionSnapshot] `json:"snapshot"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Interaction) BeforeCreate(*gorm.DB) error {
	i.ID = ensureID(i.ID)
	return nil
}

const SnapshotVersion = 1

// InteractionSnapshot is a by-value copy of the client at finalize time.
// Fields are additive only: older rows may lack newer keys.
type InteractionSnapshot struct {
	Version     int                  `json:"version,omitempty"`
	Whatsapp    string               `json:"whatsapp"`
	Notes       *string              `json:"notes"`
	FieldValues []SnapshotFieldValue `json:"field_values"`
	Tags        []SnapshotTag        `json:"tags"`
	CapturedAt  *time.Time           `json:"captured_at,omitempty"`
}

type SnapshotFieldValue struct {
	FieldName string    `json:"field_name"`
	FieldType FieldType `json:"field_type"`
	Value     string    `json:"value"`
}

type SnapshotTag struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}
