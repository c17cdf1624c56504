package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeSelect   FieldType = "SELECT"
	FieldTypeCheckbox FieldType = "CHECKBOX"
)

// ClientField is an admin-defined attribute. Values live in ClientFieldValue.
type ClientField struct {
	ID       string                      `gorm:"primaryKey;size:36" json:"id"`
	Name     string                      `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Type     FieldType                   `gorm:"size:20;not null" json:"type"`
	Required bool                        `gorm:"not null" json:"required"`
	Active   bool                        `gorm:"not null" json:"active"`
	Order    int                         `gorm:"column:sort_order;not null" json:"order"`
	Options  datatypes.JSONSlice[string] `json:"options"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *ClientField) BeforeCreate(*gorm.DB) error {
	f.ID = ensureID(f.ID)
	return nil
}

type ClientFieldValue struct {
	ID       string       `gorm:"primaryKey;size:36" json:"id"`
	ClientID string       `gorm:"size:36;not null;uniqueIndex:idx_client_field_value" json:"client_id"`
	FieldID  string       `gorm:"size:36;not null;uniqueIndex:idx_client_field_value" json:"field_id"`
	Field    *ClientField `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE;" json:"field,omitempty"`
	Value    string       `gorm:"type:text;not null" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *ClientFieldValue) BeforeCreate(*gorm.DB) error {
	v.ID = ensureID(v.ID)
	return nil
}
