package models

import (
	"time"

	"gorm.io/gorm"
)

type Tag struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	Color     *string `gorm:"size:30" json:"color"`
	CreatedBy string  `gorm:"size:36;not null" json:"created_by"`
	Creator   *User   `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	t.ID = ensureID(t.ID)
	return nil
}

// ClientTag is the client/tag join row.
type ClientTag struct {
	ClientID string `gorm:"primaryKey;size:36" json:"client_id"`
	TagID    string `gorm:"primaryKey;size:36" json:"tag_id"`
	Tag      *Tag   `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE;" json:"tag,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
