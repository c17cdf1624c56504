package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	// Deactivation is a soft flag; users are never deleted.
	Banned     bool       `gorm:"not null;default:false" json:"banned"`
	BanReason  *string    `gorm:"size:255" json:"ban_reason"`
	BanExpires *time.Time `json:"ban_expires"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	u.ID = ensureID(u.ID)
	return nil
}

const ProviderCredential = "credential"

// Account holds login credentials apart from the user profile.
type Account struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	UserID     string `gorm:"size:36;index;not null" json:"user_id"`
	User       *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	ProviderID string `gorm:"size:30;not null" json:"provider_id"`
	Password   string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Account) BeforeCreate(*gorm.DB) error {
	a.ID = ensureID(a.ID)
	return nil
}

// UserRef is the compact user shape embedded in other responses.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
