package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the root of every ownership chain. Phone and email are both
// optional but at least one must be present; uniqueness among live rows is
// enforced by the auth repository before insert.
type User struct {
	ID           string  `gorm:"type:char(36);primaryKey" json:"id"`
	Phone        *string `gorm:"index" json:"phone"`
	Email        *string `gorm:"index" json:"email"`
	PasswordHash string  `json:"-"`
	DisplayName  string  `json:"display_name"`
	Locale       string  `gorm:"default:vi" json:"locale"` // vi|en
	FontScale    string  `gorm:"default:medium" json:"font_scale"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
