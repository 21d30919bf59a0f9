package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Farm struct {
	ID          string  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string  `gorm:"type:char(36);index" json:"user_id"`
	Name        string  `json:"name"`
	Province    string  `json:"province"`
	District    string  `json:"district"`
	AddressText *string `json:"address_text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Farm) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
