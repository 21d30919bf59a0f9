package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalEntry struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	PlotID    string    `gorm:"type:char(36);index" json:"plot_id"`
	UserID    string    `gorm:"type:char(36);index" json:"user_id"`
	EntryDate time.Time `json:"entry_date"`
	Type      string    `json:"type"` // planting|fertilizer|irrigation|pest|harvest|other
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	Photos    []string  `gorm:"serializer:json" json:"photos"`
	AudioURL  *string   `json:"audio_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (j *JournalEntry) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

func (j *JournalEntry) AfterFind(*gorm.DB) error {
	if j.Photos == nil {
		j.Photos = []string{}
	}
	return nil
}
