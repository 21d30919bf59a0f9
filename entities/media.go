package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaKindPhoto = "photo"
	MediaKindAudio = "audio"
	MediaKindOther = "other"
)

// MediaAsset records an uploaded file. The bytes live in the storage
// backend; this row only carries the key, public URL and size.
type MediaAsset struct {
	ID              string `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          string `gorm:"type:char(36);index" json:"user_id"`
	Kind            string `json:"kind"`
	StorageProvider string `gorm:"default:local" json:"storage_provider"`
	Key             string `json:"key"`
	URL             string `json:"url"`
	Bytes           int64  `json:"bytes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *MediaAsset) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
