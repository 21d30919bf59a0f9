package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KnowledgeChunk is a searchable slice of agronomy reference text used to
// ground assistant answers.
type KnowledgeChunk struct {
	ID      string   `gorm:"type:char(36);primaryKey" json:"id"`
	Source  string   `json:"source"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Lang    string   `gorm:"default:vi" json:"lang"` // vi|en|both
	Tags    []string `gorm:"serializer:json" json:"tags"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (k *KnowledgeChunk) BeforeCreate(*gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}

func (k *KnowledgeChunk) AfterFind(*gorm.DB) error {
	if k.Tags == nil {
		k.Tags = []string{}
	}
	return nil
}
