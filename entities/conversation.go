package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// JSONMap is a free-form metadata bag stored as a JSON column.
type JSONMap map[string]any

type Conversation struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index" json:"user_id"`
	StartedAt time.Time `json:"started_at"`
	Context   JSONMap   `gorm:"serializer:json" json:"context"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (cv *Conversation) BeforeCreate(*gorm.DB) error {
	if cv.ID == "" {
		cv.ID = uuid.NewString()
	}
	if cv.StartedAt.IsZero() {
		cv.StartedAt = time.Now()
	}
	return nil
}

func (cv *Conversation) AfterFind(*gorm.DB) error {
	if cv.Context == nil {
		cv.Context = JSONMap{}
	}
	return nil
}

// Message is one utterance inside a conversation, ordered by CreatedAt.
type Message struct {
	ID             string  `gorm:"type:char(36);primaryKey" json:"id"`
	ConversationID string  `gorm:"type:char(36);index" json:"conversation_id"`
	Role           string  `json:"role"`
	Content        string  `json:"content"`
	Metadata       JSONMap `gorm:"serializer:json" json:"metadata"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Message) AfterFind(*gorm.DB) error {
	if m.Metadata == nil {
		m.Metadata = JSONMap{}
	}
	return nil
}
