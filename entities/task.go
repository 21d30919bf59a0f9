package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task belongs to a plot and, redundantly, to the owning user so list
// queries do not need the full join chain. Completed is derived: it is true
// iff Status is done, kept in sync by the task repository on every write.
type Task struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	PlotID      string    `gorm:"type:char(36);index" json:"plot_id"`
	UserID      string    `gorm:"type:char(36);index" json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `gorm:"default:medium" json:"priority"`
	Status      string    `gorm:"default:pending" json:"status"`
	Type        string    `json:"type"` // planting|weeding|fertilizer|irrigation|pest|harvest|other
	Source      string    `gorm:"default:manual" json:"source"`
	Reminder    bool      `json:"reminder"`
	Completed   bool      `json:"completed"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Completed = t.Status == TaskStatusDone
	return nil
}
