package repository

import (
	"airrvie/entities"
	"airrvie/pkg/patch"
)

// TaskRow joins the task with its plot and farm names for display.
type TaskRow struct {
	entities.Task
	PlotName string `gorm:"column:plot_name"`
	FarmName string `gorm:"column:farm_name"`
}

type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
	DueToday   int64 `json:"dueToday"`
}

type TaskRepository interface {
	Create(t *entities.Task) error
	FindByID(taskID, userID string) (*entities.Task, error)
	ListByUser(userID string) ([]TaskRow, error)
	// Upcoming lists unfinished tasks due within the next n days.
	Upcoming(userID string, days int) ([]TaskRow, error)
	// Update applies the patch scoped to (task id, owner). When the patch
	// carries status, completed is co-written as status == done; a caller-
	// supplied completed value never survives alongside a status change.
	Update(taskID, userID string, p *patch.Patch) error
	// Complete is the shorthand for status=done.
	Complete(taskID, userID string) error
	SoftDelete(taskID, userID string) error
	Stats(userID string) (Stats, error)
}
