package repository

import (
	"airrvie/entities"
	"airrvie/pkg/patch"
)

type Stats struct {
	Farms   int64          `json:"farms"`
	Plots   int64          `json:"plots"`
	Tasks   TaskCounts     `json:"tasks"`
	Journal JournalCounts  `json:"journal"`
}

type TaskCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

type JournalCounts struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
}

// RecentTask and RecentJournal are the trimmed projections shown on the
// profile screen.
type RecentTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	DueDate  string `json:"dueDate"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	PlotName string `json:"plotName"`
	FarmName string `json:"farmName"`
}

type RecentJournal struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	PlotName string `json:"plotName"`
	FarmName string `json:"farmName"`
}

type UserRepository interface {
	FindByID(id string) (*entities.User, error)
	Update(userID string, p *patch.Patch) error
	Stats(userID string) (Stats, error)
	RecentTasks(userID string, limit int) ([]RecentTask, error)
	RecentJournal(userID string, limit int) ([]RecentJournal, error)
}
