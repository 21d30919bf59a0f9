package repository

import (
	"airrvie/entities"
	"airrvie/pkg/patch"
)

// JournalRow joins the entry with its plot and farm names for display.
type JournalRow struct {
	entities.JournalEntry
	PlotName string `gorm:"column:plot_name"`
	FarmName string `gorm:"column:farm_name"`
}

type Stats struct {
	Total    int64            `json:"total"`
	Today    int64            `json:"today"`
	LastWeek int64            `json:"lastWeek"`
	ByType   map[string]int64 `json:"byType"`
}

type JournalRepository interface {
	// Create inserts the entry and returns it with the farm/plot
	// projection attached.
	Create(e *entities.JournalEntry) (*JournalRow, error)
	ListByUser(userID string) ([]JournalRow, error)
	ListByPlot(plotID, userID string) ([]JournalRow, error)
	Update(entryID, userID string, p *patch.Patch) error
	SoftDelete(entryID, userID string) error
	Stats(userID string) (Stats, error)
}
