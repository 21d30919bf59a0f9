package repository

import (
	"airrvie/entities"
	"airrvie/pkg/patch"
)

// FarmRow is the list projection: the farm plus its live plot count.
type FarmRow struct {
	entities.Farm
	PlotCount int64 `gorm:"column:plot_count" json:"plot_count"`
}

type FarmRepository interface {
	Create(f *entities.Farm) error
	ListByUser(userID string) ([]FarmRow, error)
	// Update applies the patch scoped to (farm id, owner). Empty patch and
	// out-of-scope rows fail per the patch contract.
	Update(farmID, userID string, p *patch.Patch) error
	// SoftDelete marks the farm deleted; a second call finds no live row
	// and reports not found.
	SoftDelete(farmID, userID string) error
}
