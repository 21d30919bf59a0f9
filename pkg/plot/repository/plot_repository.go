package repository

import (
	"time"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/patch"
)

// PlotRow joins the plot with its farm for display.
type PlotRow struct {
	entities.Plot
	FarmName     string `gorm:"column:farm_name"`
	FarmProvince string `gorm:"column:farm_province"`
	FarmDistrict string `gorm:"column:farm_district"`
}

type PlotRepository interface {
	Create(p *entities.Plot) error
	ListByUser(userID string) ([]PlotRow, error)
	// Update validates the merged planting/harvest pair (stored values
	// overlaid with patched ones) before anything is written.
	Update(plotID, userID string, p *patch.Patch) error
	SoftDelete(plotID, userID string) error
}

// ValidateDateRange rejects a harvest date earlier than the planting date.
// Either date may be absent; the check only applies when both are present.
func ValidateDateRange(planting, harvest *time.Time) error {
	if planting != nil && harvest != nil && harvest.Before(*planting) {
		return apperr.ErrInvalidDateRange
	}
	return nil
}
