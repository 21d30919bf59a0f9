package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/patch"
	"airrvie/pkg/plot/repository"
)

type plotRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlotRepository { return &plotRepo{db} }

func (r *plotRepo) Create(p *entities.Plot) error { return r.db.Create(p).Error }

func (r *plotRepo) ListByUser(userID string) ([]repository.PlotRow, error) {
	out := []repository.PlotRow{}
	err := r.db.Model(&entities.Plot{}).
		Select("plots.*, farms.name AS farm_name, farms.province AS farm_province, farms.district AS farm_district").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("farms.user_id = ?", userID).
		Order("plots.created_at DESC").
		Find(&out).Error
	return out, err
}

// ownerScope restricts a plot query to farms owned by userID, so a mutation
// can never cross an ownership boundary even when the guard was bypassed.
func (r *plotRepo) ownerScope(plotID, userID string) *gorm.DB {
	farms := r.db.Model(&entities.Farm{}).Select("id").Where("user_id = ?", userID)
	return r.db.Where("id = ? AND farm_id IN (?)", plotID, farms)
}

func (r *plotRepo) Update(plotID, userID string, p *patch.Patch) error {
	if p.Empty() {
		return apperr.ErrNoFieldsToUpdate
	}

	var existing entities.Plot
	err := r.ownerScope(plotID, userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.With(apperr.ErrNotFound, "plot not found")
	}
	if err != nil {
		return err
	}

	// Validate the dates as they would stand after the patch. All-or-
	// nothing: a violation writes nothing.
	planting := overlayDate(existing.PlantingDate, p, "planting_date")
	harvest := overlayDate(existing.HarvestDate, p, "harvest_date")
	if err := repository.ValidateDateRange(planting, harvest); err != nil {
		return err
	}

	scoped := r.ownerScope(plotID, userID).Model(&entities.Plot{})
	_, err = patch.Apply(scoped, p)
	return err
}

func overlayDate(stored *time.Time, p *patch.Patch, column string) *time.Time {
	v, ok := p.Get(column)
	if !ok {
		return stored
	}
	t, ok := v.(time.Time)
	if !ok {
		return stored
	}
	return &t
}

func (r *plotRepo) SoftDelete(plotID, userID string) error {
	res := r.ownerScope(plotID, userID).Delete(&entities.Plot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.With(apperr.ErrNotFound, "plot not found")
	}
	return nil
}
