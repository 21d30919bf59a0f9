package repositoryImp

import (
	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/farm/repository"
	"airrvie/pkg/patch"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) Create(f *entities.Farm) error { return r.db.Create(f).Error }

func (r *farmRepo) ListByUser(userID string) ([]repository.FarmRow, error) {
	out := []repository.FarmRow{}
	err := r.db.Model(&entities.Farm{}).
		Select("farms.*, COUNT(plots.id) AS plot_count").
		Joins("LEFT JOIN plots ON plots.farm_id = farms.id AND plots.deleted_at IS NULL").
		Where("farms.user_id = ?", userID).
		Group("farms.id").
		Order("farms.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *farmRepo) Update(farmID, userID string, p *patch.Patch) error {
	scoped := r.db.Model(&entities.Farm{}).Where("id = ? AND user_id = ?", farmID, userID)
	_, err := patch.Apply(scoped, p)
	return err
}

func (r *farmRepo) SoftDelete(farmID, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", farmID, userID).Delete(&entities.Farm{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.With(apperr.ErrNotFound, "farm not found")
	}
	return nil
}
