package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/weather/repository"
)

type locationRepo struct {
	db *gorm.DB
}

func NewLocations(db *gorm.DB) repository.LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) PlotLocation(plotID, userID string) (string, string, error) {
	var row struct {
		Province string `gorm:"column:province"`
		District string `gorm:"column:district"`
	}
	err := r.db.Model(&entities.Plot{}).
		Select("farms.province, farms.district").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("plots.id = ? AND farms.user_id = ?", plotID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", apperr.With(apperr.ErrNotFound, "plot not found")
	}
	if err != nil {
		return "", "", err
	}
	return row.Province, row.District, nil
}
