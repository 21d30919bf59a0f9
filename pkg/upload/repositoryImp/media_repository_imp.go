package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/upload/repository"
)

type mediaRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Create(m *entities.MediaAsset) error {
	return r.db.Create(m).Error
}

func (r *mediaRepo) FindOwned(id, userID string) (*entities.MediaAsset, error) {
	var m entities.MediaAsset
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.With(apperr.ErrNotFound, "upload not found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mediaRepo) SoftDelete(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.MediaAsset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.With(apperr.ErrNotFound, "upload not found")
	}
	return nil
}
