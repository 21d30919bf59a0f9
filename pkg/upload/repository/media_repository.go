package repository

import "airrvie/entities"

type MediaRepository interface {
	Create(m *entities.MediaAsset) error
	// FindOwned fetches a live asset for the given owner; a miss or a
	// foreign asset is not found.
	FindOwned(id, userID string) (*entities.MediaAsset, error)
	SoftDelete(id, userID string) error
}
