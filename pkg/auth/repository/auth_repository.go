package repository

import "airrvie/entities"

type AuthRepository interface {
	// FindByPhone and FindByEmail return (nil, nil) when no live user
	// carries the contact.
	FindByPhone(phone string) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	Create(u *entities.User) error
}
