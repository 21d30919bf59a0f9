package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/auth/repository"
)

type authRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AuthRepository { return &authRepo{db} }

func (r *authRepo) FindByPhone(phone string) (*entities.User, error) {
	return r.findOne("phone = ?", phone)
}

func (r *authRepo) FindByEmail(email string) (*entities.User, error) {
	return r.findOne("email = ?", email)
}

func (r *authRepo) FindByID(id string) (*entities.User, error) {
	return r.findOne("id = ?", id)
}

func (r *authRepo) findOne(cond string, arg any) (*entities.User, error) {
	var u entities.User
	err := r.db.Where(cond, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepo) Create(u *entities.User) error { return r.db.Create(u).Error }
