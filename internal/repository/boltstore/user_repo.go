package boltstore

import (
	"strings"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) load() ([]storedUser, error) {
	var users []storedUser
	if _, err := r.store.Get(KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) FindByUsername(username string) (*domain.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return toDomainUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) FindByID(id int) (*domain.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return toDomainUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func toDomainUser(u storedUser) *domain.User {
	return &domain.User{
		ID:       u.ID,
		Username: u.Username,
		Password: u.Password,
		Name:     u.Name,
		Role:     u.Role,
	}
}
