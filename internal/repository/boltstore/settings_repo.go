package boltstore

import "github.com/felipe23murillo/parking/internal/domain"

type SettingsRepo struct {
	store *Store
}

func NewSettingsRepo(store *Store) *SettingsRepo {
	return &SettingsRepo{store: store}
}

func (r *SettingsRepo) Get() (*domain.Settings, error) {
	var settings domain.Settings
	if _, err := r.store.Get(KeySettings, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepo) Update(settings domain.Settings) error {
	return r.store.Put(KeySettings, settings)
}
