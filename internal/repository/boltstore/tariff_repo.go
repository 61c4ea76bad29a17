package boltstore

import (
	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

type TariffRepo struct {
	store *Store
}

func NewTariffRepo(store *Store) *TariffRepo {
	return &TariffRepo{store: store}
}

func (r *TariffRepo) FindAll() ([]domain.TariffRule, error) {
	var rules []domain.TariffRule
	if _, err := r.store.Get(KeyTariffs, &rules); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []domain.TariffRule{}
	}
	return rules, nil
}

func (r *TariffRepo) FindByCategory(category domain.VehicleCategory) (*domain.TariffRule, error) {
	rules, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		if rule.Category == category {
			found := rule
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *TariffRepo) Upsert(rule domain.TariffRule) error {
	rules, err := r.FindAll()
	if err != nil {
		return err
	}
	for i := range rules {
		if rules[i].Category == rule.Category {
			rules[i] = rule
			return r.store.Put(KeyTariffs, rules)
		}
	}
	rules = append(rules, rule)
	return r.store.Put(KeyTariffs, rules)
}
