package boltstore

import (
	"gopkg.in/guregu/null.v4"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

type SpaceRepo struct {
	store *Store
}

func NewSpaceRepo(store *Store) *SpaceRepo {
	return &SpaceRepo{store: store}
}

func (r *SpaceRepo) Inventory() (domain.SpaceInventory, error) {
	var inv domain.SpaceInventory
	if _, err := r.store.Get(KeySpaces, &inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// FindAvailable returns the unoccupied spaces of the category in inventory
// order. An unknown category yields an empty list, not an error.
func (r *SpaceRepo) FindAvailable(category domain.VehicleCategory) ([]domain.Space, error) {
	inv, err := r.Inventory()
	if err != nil {
		return nil, err
	}
	available := make([]domain.Space, 0)
	for _, space := range inv[category] {
		if !space.Occupied {
			available = append(available, space)
		}
	}
	return available, nil
}

func (r *SpaceRepo) Reserve(category domain.VehicleCategory, number, plate string) error {
	return r.mutate(category, number, func(space *domain.Space) {
		space.Occupied = true
		space.OccupantPlate = null.StringFrom(plate)
	})
}

func (r *SpaceRepo) Release(category domain.VehicleCategory, number string) error {
	return r.mutate(category, number, func(space *domain.Space) {
		space.Occupied = false
		space.OccupantPlate = null.String{}
	})
}

func (r *SpaceRepo) mutate(category domain.VehicleCategory, number string, apply func(*domain.Space)) error {
	inv, err := r.Inventory()
	if err != nil {
		return err
	}
	spaces, ok := inv[category]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range spaces {
		if spaces[i].Number == number {
			apply(&spaces[i])
			return r.store.Put(KeySpaces, inv)
		}
	}
	return repository.ErrNotFound
}

// ReleaseAll frees every space in every category. Used when all active
// sessions are cleared at once.
func (r *SpaceRepo) ReleaseAll() error {
	inv, err := r.Inventory()
	if err != nil {
		return err
	}
	for _, spaces := range inv {
		for i := range spaces {
			spaces[i].Occupied = false
			spaces[i].OccupantPlate = null.String{}
		}
	}
	return r.store.Put(KeySpaces, inv)
}
