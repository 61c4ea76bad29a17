package repository

import (
	"errors"

	"github.com/felipe23murillo/parking/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicatePlate = errors.New("plate already has an active session")
var ErrNoActiveSession = errors.New("no active session for the given plate")
var ErrNoSpaceAvailable = errors.New("no free space for the requested category")
var ErrWriteFailed = errors.New("ledger write failed")

type UserRepository interface {
	FindByUsername(username string) (*domain.User, error)
	FindByID(id int) (*domain.User, error)
}

// SpaceRepository owns the space inventory. All writes are whole-inventory
// read-modify-write under the store's single write transaction.
type SpaceRepository interface {
	Inventory() (domain.SpaceInventory, error)
	FindAvailable(category domain.VehicleCategory) ([]domain.Space, error)
	// Reserve marks the named space occupied by plate. Fails with
	// ErrNotFound when the category or number does not exist.
	Reserve(category domain.VehicleCategory, number, plate string) error
	// Release marks the space free and clears the occupant. Calling it on
	// an already-free space succeeds again.
	Release(category domain.VehicleCategory, number string) error
	ReleaseAll() error
}

type SessionRepository interface {
	FindAll() ([]domain.ActiveSession, error)
	// FindByPlate matches case-insensitively against normalized plates.
	FindByPlate(plate string) (*domain.ActiveSession, error)
	Append(session domain.ActiveSession) error
	Remove(id string) error
	Clear() error
}

type HistoryRepository interface {
	FindAll() ([]domain.HistoryRecord, error)
	FindByPlate(plate string) ([]domain.HistoryRecord, error)
	Append(record domain.HistoryRecord) error
	Clear() error
}

type TariffRepository interface {
	FindAll() ([]domain.TariffRule, error)
	FindByCategory(category domain.VehicleCategory) (*domain.TariffRule, error)
	// Upsert replaces the rule for the category, keeping at most one rule
	// per category.
	Upsert(rule domain.TariffRule) error
}

type SettingsRepository interface {
	Get() (*domain.Settings, error)
	Update(settings domain.Settings) error
}
