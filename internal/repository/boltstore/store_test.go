package boltstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedsDefaultsOnFirstOpen(t *testing.T) {
	store := newTestStore(t)

	user, err := NewUserRepo(store).FindByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin123", user.Password)
	assert.Equal(t, "Administrador", user.Name)
	assert.Equal(t, "admin", user.Role)

	rules, err := NewTariffRepo(store).FindAll()
	require.NoError(t, err)
	require.Len(t, rules, 4)
	car, err := NewTariffRepo(store).FindByCategory(domain.CategoryCar)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, car.HourlyRate)
	assert.Zero(t, car.FlatRate)

	inv, err := NewSpaceRepo(store).Inventory()
	require.NoError(t, err)
	assert.Len(t, inv[domain.CategoryCar], 20)
	assert.Len(t, inv[domain.CategoryMotorcycle], 15)
	assert.Len(t, inv[domain.CategoryTruck], 5)
	assert.Len(t, inv[domain.CategoryBicycle], 10)
	assert.Equal(t, "C-1", inv[domain.CategoryCar][0].Number)
	assert.Equal(t, "B-10", inv[domain.CategoryBicycle][9].Number)

	settings, err := NewSettingsRepo(store).Get()
	require.NoError(t, err)
	assert.Equal(t, "Parqueadero Central", settings.LotName)

	sessions, err := NewSessionRepo(store).FindAll()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestCorruptCollectionIsReseeded(t *testing.T) {
	store := newTestStore(t)

	// store a value that cannot decode into []TariffRule
	require.NoError(t, store.Put(KeyTariffs, "garbage"))

	rules, err := NewTariffRepo(store).FindAll()
	require.NoError(t, err)
	assert.Len(t, rules, 4)
}

func TestReserveAndRelease(t *testing.T) {
	store := newTestStore(t)
	repo := NewSpaceRepo(store)

	require.NoError(t, repo.Reserve(domain.CategoryCar, "C-1", "ABC123"))

	available, err := repo.FindAvailable(domain.CategoryCar)
	require.NoError(t, err)
	assert.Len(t, available, 19)
	for _, space := range available {
		assert.NotEqual(t, "C-1", space.Number)
	}

	inv, err := repo.Inventory()
	require.NoError(t, err)
	assert.True(t, inv[domain.CategoryCar][0].Occupied)
	assert.Equal(t, "ABC123", inv[domain.CategoryCar][0].OccupantPlate.String)

	require.NoError(t, repo.Release(domain.CategoryCar, "C-1"))
	available, err = repo.FindAvailable(domain.CategoryCar)
	require.NoError(t, err)
	assert.Len(t, available, 20)
}

func TestReserveUnknownSpace(t *testing.T) {
	store := newTestStore(t)
	repo := NewSpaceRepo(store)

	err := repo.Reserve(domain.CategoryCar, "C-999", "ABC123")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Reserve("spaceship", "S-1", "ABC123")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReleaseAll(t *testing.T) {
	store := newTestStore(t)
	repo := NewSpaceRepo(store)

	require.NoError(t, repo.Reserve(domain.CategoryCar, "C-3", "AAA111"))
	require.NoError(t, repo.Reserve(domain.CategoryTruck, "T-1", "BBB222"))

	require.NoError(t, repo.ReleaseAll())

	inv, err := repo.Inventory()
	require.NoError(t, err)
	for _, spaces := range inv {
		for _, space := range spaces {
			assert.False(t, space.Occupied)
			assert.False(t, space.OccupantPlate.Valid)
		}
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	repo := NewSessionRepo(store)

	session := domain.ActiveSession{
		ID:          "s-1",
		Plate:       "XYZ789",
		Category:    domain.CategoryMotorcycle,
		SpaceNumber: "M-2",
		EntryTime:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Append(session))

	// lookup is case-insensitive
	found, err := repo.FindByPlate("xyz789")
	require.NoError(t, err)
	assert.Equal(t, "s-1", found.ID)
	assert.True(t, found.EntryTime.Equal(session.EntryTime))

	_, err = repo.FindByPlate("NOPE00")
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)

	require.NoError(t, repo.Remove("s-1"))
	_, err = repo.FindByPlate("XYZ789")
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)
}

func TestHistoryFindByPlateKeepsOrder(t *testing.T) {
	store := newTestStore(t)
	repo := NewHistoryRepo(store)

	first := domain.HistoryRecord{ID: "h-1", Plate: "ABC123", ExitTime: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	second := domain.HistoryRecord{ID: "h-2", Plate: "abc123", ExitTime: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)}
	other := domain.HistoryRecord{ID: "h-3", Plate: "ZZZ999", ExitTime: time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Append(first))
	require.NoError(t, repo.Append(second))
	require.NoError(t, repo.Append(other))

	records, err := repo.FindByPlate("ABC123")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "h-1", records[0].ID)
	assert.Equal(t, "h-2", records[1].ID)
}

func TestTariffUpsert(t *testing.T) {
	store := newTestStore(t)
	repo := NewTariffRepo(store)

	require.NoError(t, repo.Upsert(domain.TariffRule{Category: domain.CategoryCar, HourlyRate: 0, FlatRate: 12000}))

	rules, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, rules, 4)

	car, err := repo.FindByCategory(domain.CategoryCar)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, car.FlatRate)
	assert.Zero(t, car.HourlyRate)
}

func TestReseedRestoresDefaults(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, NewSpaceRepo(store).Reserve(domain.CategoryCar, "C-1", "ABC123"))
	require.NoError(t, NewSessionRepo(store).Append(domain.ActiveSession{ID: "s-1", Plate: "ABC123"}))
	require.NoError(t, NewSettingsRepo(store).Update(domain.Settings{LotName: "Otro"}))

	require.NoError(t, store.Reseed())

	sessions, err := NewSessionRepo(store).FindAll()
	require.NoError(t, err)
	assert.Empty(t, sessions)

	inv, err := NewSpaceRepo(store).Inventory()
	require.NoError(t, err)
	assert.False(t, inv[domain.CategoryCar][0].Occupied)

	settings, err := NewSettingsRepo(store).Get()
	require.NoError(t, err)
	assert.Equal(t, "Parqueadero Central", settings.LotName)
}
