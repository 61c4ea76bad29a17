// Package boltstore persists the lot's ledger in a single BoltDB file.
//
// Every collection (users, active sessions, history, tariffs, spaces,
// configuration) is stored as one JSON value under its own key in one
// bucket. Callers read a whole collection, mutate it in memory and write
// it back; there are no partial updates. That is acceptable because the
// tool has a single writer.
package boltstore

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

const bucketName = "ledger"

// Ledger keys. These mirror the collection names of the export format.
const (
	KeyUsers          = "users"
	KeyActiveSessions = "activeSessions"
	KeyHistory        = "history"
	KeyTariffs        = "tariffs"
	KeySpaces         = "spaces"
	KeySettings       = "configuration"
)

// DefaultSpaceCounts is the seeded inventory size per category.
var DefaultSpaceCounts = map[domain.VehicleCategory]int{
	domain.CategoryCar:        20,
	domain.CategoryMotorcycle: 15,
	domain.CategoryTruck:      5,
	domain.CategoryBicycle:    10,
}

// Store wraps the bolt database and seeds missing collections with
// defaults on open. A corrupt collection is treated as missing and
// reseeded instead of failing the caller.
type Store struct {
	db          *bolt.DB
	spaceCounts map[domain.VehicleCategory]int
}

// New opens (or creates) the ledger file and seeds any absent collection.
// spaceCounts may be nil to use the default inventory sizes.
func New(path string, spaceCounts map[domain.VehicleCategory]int) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	if spaceCounts == nil {
		spaceCounts = DefaultSpaceCounts
	}
	s := &Store{db: db, spaceCounts: spaceCounts}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger bucket: %w", err)
	}
	if err := s.Seed(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the collection stored under key into v. When the key is
// absent or its value does not decode, the collection is reseeded with
// its default and the default is returned instead. ok is false only when
// the key has no default and nothing was stored.
func (s *Store) Get(key string, v any) (bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket([]byte(bucketName)).Get([]byte(key)); data != nil {
			raw = append([]byte(nil), data...)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if raw != nil {
		if err := json.Unmarshal(raw, v); err == nil {
			return true, nil
		}
		log.Printf("ledger: collection %q is corrupt, reseeding with defaults", key)
	}

	def, has := s.defaultFor(key)
	if !has {
		return false, nil
	}
	if err := s.Put(key, def); err != nil {
		return false, err
	}
	// round-trip through JSON so v gets the default regardless of its type
	data, err := json.Marshal(def)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Put encodes v and stores it under key. A rejected write surfaces as
// repository.ErrWriteFailed; there is no retry.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrWriteFailed, key, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key succeeds.
func (s *Store) Remove(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrWriteFailed, key, err)
	}
	return nil
}

// Seed writes the default value for every collection that is not present
// yet. Calling it on every startup is safe.
func (s *Store) Seed() error {
	for _, key := range []string{KeyUsers, KeyActiveSessions, KeyHistory, KeyTariffs, KeySpaces, KeySettings} {
		var present bool
		err := s.db.View(func(tx *bolt.Tx) error {
			present = tx.Bucket([]byte(bucketName)).Get([]byte(key)) != nil
			return nil
		})
		if err != nil {
			return fmt.Errorf("checking %s: %w", key, err)
		}
		if present {
			continue
		}
		def, _ := s.defaultFor(key)
		if err := s.Put(key, def); err != nil {
			return err
		}
	}
	return nil
}

// Reseed drops every collection and writes the defaults back. Used by the
// full-reset admin operation.
func (s *Store) Reseed() error {
	for _, key := range []string{KeyUsers, KeyActiveSessions, KeyHistory, KeyTariffs, KeySpaces, KeySettings} {
		if err := s.Remove(key); err != nil {
			return err
		}
	}
	return s.Seed()
}

func (s *Store) defaultFor(key string) (any, bool) {
	switch key {
	case KeyUsers:
		return []storedUser{
			{ID: 1, Username: "admin", Password: "admin123", Name: "Administrador", Role: "admin"},
		}, true
	case KeyActiveSessions:
		return []domain.ActiveSession{}, true
	case KeyHistory:
		return []domain.HistoryRecord{}, true
	case KeyTariffs:
		return []domain.TariffRule{
			{Category: domain.CategoryCar, HourlyRate: 3000, FlatRate: 0},
			{Category: domain.CategoryMotorcycle, HourlyRate: 2000, FlatRate: 0},
			{Category: domain.CategoryTruck, HourlyRate: 5000, FlatRate: 0},
			{Category: domain.CategoryBicycle, HourlyRate: 1000, FlatRate: 0},
		}, true
	case KeySpaces:
		return s.defaultInventory(), true
	case KeySettings:
		return domain.Settings{
			LotName: "Parqueadero Central",
			Address: "Calle Principal #123",
			Phone:   "555-1234",
			Email:   "info@parqueadero.com",
		}, true
	}
	return nil, false
}

func (s *Store) defaultInventory() domain.SpaceInventory {
	inv := make(domain.SpaceInventory, len(domain.Categories))
	for _, cat := range domain.Categories {
		count := s.spaceCounts[cat]
		spaces := make([]domain.Space, 0, count)
		for i := 1; i <= count; i++ {
			spaces = append(spaces, domain.Space{
				Number:   fmt.Sprintf("%s-%d", cat.SpacePrefix(), i),
				Category: cat,
			})
		}
		inv[cat] = spaces
	}
	return inv
}

// Users are stored with their password so the seeded credential survives
// restarts; the JSON tag on domain.User hides it from API responses, so
// the ledger codec uses this mirror type.
type storedUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
