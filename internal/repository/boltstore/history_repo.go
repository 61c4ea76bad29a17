package boltstore

import (
	"strings"

	"github.com/felipe23murillo/parking/internal/domain"
)

type HistoryRepo struct {
	store *Store
}

func NewHistoryRepo(store *Store) *HistoryRepo {
	return &HistoryRepo{store: store}
}

func (r *HistoryRepo) FindAll() ([]domain.HistoryRecord, error) {
	var records []domain.HistoryRecord
	if _, err := r.store.Get(KeyHistory, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	return records, nil
}

// FindByPlate returns the plate's records in stored (chronological) order.
func (r *HistoryRepo) FindByPlate(plate string) ([]domain.HistoryRecord, error) {
	records, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	matched := make([]domain.HistoryRecord, 0)
	for _, rec := range records {
		if strings.EqualFold(rec.Plate, plate) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (r *HistoryRepo) Append(record domain.HistoryRecord) error {
	records, err := r.FindAll()
	if err != nil {
		return err
	}
	records = append(records, record)
	return r.store.Put(KeyHistory, records)
}

func (r *HistoryRepo) Clear() error {
	return r.store.Put(KeyHistory, []domain.HistoryRecord{})
}
