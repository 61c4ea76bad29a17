package boltstore

import (
	"strings"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

func (r *SessionRepo) FindAll() ([]domain.ActiveSession, error) {
	var sessions []domain.ActiveSession
	if _, err := r.store.Get(KeyActiveSessions, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []domain.ActiveSession{}
	}
	return sessions, nil
}

func (r *SessionRepo) FindByPlate(plate string) (*domain.ActiveSession, error) {
	sessions, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if strings.EqualFold(s.Plate, plate) {
			found := s
			return &found, nil
		}
	}
	return nil, repository.ErrNoActiveSession
}

func (r *SessionRepo) Append(session domain.ActiveSession) error {
	sessions, err := r.FindAll()
	if err != nil {
		return err
	}
	sessions = append(sessions, session)
	return r.store.Put(KeyActiveSessions, sessions)
}

func (r *SessionRepo) Remove(id string) error {
	sessions, err := r.FindAll()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return r.store.Put(KeyActiveSessions, kept)
}

func (r *SessionRepo) Clear() error {
	return r.store.Put(KeyActiveSessions, []domain.ActiveSession{})
}
