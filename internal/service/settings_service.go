package service

import (
	"fmt"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

// SettingsService reads and updates the lot's configuration record.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

func (s *SettingsService) Get() (*domain.Settings, error) {
	return s.settingsRepo.Get()
}

func (s *SettingsService) Update(dto domain.SettingsDTO) (*domain.Settings, error) {
	settings := domain.Settings{
		LotName: dto.LotName,
		Address: dto.Address,
		Phone:   dto.Phone,
		Email:   dto.Email,
	}
	if err := s.settingsRepo.Update(settings); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return &settings, nil
}
