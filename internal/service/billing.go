package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

// ErrInvalidTariff is returned for tariff updates that fail validation.
var ErrInvalidTariff = errors.New("invalid tariff")

// BillingService turns an elapsed stay into a charge. It is a pure read:
// the same service computes both the checkout charge and the in-progress
// preview shown for active sessions, so the rounding rule is identical on
// both paths.
type BillingService struct {
	tariffRepo repository.TariffRepository
}

func NewBillingService(tariffRepo repository.TariffRepository) *BillingService {
	return &BillingService{tariffRepo: tariffRepo}
}

// Compute splits the elapsed time since entry and prices it. Billing
// always rounds up to the next whole hour and charges at least one hour,
// even for a near-zero stay. A category without a tariff rule is free.
func (s *BillingService) Compute(category domain.VehicleCategory, entry, now time.Time) (domain.Charge, error) {
	elapsed := now.Sub(entry)
	if elapsed < 0 {
		elapsed = 0
	}

	charge := domain.Charge{
		Hours:         int(elapsed / time.Hour),
		Minutes:       int((elapsed % time.Hour) / time.Minute),
		BillableHours: billableHours(elapsed),
	}

	rule, err := s.tariffRepo.FindByCategory(category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return charge, nil
		}
		return domain.Charge{}, fmt.Errorf("looking up tariff for %s: %w", category, err)
	}

	if rule.FlatRate > 0 {
		charge.Amount = rule.FlatRate
	} else {
		charge.Amount = rule.HourlyRate * float64(charge.BillableHours)
	}
	return charge, nil
}

// Tariffs lists the configured rules.
func (s *BillingService) Tariffs() ([]domain.TariffRule, error) {
	return s.tariffRepo.FindAll()
}

// UpdateTariff replaces the rule for the DTO's category. Prices must not
// be negative and at least one of the two must be set.
func (s *BillingService) UpdateTariff(dto domain.TariffDTO) (*domain.TariffRule, error) {
	if !dto.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle category %s", ErrInvalidTariff, dto.Category)
	}
	if dto.HourlyRate < 0 || dto.FlatRate < 0 {
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidTariff)
	}
	if dto.HourlyRate == 0 && dto.FlatRate == 0 {
		return nil, fmt.Errorf("%w: set an hourly or a flat price", ErrInvalidTariff)
	}
	rule := domain.TariffRule{
		Category:   dto.Category,
		HourlyRate: dto.HourlyRate,
		FlatRate:   dto.FlatRate,
	}
	if err := s.tariffRepo.Upsert(rule); err != nil {
		return nil, fmt.Errorf("saving tariff: %w", err)
	}
	return &rule, nil
}

func billableHours(elapsed time.Duration) int {
	hours := int(elapsed / time.Hour)
	if elapsed%time.Hour > 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}
