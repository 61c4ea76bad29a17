package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository/boltstore"
)

func TestBillableHoursRoundsUp(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"zero stay still bills one hour", 0, 1},
		{"one minute", time.Minute, 1},
		{"fifty-nine minutes", 59 * time.Minute, 1},
		{"exactly one hour", time.Hour, 1},
		{"one hour one minute", 61 * time.Minute, 2},
		{"two and a half hours", 150 * time.Minute, 3},
		{"exactly three hours", 3 * time.Hour, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billableHours(tt.elapsed))
		})
	}
}

func TestComputeHourlyCharge(t *testing.T) {
	env := newTestEnv(t)

	entry := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	exit := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

	charge, err := env.billing.Compute(domain.CategoryCar, entry, exit)
	require.NoError(t, err)
	assert.Equal(t, 2, charge.Hours)
	assert.Equal(t, 30, charge.Minutes)
	assert.Equal(t, 3, charge.BillableHours)
	assert.Equal(t, 9000.0, charge.Amount)
	assert.Equal(t, "2h 30m", charge.DurationDisplay())
}

func TestComputeFlatRateWins(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.billing.UpdateTariff(domain.TariffDTO{
		Category:   domain.CategoryCar,
		HourlyRate: 3000,
		FlatRate:   10000,
	})
	require.NoError(t, err)

	entry := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(5 * time.Hour)

	charge, err := env.billing.Compute(domain.CategoryCar, entry, exit)
	require.NoError(t, err)
	assert.Equal(t, 5, charge.BillableHours)
	assert.Equal(t, 10000.0, charge.Amount)
}

func TestComputeMissingTariffIsFree(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Put(boltstore.KeyTariffs, []domain.TariffRule{}))

	entry := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	charge, err := env.billing.Compute(domain.CategoryCar, entry, entry.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, charge.BillableHours)
	assert.Zero(t, charge.Amount)
}

func TestComputeClockSkewClampsToZero(t *testing.T) {
	env := newTestEnv(t)

	entry := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	exit := entry.Add(-10 * time.Minute)

	charge, err := env.billing.Compute(domain.CategoryMotorcycle, entry, exit)
	require.NoError(t, err)
	assert.Zero(t, charge.Hours)
	assert.Zero(t, charge.Minutes)
	assert.Equal(t, 1, charge.BillableHours)
	assert.Equal(t, 2000.0, charge.Amount)
}

func TestUpdateTariffValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.billing.UpdateTariff(domain.TariffDTO{Category: "spaceship", HourlyRate: 100})
	assert.ErrorIs(t, err, ErrInvalidTariff)

	_, err = env.billing.UpdateTariff(domain.TariffDTO{Category: domain.CategoryCar, HourlyRate: -1})
	assert.ErrorIs(t, err, ErrInvalidTariff)

	_, err = env.billing.UpdateTariff(domain.TariffDTO{Category: domain.CategoryCar})
	assert.ErrorIs(t, err, ErrInvalidTariff)

	rule, err := env.billing.UpdateTariff(domain.TariffDTO{Category: domain.CategoryCar, HourlyRate: 4500})
	require.NoError(t, err)
	assert.Equal(t, 4500.0, rule.HourlyRate)
}
