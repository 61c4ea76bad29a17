package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

func TestCheckInAssignsFirstFreeSpace(t *testing.T) {
	env := newTestEnv(t)
	env.pinClock(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))

	session, err := env.parking.CheckIn(domain.CheckInDTO{Plate: " abc123 ", Category: domain.CategoryCar})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", session.Plate)
	assert.Equal(t, "C-1", session.SpaceNumber)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "10:00:00", session.EntryTimeDisplay)

	available, err := env.parking.ListAvailable(domain.CategoryCar)
	require.NoError(t, err)
	assert.Len(t, available, 19)
}

func TestCheckInNamedSpace(t *testing.T) {
	env := newTestEnv(t)
	env.pinClock(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))

	session, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "XYZ999", Category: domain.CategoryTruck, SpaceNumber: "T-3"})
	require.NoError(t, err)
	assert.Equal(t, "T-3", session.SpaceNumber)

	// the same space cannot be taken again
	_, err = env.parking.CheckIn(domain.CheckInDTO{Plate: "AAA111", Category: domain.CategoryTruck, SpaceNumber: "T-3"})
	assert.ErrorIs(t, err, repository.ErrNoSpaceAvailable)
}

func TestCheckInRejectsDuplicatePlate(t *testing.T) {
	env := newTestEnv(t)
	env.pinClock(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))

	_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "ABC123", Category: domain.CategoryCar})
	require.NoError(t, err)

	// match is case-insensitive and ignores surrounding whitespace
	_, err = env.parking.CheckIn(domain.CheckInDTO{Plate: "abc123", Category: domain.CategoryMotorcycle})
	assert.ErrorIs(t, err, repository.ErrDuplicatePlate)

	// the rejected attempt must not consume a motorcycle space
	available, err := env.parking.ListAvailable(domain.CategoryMotorcycle)
	require.NoError(t, err)
	assert.Len(t, available, 15)

	sessions, err := env.reports.ActiveSessions("")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestCheckInRejectsWhenCategoryFull(t *testing.T) {
	env := newTestEnv(t)
	env.pinClock(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))

	plates := []string{"TA001", "TA002", "TA003", "TA004", "TA005"}
	for _, plate := range plates {
		_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: plate, Category: domain.CategoryTruck})
		require.NoError(t, err)
	}

	_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "TA006", Category: domain.CategoryTruck})
	assert.ErrorIs(t, err, repository.ErrNoSpaceAvailable)
}

func TestCheckInValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "  ", Category: domain.CategoryCar})
	assert.Error(t, err)

	_, err = env.parking.CheckIn(domain.CheckInDTO{Plate: "ABC123", Category: "submarine"})
	assert.Error(t, err)
}

func TestCheckOutArchivesAndFreesSpace(t *testing.T) {
	env := newTestEnv(t)
	entry := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	env.pinClock(entry)

	_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "ABC123", Category: domain.CategoryCar})
	require.NoError(t, err)

	env.pinClock(entry.Add(2*time.Hour + 30*time.Minute))
	record, err := env.parking.CheckOut("abc123")
	require.NoError(t, err)

	assert.Equal(t, "ABC123", record.Plate)
	assert.Equal(t, "C-1", record.SpaceNumber)
	assert.Equal(t, "2h 30m", record.StayDuration)
	assert.Equal(t, 3, record.BillableHours)
	assert.Equal(t, 9000.0, record.AmountCharged)
	assert.Equal(t, "12:30:00", record.ExitTimeDisplay)

	// session gone, space free, history has the record
	_, err = env.parking.CheckOut("ABC123")
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)

	available, err := env.parking.ListAvailable(domain.CategoryCar)
	require.NoError(t, err)
	assert.Len(t, available, 20)

	history, err := env.reports.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, record.ID, history[0].ID)
}

func TestCheckOutUnknownPlate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.parking.CheckOut("GHOST1")
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)
}

func TestPreviewChargeDoesNotMutate(t *testing.T) {
	env := newTestEnv(t)
	entry := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	env.pinClock(entry)

	_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "ABC123", Category: domain.CategoryMotorcycle})
	require.NoError(t, err)

	env.pinClock(entry.Add(61 * time.Minute))
	session, charge, err := env.parking.PreviewCharge("ABC123")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", session.Plate)
	assert.Equal(t, 2, charge.BillableHours)
	assert.Equal(t, 4000.0, charge.Amount)

	// still parked afterwards
	sessions, err := env.reports.ActiveSessions("")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestClearActiveSessions(t *testing.T) {
	env := newTestEnv(t)
	env.pinClock(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))

	_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "AAA111", Category: domain.CategoryCar})
	require.NoError(t, err)
	_, err = env.parking.CheckIn(domain.CheckInDTO{Plate: "BBB222", Category: domain.CategoryBicycle})
	require.NoError(t, err)

	require.NoError(t, env.parking.ClearActiveSessions())

	sessions, err := env.reports.ActiveSessions("")
	require.NoError(t, err)
	assert.Empty(t, sessions)

	occ, err := env.reports.Occupancy()
	require.NoError(t, err)
	assert.Zero(t, occ.Occupied)
}

func TestResetRestoresSeededLedger(t *testing.T) {
	env := newTestEnv(t)
	env.pinClock(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))

	_, err := env.parking.CheckIn(domain.CheckInDTO{Plate: "AAA111", Category: domain.CategoryCar})
	require.NoError(t, err)
	_, err = env.parking.CheckOut("AAA111")
	require.NoError(t, err)
	_, err = env.billing.UpdateTariff(domain.TariffDTO{Category: domain.CategoryCar, HourlyRate: 9999})
	require.NoError(t, err)

	require.NoError(t, env.parking.Reset())

	history, err := env.reports.History()
	require.NoError(t, err)
	assert.Empty(t, history)

	rules, err := env.reports.Tariffs()
	require.NoError(t, err)
	for _, rule := range rules {
		if rule.Category == domain.CategoryCar {
			assert.Equal(t, 3000.0, rule.HourlyRate)
		}
	}
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC123", NormalizePlate("  abc123 "))
	assert.Equal(t, "ABC123", NormalizePlate("ABC123"))
	assert.Equal(t, "", NormalizePlate("   "))
}
