package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/felipe23murillo/parking/internal/repository/boltstore"
)

// testEnv wires every service over a throwaway ledger file so tests
// exercise the same persistence path as production.
type testEnv struct {
	store     *boltstore.Store
	billing   *BillingService
	parking   *ParkingService
	reports   *ReportService
	assistant *AssistantService
	export    *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := boltstore.New(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	spaceRepo := boltstore.NewSpaceRepo(store)
	sessionRepo := boltstore.NewSessionRepo(store)
	historyRepo := boltstore.NewHistoryRepo(store)
	tariffRepo := boltstore.NewTariffRepo(store)
	settingsRepo := boltstore.NewSettingsRepo(store)

	billing := NewBillingService(tariffRepo)
	parking := NewParkingService(spaceRepo, sessionRepo, historyRepo, billing, store, nil, time.UTC)
	reports := NewReportService(spaceRepo, sessionRepo, historyRepo, tariffRepo, billing, time.UTC)
	assistant := NewAssistantService(reports, settingsRepo, time.UTC)
	assistant.DisableTypingDelay()
	export := NewExportService(spaceRepo, sessionRepo, historyRepo, tariffRepo, settingsRepo, time.UTC)

	return &testEnv{
		store:     store,
		billing:   billing,
		parking:   parking,
		reports:   reports,
		assistant: assistant,
		export:    export,
	}
}

// pinClock freezes every service clock at the given instant.
func (e *testEnv) pinClock(at time.Time) {
	now := func() time.Time { return at }
	e.parking.SetClock(now)
	e.reports.SetClock(now)
	e.assistant.SetClock(now)
	e.export.SetClock(now)
}
