package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

// BackupDump is the full-state JSON export. Collection names match the
// ledger keys so a dump doubles as documentation of the stored shape.
type BackupDump struct {
	ActiveSessions []domain.ActiveSession `json:"activeSessions"`
	History        []domain.HistoryRecord `json:"history"`
	Tariffs        []domain.TariffRule    `json:"tariffs"`
	Spaces         domain.SpaceInventory  `json:"spaces"`
	Configuration  domain.Settings        `json:"configuration"`
	ExportedAt     time.Time              `json:"exportedAt"`
}

// ExportService produces the JSON backup dump and the history CSV.
type ExportService struct {
	spaceRepo    repository.SpaceRepository
	sessionRepo  repository.SessionRepository
	historyRepo  repository.HistoryRepository
	tariffRepo   repository.TariffRepository
	settingsRepo repository.SettingsRepository
	location     *time.Location

	now func() time.Time
}

func NewExportService(
	spaceRepo repository.SpaceRepository,
	sessionRepo repository.SessionRepository,
	historyRepo repository.HistoryRepository,
	tariffRepo repository.TariffRepository,
	settingsRepo repository.SettingsRepository,
	location *time.Location,
) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{
		spaceRepo:    spaceRepo,
		sessionRepo:  sessionRepo,
		historyRepo:  historyRepo,
		tariffRepo:   tariffRepo,
		settingsRepo: settingsRepo,
		location:     location,
		now:          time.Now,
	}
}

// SetClock replaces the time source. Tests use it to pin "now".
func (s *ExportService) SetClock(now func() time.Time) {
	s.now = now
}

// Dump assembles the full-state export with an export timestamp.
func (s *ExportService) Dump() (*BackupDump, error) {
	sessions, err := s.sessionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading active sessions: %w", err)
	}
	history, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	tariffs, err := s.tariffRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading tariffs: %w", err)
	}
	inv, err := s.spaceRepo.Inventory()
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	return &BackupDump{
		ActiveSessions: sessions,
		History:        history,
		Tariffs:        tariffs,
		Spaces:         inv,
		Configuration:  *settings,
		ExportedAt:     s.now(),
	}, nil
}

// HistoryCSV renders the whole history in stored order.
func (s *ExportService) HistoryCSV() ([]byte, error) {
	history, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Plate", "Type", "Space", "EntryDate", "EntryTime", "ExitDate", "ExitTime", "Duration", "Amount"}); err != nil {
		return nil, err
	}
	for _, rec := range history {
		row := []string{
			rec.Plate,
			string(rec.Category),
			rec.SpaceNumber,
			rec.EntryTime.In(s.location).Format("2006-01-02"),
			rec.EntryTimeDisplay,
			rec.ExitTime.In(s.location).Format("2006-01-02"),
			rec.ExitTimeDisplay,
			rec.StayDuration,
			strconv.FormatFloat(rec.AmountCharged, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
