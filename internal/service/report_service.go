package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

// ReportService is the read-only query surface consumed by report pages
// and the assistant. Nothing in here mutates the ledger.
type ReportService struct {
	spaceRepo   repository.SpaceRepository
	sessionRepo repository.SessionRepository
	historyRepo repository.HistoryRepository
	tariffRepo  repository.TariffRepository
	billing     *BillingService
	location    *time.Location

	now func() time.Time
}

func NewReportService(
	spaceRepo repository.SpaceRepository,
	sessionRepo repository.SessionRepository,
	historyRepo repository.HistoryRepository,
	tariffRepo repository.TariffRepository,
	billing *BillingService,
	location *time.Location,
) *ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportService{
		spaceRepo:   spaceRepo,
		sessionRepo: sessionRepo,
		historyRepo: historyRepo,
		tariffRepo:  tariffRepo,
		billing:     billing,
		location:    location,
		now:         time.Now,
	}
}

// SetClock replaces the time source. Tests use it to pin "now".
func (s *ReportService) SetClock(now func() time.Time) {
	s.now = now
}

// Stats builds the dashboard summary.
func (s *ReportService) Stats() (*domain.LotStats, error) {
	sessions, err := s.sessionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading active sessions: %w", err)
	}
	history, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	inv, err := s.spaceRepo.Inventory()
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}

	byCategory := make(map[domain.VehicleCategory]int, len(domain.Categories))
	for _, cat := range domain.Categories {
		byCategory[cat] = 0
	}
	for _, session := range sessions {
		byCategory[session.Category]++
	}

	today := s.now()
	var revenueToday float64
	departures := 0
	for _, rec := range history {
		if s.sameDay(rec.ExitTime, today) {
			revenueToday += rec.AmountCharged
			departures++
		}
	}

	return &domain.LotStats{
		ActiveTotal:      len(sessions),
		ActiveByCategory: byCategory,
		Occupancy:        domain.Occupancy(inv),
		RevenueToday:     revenueToday,
		DeparturesToday:  departures,
		HistoryCount:     len(history),
	}, nil
}

// Occupancy reports total and per-category occupancy.
func (s *ReportService) Occupancy() (*domain.OccupancyReport, error) {
	inv, err := s.spaceRepo.Inventory()
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	report := domain.Occupancy(inv)
	return &report, nil
}

// Revenue sums and averages charged amounts over the whole history.
func (s *ReportService) Revenue() (*domain.RevenueSummary, error) {
	history, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return summarize(history), nil
}

// RevenueToday restricts the summary to records whose exit falls on the
// current calendar day in the configured zone.
func (s *ReportService) RevenueToday() (*domain.RevenueSummary, error) {
	history, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	today := s.now()
	filtered := make([]domain.HistoryRecord, 0)
	for _, rec := range history {
		if s.sameDay(rec.ExitTime, today) {
			filtered = append(filtered, rec)
		}
	}
	return summarize(filtered), nil
}

// ActiveSessions lists every parked vehicle, optionally restricted to one
// category.
func (s *ReportService) ActiveSessions(category domain.VehicleCategory) ([]domain.ActiveSession, error) {
	sessions, err := s.sessionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading active sessions: %w", err)
	}
	if category == "" {
		return sessions, nil
	}
	filtered := make([]domain.ActiveSession, 0)
	for _, session := range sessions {
		if session.Category == category {
			filtered = append(filtered, session)
		}
	}
	return filtered, nil
}

// LastArrival returns the most recently checked-in vehicle, or
// ErrNoActiveSession when the lot is empty.
func (s *ReportService) LastArrival() (*domain.ActiveSession, error) {
	sessions, err := s.sessionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading active sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, repository.ErrNoActiveSession
	}
	last := sessions[len(sessions)-1]
	return &last, nil
}

// History returns archived records newest first.
func (s *ReportService) History() ([]domain.HistoryRecord, error) {
	history, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	sorted := make([]domain.HistoryRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExitTime.After(sorted[j].ExitTime)
	})
	return sorted, nil
}

// LookupPlate gathers the active session (with an in-progress charge
// estimate) and the most recent limit history records for a plate,
// newest first. Both parts may be empty.
func (s *ReportService) LookupPlate(plate string, limit int) (*domain.PlateLookupResult, error) {
	plate = NormalizePlate(plate)
	result := &domain.PlateLookupResult{Plate: plate, History: []domain.HistoryRecord{}}

	session, err := s.sessionRepo.FindByPlate(plate)
	if err == nil {
		result.Active = session
		charge, err := s.billing.Compute(session.Category, session.EntryTime, s.now())
		if err != nil {
			return nil, fmt.Errorf("estimating charge: %w", err)
		}
		result.Charge = &charge
	} else if !errors.Is(err, repository.ErrNoActiveSession) {
		return nil, fmt.Errorf("looking up active session: %w", err)
	}

	records, err := s.historyRepo.FindByPlate(plate)
	if err != nil {
		return nil, fmt.Errorf("reading plate history: %w", err)
	}
	// stored order is chronological; serve the newest first
	for i := len(records) - 1; i >= 0 && len(result.History) < limit; i-- {
		result.History = append(result.History, records[i])
	}
	return result, nil
}

// Tariffs lists the configured rules.
func (s *ReportService) Tariffs() ([]domain.TariffRule, error) {
	return s.tariffRepo.FindAll()
}

func (s *ReportService) sameDay(a, b time.Time) bool {
	a, b = a.In(s.location), b.In(s.location)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func summarize(records []domain.HistoryRecord) *domain.RevenueSummary {
	summary := &domain.RevenueSummary{Records: len(records)}
	for _, rec := range records {
		summary.Total += rec.AmountCharged
	}
	if summary.Records > 0 {
		summary.Average = math.Round(summary.Total / float64(summary.Records))
	}
	return summary
}
