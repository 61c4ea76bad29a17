package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

// OccupancyNotifier receives a fresh occupancy report after every
// mutating operation. A nil notifier disables the feed.
type OccupancyNotifier interface {
	NotifyOccupancy(report domain.OccupancyReport)
}

// Resetter restores the ledger to its seeded defaults.
type Resetter interface {
	Reseed() error
}

// ParkingService is the session registrar and space allocator: it owns
// the check-in/check-out lifecycle and keeps spaces, active sessions and
// history mutually consistent.
type ParkingService struct {
	spaceRepo   repository.SpaceRepository
	sessionRepo repository.SessionRepository
	historyRepo repository.HistoryRepository
	billing     *BillingService
	resetter    Resetter
	notifier    OccupancyNotifier
	location    *time.Location

	now func() time.Time
}

func NewParkingService(
	spaceRepo repository.SpaceRepository,
	sessionRepo repository.SessionRepository,
	historyRepo repository.HistoryRepository,
	billing *BillingService,
	resetter Resetter,
	notifier OccupancyNotifier,
	location *time.Location,
) *ParkingService {
	if location == nil {
		location = time.UTC
	}
	return &ParkingService{
		spaceRepo:   spaceRepo,
		sessionRepo: sessionRepo,
		historyRepo: historyRepo,
		billing:     billing,
		resetter:    resetter,
		notifier:    notifier,
		location:    location,
		now:         time.Now,
	}
}

// SetClock replaces the time source. Tests use it to pin "now".
func (s *ParkingService) SetClock(now func() time.Time) {
	s.now = now
}

// NormalizePlate uppercases and trims a plate the way it is stored.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// ListAvailable returns the free spaces for a category in inventory order.
func (s *ParkingService) ListAvailable(category domain.VehicleCategory) ([]domain.Space, error) {
	return s.spaceRepo.FindAvailable(category)
}

// CheckIn opens a session for the plate. The session append and the space
// reservation are treated as one logical transaction: if the reservation
// fails the appended session is rolled back.
func (s *ParkingService) CheckIn(dto domain.CheckInDTO) (*domain.ActiveSession, error) {
	plate := NormalizePlate(dto.Plate)
	if plate == "" {
		return nil, fmt.Errorf("plate must not be empty")
	}
	if !dto.Category.Valid() {
		return nil, fmt.Errorf("unknown vehicle category: %s", dto.Category)
	}

	if _, err := s.sessionRepo.FindByPlate(plate); err == nil {
		log.Printf("Check-in rejected: plate '%s' already has an active session", plate)
		return nil, fmt.Errorf("%w: %s", repository.ErrDuplicatePlate, plate)
	} else if !errors.Is(err, repository.ErrNoActiveSession) {
		return nil, fmt.Errorf("checking active sessions: %w", err)
	}

	available, err := s.spaceRepo.FindAvailable(dto.Category)
	if err != nil {
		return nil, fmt.Errorf("listing available spaces: %w", err)
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrNoSpaceAvailable, dto.Category)
	}

	spaceNumber := dto.SpaceNumber
	if spaceNumber == "" {
		// no explicit choice: take the first free space in inventory order
		spaceNumber = available[0].Number
	} else {
		found := false
		for _, space := range available {
			if space.Number == spaceNumber {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: space %s is not free for %s", repository.ErrNoSpaceAvailable, spaceNumber, dto.Category)
		}
	}

	entry := s.now()
	session := domain.ActiveSession{
		ID:               uuid.NewString(),
		Plate:            plate,
		Category:         dto.Category,
		SpaceNumber:      spaceNumber,
		EntryTime:        entry,
		EntryTimeDisplay: entry.In(s.location).Format("15:04:05"),
	}

	if err := s.sessionRepo.Append(session); err != nil {
		return nil, fmt.Errorf("recording session: %w", err)
	}
	if err := s.spaceRepo.Reserve(dto.Category, spaceNumber, plate); err != nil {
		// roll back the session so the ledgers stay consistent
		if rbErr := s.sessionRepo.Remove(session.ID); rbErr != nil {
			log.Printf("Rollback of session %s failed: %v", session.ID, rbErr)
		}
		return nil, fmt.Errorf("reserving space %s: %w", spaceNumber, err)
	}

	log.Printf("Checked in '%s' (%s) at space %s", plate, dto.Category, spaceNumber)
	s.broadcastOccupancy()
	return &session, nil
}

// CheckOut closes the plate's session: bills the stay, archives it into
// history, frees the space and removes the active record.
func (s *ParkingService) CheckOut(plate string) (*domain.HistoryRecord, error) {
	plate = NormalizePlate(plate)

	session, err := s.sessionRepo.FindByPlate(plate)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			return nil, fmt.Errorf("%w: %s", repository.ErrNoActiveSession, plate)
		}
		return nil, fmt.Errorf("looking up session: %w", err)
	}

	exit := s.now()
	charge, err := s.billing.Compute(session.Category, session.EntryTime, exit)
	if err != nil {
		return nil, fmt.Errorf("computing charge: %w", err)
	}

	record := domain.HistoryRecord{
		ID:               session.ID,
		Plate:            session.Plate,
		Category:         session.Category,
		SpaceNumber:      session.SpaceNumber,
		EntryTime:        session.EntryTime,
		EntryTimeDisplay: session.EntryTimeDisplay,
		ExitTime:         exit,
		ExitTimeDisplay:  exit.In(s.location).Format("15:04:05"),
		StayDuration:     charge.DurationDisplay(),
		BillableHours:    charge.BillableHours,
		AmountCharged:    charge.Amount,
	}

	if err := s.historyRepo.Append(record); err != nil {
		return nil, fmt.Errorf("archiving session: %w", err)
	}
	if err := s.spaceRepo.Release(session.Category, session.SpaceNumber); err != nil {
		log.Printf("Releasing space %s failed: %v", session.SpaceNumber, err)
	}
	if err := s.sessionRepo.Remove(session.ID); err != nil {
		return nil, fmt.Errorf("removing active session: %w", err)
	}

	log.Printf("Checked out '%s' from space %s: %d billable hour(s), %.0f charged",
		plate, session.SpaceNumber, record.BillableHours, record.AmountCharged)
	s.broadcastOccupancy()
	return &record, nil
}

// PreviewCharge computes the current charge of a still-active session
// without mutating anything.
func (s *ParkingService) PreviewCharge(plate string) (*domain.ActiveSession, domain.Charge, error) {
	session, err := s.sessionRepo.FindByPlate(NormalizePlate(plate))
	if err != nil {
		return nil, domain.Charge{}, err
	}
	charge, err := s.billing.Compute(session.Category, session.EntryTime, s.now())
	if err != nil {
		return nil, domain.Charge{}, err
	}
	return session, charge, nil
}

// ClearActiveSessions removes every active session and frees all spaces.
// Safe to call repeatedly.
func (s *ParkingService) ClearActiveSessions() error {
	if err := s.spaceRepo.ReleaseAll(); err != nil {
		return fmt.Errorf("freeing spaces: %w", err)
	}
	if err := s.sessionRepo.Clear(); err != nil {
		return fmt.Errorf("clearing sessions: %w", err)
	}
	log.Printf("Cleared all active sessions and freed every space")
	s.broadcastOccupancy()
	return nil
}

// ClearHistory drops every archived record.
func (s *ParkingService) ClearHistory() error {
	if err := s.historyRepo.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	log.Printf("Cleared history")
	return nil
}

// Reset restores the whole ledger to its seeded defaults.
func (s *ParkingService) Reset() error {
	if err := s.resetter.Reseed(); err != nil {
		return fmt.Errorf("reseeding ledger: %w", err)
	}
	log.Printf("Ledger reset to seeded defaults")
	s.broadcastOccupancy()
	return nil
}

func (s *ParkingService) broadcastOccupancy() {
	if s.notifier == nil {
		return
	}
	inv, err := s.spaceRepo.Inventory()
	if err != nil {
		log.Printf("Occupancy broadcast skipped: %v", err)
		return
	}
	s.notifier.NotifyOccupancy(domain.Occupancy(inv))
}
