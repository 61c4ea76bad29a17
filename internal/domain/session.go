package domain

import (
	"fmt"
	"time"
)

// ActiveSession is a vehicle currently inside the lot. At most one active
// session exists per plate; the plate is stored normalized (uppercase,
// trimmed).
type ActiveSession struct {
	ID               string          `json:"id"`
	Plate            string          `json:"plate"`
	Category         VehicleCategory `json:"category"`
	SpaceNumber      string          `json:"space_number"`
	EntryTime        time.Time       `json:"entry_time"`
	EntryTimeDisplay string          `json:"entry_time_display"`
}

// HistoryRecord is the archived form of a session after check-out.
// Records are append-only and never mutated.
type HistoryRecord struct {
	ID               string          `json:"id"`
	Plate            string          `json:"plate"`
	Category         VehicleCategory `json:"category"`
	SpaceNumber      string          `json:"space_number"`
	EntryTime        time.Time       `json:"entry_time"`
	EntryTimeDisplay string          `json:"entry_time_display"`
	ExitTime         time.Time       `json:"exit_time"`
	ExitTimeDisplay  string          `json:"exit_time_display"`
	StayDuration     string          `json:"stay_duration"`
	BillableHours    int             `json:"billable_hours"`
	AmountCharged    float64         `json:"amount_charged"`
}

// CheckInDTO is the payload for registering a vehicle entry. SpaceNumber
// may be empty, in which case the first available space is assigned.
type CheckInDTO struct {
	Plate       string          `json:"plate" binding:"required"`
	Category    VehicleCategory `json:"category" binding:"required"`
	SpaceNumber string          `json:"space_number"`
}

// CheckOutDTO is the payload for registering a vehicle exit.
type CheckOutDTO struct {
	Plate string `json:"plate" binding:"required"`
}

// Charge is the result of a billing computation. Hours and Minutes split
// the raw elapsed time for display; BillableHours is the amount billed.
type Charge struct {
	Hours         int     `json:"hours"`
	Minutes       int     `json:"minutes"`
	BillableHours int     `json:"billable_hours"`
	Amount        float64 `json:"amount"`
}

// DurationDisplay renders the elapsed time as "3h 25m".
func (c Charge) DurationDisplay() string {
	return fmt.Sprintf("%dh %dm", c.Hours, c.Minutes)
}
