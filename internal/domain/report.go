package domain

// LotStats is the dashboard summary: active vehicles, occupancy and the
// day's revenue, all derived from the ledger in one read pass.
type LotStats struct {
	ActiveTotal      int                     `json:"active_total"`
	ActiveByCategory map[VehicleCategory]int `json:"active_by_category"`
	Occupancy        OccupancyReport         `json:"occupancy"`
	RevenueToday     float64                 `json:"revenue_today"`
	DeparturesToday  int                     `json:"departures_today"`
	HistoryCount     int                     `json:"history_count"`
}

// RevenueSummary aggregates charged amounts over a set of history records.
type RevenueSummary struct {
	Records int     `json:"records"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// PlateLookupResult is everything known about one plate: its active
// session with an estimated charge, if parked, and its most recent
// history, newest first.
type PlateLookupResult struct {
	Plate   string          `json:"plate"`
	Active  *ActiveSession  `json:"active,omitempty"`
	Charge  *Charge         `json:"estimated_charge,omitempty"`
	History []HistoryRecord `json:"history"`
}
