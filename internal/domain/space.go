package domain

import (
	"math"

	"gopkg.in/guregu/null.v4"
)

// Space is a single parking space. Spaces are created in bulk when the
// ledger is seeded and are never deleted; only their occupancy changes.
type Space struct {
	Number        string          `json:"number"`
	Category      VehicleCategory `json:"category"`
	Occupied      bool            `json:"occupied"`
	OccupantPlate null.String     `json:"occupant_plate,omitempty"`
}

// SpaceInventory maps each category to its ordered list of spaces. The
// whole map is read and written as one ledger value.
type SpaceInventory map[VehicleCategory][]Space

// CategoryOccupancy is the per-category slice of an occupancy report.
type CategoryOccupancy struct {
	Category VehicleCategory `json:"category"`
	Total    int             `json:"total"`
	Occupied int             `json:"occupied"`
	Free     int             `json:"free"`
	Percent  int             `json:"percent"`
}

// OccupancyReport aggregates occupancy over the whole lot.
type OccupancyReport struct {
	Total      int                 `json:"total"`
	Occupied   int                 `json:"occupied"`
	Free       int                 `json:"free"`
	Percent    int                 `json:"percent"`
	Categories []CategoryOccupancy `json:"categories"`
}

// Occupancy aggregates the inventory into a report. Percentages round to
// the nearest whole number and are 0 for an empty inventory.
func Occupancy(inv SpaceInventory) OccupancyReport {
	report := OccupancyReport{Categories: make([]CategoryOccupancy, 0, len(Categories))}
	for _, cat := range Categories {
		spaces := inv[cat]
		occ := CategoryOccupancy{Category: cat, Total: len(spaces)}
		for _, space := range spaces {
			if space.Occupied {
				occ.Occupied++
			}
		}
		occ.Free = occ.Total - occ.Occupied
		occ.Percent = percent(occ.Occupied, occ.Total)
		report.Total += occ.Total
		report.Occupied += occ.Occupied
		report.Categories = append(report.Categories, occ)
	}
	report.Free = report.Total - report.Occupied
	report.Percent = percent(report.Occupied, report.Total)
	return report
}

func percent(occupied, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}
