package domain

// TariffRule is the pricing policy for one vehicle category. A FlatRate
// greater than zero takes precedence over HourlyRate regardless of the
// stay duration.
type TariffRule struct {
	Category   VehicleCategory `json:"category"`
	HourlyRate float64         `json:"hourly_rate"`
	FlatRate   float64         `json:"flat_rate"`
}

// TariffDTO updates the rule for one category. At least one of the two
// prices must be supplied; negatives are rejected.
type TariffDTO struct {
	Category   VehicleCategory `json:"category" binding:"required"`
	HourlyRate float64         `json:"hourly_rate"`
	FlatRate   float64         `json:"flat_rate"`
}
