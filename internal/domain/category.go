package domain

// VehicleCategory is the closed set of vehicle types the lot accepts.
type VehicleCategory string

const (
	CategoryCar        VehicleCategory = "Car"
	CategoryMotorcycle VehicleCategory = "Motorcycle"
	CategoryTruck      VehicleCategory = "Truck"
	CategoryBicycle    VehicleCategory = "Bicycle"
)

// Categories lists every category in inventory order. Space numbering,
// seeding and report ordering all follow this order.
var Categories = []VehicleCategory{
	CategoryCar,
	CategoryMotorcycle,
	CategoryTruck,
	CategoryBicycle,
}

// SpacePrefix returns the one-letter prefix used for space numbers of the
// category, e.g. "C" so car spaces are C-1, C-2, ...
func (c VehicleCategory) SpacePrefix() string {
	switch c {
	case CategoryCar:
		return "C"
	case CategoryMotorcycle:
		return "M"
	case CategoryTruck:
		return "T"
	case CategoryBicycle:
		return "B"
	}
	return "?"
}

// Valid reports whether c is one of the known categories.
func (c VehicleCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
