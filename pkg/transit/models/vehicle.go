package models

// Status is the service state reported for a vehicle
type Status string

const (
	StatusOnline  Status = "online"
	StatusDelayed Status = "delayed"
	StatusOffline Status = "offline"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusOnline, StatusDelayed, StatusOffline}

func (s Status) Valid() bool {
	switch s {
	case StatusOnline, StatusDelayed, StatusOffline:
		return true
	}
	return false
}

// Occupancy is the coarse passenger load of a vehicle
type Occupancy string

const (
	OccupancyLow    Occupancy = "low"
	OccupancyMedium Occupancy = "medium"
	OccupancyHigh   Occupancy = "high"
)

var Occupancies = []Occupancy{OccupancyLow, OccupancyMedium, OccupancyHigh}

func (o Occupancy) Valid() bool {
	switch o {
	case OccupancyLow, OccupancyMedium, OccupancyHigh:
		return true
	}
	return false
}

// Position is a WGS84 coordinate pair
type Position struct {
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
}

func (p Position) Valid() bool {
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

// Vehicle is a single tracked bus. Status and DelayMinutes are set
// independently; an online vehicle may still carry a delay.
type Vehicle struct {
	ID             string    `json:"id" yaml:"id"`
	Route          string    `json:"route" yaml:"route"`
	Destination    string    `json:"destination" yaml:"destination"`
	CurrentStop    string    `json:"currentStop" yaml:"currentStop"`
	NextStop       string    `json:"nextStop" yaml:"nextStop"`
	ArrivalMinutes int       `json:"arrivalMinutes" yaml:"arrivalMinutes"`
	DelayMinutes   int       `json:"delayMinutes" yaml:"delayMinutes"`
	Status         Status    `json:"status" yaml:"status"`
	Position       Position  `json:"position" yaml:"position"`
	Occupancy      Occupancy `json:"occupancy" yaml:"occupancy"`
}

// CloneVehicles returns a copy of vs that shares no backing array with it
func CloneVehicles(vs []Vehicle) []Vehicle {
	if vs == nil {
		return nil
	}
	out := make([]Vehicle, len(vs))
	copy(out, vs)
	return out
}
