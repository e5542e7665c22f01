// Package derive computes read-side views over a vehicle snapshot. Nothing
// here keeps state; every result is recomputed from its inputs.
package derive

import (
	"strings"

	"github.com/citytransit-view/pkg/transit/models"
)

// StatusCounts holds the number of vehicles per status
type StatusCounts struct {
	Online  int `json:"online"`
	Delayed int `json:"delayed"`
	Offline int `json:"offline"`
}

// OccupancyCounts holds the number of vehicles per occupancy level
type OccupancyCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Matches reports whether query is a case-insensitive substring of the
// vehicle's route or destination. An empty query matches every vehicle.
func Matches(v models.Vehicle, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(v.Route), q) ||
		strings.Contains(strings.ToLower(v.Destination), q)
}

// VisibleVehicles returns the matching vehicles in their original order.
// The input slice is not modified.
func VisibleVehicles(vehicles []models.Vehicle, query string) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if Matches(v, query) {
			out = append(out, v)
		}
	}
	return out
}

func CountStatuses(vehicles []models.Vehicle) StatusCounts {
	var c StatusCounts
	for _, v := range vehicles {
		switch v.Status {
		case models.StatusOnline:
			c.Online++
		case models.StatusDelayed:
			c.Delayed++
		case models.StatusOffline:
			c.Offline++
		}
	}
	return c
}

func CountOccupancy(vehicles []models.Vehicle) OccupancyCounts {
	var c OccupancyCounts
	for _, v := range vehicles {
		switch v.Occupancy {
		case models.OccupancyLow:
			c.Low++
		case models.OccupancyMedium:
			c.Medium++
		case models.OccupancyHigh:
			c.High++
		}
	}
	return c
}

// StopArrivals returns the stop's arrival board in seeded order. A
// prediction whose route and destination match a live vehicle carries that
// vehicle's current delay.
func StopArrivals(stop models.Stop, vehicles []models.Vehicle) []models.ArrivalPrediction {
	out := make([]models.ArrivalPrediction, len(stop.Arrivals))
	for i, a := range stop.Arrivals {
		for _, v := range vehicles {
			if v.Route == a.Route && v.Destination == a.Destination {
				a.DelayMinutes = v.DelayMinutes
				break
			}
		}
		out[i] = a
	}
	return out
}
