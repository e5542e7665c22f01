package seed

import "github.com/citytransit-view/pkg/transit/models"

// Sample returns the built-in demonstration data set
func Sample() Document {
	return Document{
		Vehicles: []models.Vehicle{
			{
				ID:             "bus-001",
				Route:          "15A",
				Destination:    "City Center",
				CurrentStop:    "Pine Street",
				NextStop:       "Central Station",
				ArrivalMinutes: 2,
				DelayMinutes:   0,
				Status:         models.StatusOnline,
				Position:       models.Position{Longitude: -73.935242, Latitude: 40.730610},
				Occupancy:      models.OccupancyMedium,
			},
			{
				ID:             "bus-002",
				Route:          "22B",
				Destination:    "University",
				CurrentStop:    "Main Avenue",
				NextStop:       "Library Square",
				ArrivalMinutes: 5,
				DelayMinutes:   3,
				Status:         models.StatusDelayed,
				Position:       models.Position{Longitude: -73.925242, Latitude: 40.725610},
				Occupancy:      models.OccupancyHigh,
			},
			{
				ID:             "bus-003",
				Route:          "8C",
				Destination:    "Airport",
				CurrentStop:    "Hospital",
				NextStop:       "Terminal 1",
				ArrivalMinutes: 12,
				DelayMinutes:   0,
				Status:         models.StatusOnline,
				Position:       models.Position{Longitude: -73.915242, Latitude: 40.720610},
				Occupancy:      models.OccupancyLow,
			},
		},
		Stops: []models.Stop{
			{
				ID:       "stop-001",
				Name:     "Central Station",
				Routes:   []string{"15A", "22B", "8C"},
				Position: models.Position{Longitude: -73.935242, Latitude: 40.730610},
				Arrivals: []models.ArrivalPrediction{
					{Route: "15A", Destination: "City Center", EstimatedMinutes: 2, DelayMinutes: 0},
					{Route: "22B", Destination: "University", EstimatedMinutes: 8, DelayMinutes: 3},
					{Route: "8C", Destination: "Airport", EstimatedMinutes: 15, DelayMinutes: 0},
				},
			},
		},
	}
}
