package models

import (
	"testing"

	"github.com/matryer/is"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{"zero", 0, "0 min"},
		{"two", 2, "2 min"},
		{"negative floors to zero", -3, "0 min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMinutes(tt.minutes); got != tt.want {
				t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestFormatDelay(t *testing.T) {
	is := is.New(t)
	is.Equal(FormatDelay(0), "")
	is.Equal(FormatDelay(3), "+3 min delay")
}

func TestStatusAndOccupancyValid(t *testing.T) {
	is := is.New(t)
	for _, s := range Statuses {
		is.True(s.Valid())
	}
	for _, o := range Occupancies {
		is.True(o.Valid())
	}
	is.True(!Status("parked").Valid())
	is.True(!Occupancy("full").Valid())
}

func TestPositionValid(t *testing.T) {
	is := is.New(t)
	is.True(Position{Longitude: -73.935242, Latitude: 40.730610}.Valid())
	is.True(!Position{Longitude: 200, Latitude: 0}.Valid())
	is.True(!Position{Longitude: 0, Latitude: -91}.Valid())
}

func TestCloneStopsIsDeep(t *testing.T) {
	is := is.New(t)
	stops := []Stop{{ID: "s", Routes: []string{"1"}, Arrivals: []ArrivalPrediction{{Route: "1"}}}}
	clone := CloneStops(stops)
	clone[0].Routes[0] = "2"
	clone[0].Arrivals[0].Route = "2"
	is.Equal(stops[0].Routes[0], "1")
	is.Equal(stops[0].Arrivals[0].Route, "1")
	is.True(stops[0].Serves("1"))
	is.True(!stops[0].Serves("2"))
}
