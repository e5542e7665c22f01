package api

import (
	"fmt"
	"time"

	"github.com/citytransit-view/internal/transitview"
	"github.com/citytransit-view/internal/transitview/derive"
	"github.com/citytransit-view/pkg/transit/models"
)

type vehicleDTO struct {
	models.Vehicle
	ArrivalTime string `json:"arrivalTime"`
	DelayLabel  string `json:"delayLabel,omitempty"`
}

type arrivalDTO struct {
	models.ArrivalPrediction
	EstimatedTime string `json:"estimatedTime"`
	DelayLabel    string `json:"delayLabel,omitempty"`
}

type stopDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Routes   []string        `json:"routes"`
	Position models.Position `json:"position"`
	Arrivals []arrivalDTO    `json:"arrivals"`
}

type viewDTO struct {
	Mode           string              `json:"mode"`
	Query          string              `json:"query"`
	SelectedStop   *stopDTO            `json:"selectedStop"`
	Vehicles       []vehicleDTO        `json:"vehicles"`
	Total          int                 `json:"total"`
	Counts         derive.StatusCounts `json:"counts"`
	LastUpdated    time.Time           `json:"lastUpdated"`
	LastUpdatedAgo string              `json:"lastUpdatedAgo"`
	Tick           uint64              `json:"tick"`
}

type statusDTO struct {
	Counts         derive.StatusCounts    `json:"counts"`
	Occupancy      derive.OccupancyCounts `json:"occupancy"`
	Vehicles       int                    `json:"vehicles"`
	LastUpdated    time.Time              `json:"lastUpdated"`
	LastUpdatedAgo string                 `json:"lastUpdatedAgo"`
	Tick           uint64                 `json:"tick"`
}

type boardDTO struct {
	Stop     stopDTO      `json:"stop"`
	Arrivals []arrivalDTO `json:"arrivals"`
}

func presentVehicle(v models.Vehicle) vehicleDTO {
	return vehicleDTO{
		Vehicle:     v,
		ArrivalTime: models.FormatMinutes(v.ArrivalMinutes),
		DelayLabel:  models.FormatDelay(v.DelayMinutes),
	}
}

func presentVehicles(vs []models.Vehicle) []vehicleDTO {
	out := make([]vehicleDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, presentVehicle(v))
	}
	return out
}

func presentArrivals(as []models.ArrivalPrediction) []arrivalDTO {
	out := make([]arrivalDTO, 0, len(as))
	for _, a := range as {
		label := ""
		if a.DelayMinutes > 0 {
			label = fmt.Sprintf("+%d", a.DelayMinutes)
		}
		out = append(out, arrivalDTO{
			ArrivalPrediction: a,
			EstimatedTime:     models.FormatMinutes(a.EstimatedMinutes),
			DelayLabel:        label,
		})
	}
	return out
}

func presentStop(s models.Stop) stopDTO {
	return stopDTO{
		ID:       s.ID,
		Name:     s.Name,
		Routes:   s.Routes,
		Position: s.Position,
		Arrivals: presentArrivals(s.Arrivals),
	}
}

func presentState(st transitview.State, now time.Time) viewDTO {
	dto := viewDTO{
		Mode:           string(st.Mode),
		Query:          st.Query,
		Vehicles:       presentVehicles(st.Vehicles),
		Total:          st.Total,
		Counts:         st.Counts,
		LastUpdated:    st.LastUpdated,
		LastUpdatedAgo: formatAge(now, st.LastUpdated),
		Tick:           st.Tick,
	}
	if st.SelectedStop != nil {
		s := presentStop(*st.SelectedStop)
		dto.SelectedStop = &s
	}
	return dto
}

func presentStatus(st transitview.Status, now time.Time) statusDTO {
	return statusDTO{
		Counts:         st.Counts,
		Occupancy:      st.Occupancy,
		Vehicles:       st.Vehicles,
		LastUpdated:    st.LastUpdated,
		LastUpdatedAgo: formatAge(now, st.LastUpdated),
		Tick:           st.Tick,
	}
}

func formatAge(now, then time.Time) string {
	d := now.Sub(then)
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}
