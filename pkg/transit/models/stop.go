package models

// ArrivalPrediction is a display-only projection of a route's next
// arrival at a stop
type ArrivalPrediction struct {
	Route            string `json:"route" yaml:"route"`
	Destination      string `json:"destination" yaml:"destination"`
	EstimatedMinutes int    `json:"estimatedMinutes" yaml:"estimatedMinutes"`
	DelayMinutes     int    `json:"delayMinutes" yaml:"delayMinutes"`
}

type Stop struct {
	ID       string              `json:"id" yaml:"id"`
	Name     string              `json:"name" yaml:"name"`
	Routes   []string            `json:"routes" yaml:"routes"`
	Position Position            `json:"position" yaml:"position"`
	Arrivals []ArrivalPrediction `json:"arrivals" yaml:"arrivals"`
}

// Serves reports whether route is one of the stop's routes
func (s Stop) Serves(route string) bool {
	for _, r := range s.Routes {
		if r == route {
			return true
		}
	}
	return false
}

// CloneStops deep copies stops including their route and arrival slices
func CloneStops(stops []Stop) []Stop {
	if stops == nil {
		return nil
	}
	out := make([]Stop, len(stops))
	for i, s := range stops {
		s.Routes = append([]string(nil), s.Routes...)
		s.Arrivals = append([]ArrivalPrediction(nil), s.Arrivals...)
		out[i] = s
	}
	return out
}
