// Package feed simulates a live vehicle feed by mutating the seeded
// vehicles on a fixed interval.
package feed

import (
	"math/rand/v2"
	"time"

	"github.com/citytransit-view/pkg/transit/models"
)

// RandomSource is the randomness consumed by Advance. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// ResolveSeed returns seed, or a clock-derived seed when it is zero
func ResolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return seed
}

// NewRandomSource returns a PCG source. A zero seed is resolved with
// ResolveSeed; pass the resolved value in when the run must be reproducible.
func NewRandomSource(seed uint64) RandomSource {
	seed = ResolveSeed(seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Policy sets how often delays and delayed statuses are injected
type Policy struct {
	DelayProbability         float64
	DelayedStatusProbability float64
	MaxDelayMinutes          int
}

func DefaultPolicy() Policy {
	return Policy{
		DelayProbability:         0.2,
		DelayedStatusProbability: 0.1,
		MaxDelayMinutes:          4,
	}
}

// Advance returns the next batch of vehicles. For each vehicle, in order:
// arrival counts down by one minute and stops at zero; with
// DelayProbability the delay is resampled from [0, MaxDelayMinutes]; with
// DelayedStatusProbability the status becomes delayed. The input is not
// modified.
func Advance(vehicles []models.Vehicle, rng RandomSource, p Policy) []models.Vehicle {
	next := make([]models.Vehicle, len(vehicles))
	for i, v := range vehicles {
		v.ArrivalMinutes = max(0, v.ArrivalMinutes-1)

		if rng.Float64() < p.DelayProbability {
			v.DelayMinutes = rng.IntN(max(0, p.MaxDelayMinutes) + 1)
		}

		if rng.Float64() < p.DelayedStatusProbability {
			v.Status = models.StatusDelayed
		}

		next[i] = v
	}
	return next
}
