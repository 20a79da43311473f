// Package social provides settlements and factions, the state the world's
// economy, crime, conflict and migration passes read and mutate.
package social

import (
	"math"

	"github.com/talgya/worldpressure/internal/world"
)

// SettlementID is a unique identifier for a settlement.
type SettlementID = uint64

// Food accounting constants (per sim-day).
const (
	FoodPerCapita = 0.01 // food units one person eats per day
	ReserveDays   = 30   // stock covering this many days counts as full surplus
	StorageDays   = 60   // granaries hold at most this many days of food
	yieldFactor   = 5e-5 // daily food per resident per unit of catchment yield
)

// Settlement represents a population center on the hex grid.
type Settlement struct {
	ID       SettlementID         `json:"id"`
	Name     string               `json:"name"`
	Position world.HexCoord       `json:"position"`
	Size     world.SettlementSize `json:"size"`

	Population uint32 `json:"population"`

	// Economy
	YieldPerHead float64 `json:"yield_per_head"` // daily food one resident works from the land
	FoodStock    float64 `json:"food_stock"`
	Shortage     float64 `json:"shortage"` // last day's unmet demand / demand, 0–1

	// Order
	Unrest float64 `json:"unrest"` // 0.0 calm – 1.0 riots

	// Departing carries the fraction of a resident already decided to leave.
	Departing float64 `json:"departing"`
}

// NewSettlement creates a settlement whose yield is derived from its hex
// and its neighbours, starting with half its reserve in stock.
func NewSettlement(id SettlementID, seed world.SettlementSeed, pop uint32, m *world.Map) *Settlement {
	s := &Settlement{
		ID:         id,
		Name:       seed.Name,
		Position:   seed.Coord,
		Size:       seed.Size,
		Population: pop,
	}
	s.YieldPerHead = catchmentYield(m, seed.Coord) * yieldFactor
	s.FoodStock = s.DailyConsumption() * ReserveDays / 2
	return s
}

// catchmentYield sums food yield on the settlement hex and its neighbours.
func catchmentYield(m *world.Map, c world.HexCoord) float64 {
	total := 0.0
	if h := m.Get(c); h != nil {
		total += h.FoodYield()
	}
	for _, nc := range c.Neighbors() {
		if h := m.Get(nc); h != nil {
			total += h.FoodYield() * 0.5
		}
	}
	return total
}

// DailyConsumption is the food the population eats in one day.
func (s *Settlement) DailyConsumption() float64 {
	return float64(s.Population) * FoodPerCapita
}

// BaseProduction is the daily food output before seasonal and phase modifiers.
func (s *Settlement) BaseProduction() float64 {
	return s.YieldPerHead * float64(s.Population)
}

// ReserveRatio is stock relative to a full reserve, capped at 1.
func (s *Settlement) ReserveRatio() float64 {
	need := s.DailyConsumption() * ReserveDays
	if need <= 0 {
		return 0
	}
	return min(1, s.FoodStock/need)
}

// Harvest adds produced food, eats a day's consumption and records any shortage.
func (s *Settlement) Harvest(produced float64) {
	demand := s.DailyConsumption()
	s.FoodStock += produced - demand
	s.Shortage = 0
	if s.FoodStock < 0 {
		if demand > 0 {
			s.Shortage = min(1, -s.FoodStock/demand)
		}
		s.FoodStock = 0
	}
	if limit := demand * StorageDays; s.FoodStock > limit {
		s.FoodStock = limit
	}
}

// Displace removes up to n residents and returns how many left.
func (s *Settlement) Displace(n uint32) uint32 {
	n = min(n, s.Population)
	s.Population -= n
	return n
}

// Flee displaces share of the population for one day and returns how many
// left. Fractions carry over between days, so small settlements lose people
// at the same rate as large ones. A share of 0 or less clears the carry.
func (s *Settlement) Flee(share float64) uint32 {
	if share <= 0 {
		s.Departing = 0
		return 0
	}
	s.Departing += float64(s.Population) * share
	whole := math.Floor(s.Departing)
	s.Departing -= whole
	return s.Displace(uint32(whole))
}

// Absorb adds arriving residents.
func (s *Settlement) Absorb(n uint32) {
	s.Population += n
}

// AdjustUnrest moves unrest by delta, clamped to [0, 1].
func (s *Settlement) AdjustUnrest(delta float64) {
	s.Unrest = max(0, min(1, s.Unrest+delta))
}
