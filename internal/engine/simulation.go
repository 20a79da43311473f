// Simulation ties together all world systems and runs them each tick.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/worldpressure/internal/agents"
	"github.com/talgya/worldpressure/internal/director"
	"github.com/talgya/worldpressure/internal/social"
	"github.com/talgya/worldpressure/internal/world"
)

// Simulation holds the complete world state and wires systems together.
type Simulation struct {
	WorldMap    *world.Map
	Agents      []*agents.Agent
	AgentIndex  map[agents.AgentID]*agents.Agent
	Settlements []*social.Settlement
	Factions    []*social.Faction
	Events      []Event // Recent events, trimmed weekly
	LastTick    uint64  // Most recent tick processed

	// Settlement lookups.
	SettlementIndex  map[uint64]*social.Settlement // ID → settlement
	SettlementAgents map[uint64][]*agents.Agent    // settlement ID → agents

	// Director aggregates this simulation's signals. Owned by the caller.
	Director *director.Controller

	// Refugees is the displaced population awaiting resettlement.
	Refugees uint32

	// fronts counts active war fronts per settlement, from the last faction pass.
	fronts map[uint64]int

	Stats SimStats
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// Event is a notable occurrence in the world.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "director", "crime", "conflict", "migration"
}

// SimStats tracks aggregate world statistics.
type SimStats struct {
	TotalPopulation uint64  `json:"total_population"`
	TotalFood       float64 `json:"total_food"`
	AvgUnrest       float64 `json:"avg_unrest"`
	Refugees        uint32  `json:"refugees"`
	Wars            int     `json:"wars"`
	Fronts          int     `json:"fronts"`
}

// NewSimulation creates a Simulation from generated components.
// dir must be a fresh controller dedicated to this simulation.
func NewSimulation(m *world.Map, ag []*agents.Agent, setts []*social.Settlement, factions []*social.Faction, dir *director.Controller) *Simulation {
	index := make(map[agents.AgentID]*agents.Agent, len(ag))
	for _, a := range ag {
		index[a.ID] = a
	}

	settIndex := make(map[uint64]*social.Settlement, len(setts))
	for _, s := range setts {
		settIndex[s.ID] = s
	}

	settAgents := make(map[uint64][]*agents.Agent)
	for _, a := range ag {
		if a.HomeSettID != nil {
			settAgents[*a.HomeSettID] = append(settAgents[*a.HomeSettID], a)
		}
	}

	sim := &Simulation{
		WorldMap:         m,
		Agents:           ag,
		AgentIndex:       index,
		Settlements:      setts,
		Factions:         factions,
		SettlementIndex:  settIndex,
		SettlementAgents: settAgents,
		Director:         dir,
		fronts:           make(map[uint64]int),
	}
	sim.updateStats()
	return sim
}

// TickDay runs one sim-day: every subsystem registers its signals, then the
// director folds them into this tick's indices and phase.
func (s *Simulation) TickDay(tick uint64) {
	s.LastTick = tick
	phase := s.Director.Phase()

	s.processEconomy(tick, phase)
	s.processCrime(tick)
	s.processFactions(tick, phase)
	s.processMigration(tick)

	s.Director.Update(1)

	if next := s.Director.Phase(); next != phase {
		s.addEvent(tick, "director", fmt.Sprintf("the world turns from %s to %s", phase, next))
		slog.Info("world phase changed", append([]any{"tick", tick, "from", string(phase)}, s.Director.DebugState().LogArgs()...)...)
	}
	s.updateStats()
}

// TickWeek runs every sim-week: summary report and event trimming.
func (s *Simulation) TickWeek(tick uint64) {
	mean := agents.MeanDisposition(s.Agents)
	slog.Info("weekly report",
		append([]any{
			"tick", tick,
			"time", SimTime(tick),
			"population", humanize.Comma(int64(s.Stats.TotalPopulation)),
			"refugees", humanize.Comma(int64(s.Stats.Refugees)),
			"avg_unrest", fmt.Sprintf("%.3f", s.Stats.AvgUnrest),
			"wars", s.Stats.Wars,
			"fronts", s.Stats.Fronts,
			"avg_authority", fmt.Sprintf("%.3f", mean["authority"]),
			"avg_aggression", fmt.Sprintf("%.3f", mean["aggression"]),
		}, s.Director.DebugState().LogArgs()...)...,
	)

	if len(s.Events) > 1000 {
		s.Events = s.Events[len(s.Events)-1000:]
	}
}

// TickSeason runs every sim-season.
func (s *Simulation) TickSeason(tick uint64) {
	slog.Info("season turns", "tick", tick, "season", SeasonName(Season(tick)), "phase", string(s.Director.Phase()))
}

func (s *Simulation) addEvent(tick uint64, category, desc string) {
	s.Events = append(s.Events, Event{Tick: tick, Description: desc, Category: category})
}

func (s *Simulation) updateStats() {
	var pop uint64
	food, unrest := 0.0, 0.0
	for _, st := range s.Settlements {
		pop += uint64(st.Population)
		food += st.FoodStock
		unrest += st.Unrest
	}

	wars := 0
	for _, p := range social.Pairs(s.Factions) {
		if p.AtWar() {
			wars++
		}
	}
	fronts := 0
	for _, n := range s.fronts {
		fronts += n
	}

	s.Stats = SimStats{
		TotalPopulation: pop,
		TotalFood:       food,
		Refugees:        s.Refugees,
		Wars:            wars,
		Fronts:          fronts,
	}
	if len(s.Settlements) > 0 {
		s.Stats.AvgUnrest = unrest / float64(len(s.Settlements))
	}
}
