// Genesis — builds a fresh world from a generation config.
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/worldpressure/internal/agents"
	"github.com/talgya/worldpressure/internal/director"
	"github.com/talgya/worldpressure/internal/social"
	"github.com/talgya/worldpressure/internal/world"
)

// Genesis generates terrain, places and stocks settlements, seeds the
// factions and spawns representative agents whose dispositions carry the
// geographic pressure of their home hex. The same config always yields the
// same world.
func Genesis(cfg world.GenConfig, dir *director.Controller) *Simulation {
	m := world.Generate(cfg)

	seeds := world.PlaceSettlements(m, cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed + 400))

	setts := make([]*social.Settlement, 0, len(seeds))
	pops := make(world.Populations, len(seeds))
	for i, ss := range seeds {
		sid := uint64(i + 1)
		pop := world.PopulationForSize(ss.Size, rng)
		setts = append(setts, social.NewSettlement(sid, ss, pop, m))
		pops[ss.Coord] = pop
	}
	LinkSettlements(m, setts)

	// Pressure is read once every settlement exists, so density and
	// isolation see the whole map.
	spawner := agents.NewSpawner(cfg.Seed)
	var ag []*agents.Agent
	for _, st := range setts {
		pressure := world.GeoPressureAt(m, st.Position, pops)
		ag = append(ag, spawner.SpawnPopulation(agents.RepresentativeCount(st.Population), st.Position, st.ID, pressure)...)
	}

	factions := social.SeedFactions()
	social.SeedRelations(factions)
	social.SeedInfluence(factions, setts, cfg.Seed)

	slog.Info("world generated",
		"seed", cfg.Seed,
		"hexes", m.HexCount(),
		"settlements", len(setts),
		"agents", len(ag),
		"factions", len(factions),
	)
	return NewSimulation(m, ag, setts, factions, dir)
}

// LinkSettlements points each settlement's hex back at it.
func LinkSettlements(m *world.Map, setts []*social.Settlement) {
	for _, st := range setts {
		sid := st.ID
		if hex := m.Get(st.Position); hex != nil {
			hex.SettlementID = &sid
		}
	}
}
