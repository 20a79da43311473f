package agents

import (
	"testing"

	"github.com/talgya/worldpressure/internal/disposition"
	"github.com/talgya/worldpressure/internal/world"
)

func TestSpawnPopulationAppliesGeoBias(t *testing.T) {
	pos := world.HexCoord{Q: 2, R: -1}
	calm := NewSpawner(9).SpawnPopulation(20, pos, 4, disposition.GeoPressure{})
	harsh := NewSpawner(9).SpawnPopulation(20, pos, 4, disposition.GeoPressure{
		EnvironmentalThreat: 1,
		PopulationDensity:   1,
	})

	if len(calm) != 20 || len(harsh) != 20 {
		t.Fatalf("spawned %d and %d agents, want 20", len(calm), len(harsh))
	}
	for i := range calm {
		c, h := calm[i], harsh[i]
		if c.ID != h.ID || c.Name != h.Name {
			t.Fatalf("same seed produced different agents: %+v vs %+v", c, h)
		}
		if c.HomeSettID == nil || *c.HomeSettID != 4 || c.Position != pos || !c.Alive {
			t.Fatalf("agent not placed in settlement: %+v", c)
		}
		for _, a := range disposition.Axes {
			v := c.Disposition.Value(a)
			if v < disposition.DefaultValue-temperamentSpread || v > disposition.DefaultValue+temperamentSpread {
				t.Fatalf("unbiased %s = %v outside temperament spread", a, v)
			}
		}
		// Threat and density both push aggression and authority up.
		if h.Disposition.Get("aggression") <= c.Disposition.Get("aggression") {
			t.Errorf("aggression not raised: %v vs %v", h.Disposition.Get("aggression"), c.Disposition.Get("aggression"))
		}
		if h.Disposition.Get("authority") != 1 {
			t.Errorf("authority = %v, want clamped to 1", h.Disposition.Get("authority"))
		}
	}
}

func TestSpawnerIDsIncrease(t *testing.T) {
	s := NewSpawner(1)
	first := s.SpawnPopulation(3, world.HexCoord{}, 1, disposition.GeoPressure{})
	second := s.SpawnPopulation(2, world.HexCoord{Q: 1}, 2, disposition.GeoPressure{})
	for i, a := range append(first, second...) {
		if a.ID != AgentID(1+i) {
			t.Fatalf("agent %d has ID %d, want %d", i, a.ID, 1+i)
		}
	}
}

func TestRepresentativeCount(t *testing.T) {
	tests := map[uint32]uint32{0: 1, 20: 1, 500: 10, 4000: 40}
	for pop, want := range tests {
		if got := RepresentativeCount(pop); got != want {
			t.Errorf("RepresentativeCount(%d) = %d, want %d", pop, got, want)
		}
	}
}
