package world

import (
	"math/rand"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b HexCoord
		want int
	}{
		{HexCoord{0, 0}, HexCoord{0, 0}, 0},
		{HexCoord{0, 0}, HexCoord{1, 0}, 1},
		{HexCoord{0, 0}, HexCoord{2, -1}, 2},
		{HexCoord{-3, 1}, HexCoord{2, -2}, 5},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	for _, n := range (HexCoord{4, -2}).Neighbors() {
		if Distance(HexCoord{4, -2}, n) != 1 {
			t.Errorf("neighbor %v not at distance 1", n)
		}
	}
}

func TestGenerateCoversRadius(t *testing.T) {
	cfg := SmallTestConfig()
	m := Generate(cfg)

	// A hex grid of radius R has 3R(R+1)+1 cells.
	want := 3*cfg.Radius*(cfg.Radius+1) + 1
	if m.HexCount() != want {
		t.Fatalf("HexCount = %d, want %d", m.HexCount(), want)
	}
	for c := range m.Hexes {
		if !m.InBounds(c) {
			t.Fatalf("hex %v outside radius %d", c, cfg.Radius)
		}
	}
	if m.TerrainCounts()[TerrainOcean] == 0 {
		t.Errorf("expected an ocean border")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(SmallTestConfig())
	b := Generate(SmallTestConfig())
	for _, c := range a.Coords() {
		ha, hb := a.Get(c), b.Get(c)
		if hb == nil || ha.Terrain != hb.Terrain || ha.Elevation != hb.Elevation {
			t.Fatalf("hex %v differs between runs", c)
		}
	}
}

func TestPlaceSettlements(t *testing.T) {
	cfg := SmallTestConfig()
	m := Generate(cfg)
	seeds := PlaceSettlements(m, cfg.Seed)
	if len(seeds) == 0 {
		t.Fatalf("no settlements placed")
	}

	names := make(map[string]bool)
	for i, s := range seeds {
		hex := m.Get(s.Coord)
		if hex == nil || hex.Terrain == TerrainOcean {
			t.Errorf("settlement %q placed on %v", s.Name, s.Coord)
		}
		if names[s.Name] {
			t.Errorf("duplicate name %q", s.Name)
		}
		names[s.Name] = true
		for _, o := range seeds[:i] {
			if o.Coord == s.Coord {
				t.Errorf("two settlements share %v", s.Coord)
			}
		}
	}

	again := PlaceSettlements(Generate(cfg), cfg.Seed)
	if len(again) != len(seeds) {
		t.Fatalf("placement not deterministic: %d vs %d", len(again), len(seeds))
	}
	for i := range seeds {
		if seeds[i] != again[i] {
			t.Fatalf("seed %d differs: %+v vs %+v", i, seeds[i], again[i])
		}
	}
}

func TestPopulationForSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if p := PopulationForSize(SizeVillage, rng); p < 20 || p >= 100 {
			t.Fatalf("village population %d out of range", p)
		}
		if p := PopulationForSize(SizeCity, rng); p < 2000 || p >= 5000 {
			t.Fatalf("city population %d out of range", p)
		}
	}
}

func TestRiverCount(t *testing.T) {
	tests := map[int]int{0: 2, 8: 2, 24: 3, 80: 10, 500: 10}
	for sources, want := range tests {
		if got := riverCount(sources); got != want {
			t.Errorf("riverCount(%d) = %d, want %d", sources, got, want)
		}
	}
}

func TestGenerateRiversFlowDownhill(t *testing.T) {
	m := Generate(SmallTestConfig())
	for _, c := range m.Coords() {
		hex := m.Get(c)
		if hex.Terrain != TerrainRiver {
			continue
		}
		if hex.Resources[ResourceFish] != 50 || hex.Resources[ResourceGrain] < 20 {
			t.Errorf("river %v resources = %v", c, hex.Resources)
		}
	}
}
