// Settlement placement — scores land hexes and seeds initial settlements.
package world

import (
	"math"
	"math/rand"
	"sort"
)

// SettlementSeed holds the parameters for an initial settlement placement.
type SettlementSeed struct {
	Coord HexCoord
	Size  SettlementSize
	Score float64 // Desirability score
	Name  string
}

// SettlementSize categorizes settlement scale.
type SettlementSize uint8

const (
	SizeVillage SettlementSize = iota
	SizeTown
	SizeCity
)

// String returns the size name.
func (s SettlementSize) String() string {
	switch s {
	case SizeCity:
		return "city"
	case SizeTown:
		return "town"
	default:
		return "village"
	}
}

// placementQuota is how many settlements of a size to place and how far apart.
type placementQuota struct {
	size    SettlementSize
	count   int
	minDist int
}

// PlaceSettlements finds locations for initial settlements on the map.
// Cities take the best sites, then towns, then villages; quotas scale with
// the amount of land so small test worlds stay sparse.
func PlaceSettlements(m *Map, seed int64) []SettlementSeed {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		coord HexCoord
		score float64
	}
	var candidates []scored
	for _, coord := range m.Coords() {
		hex := m.Get(coord)
		if hex.Terrain == TerrainOcean {
			continue
		}
		if s := settlementScore(m, coord, hex); s > 0 {
			candidates = append(candidates, scored{coord, s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	land := len(candidates)
	quotas := []placementQuota{
		{SizeCity, max(1, min(3+rng.Intn(3), land/150)), 8},
		{SizeTown, max(1, min(10+rng.Intn(11), land/50)), 4},
		{SizeVillage, max(2, min(30+rng.Intn(21), land/20)), 2},
	}

	var seeds []SettlementSeed
	taken := make(map[HexCoord]bool)
	for _, q := range quotas {
		placed := 0
		for _, c := range candidates {
			if placed >= q.count {
				break
			}
			if taken[c.coord] || tooClose(c.coord, seeds, q.minDist) {
				continue
			}
			taken[c.coord] = true
			seeds = append(seeds, SettlementSeed{Coord: c.coord, Size: q.size, Score: c.score})
			placed++
		}
	}

	names := generateNames(rng, len(seeds))
	for i := range seeds {
		seeds[i].Name = names[i]
	}

	return seeds
}

// settlementScore evaluates how desirable a hex is for a settlement.
// Prefers coast and rivers, fertile plains, and diverse surroundings.
func settlementScore(m *Map, coord HexCoord, hex *Hex) float64 {
	score := 0.0

	switch hex.Terrain {
	case TerrainPlains:
		score += 3.0
	case TerrainCoast:
		score += 4.0
	case TerrainRiver:
		score += 3.5
	case TerrainForest:
		score += 1.5
	case TerrainDesert, TerrainSwamp, TerrainTundra:
		score += 0.5
	case TerrainMountain:
		score += 0.3
	default:
		return 0
	}

	terrainTypes := make(map[Terrain]bool)
	water := false
	for _, nc := range coord.Neighbors() {
		nh := m.Get(nc)
		if nh == nil {
			continue
		}
		if nh.Terrain != TerrainOcean {
			terrainTypes[nh.Terrain] = true
		}
		if nh.Terrain == TerrainRiver || nh.Terrain == TerrainCoast {
			water = true
		}
	}
	score += float64(len(terrainTypes)) * 0.3
	if water {
		score += 0.5
	}

	score += math.Log1p(hex.TotalResources()) * 0.2

	return score
}

func tooClose(coord HexCoord, existing []SettlementSeed, minDist int) bool {
	for _, s := range existing {
		if Distance(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}

// generateNames produces procedural settlement names by combining syllables.
func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)
	for len(names) < count {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}
	return names
}

// PopulationForSize returns an initial population for a settlement size.
func PopulationForSize(size SettlementSize, rng *rand.Rand) uint32 {
	switch size {
	case SizeCity:
		return 2000 + uint32(rng.Intn(3000))
	case SizeTown:
		return 200 + uint32(rng.Intn(800))
	case SizeVillage:
		return 20 + uint32(rng.Intn(80))
	default:
		return 50
	}
}
