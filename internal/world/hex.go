// Package world provides the hex grid, terrain generation, settlement
// placement, and the geographic pressure readings derived from them.
// Uses axial coordinates (q, r) for the hex grid.
package world

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Less orders coordinates by q, then r. Used wherever iteration order must
// not depend on map ordering.
func (h HexCoord) Less(o HexCoord) bool {
	if h.Q != o.Q {
		return h.Q < o.Q
	}
	return h.R < o.R
}

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainPlains   Terrain = iota // Fertile, open, easy to cross
	TerrainForest                  // Timber and game, slow going
	TerrainMountain                // Minerals, hard to cross
	TerrainCoast                   // Fishing, sea access
	TerrainRiver                   // Freshwater, trade arteries
	TerrainDesert                  // Harsh, sparse
	TerrainSwamp                   // Disease, poor footing
	TerrainTundra                  // Cold, sparse
	TerrainOcean                   // Impassable on foot
)

// Hex represents a single tile on the world map.
type Hex struct {
	Coord   HexCoord `json:"coord"`
	Terrain Terrain  `json:"terrain"`

	// Resource yields available on this tile.
	Resources map[ResourceType]float64 `json:"resources"`

	// Elevation and climate data (set during world generation).
	Elevation   float64 `json:"elevation"`   // 0.0 (sea level) to 1.0 (peak)
	Rainfall    float64 `json:"rainfall"`    // 0.0 (arid) to 1.0 (tropical)
	Temperature float64 `json:"temperature"` // 0.0 (frozen) to 1.0 (hot)

	// Settlement on this hex, if any.
	SettlementID *uint64 `json:"settlement_id,omitempty"`

	// Land health: 0.0 (degraded) to 1.0 (pristine).
	Health float64 `json:"health"`
}

// ResourceType enumerates primary resources harvestable from terrain.
type ResourceType uint8

const (
	ResourceGrain ResourceType = iota
	ResourceTimber
	ResourceIronOre
	ResourceStone
	ResourceFish
	ResourceHerbs
	ResourceGems
	ResourceFurs
	ResourceCoal

	numResources
)

// IsFood reports whether the resource feeds people.
func (r ResourceType) IsFood() bool {
	return r == ResourceGrain || r == ResourceFish || r == ResourceFurs
}

// TotalResources sums every resource yield on the hex.
func (h *Hex) TotalResources() float64 {
	total := 0.0
	for r := ResourceType(0); r < numResources; r++ {
		total += h.Resources[r]
	}
	return total
}

// FoodYield sums the food-producing resources on the hex.
func (h *Hex) FoodYield() float64 {
	total := 0.0
	for r := ResourceType(0); r < numResources; r++ {
		if r.IsFood() {
			total += h.Resources[r]
		}
	}
	return total
}

// Passable reports whether people can walk through the hex without difficulty.
func (t Terrain) Passable() bool {
	return t != TerrainOcean && t != TerrainMountain
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S()-b.S()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainMountain:
		return "Mountain"
	case TerrainCoast:
		return "Coast"
	case TerrainRiver:
		return "River"
	case TerrainDesert:
		return "Desert"
	case TerrainSwamp:
		return "Swamp"
	case TerrainTundra:
		return "Tundra"
	case TerrainOcean:
		return "Ocean"
	default:
		return "Unknown"
	}
}
