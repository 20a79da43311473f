package world

import (
	"math"
	"sort"

	"github.com/talgya/worldpressure/internal/disposition"
)

// Populations maps settled hexes to their head count.
type Populations map[HexCoord]uint32

const (
	densityRadius   = 3   // hexes considered when measuring crowding
	isolationReach  = 8   // settlement distance treated as fully isolated
	resourceFullSet = 150 // total yield treated as fully stable
)

// terrainThreat is the baseline danger of living on each terrain.
var terrainThreat = map[Terrain]float64{
	TerrainPlains:   -0.4,
	TerrainForest:   0.0,
	TerrainMountain: 0.5,
	TerrainCoast:    -0.1,
	TerrainRiver:    -0.3,
	TerrainDesert:   0.6,
	TerrainSwamp:    0.6,
	TerrainTundra:   0.7,
	TerrainOcean:    0.8,
}

// GeoPressureAt derives the environmental pressure reading for a hex.
// Every field is in [-1, 1]. Out-of-map coordinates get a zero reading.
func GeoPressureAt(m *Map, coord HexCoord, pops Populations) disposition.GeoPressure {
	hex := m.Get(coord)
	if hex == nil {
		return disposition.GeoPressure{}
	}
	return disposition.GeoPressure{
		ResourceStability:   resourceStability(hex),
		EnvironmentalThreat: environmentalThreat(hex),
		MobilityConstraint:  mobilityConstraint(m, coord, hex),
		PopulationDensity:   populationDensity(coord, pops),
		IsolationLevel:      isolationLevel(m, coord, pops),
	}
}

// resourceStability grows with the hex's yield and land health.
func resourceStability(hex *Hex) float64 {
	richness := math.Min(1, math.Log1p(hex.TotalResources())/math.Log1p(resourceFullSet))
	return signed(richness * hex.Health)
}

// environmentalThreat combines terrain danger with temperature extremes.
func environmentalThreat(hex *Hex) float64 {
	threat := terrainThreat[hex.Terrain]
	threat += (math.Abs(hex.Temperature-0.5) - 0.25) * 0.8
	return clampUnit(threat)
}

// mobilityConstraint rises with elevation and with impassable neighbours;
// water routes loosen it.
func mobilityConstraint(m *Map, coord HexCoord, hex *Hex) float64 {
	blocked := 0
	water := false
	for _, nc := range coord.Neighbors() {
		nh := m.Get(nc)
		if nh == nil || !nh.Terrain.Passable() {
			blocked++
			continue
		}
		if nh.Terrain == TerrainRiver || nh.Terrain == TerrainCoast {
			water = true
		}
	}
	c := signed(0.6*float64(blocked)/6 + 0.4*hex.Elevation)
	if water || hex.Terrain == TerrainRiver {
		c -= 0.3
	}
	return clampUnit(c)
}

// populationDensity is distance-weighted head count nearby on a log scale:
// -1 for empty land, +1 around ten thousand people.
func populationDensity(coord HexCoord, pops Populations) float64 {
	weighted := 0.0
	for _, c := range pops.coords() {
		n := pops[c]
		d := Distance(coord, c)
		if d > densityRadius {
			continue
		}
		weighted += float64(n) / float64(1+d)
	}
	return signed(math.Min(1, math.Log10(1+weighted)/4))
}

// isolationLevel measures distance to the nearest other settlement.
// Sea or river access reduces it.
func isolationLevel(m *Map, coord HexCoord, pops Populations) float64 {
	nearest := isolationReach
	for c, n := range pops {
		if c == coord || n == 0 {
			continue
		}
		if d := Distance(coord, c); d < nearest {
			nearest = d
		}
	}
	iso := signed(float64(nearest) / isolationReach)
	for _, nc := range coord.Neighbors() {
		if nh := m.Get(nc); nh != nil && (nh.Terrain == TerrainCoast || nh.Terrain == TerrainRiver) {
			iso -= 0.3
			break
		}
	}
	return clampUnit(iso)
}

// coords returns the settled coordinates in a stable order so float sums
// do not depend on map iteration.
func (p Populations) coords() []HexCoord {
	out := make([]HexCoord, 0, len(p))
	for c := range p {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// signed maps [0, 1] onto [-1, 1].
func signed(x float64) float64 {
	return clampUnit(x*2 - 1)
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
