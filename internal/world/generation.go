// World generation using layered simplex noise.
// Generates elevation, rainfall, and temperature maps, then derives terrain and
// resources. Everything the geo pressure reading looks at is fixed here.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Radius      int     // Hex grid radius (~22 for ~1500 hexes)
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for ocean (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:      22,
		Seed:        0,
		SeaLevel:    0.25,
		MountainLvl: 0.72,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
// Large enough that placement finds a city, a town and villages.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:      8,
		Seed:        42,
		SeaLevel:    0.30,
		MountainLvl: 0.75,
	}
}

// climate is the raw noise sample for one hex before terrain is derived.
type climate struct {
	elev, rain, temp float64
}

// noiseLayers holds one generator per climate layer.
type noiseLayers struct {
	elev, rain, temp opensimplex.Noise
	radius           float64
}

func newNoiseLayers(seed int64, radius int) noiseLayers {
	// Offset seeds keep the layers independent.
	return noiseLayers{
		elev:   opensimplex.NewNormalized(seed),
		rain:   opensimplex.NewNormalized(seed + 1),
		temp:   opensimplex.NewNormalized(seed + 2),
		radius: float64(radius),
	}
}

// sample reads the three layers at a hex.
func (n noiseLayers) sample(c HexCoord) climate {
	// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
	x := float64(c.Q) + float64(c.R)*0.5
	y := float64(c.R) * math.Sqrt(3.0) / 2.0

	// Multi-octave noise for natural-looking terrain.
	cl := climate{
		elev: octaveNoise(n.elev, x, y, 4, 0.08, 0.5),
		rain: octaveNoise(n.rain, x, y, 3, 0.06, 0.5),
		temp: octaveNoise(n.temp, x, y, 3, 0.05, 0.5),
	}

	// Continental shaping: reduce elevation near edges to create ocean border.
	distFromCenter := math.Sqrt(x*x+y*y) / n.radius
	cl.elev *= max(0, 1.0-math.Pow(distFromCenter, 3.5))

	// Temperature decreases with elevation and distance from equator.
	cl.temp = cl.temp*0.6 + (1.0-math.Abs(y)/n.radius)*0.3 + (1.0-cl.elev)*0.1
	return cl
}

// Generate creates a complete world map with terrain and resources.
// The same config (with a non-zero seed) always yields the same map.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	layers := newNoiseLayers(seed, cfg.Radius)
	m := NewMap(cfg.Radius)

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := HexCoord{Q: q, R: r}
			if !m.InBounds(coord) {
				continue
			}

			cl := layers.sample(coord)
			terrain := deriveTerrain(cl, cfg)
			m.Set(&Hex{
				Coord:       coord,
				Terrain:     terrain,
				Elevation:   cl.elev,
				Rainfall:    cl.rain,
				Temperature: cl.temp,
				Resources:   makeResources(terrain, cl.elev, cl.rain),
				Health:      1.0, // Pristine land at world generation
			})
		}
	}

	// Post-passes run over sorted coordinates so the same seed gives the same rivers.
	markCoastalHexes(m)
	placeRivers(m, seed)

	return m
}

// deriveTerrain determines terrain type from a climate sample.
// Cases are checked in order; the first that holds wins.
func deriveTerrain(cl climate, cfg GenConfig) Terrain {
	switch {
	case cl.elev < cfg.SeaLevel:
		return TerrainOcean
	case cl.elev > cfg.MountainLvl:
		return TerrainMountain
	case cl.temp < 0.25:
		return TerrainTundra
	case cl.rain < 0.25 && cl.temp > 0.5:
		return TerrainDesert
	case cl.rain > 0.7 && cl.elev < 0.45:
		return TerrainSwamp
	case cl.rain > 0.45 && cl.elev > 0.45:
		return TerrainForest
	default:
		return TerrainPlains
	}
}

// makeResources populates initial resource yields based on terrain.
// Grain, fish and furs feed settlements; the rest only add to stability.
func makeResources(terrain Terrain, elev, rain float64) map[ResourceType]float64 {
	res := make(map[ResourceType]float64)

	switch terrain {
	case TerrainPlains:
		res[ResourceGrain] = 80 + rain*40 // Rainfall boosts yield
	case TerrainForest:
		res[ResourceTimber] = 100
		res[ResourceHerbs] = 30
		res[ResourceFurs] = 20
	case TerrainMountain:
		res[ResourceIronOre] = 60 + elev*30
		res[ResourceStone] = 80
		res[ResourceCoal] = 40
		if elev > 0.85 {
			res[ResourceGems] = 10 // Rare at high elevations
		}
	case TerrainCoast:
		res[ResourceFish] = 80
	case TerrainRiver:
		res[ResourceFish] = 50
		res[ResourceGrain] = 40 // Irrigation bonus
	case TerrainSwamp:
		res[ResourceHerbs] = 60
	case TerrainTundra:
		res[ResourceFurs] = 40
	case TerrainDesert:
		res[ResourceStone] = 30
		if elev > 0.5 {
			res[ResourceGems] = 8
		}
	}

	return res
}

// markCoastalHexes converts low plains and forest next to ocean into coast.
func markCoastalHexes(m *Map) {
	var toMark []HexCoord

	for _, coord := range m.Coords() {
		hex := m.Get(coord)
		// Only low-lying plains/forest become coast; highlands stay cliffs.
		if hex.Terrain != TerrainPlains && hex.Terrain != TerrainForest || hex.Elevation >= 0.5 {
			continue
		}
		if touchesOcean(m, coord) {
			toMark = append(toMark, coord)
		}
	}

	for _, coord := range toMark {
		hex := m.Get(coord)
		hex.Terrain = TerrainCoast
		hex.Resources = makeResources(TerrainCoast, hex.Elevation, hex.Rainfall)
		// Wet coast keeps some of its farmland.
		if hex.Rainfall > 0.4 {
			hex.Resources[ResourceGrain] = 20
		}
	}
}

func touchesOcean(m *Map, coord HexCoord) bool {
	for _, nc := range coord.Neighbors() {
		if nh := m.Get(nc); nh != nil && nh.Terrain == TerrainOcean {
			return true
		}
	}
	return false
}

// placeRivers traces paths from high elevation to the sea, marking hexes as river.
func placeRivers(m *Map, seed int64) {
	rng := rand.New(rand.NewSource(seed + 100))

	// Find highland hexes as river sources.
	var sources []HexCoord
	for _, coord := range m.Coords() {
		hex := m.Get(coord)
		if hex.Elevation > 0.65 && hex.Terrain != TerrainOcean {
			sources = append(sources, coord)
		}
	}

	// Shuffle and pick a handful — not every peak needs a river.
	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if n := riverCount(len(sources)); len(sources) > n {
		sources = sources[:n]
	}

	for _, start := range sources {
		traceRiver(m, start)
	}
}

// riverCount is one river per eight sources, between two and ten.
func riverCount(sources int) int {
	return min(max(sources/8, 2), 10)
}

// traceRiver follows the steepest descent from a source hex until reaching
// ocean or running out of downhill path.
func traceRiver(m *Map, start HexCoord) {
	const maxSteps = 50

	current := start
	visited := make(map[HexCoord]bool)

	for step := 0; step < maxSteps; step++ {
		visited[current] = true
		hex := m.Get(current)
		if hex == nil || hex.Terrain == TerrainOcean {
			break // Reached the sea
		}

		// Mark as river (unless it's a mountain peak or coast).
		if hex.Terrain != TerrainMountain && hex.Terrain != TerrainCoast {
			hex.Terrain = TerrainRiver
			hex.Resources[ResourceFish] = 50
			hex.Resources[ResourceGrain] += 20 // Irrigation bonus
		}

		next, ok := lowestNeighbor(m, current, hex.Elevation, visited)
		if !ok {
			break // No downhill path — river ends (lake would form in reality)
		}
		current = next
	}
}

// lowestNeighbor returns the unvisited neighbour lowest below elev.
func lowestNeighbor(m *Map, c HexCoord, elev float64, visited map[HexCoord]bool) (HexCoord, bool) {
	var best HexCoord
	found := false
	for _, nc := range c.Neighbors() {
		if visited[nc] {
			continue
		}
		if nh := m.Get(nc); nh != nil && nh.Elevation < elev {
			best, elev, found = nc, nh.Elevation, true
		}
	}
	return best, found
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
