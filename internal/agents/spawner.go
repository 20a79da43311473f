// Agent spawning — creates representative agents for settlements and biases
// their dispositions with the geographic pressure of their home hex.
package agents

import (
	"math/rand"

	"github.com/talgya/worldpressure/internal/disposition"
	"github.com/talgya/worldpressure/internal/world"
)

// temperamentSpread is the +/- jitter around the default axis value a
// newborn disposition starts from.
const temperamentSpread = 0.1

// Spawner creates agents for the simulation.
type Spawner struct {
	rng    *rand.Rand
	nextID AgentID
}

// NewSpawner creates an agent spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed + 300)),
		nextID: 1,
	}
}

// SpawnPopulation creates count agents for a settlement. Each starts from a
// slightly individual temperament, then takes on the bias of the place.
func (s *Spawner) SpawnPopulation(count uint32, position world.HexCoord, settlementID uint64, pressure disposition.GeoPressure) []*Agent {
	out := make([]*Agent, 0, count)
	for i := uint32(0); i < count; i++ {
		a := s.spawnOne(position, settlementID)
		a.Disposition.ApplyGeoBias(pressure)
		out = append(out, a)
	}
	return out
}

func (s *Spawner) spawnOne(position world.HexCoord, settlementID uint64) *Agent {
	id := s.nextID
	s.nextID++

	sex := SexMale
	if s.rng.Float32() < 0.5 {
		sex = SexFemale
	}

	sid := settlementID
	return &Agent{
		ID:          id,
		Name:        s.generateName(sex),
		Age:         s.weightedAge(),
		Sex:         sex,
		Position:    position,
		HomeSettID:  &sid,
		Disposition: s.temperament(),
		Alive:       true,
	}
}

// temperament draws explicit starting axis values around the default.
func (s *Spawner) temperament() disposition.Vector {
	values := make(map[string]float64, len(disposition.Axes))
	for _, a := range disposition.Axes {
		values[a.String()] = disposition.DefaultValue + (s.rng.Float64()*2-1)*temperamentSpread
	}
	return disposition.FromMap(values)
}

func (s *Spawner) weightedAge() uint16 {
	// Bell curve centered around 30, range 5–70.
	age := 30.0 + s.rng.NormFloat64()*12.0
	return uint16(max(5, min(70, age)))
}

func (s *Spawner) generateName(sex Sex) string {
	firsts := maleNames
	if sex == SexFemale {
		firsts = femaleNames
	}
	return firsts[s.rng.Intn(len(firsts))] + " " + lastNames[s.rng.Intn(len(lastNames))]
}

// RepresentativeCount is how many modeled agents stand for a population.
// One agent per fifty residents, at least one, at most forty.
func RepresentativeCount(population uint32) uint32 {
	return max(1, min(40, population/50))
}

// Name pools for procedural generation.
var maleNames = []string{
	"Aldric", "Bram", "Cedric", "Doran", "Erik", "Finn", "Gareth",
	"Halvard", "Ivan", "Jasper", "Kael", "Leif", "Magnus", "Nils",
	"Oswin", "Per", "Quinn", "Rowan", "Stellan", "Theron", "Ulric",
}

var femaleNames = []string{
	"Astrid", "Brenna", "Calla", "Daria", "Elara", "Freya", "Greta",
	"Helene", "Iris", "Juno", "Kira", "Lena", "Mira", "Nessa",
	"Olwen", "Petra", "Runa", "Senna", "Thea", "Una", "Vera",
}

var lastNames = []string{
	"Voss", "Thornwood", "Blackwood", "Ashford", "Ironhand", "Dunmore",
	"Greenvale", "Stormcrow", "Frostborn", "Hearthstone", "Millward",
	"Copperfield", "Ravenmoor", "Silverdale", "Wolfsbane", "Stoneheart",
	"Deepwell", "Brightwater", "Redforge", "Windholm", "Marshwood",
}
