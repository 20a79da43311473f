// Factions — political, economic, and martial organizations.
package social

import (
	"math/rand"
	"sort"
)

// FactionID is a unique identifier for a faction.
type FactionID uint64

// Relation bounds and thresholds (-100 hostile … +100 allied).
const (
	RelationMin        = -100.0
	RelationMax        = 100.0
	WarThreshold       = -70.0 // at or below: open war
	ContestedInfluence = 20.0  // both sides need this much sway for a settlement to be a front
)

// FactionKind categorizes the nature of a faction.
type FactionKind uint8

const (
	FactionPolitical FactionKind = iota
	FactionEconomic
	FactionMilitary
	FactionReligious
	FactionCriminal
)

// Faction represents an organization with influence and relations.
type Faction struct {
	ID   FactionID   `json:"id"`
	Name string      `json:"name"`
	Kind FactionKind `json:"kind"`

	// Influence per settlement (settlement ID → 0–100).
	Influence map[SettlementID]float64 `json:"influence"`

	// Relations with other factions (faction ID → -100 to +100).
	Relations map[FactionID]float64 `json:"relations"`

	// Baseline relations drift back toward when pressure eases.
	Baseline map[FactionID]float64 `json:"baseline"`

	MilitaryPreference float64 `json:"military_preference"` // -1 pacifist, +1 militarist
}

// SeedFactions creates the five initial factions.
func SeedFactions() []*Faction {
	mk := func(id FactionID, name string, kind FactionKind, military float64) *Faction {
		return &Faction{
			ID:                 id,
			Name:               name,
			Kind:               kind,
			Influence:          make(map[SettlementID]float64),
			Relations:          make(map[FactionID]float64),
			Baseline:           make(map[FactionID]float64),
			MilitaryPreference: military,
		}
	}
	return []*Faction{
		mk(1, "The Crown", FactionPolitical, 0.5),
		mk(2, "Merchant's Compact", FactionEconomic, -0.3),
		mk(3, "Iron Brotherhood", FactionMilitary, 0.9),
		mk(4, "Verdant Circle", FactionReligious, -0.5),
		mk(5, "Ashen Path", FactionCriminal, 0.2),
	}
}

// SeedRelations sets the starting diplomatic map between the seed factions.
func SeedRelations(factions []*Faction) {
	index := make(map[FactionID]*Faction, len(factions))
	for _, f := range factions {
		index[f.ID] = f
	}
	set := func(a, b FactionID, v float64) {
		fa, fb := index[a], index[b]
		if fa == nil || fb == nil {
			return
		}
		fa.Relations[b], fb.Relations[a] = v, v
		fa.Baseline[b], fb.Baseline[a] = v, v
	}
	set(1, 2, -20) // Crown ↔ Merchants: tension
	set(1, 3, 30)  // Crown ↔ Iron Brotherhood: allied
	set(1, 4, 10)  // Crown ↔ Verdant Circle: neutral-positive
	set(1, 5, -50) // Crown ↔ Ashen Path: hostile
	set(2, 3, -10)
	set(2, 4, 20)
	set(2, 5, -30)
	set(3, 4, -20)
	set(3, 5, -40)
	set(4, 5, -60)
}

// SeedInfluence gives every faction a deterministic foothold in each settlement.
func SeedInfluence(factions []*Faction, settlements []*Settlement, seed int64) {
	rng := rand.New(rand.NewSource(seed + 500))
	for _, s := range settlements {
		for _, f := range factions {
			f.Influence[s.ID] = rng.Float64() * 60
		}
	}
}

// Pair is an unordered faction pair with its current relation.
type Pair struct {
	A, B     *Faction
	Relation float64
}

// AtWar reports whether the pair is in open conflict.
func (p Pair) AtWar() bool {
	return p.Relation <= WarThreshold
}

// Pairs lists every faction pair once, ordered by IDs.
func Pairs(factions []*Faction) []Pair {
	sorted := make([]*Faction, len(factions))
	copy(sorted, factions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var out []Pair
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			out = append(out, Pair{A: a, B: b, Relation: a.Relations[b.ID]})
		}
	}
	return out
}

// ShiftRelation moves the relation between a and b by delta on both sides.
func ShiftRelation(a, b *Faction, delta float64) {
	v := max(RelationMin, min(RelationMax, a.Relations[b.ID]+delta))
	a.Relations[b.ID] = v
	b.Relations[a.ID] = v
}

// Contests reports whether both factions of the pair hold real sway in settlement id.
func (p Pair) Contests(id SettlementID) bool {
	return p.A.Influence[id] >= ContestedInfluence && p.B.Influence[id] >= ContestedInfluence
}
