// Faction dynamics — relations sour under unrest, mend in calm, and break
// into war fronts over contested settlements.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/worldpressure/internal/director"
	"github.com/talgya/worldpressure/internal/social"
)

// Relation drift per sim-day.
const (
	reconcileRate   = 0.02 // share of the gap to baseline closed each day
	hostilityRate   = 3.0  // relation lost per unit of mean unrest
	militancyWeight = 1.0  // extra hostility for militarist pairs
)

// processFactions drifts every pair's relation, rebuilds the war fronts and
// reports faction_tension and active_conflicts.
func (s *Simulation) processFactions(tick uint64, phase director.Phase) {
	pace := PacingFor(phase)
	unrest := s.meanUnrest()

	pairs := social.Pairs(s.Factions)
	fronts := make(map[uint64]int)
	conflicts, tension := 0, 0.0

	for _, p := range pairs {
		wasAtWar := p.AtWar()

		militancy := 1 + militancyWeight*max(0, (p.A.MilitaryPreference+p.B.MilitaryPreference)/2)
		mend := (p.A.Baseline[p.B.ID] - p.Relation) * reconcileRate * pace.Reconcile
		sour := unrest * hostilityRate * militancy
		social.ShiftRelation(p.A, p.B, mend-sour)

		p.Relation = p.A.Relations[p.B.ID]
		tension += max(0, -p.Relation)

		switch {
		case p.AtWar() && !wasAtWar:
			s.addEvent(tick, "conflict", fmt.Sprintf("%s and %s go to war", p.A.Name, p.B.Name))
			slog.Info("war declared", "tick", tick, "a", p.A.Name, "b", p.B.Name, "relation", fmt.Sprintf("%.1f", p.Relation))
		case !p.AtWar() && wasAtWar:
			s.addEvent(tick, "conflict", fmt.Sprintf("%s and %s make peace", p.A.Name, p.B.Name))
		}

		if !p.AtWar() {
			continue
		}
		for _, st := range s.Settlements {
			if p.Contests(st.ID) {
				fronts[st.ID]++
				conflicts++
			}
		}
	}
	s.fronts = fronts

	if len(pairs) > 0 {
		tension /= float64(len(pairs))
	}
	s.Director.RegisterSignal(director.FactionTension.String(), tension)
	s.Director.RegisterSignal(director.ActiveConflicts.String(), float64(conflicts))
}

func (s *Simulation) meanUnrest() float64 {
	if len(s.Settlements) == 0 {
		return 0
	}
	total := 0.0
	for _, st := range s.Settlements {
		total += st.Unrest
	}
	return total / float64(len(s.Settlements))
}
