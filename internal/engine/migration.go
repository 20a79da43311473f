// Migration — people flee hunger and war, and resettle where stores are full.
package engine

import (
	"fmt"

	"github.com/talgya/worldpressure/internal/director"
	"github.com/talgya/worldpressure/internal/social"
)

// Displacement rates per sim-day.
const (
	famineThreshold = 0.5   // shortage above which people start leaving
	famineFlight    = 0.01  // share of population leaving per unit of shortage
	frontFlight     = 0.005 // share leaving per active front
	resettleShare   = 10    // one tenth of the displaced pool finds a home each day
)

// processMigration displaces residents from starving or fought-over
// settlements into the refugee pool, resettles part of the pool and reports
// refugee_count.
func (s *Simulation) processMigration(tick uint64) {
	for _, st := range s.Settlements {
		rate := 0.0
		if st.Shortage > famineThreshold {
			rate += famineFlight * st.Shortage
		}
		rate += frontFlight * float64(s.fronts[st.ID])
		s.Refugees += st.Flee(rate)
	}

	if s.Refugees > 0 {
		if host := s.refugeHost(); host != nil {
			moving := max(1, s.Refugees/resettleShare)
			host.Absorb(moving)
			s.Refugees -= moving
			if moving >= 100 {
				s.addEvent(tick, "migration", fmt.Sprintf("%d refugees settle in %s", moving, host.Name))
			}
		}
	}

	s.Director.RegisterSignal(director.RefugeeCount.String(), float64(s.Refugees))
}

// refugeHost picks the settlement with the fullest stores that is not a front.
// Ties go to the earlier settlement. Returns nil when every settlement is a front.
func (s *Simulation) refugeHost() *social.Settlement {
	var best *social.Settlement
	bestRatio := -1.0
	for _, st := range s.Settlements {
		if s.fronts[st.ID] > 0 {
			continue
		}
		if r := st.ReserveRatio(); r > bestRatio {
			best, bestRatio = st, r
		}
	}
	return best
}
