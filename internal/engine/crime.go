// Crime and disorder — hunger and war breed unrest.
package engine

import (
	"fmt"

	"github.com/talgya/worldpressure/internal/director"
)

// Unrest dynamics per sim-day.
const (
	unrestFromHunger = 0.08 // per unit of shortage
	unrestFromFront  = 0.03 // per active front
	unrestDecay      = 0.02 // settles by this much each day
	riotThreshold    = 0.8  // crossing upward is logged
)

// processCrime moves each settlement's unrest and reports crime_rate as
// mean unrest in percent.
func (s *Simulation) processCrime(tick uint64) {
	total := 0.0
	for _, st := range s.Settlements {
		before := st.Unrest
		delta := unrestFromHunger*st.Shortage + unrestFromFront*float64(s.fronts[st.ID]) - unrestDecay
		st.AdjustUnrest(delta)

		if before < riotThreshold && st.Unrest >= riotThreshold {
			s.addEvent(tick, "crime", fmt.Sprintf("riots break out in %s", st.Name))
		}
		total += st.Unrest
	}

	rate := 0.0
	if len(s.Settlements) > 0 {
		rate = 100 * total / float64(len(s.Settlements))
	}
	s.Director.RegisterSignal(director.CrimeRate.String(), rate)
}
