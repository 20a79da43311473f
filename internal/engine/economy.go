// Economy — daily harvest, consumption and the food signals.
package engine

import (
	"github.com/talgya/worldpressure/internal/director"
)

// frontHarvestLoss is the share of output a settlement keeps while fought over.
const frontHarvestLoss = 0.6

// processEconomy harvests and feeds every settlement, then reports
// econ_food_shortage and econ_surplus as percentages averaged over settlements.
func (s *Simulation) processEconomy(tick uint64, phase director.Phase) {
	mod := SeasonalYield(Season(tick)) * PacingFor(phase).Yield

	shortage, reserve := 0.0, 0.0
	for _, st := range s.Settlements {
		produced := st.BaseProduction() * mod
		if s.fronts[st.ID] > 0 {
			produced *= frontHarvestLoss
		}
		st.Harvest(produced)
		shortage += st.Shortage
		reserve += st.ReserveRatio()
	}

	if n := float64(len(s.Settlements)); n > 0 {
		shortage /= n
		reserve /= n
	}
	s.Director.RegisterSignal(director.FoodShortage.String(), 100*shortage)
	s.Director.RegisterSignal(director.Surplus.String(), 100*reserve)
}
