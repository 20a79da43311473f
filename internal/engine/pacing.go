// Pacing — how the world phase feeds back into the next tick's systems.
package engine

import "github.com/talgya/worldpressure/internal/director"

// Pacing holds the multipliers a phase applies to the following tick.
type Pacing struct {
	Yield     float64 // food output
	Reconcile float64 // speed at which faction relations return to baseline
}

// PacingFor returns the multipliers for a world phase.
// Unknown phases pace like stable.
func PacingFor(phase director.Phase) Pacing {
	switch phase {
	case director.PhaseCollapse:
		return Pacing{Yield: 0.7, Reconcile: 0.5}
	case director.PhaseTension:
		return Pacing{Yield: 0.9, Reconcile: 0.8}
	case director.PhaseProsperity:
		return Pacing{Yield: 1.05, Reconcile: 1.2}
	case director.PhaseRecovery:
		return Pacing{Yield: 1.1, Reconcile: 1.5}
	default:
		return Pacing{Yield: 1.0, Reconcile: 1.0}
	}
}
