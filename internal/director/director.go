// Package director aggregates subsystem signals into world-level indices and
// a discrete world phase used to pace emergent narrative.
//
// A Controller is owned by one simulation and driven by one orchestrator:
// subsystems call RegisterSignal any number of times during a tick, then the
// orchestrator calls Update exactly once. Indices are recomputed from that
// tick's signals alone; nothing carries over between ticks except the last
// computed indices and phase. The Controller does no locking.
package director

import "fmt"

// Indices are the five world-level pressure indices. They are unbounded.
type Indices struct {
	GlobalStress      float64 `json:"global_stress"`      // shortages, crime, fighting
	GlobalProsperity  float64 `json:"global_prosperity"`  // surplus, damped by stress
	ConflictIndex     float64 `json:"conflict_index"`     // wars and political hostility
	MigrationPressure float64 `json:"migration_pressure"` // famine, fighting, displacement
	FactionPressure   float64 `json:"faction_pressure"`   // political instability
}

// State is the director's full state: last indices, phase, and the pending bag.
type State struct {
	Indices
	Phase   Phase
	Signals Signals
}

// Controller runs the register/update cycle over a State.
type Controller struct {
	state State
}

// NewController returns a controller in the stable phase with zero indices.
func NewController() *Controller {
	return &Controller{state: State{Phase: PhaseStable}}
}

// RegisterSignal stores value under key for the current tick.
// Registering the same key again before Update overwrites the earlier value.
func (c *Controller) RegisterSignal(key string, value float64) {
	c.state.Signals.Set(key, value)
}

// Update folds the pending signals into fresh indices, reclassifies the
// phase, and clears the bag.
//
// dt is accepted for the tick contract but does not enter the computation;
// indices are not smoothed or decayed over time.
func (c *Controller) Update(dt float64) {
	s := &c.state
	s.Indices = ComputeIndices(&s.Signals)
	s.Phase = ClassifyPhase(s.Indices)
	s.Signals.Reset()
}

// ComputeIndices derives the world indices from a signal bag.
// Unregistered recognised signals count as 0; unrecognised keys are ignored.
func ComputeIndices(sig *Signals) Indices {
	shortage := sig.Value(FoodShortage)
	surplus := sig.Value(Surplus)
	crime := sig.Value(CrimeRate)
	warfare := sig.Value(ActiveConflicts)
	refugees := sig.Value(RefugeeCount)
	tension := sig.Value(FactionTension)

	var ix Indices
	ix.GlobalStress = shortage*0.6 + crime*0.3 + warfare*1.2
	ix.GlobalProsperity = surplus*1.0 - ix.GlobalStress*0.4
	ix.ConflictIndex = warfare*1.5 + tension*0.5
	ix.MigrationPressure = shortage*0.7 + warfare*1.0 + refugees*0.5
	ix.FactionPressure = tension + warfare*0.2
	return ix
}

// Phase returns the phase computed by the last Update.
func (c *Controller) Phase() Phase {
	return c.state.Phase
}

// Indices returns the indices computed by the last Update.
func (c *Controller) Indices() Indices {
	return c.state.Indices
}

// PendingSignals returns how many distinct keys are waiting for the next Update.
func (c *Controller) PendingSignals() int {
	return c.state.Signals.Len()
}

// Signals exposes the pending bag for inspection. Callers must not mutate it.
func (c *Controller) Signals() *Signals {
	return &c.state.Signals
}

// Snapshot is a read-only copy of the indices and phase.
type Snapshot struct {
	Indices
	Phase Phase `json:"phase"`
}

// DebugState returns a snapshot for logging and plotting. It does not mutate state.
func (c *Controller) DebugState() Snapshot {
	return Snapshot{Indices: c.state.Indices, Phase: c.state.Phase}
}

// Map returns the snapshot in keyed form.
func (s Snapshot) Map() map[string]any {
	return map[string]any{
		"stress":             s.GlobalStress,
		"prosperity":         s.GlobalProsperity,
		"conflict":           s.ConflictIndex,
		"migration_pressure": s.MigrationPressure,
		"faction_pressure":   s.FactionPressure,
		"phase":              string(s.Phase),
	}
}

// LogArgs returns the snapshot as slog key/value pairs.
func (s Snapshot) LogArgs() []any {
	return []any{
		"phase", string(s.Phase),
		"stress", fmt.Sprintf("%.2f", s.GlobalStress),
		"prosperity", fmt.Sprintf("%.2f", s.GlobalProsperity),
		"conflict", fmt.Sprintf("%.2f", s.ConflictIndex),
		"migration", fmt.Sprintf("%.2f", s.MigrationPressure),
		"faction", fmt.Sprintf("%.2f", s.FactionPressure),
	}
}
