package director

import "github.com/talgya/worldpressure/internal/rules"

// Phase is the macro story phase systems can branch on.
type Phase string

const (
	PhaseCollapse   Phase = "collapse"
	PhaseTension    Phase = "tension"
	PhaseProsperity Phase = "prosperity"
	PhaseRecovery   Phase = "recovery"
	PhaseStable     Phase = "stable"
)

// Phases lists every phase label.
var Phases = []Phase{PhaseCollapse, PhaseTension, PhaseProsperity, PhaseRecovery, PhaseStable}

// Valid reports whether p is one of the known labels.
func (p Phase) Valid() bool {
	for _, known := range Phases {
		if p == known {
			return true
		}
	}
	return false
}

// phaseRules are checked top to bottom; the first match decides the phase.
var phaseRules = rules.NewTable(PhaseStable,
	rules.Rule[Indices, Phase]{
		Name: "collapse",
		When: func(ix Indices) bool { return ix.ConflictIndex > 80 || ix.GlobalStress > 70 },
		Then: PhaseCollapse,
	},
	rules.Rule[Indices, Phase]{
		Name: "tension",
		When: func(ix Indices) bool { return ix.GlobalStress > 40 },
		Then: PhaseTension,
	},
	rules.Rule[Indices, Phase]{
		Name: "prosperity",
		When: func(ix Indices) bool { return ix.GlobalProsperity > 40 && ix.GlobalStress < 20 },
		Then: PhaseProsperity,
	},
	rules.Rule[Indices, Phase]{
		Name: "recovery",
		When: func(ix Indices) bool {
			return ix.GlobalProsperity < 10 && ix.GlobalStress < 20 && ix.ConflictIndex < 20
		},
		Then: PhaseRecovery,
	},
)

// ClassifyPhase maps indices to a phase. It depends only on its argument,
// so consecutive ticks may jump between any two phases.
func ClassifyPhase(ix Indices) Phase {
	return phaseRules.Evaluate(ix)
}
