// Package vas maps a valence/arousal/sociality reading to an emotion label.
//
// Valence and sociality run from -1 to +1, arousal from 0 to 1. All
// comparisons are strict, so readings sitting exactly on a threshold fall
// through to the next rule.
package vas

import "github.com/talgya/worldpressure/internal/rules"

// Label is a discrete emotion label.
type Label string

const (
	LoveEcstasy         Label = "Love/Ecstasy"
	ExcitementElation   Label = "Excitement/Elation"
	AngerRage           Label = "Anger/Rage"
	FearTerror          Label = "Fear/Terror"
	DistressAnxiety     Label = "Distress/Anxiety"
	SerenityContentment Label = "Serenity/Contentment"
	SadnessGrief        Label = "Sadness/Grief"
	DisgustAversion     Label = "Disgust/Aversion"
	CalmnessApathy      Label = "Calmness/Apathy"
	Relaxation          Label = "Relaxation"
	BoredomDullness     Label = "Boredom/Dullness"
	InterestAmbivalence Label = "Interest/Ambivalence"
)

// Reading is one VAS sample.
type Reading struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Sociality float64 `json:"sociality"`
}

func highArousal(r Reading) bool    { return r.Arousal > 0.6 }
func strongPositive(r Reading) bool { return r.Valence > 0.7 }
func strongNegative(r Reading) bool { return r.Valence < -0.7 }
func lowArousal(r Reading) bool     { return r.Arousal < 0.3 }

var labelRules = rules.NewTable(InterestAmbivalence,
	// Strong emotions under high arousal.
	rules.Rule[Reading, Label]{Name: "love", Then: LoveEcstasy,
		When: func(r Reading) bool { return highArousal(r) && strongPositive(r) && r.Sociality > 0.5 }},
	rules.Rule[Reading, Label]{Name: "excitement", Then: ExcitementElation,
		When: func(r Reading) bool { return highArousal(r) && strongPositive(r) }},
	rules.Rule[Reading, Label]{Name: "anger", Then: AngerRage,
		When: func(r Reading) bool { return highArousal(r) && strongNegative(r) && r.Sociality > 0.5 }},
	rules.Rule[Reading, Label]{Name: "fear", Then: FearTerror,
		When: func(r Reading) bool { return highArousal(r) && strongNegative(r) && r.Sociality < -0.5 }},
	rules.Rule[Reading, Label]{Name: "distress", Then: DistressAnxiety,
		When: func(r Reading) bool { return highArousal(r) && strongNegative(r) }},

	// Strong valence at moderate or low arousal.
	rules.Rule[Reading, Label]{Name: "serenity", Then: SerenityContentment, When: strongPositive},
	rules.Rule[Reading, Label]{Name: "sadness", Then: SadnessGrief, When: strongNegative},

	// Moderate valence.
	rules.Rule[Reading, Label]{Name: "disgust", Then: DisgustAversion,
		When: func(r Reading) bool { return r.Valence < -0.4 && r.Arousal >= 0.5 && r.Sociality < -0.7 }},
	rules.Rule[Reading, Label]{Name: "calm", Then: CalmnessApathy,
		When: func(r Reading) bool { return lowArousal(r) && r.Valence >= -0.2 && r.Valence <= 0.2 }},
	rules.Rule[Reading, Label]{Name: "relaxation", Then: Relaxation,
		When: func(r Reading) bool { return lowArousal(r) && r.Valence > 0.2 }},
	rules.Rule[Reading, Label]{Name: "boredom", Then: BoredomDullness, When: lowArousal},
)

// Classify returns the label for a reading.
func Classify(r Reading) Label {
	return labelRules.Evaluate(r)
}

// ClassifyVAS is Classify for three loose values.
func ClassifyVAS(valence, arousal, sociality float64) Label {
	return Classify(Reading{Valence: valence, Arousal: arousal, Sociality: sociality})
}

// Explain returns the label and the name of the rule that produced it
// ("default" when no rule matched).
func Explain(r Reading) (Label, string) {
	l, name, ok := labelRules.Match(r)
	if !ok {
		return l, "default"
	}
	return l, name
}
