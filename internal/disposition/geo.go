package disposition

// GeoPressure is the environmental reading produced by world generation.
// Fields are nominally in [-1, 1] but are neither validated nor clamped.
type GeoPressure struct {
	ResourceStability   float64 `json:"resource_stability"`
	EnvironmentalThreat float64 `json:"environmental_threat"`
	MobilityConstraint  float64 `json:"mobility_constraint"`
	PopulationDensity   float64 `json:"population_density"`
	IsolationLevel      float64 `json:"isolation_level"`
}

type geoTerm struct {
	axis   Axis
	weight float64
}

// geoModel is the fixed linear map from pressure fields to axis adjustments,
// listed in application order.
var geoModel = [5]struct {
	field func(GeoPressure) float64
	terms [3]geoTerm
}{
	{
		// Scarcity breeds impulsivity and caution; abundance allows planning and trust.
		field: func(p GeoPressure) float64 { return p.ResourceStability },
		terms: [3]geoTerm{{Patience, 0.5}, {Social, 0.3}, {Risk, -0.3}},
	},
	{
		// Danger calls for hierarchy and defensive readiness.
		field: func(p GeoPressure) float64 { return p.EnvironmentalThreat },
		terms: [3]geoTerm{{Aggression, 0.4}, {Authority, 0.4}, {Novelty, -0.2}},
	},
	{
		// Hard terrain makes routine-bound, careful, slow-moving cultures.
		field: func(p GeoPressure) float64 { return p.MobilityConstraint },
		terms: [3]geoTerm{{Novelty, -0.2}, {Risk, -0.3}, {Patience, 0.2}},
	},
	{
		// Crowding raises friction and the need for laws.
		field: func(p GeoPressure) float64 { return p.PopulationDensity },
		terms: [3]geoTerm{{Authority, 0.4}, {Aggression, 0.3}, {Novelty, 0.2}},
	},
	{
		// Isolated groups lean on each other and see less of the world.
		field: func(p GeoPressure) float64 { return p.IsolationLevel },
		terms: [3]geoTerm{{Social, 0.4}, {Novelty, -0.4}, {Authority, 0.3}},
	},
}

// ApplyGeoBias adds the geo model's adjustments for p and clamps every axis.
// Repeated calls accumulate; there is no normalisation between calls.
func (v *Vector) ApplyGeoBias(p GeoPressure) {
	for _, g := range geoModel {
		signal := g.field(p)
		for _, t := range g.terms {
			v.add(t.axis, signal*t.weight)
		}
	}
	v.clampAll()
}
