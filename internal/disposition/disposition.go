// Package disposition provides the per-agent decision-bias vector.
//
// Each axis is a bias in [-1.0, +1.0] that tilts external action scoring
// (score += axis * action_property); it never forces an action.
package disposition

import (
	"encoding/json"
	"fmt"
)

// Axis identifies one of the six decision-bias axes.
type Axis uint8

const (
	Risk       Axis = iota // Danger tolerance
	Aggression             // Force threshold
	Social                 // Self vs group orientation
	Authority              // Rule and hierarchy acceptance
	Patience               // Time horizon
	Novelty                // Openness to change

	numAxes = iota
)

// Bounds and the default axis value.
// The default of 0.5 does not match the "0.0 = no bias" reading of the axes;
// it is kept as-is pending a product decision.
const (
	MinValue     = -1.0
	MaxValue     = 1.0
	DefaultValue = 0.5
)

// Axes lists every axis in canonical order.
var Axes = [numAxes]Axis{Risk, Aggression, Social, Authority, Patience, Novelty}

var axisNames = [numAxes]string{"risk", "aggression", "social", "authority", "patience", "novelty"}

// String returns the axis' wire name.
func (a Axis) String() string {
	if int(a) < numAxes {
		return axisNames[a]
	}
	return fmt.Sprintf("axis(%d)", uint8(a))
}

// ParseAxis maps a wire name to its Axis.
func ParseAxis(name string) (Axis, bool) {
	for i, n := range axisNames {
		if n == name {
			return Axis(i), true
		}
	}
	return 0, false
}

// Vector holds one agent's six axis values.
// The zero Vector is all zeros; use New or FromMap for the usual defaults.
type Vector struct {
	values [numAxes]float64
}

// New returns a vector with every axis at DefaultValue.
func New() Vector {
	var v Vector
	for i := range v.values {
		v.values[i] = DefaultValue
	}
	return v
}

// FromMap builds a vector from explicit axis values keyed by wire name.
// Axes absent from m start at DefaultValue, unknown keys are ignored, and
// supplied values are clamped into [MinValue, MaxValue].
func FromMap(m map[string]float64) Vector {
	v := New()
	for name, val := range m {
		if a, ok := ParseAxis(name); ok {
			v.values[a] = clamp(val)
		}
	}
	return v
}

// Value returns the value of a known axis.
func (v *Vector) Value(a Axis) float64 {
	if int(a) >= numAxes {
		return DefaultValue
	}
	return v.values[a]
}

// Get returns the value of the named axis, or DefaultValue if the name is unknown.
func (v *Vector) Get(name string) float64 {
	a, ok := ParseAxis(name)
	if !ok {
		return DefaultValue
	}
	return v.values[a]
}

// ToMap returns a copy of the axis values keyed by wire name.
func (v *Vector) ToMap() map[string]float64 {
	m := make(map[string]float64, numAxes)
	for i, name := range axisNames {
		m[name] = v.values[i]
	}
	return m
}

// MarshalJSON encodes the vector as an object keyed by axis name.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToMap())
}

// UnmarshalJSON decodes the object form, applying the FromMap rules.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("disposition: %w", err)
	}
	*v = FromMap(m)
	return nil
}

func (v *Vector) add(a Axis, delta float64) {
	v.values[a] += delta
}

func (v *Vector) clampAll() {
	for i := range v.values {
		v.values[i] = clamp(v.values[i])
	}
}

func clamp(x float64) float64 {
	if x < MinValue {
		return MinValue
	}
	if x > MaxValue {
		return MaxValue
	}
	return x
}
