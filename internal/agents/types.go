// Package agents provides the agent data model and the spawner that seeds
// each agent's disposition from the geography it grows up in.
package agents

import (
	"github.com/talgya/worldpressure/internal/disposition"
	"github.com/talgya/worldpressure/internal/world"
)

// AgentID is a unique identifier for an agent.
type AgentID uint64

// Sex represents biological sex for demographic simulation.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// Agent is a representative person in the simulation.
type Agent struct {
	ID   AgentID `json:"id"`
	Name string  `json:"name"`
	Age  uint16  `json:"age"` // Sim-years
	Sex  Sex     `json:"sex"`

	// Location
	Position   world.HexCoord `json:"position"`
	HomeSettID *uint64        `json:"home_settlement_id,omitempty"`

	// Decision biases read by action scoring.
	Disposition disposition.Vector `json:"disposition"`

	// Metadata
	BornTick uint64 `json:"born_tick"`
	Alive    bool   `json:"alive"`
}

// MeanDisposition averages each axis over living agents. With no living
// agents every axis reports the default value.
func MeanDisposition(ag []*Agent) map[string]float64 {
	var sums [len(disposition.Axes)]float64
	n := 0
	for _, a := range ag {
		if !a.Alive {
			continue
		}
		for i, axis := range disposition.Axes {
			sums[i] += a.Disposition.Value(axis)
		}
		n++
	}

	out := make(map[string]float64, len(disposition.Axes))
	for i, axis := range disposition.Axes {
		if n == 0 {
			out[axis.String()] = disposition.DefaultValue
			continue
		}
		out[axis.String()] = sums[i] / float64(n)
	}
	return out
}
