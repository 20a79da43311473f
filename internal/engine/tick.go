// Package engine provides the tick-based simulation loop and the subsystem
// passes that feed the world director.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// One tick is one sim-day.
const (
	TicksPerSimWeek   = 7
	TicksPerSimSeason = 90
	TicksPerSimYear   = 4 * TicksPerSimSeason
)

// Engine drives the simulation forward.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Interval time.Duration // Wall-clock pause between ticks (0 = as fast as possible)
	MaxTicks uint64        // Stop after this many ticks in one Run (0 = unbounded)

	// Callbacks for each tick layer — populated during setup.
	OnTick   func(tick uint64) // Every tick (sim-day)
	OnWeek   func(tick uint64) // Every 7 ticks
	OnSeason func(tick uint64) // Every 90 ticks
}

// NewEngine creates a simulation engine with default settings.
func NewEngine() *Engine {
	return &Engine{Interval: 0}
}

// Run advances the simulation until ctx is cancelled or MaxTicks is reached.
// Returns the number of ticks executed.
func (e *Engine) Run(ctx context.Context) uint64 {
	slog.Info("simulation engine started", "tick", e.Tick, "max_ticks", e.MaxTicks, "interval", e.Interval)

	var ran uint64
	for e.MaxTicks == 0 || ran < e.MaxTicks {
		if ctx.Err() != nil {
			break
		}
		e.Step()
		ran++

		if e.Interval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(e.Interval):
			}
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick, "ran", ran)
	return ran
}

// Step advances the simulation by one tick.
func (e *Engine) Step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}
	if e.Tick%TicksPerSimWeek == 0 && e.OnWeek != nil {
		e.OnWeek(e.Tick)
	}
	if e.Tick%TicksPerSimSeason == 0 && e.OnSeason != nil {
		e.OnSeason(e.Tick)
	}
}

// SimTime returns a human-readable simulation date for a tick.
func SimTime(tick uint64) string {
	day := tick%TicksPerSimSeason + 1
	year := tick/TicksPerSimYear + 1
	return fmt.Sprintf("%s Day %d, Year %d", SeasonName(Season(tick)), day, year)
}
