// Command worldsim runs the world pressure simulation: geography biases
// agent dispositions, and the director turns world signals into a phase.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/worldpressure/internal/agents"
	"github.com/talgya/worldpressure/internal/config"
	"github.com/talgya/worldpressure/internal/director"
	"github.com/talgya/worldpressure/internal/engine"
	"github.com/talgya/worldpressure/internal/persistence"
	"github.com/talgya/worldpressure/internal/world"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "worldsim: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Log.Logger(os.Stdout))

	if err := run(cfg); err != nil {
		slog.Error("worldsim failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	runID := uuid.NewString()
	slog.Info("world pressure simulation", "run_id", runID, "seed", cfg.World.Seed, "radius", cfg.World.Radius)

	// ── Database ──────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.DB.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DB.Path)

	// ── World (map always regenerated — deterministic from seed) ──────
	gen := world.DefaultGenConfig()
	gen.Seed = cfg.World.Seed
	gen.Radius = cfg.World.Radius

	var sim *engine.Simulation
	if db.HasWorldState() {
		sim, err = restore(db, gen)
		if err != nil {
			return err
		}
	} else {
		slog.Info("no saved state found, generating new world...")
		if gen.Seed == 0 {
			gen.Seed = rand.Int63()
		}
		sim = engine.Genesis(gen, director.NewController())
		if err := db.SaveWorldShape(gen); err != nil {
			return err
		}
		if err := db.SaveWorldState(sim); err != nil {
			return fmt.Errorf("initial save: %w", err)
		}
	}
	logWorld(sim)

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Tick = sim.LastTick
	eng.MaxTicks = cfg.Sim.Ticks
	eng.Interval = cfg.Sim.Interval

	eng.OnTick = func(tick uint64) {
		sim.TickDay(tick)
		if cfg.Sim.Journal > 0 && tick%cfg.Sim.Journal == 0 {
			if err := db.RecordDirector(runID, tick, sim.Director.DebugState()); err != nil {
				slog.Error("journal write failed", "tick", tick, "error", err)
			}
		}
	}
	eng.OnWeek = func(tick uint64) {
		sim.TickWeek(tick)
		if err := db.SaveWorldState(sim); err != nil {
			slog.Error("weekly save failed", "error", err)
		}
	}
	eng.OnSeason = sim.TickSeason

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sim.LastTick > 0 {
		fmt.Printf("Resuming from tick %d (%s)\n", sim.LastTick, engine.SimTime(sim.LastTick))
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")
	eng.Run(ctx)

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveWorldState(sim); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return summarize(db, runID)
}

// restore rebuilds a simulation from the last save. The saved seed and
// radius win over the configured ones so the regenerated map matches the
// saved settlements.
func restore(db *persistence.DB, configured world.GenConfig) (*engine.Simulation, error) {
	slog.Info("found saved world state, loading...")

	gen, err := db.WorldShape(configured)
	if err != nil {
		return nil, err
	}
	if gen.Seed != configured.Seed || gen.Radius != configured.Radius {
		slog.Warn("configured world differs from saved world, using saved",
			"configured_seed", configured.Seed, "saved_seed", gen.Seed,
			"configured_radius", configured.Radius, "saved_radius", gen.Radius,
		)
	}
	m := world.Generate(gen)

	setts, err := db.LoadSettlements()
	if err != nil {
		return nil, fmt.Errorf("load settlements: %w", err)
	}
	allAgents, err := db.LoadAgents()
	if err != nil {
		return nil, fmt.Errorf("load agents: %w", err)
	}
	factions, err := db.LoadFactions()
	if err != nil {
		return nil, fmt.Errorf("load factions: %w", err)
	}
	engine.LinkSettlements(m, setts)

	sim := engine.NewSimulation(m, allAgents, setts, factions, director.NewController())
	if sim.LastTick, err = db.LastTick(); err != nil {
		return nil, fmt.Errorf("load last tick: %w", err)
	}
	if sim.Refugees, err = db.Refugees(); err != nil {
		return nil, fmt.Errorf("load refugees: %w", err)
	}
	return sim, nil
}

func logWorld(sim *engine.Simulation) {
	counts := sim.WorldMap.TerrainCounts()
	for _, t := range []world.Terrain{
		world.TerrainOcean, world.TerrainPlains, world.TerrainForest, world.TerrainMountain,
		world.TerrainCoast, world.TerrainRiver, world.TerrainDesert, world.TerrainSwamp, world.TerrainTundra,
	} {
		if c := counts[t]; c > 0 {
			slog.Debug("terrain", "type", world.TerrainName(t), "count", c)
		}
	}

	mean := agents.MeanDisposition(sim.Agents)
	slog.Info("world ready",
		"agents", len(sim.Agents),
		"settlements", len(sim.Settlements),
		"population", humanize.Comma(int64(sim.Stats.TotalPopulation)),
		"hexes", sim.WorldMap.HexCount(),
		"tick", sim.LastTick,
		"avg_risk", fmt.Sprintf("%.3f", mean["risk"]),
		"avg_patience", fmt.Sprintf("%.3f", mean["patience"]),
		"avg_social", fmt.Sprintf("%.3f", mean["social"]),
	)
}

// summarize prints how long the run spent in each phase.
func summarize(db *persistence.DB, runID string) error {
	history, err := db.PhaseHistory(runID, 0)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Printf("\nRun %s: no director journal entries.\n", runID)
		return nil
	}

	spent := make(map[director.Phase]int)
	for _, e := range history {
		spent[director.Phase(e.Phase)]++
	}
	fmt.Printf("\nRun %s: %d ticks journaled, ending in %s.\n", runID, len(history), history[len(history)-1].Phase)
	for _, p := range director.Phases {
		if n := spent[p]; n > 0 {
			fmt.Printf("  %-10s %s entries\n", p, humanize.Comma(int64(n)))
		}
	}

	events, err := db.RecentEvents(5)
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("  [%s] %s\n", engine.SimTime(e.Tick), e.Description)
	}
	return nil
}
