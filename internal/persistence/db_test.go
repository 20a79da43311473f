package persistence

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/talgya/worldpressure/internal/agents"
	"github.com/talgya/worldpressure/internal/director"
	"github.com/talgya/worldpressure/internal/disposition"
	"github.com/talgya/worldpressure/internal/engine"
	"github.com/talgya/worldpressure/internal/social"
	"github.com/talgya/worldpressure/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "world.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAgentsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	home := uint64(3)
	disp := disposition.FromMap(map[string]float64{"risk": -0.25, "patience": 1})
	in := []*agents.Agent{
		{ID: 7, Name: "Astrid Voss", Age: 31, Sex: agents.SexFemale, Position: world.HexCoord{Q: 2, R: -1},
			HomeSettID: &home, Disposition: disp, BornTick: 12, Alive: true},
		{ID: 8, Name: "Bram Dunmore", Age: 60, Sex: agents.SexMale, Disposition: disposition.New()},
	}
	if err := db.SaveAgents(in); err != nil {
		t.Fatalf("SaveAgents: %v", err)
	}

	out, err := db.LoadAgents()
	if err != nil {
		t.Fatalf("LoadAgents: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d agents, want 2", len(out))
	}
	a := out[0]
	if a.ID != 7 || a.Name != "Astrid Voss" || a.Position != in[0].Position || !a.Alive || a.BornTick != 12 {
		t.Errorf("agent fields lost: %+v", a)
	}
	if a.HomeSettID == nil || *a.HomeSettID != 3 {
		t.Errorf("home settlement = %v, want 3", a.HomeSettID)
	}
	if a.Disposition != disp {
		t.Errorf("disposition = %v, want %v", a.Disposition.ToMap(), disp.ToMap())
	}
	if out[1].HomeSettID != nil || out[1].Alive {
		t.Errorf("second agent = %+v, want no home and dead", out[1])
	}

	// Saving again replaces rather than appends.
	if err := db.SaveAgents(in[:1]); err != nil {
		t.Fatalf("SaveAgents: %v", err)
	}
	if out, _ := db.LoadAgents(); len(out) != 1 {
		t.Errorf("after replace loaded %d agents, want 1", len(out))
	}
}

func TestSettlementsAndFactionsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	setts := []*social.Settlement{{
		ID: 1, Name: "Ashby", Position: world.HexCoord{Q: -3, R: 1}, Size: world.SizeTown,
		Population: 640, YieldPerHead: 0.012, FoodStock: 88.5, Shortage: 0.25, Unrest: 0.4, Departing: 0.75,
	}}
	factions := social.SeedFactions()
	social.SeedRelations(factions)
	social.SeedInfluence(factions, setts, 42)
	social.ShiftRelation(factions[0], factions[1], -15)

	if err := db.SaveSettlements(setts); err != nil {
		t.Fatalf("SaveSettlements: %v", err)
	}
	if err := db.SaveFactions(factions); err != nil {
		t.Fatalf("SaveFactions: %v", err)
	}
	if !db.HasWorldState() {
		t.Fatal("HasWorldState = false after saving settlements")
	}

	gotSetts, err := db.LoadSettlements()
	if err != nil {
		t.Fatalf("LoadSettlements: %v", err)
	}
	if len(gotSetts) != 1 || *gotSetts[0] != *setts[0] {
		t.Errorf("settlements = %+v, want %+v", gotSetts, setts)
	}

	gotFactions, err := db.LoadFactions()
	if err != nil {
		t.Fatalf("LoadFactions: %v", err)
	}
	if len(gotFactions) != len(factions) {
		t.Fatalf("loaded %d factions, want %d", len(gotFactions), len(factions))
	}
	crown := gotFactions[0]
	if crown.Name != "The Crown" || crown.Relations[2] != -35 || crown.Baseline[2] != -20 {
		t.Errorf("crown relations = %v baseline = %v", crown.Relations, crown.Baseline)
	}
	if crown.Influence[1] != factions[0].Influence[1] {
		t.Errorf("crown influence = %v, want %v", crown.Influence[1], factions[0].Influence[1])
	}
}

func TestHasWorldStateEmpty(t *testing.T) {
	if openTestDB(t).HasWorldState() {
		t.Error("fresh database reports saved state")
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetMeta("seed"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("missing key error = %v, want sql.ErrNoRows", err)
	}
	if tick, err := db.LastTick(); err != nil || tick != 0 {
		t.Fatalf("LastTick on empty db = %d, %v", tick, err)
	}

	db.SaveMeta("seed", "42")
	db.SaveMeta("seed", "43")
	if v, err := db.GetMeta("seed"); err != nil || v != "43" {
		t.Errorf("GetMeta = %q, %v, want 43", v, err)
	}
}

func TestWorldShape(t *testing.T) {
	db := openTestDB(t)

	configured := world.DefaultGenConfig()
	configured.Seed = 7
	configured.Radius = 30

	got, err := db.WorldShape(configured)
	if err != nil {
		t.Fatalf("WorldShape on empty db: %v", err)
	}
	if got != configured {
		t.Errorf("WorldShape on empty db = %+v, want configured %+v", got, configured)
	}

	saved := world.SmallTestConfig()
	if err := db.SaveWorldShape(saved); err != nil {
		t.Fatalf("SaveWorldShape: %v", err)
	}
	got, err = db.WorldShape(configured)
	if err != nil {
		t.Fatalf("WorldShape: %v", err)
	}
	if got.Seed != saved.Seed || got.Radius != saved.Radius {
		t.Errorf("seed, radius = %d, %d, want saved %d, %d", got.Seed, got.Radius, saved.Seed, saved.Radius)
	}
	if got.SeaLevel != configured.SeaLevel || got.MountainLvl != configured.MountainLvl {
		t.Errorf("thresholds changed: %+v", got)
	}

	db.SaveMeta("radius", "wide")
	if _, err := db.WorldShape(configured); err == nil {
		t.Error("WorldShape accepted a malformed radius")
	}
}

func TestSaveWorldStateAppendsOnlyNewEvents(t *testing.T) {
	db := openTestDB(t)

	sim := engine.NewSimulation(world.NewMap(1), nil,
		[]*social.Settlement{{ID: 1, Name: "Ashby", Population: 100}},
		social.SeedFactions(), director.NewController())
	sim.LastTick = 5
	sim.Refugees = 12
	sim.Events = []engine.Event{
		{Tick: 2, Description: "riots break out in Ashby", Category: "crime"},
		{Tick: 5, Description: "the world turns from stable to tension", Category: "director"},
	}
	if err := db.SaveWorldState(sim); err != nil {
		t.Fatalf("SaveWorldState: %v", err)
	}

	sim.LastTick = 9
	sim.Events = append(sim.Events, engine.Event{Tick: 8, Description: "Red and Blue go to war", Category: "conflict"})
	if err := db.SaveWorldState(sim); err != nil {
		t.Fatalf("SaveWorldState: %v", err)
	}

	events, err := db.RecentEvents(10)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("stored %d events, want 3: %+v", len(events), events)
	}
	if events[0].Tick != 8 || events[2].Tick != 2 {
		t.Errorf("events not newest first: %+v", events)
	}

	if tick, _ := db.LastTick(); tick != 9 {
		t.Errorf("LastTick = %d, want 9", tick)
	}
	if n, _ := db.Refugees(); n != 12 {
		t.Errorf("Refugees = %d, want 12", n)
	}
}

func TestDirectorJournal(t *testing.T) {
	db := openTestDB(t)

	c := director.NewController()
	c.RegisterSignal("econ_food_shortage", 120)
	c.Update(1)
	if err := db.RecordDirector("run-a", 1, c.DebugState()); err != nil {
		t.Fatalf("RecordDirector: %v", err)
	}
	c.RegisterSignal("econ_surplus", 50)
	c.Update(1)
	if err := db.RecordDirector("run-a", 2, c.DebugState()); err != nil {
		t.Fatalf("RecordDirector: %v", err)
	}
	if err := db.RecordDirector("run-b", 1, director.Snapshot{Phase: director.PhaseStable}); err != nil {
		t.Fatalf("RecordDirector: %v", err)
	}

	history, err := db.PhaseHistory("run-a", 0)
	if err != nil {
		t.Fatalf("PhaseHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}
	if history[0].Phase != "collapse" || history[1].Phase != "prosperity" {
		t.Errorf("phases = %s, %s, want collapse then prosperity", history[0].Phase, history[1].Phase)
	}
	if history[0].GlobalStress != 72 {
		t.Errorf("stress = %v, want 72", history[0].GlobalStress)
	}
	if history[1].Snapshot() != c.DebugState() {
		t.Errorf("snapshot = %+v, want %+v", history[1].Snapshot(), c.DebugState())
	}

	latest, err := db.PhaseHistory("run-a", 1)
	if err != nil {
		t.Fatalf("PhaseHistory: %v", err)
	}
	if len(latest) != 1 || latest[0].Tick != 2 {
		t.Errorf("latest = %+v, want tick 2 only", latest)
	}
}
