package engine

import (
	"testing"

	"github.com/talgya/worldpressure/internal/director"
	"github.com/talgya/worldpressure/internal/social"
	"github.com/talgya/worldpressure/internal/world"
)

// testSim builds a simulation over hand-made settlements and seed factions.
func testSim(setts ...*social.Settlement) *Simulation {
	factions := social.SeedFactions()
	social.SeedRelations(factions)
	return NewSimulation(world.NewMap(2), nil, setts, factions, director.NewController())
}

func starving(id uint64, name string) *social.Settlement {
	return &social.Settlement{ID: id, Name: name, Population: 1000}
}

func thriving(id uint64, name string) *social.Settlement {
	st := &social.Settlement{ID: id, Name: name, Population: 1000, YieldPerHead: 2 * social.FoodPerCapita}
	st.FoodStock = st.DailyConsumption() * social.ReserveDays
	return st
}

func TestSubsystemsRegisterEverySignal(t *testing.T) {
	s := testSim(starving(1, "Ashby"), thriving(2, "Brightwater"))

	s.processEconomy(1, director.PhaseStable)
	s.processCrime(1)
	s.processFactions(1, director.PhaseStable)
	s.processMigration(1)

	bag := s.Director.Signals()
	for _, k := range director.SignalKeys {
		if _, ok := bag.Lookup(k.String()); !ok {
			t.Errorf("signal %s not registered", k)
		}
	}
	if got := bag.Value(director.FoodShortage); got != 50 {
		t.Errorf("food shortage = %v, want 50 (one of two settlements fully short)", got)
	}
}

func TestTickDayDrainsSignals(t *testing.T) {
	s := testSim(thriving(1, "Ashby"))
	s.TickDay(1)

	if n := s.Director.PendingSignals(); n != 0 {
		t.Fatalf("pending signals after tick = %d, want 0", n)
	}
	if s.LastTick != 1 {
		t.Errorf("LastTick = %d, want 1", s.LastTick)
	}
}

func TestPlentyBringsProsperity(t *testing.T) {
	s := testSim(thriving(1, "Ashby"), thriving(2, "Brightwater"))
	s.TickDay(1)

	if got := s.Director.Phase(); got != director.PhaseProsperity {
		t.Fatalf("phase = %s, want prosperity (indices %+v)", got, s.Director.Indices())
	}
	if len(s.Events) != 1 || s.Events[0].Category != "director" {
		t.Fatalf("events = %+v, want one director event", s.Events)
	}
}

func TestFamineEscalatesToCollapse(t *testing.T) {
	s := testSim(starving(1, "Ashby"), starving(2, "Brightwater"))

	s.TickDay(1)
	if got := s.Director.Phase(); got != director.PhaseTension {
		t.Fatalf("day 1 phase = %s, want tension (indices %+v)", got, s.Director.Indices())
	}

	for tick := uint64(2); tick <= 10; tick++ {
		s.TickDay(tick)
	}
	if got := s.Director.Phase(); got != director.PhaseCollapse {
		t.Fatalf("day 10 phase = %s, want collapse (indices %+v)", got, s.Director.Indices())
	}

	var changes []string
	for _, e := range s.Events {
		if e.Category == "director" {
			changes = append(changes, e.Description)
		}
	}
	if len(changes) != 2 {
		t.Errorf("director events = %q, want stable→tension and tension→collapse", changes)
	}
	if s.Stats.AvgUnrest <= 0.3 {
		t.Errorf("avg unrest = %v, want hunger to have raised it", s.Stats.AvgUnrest)
	}
	if s.Stats.Refugees == 0 && s.Stats.TotalPopulation == 2000 {
		t.Error("famine displaced nobody")
	}
}

func TestStarvingVillageLosesResidents(t *testing.T) {
	village := &social.Settlement{ID: 1, Name: "Ashby", Population: 99}
	city := thriving(2, "Brightwater")
	s := testSim(village, city)

	for tick := uint64(1); tick <= 60; tick++ {
		s.TickDay(tick)
	}

	if village.Population >= 99 {
		t.Fatalf("village population = %d, want residents to have fled", village.Population)
	}
	if city.Population <= 1000 {
		t.Errorf("city population = %d, want refugees resettled there", city.Population)
	}
	if total := village.Population + city.Population + s.Refugees; total != 1099 {
		t.Errorf("people total = %d, want 1099 conserved", total)
	}
}

func TestWarOpensFronts(t *testing.T) {
	a := &social.Faction{ID: 1, Name: "Red", Influence: map[uint64]float64{1: 30, 2: 5},
		Relations: map[social.FactionID]float64{2: -90}, Baseline: map[social.FactionID]float64{2: -90}}
	b := &social.Faction{ID: 2, Name: "Blue", Influence: map[uint64]float64{1: 25, 2: 40},
		Relations: map[social.FactionID]float64{1: -90}, Baseline: map[social.FactionID]float64{1: -90}}

	s := NewSimulation(world.NewMap(1), nil,
		[]*social.Settlement{thriving(1, "Ashby"), thriving(2, "Brightwater")},
		[]*social.Faction{a, b}, director.NewController())

	s.processFactions(1, director.PhaseStable)

	if s.fronts[1] != 1 || s.fronts[2] != 0 {
		t.Fatalf("fronts = %v, want only settlement 1 contested", s.fronts)
	}
	bag := s.Director.Signals()
	if got := bag.Value(director.ActiveConflicts); got != 1 {
		t.Errorf("active conflicts = %v, want 1", got)
	}
	if got := bag.Value(director.FactionTension); got != 90 {
		t.Errorf("faction tension = %v, want 90", got)
	}

	// A front costs the harvest and drives people out.
	s.processEconomy(1, director.PhaseStable)
	s.processMigration(1)
	if s.Settlements[0].Population >= 1000 && s.Refugees == 0 {
		t.Error("front displaced nobody")
	}
	if s.Settlements[1].Population <= 1000 {
		t.Errorf("refugees did not reach the safe settlement, pop %d", s.Settlements[1].Population)
	}
}

func TestUnrestDeclaresWar(t *testing.T) {
	a := &social.Faction{ID: 1, Name: "Red", Influence: map[uint64]float64{},
		Relations: map[social.FactionID]float64{2: -69}, Baseline: map[social.FactionID]float64{2: -69}}
	b := &social.Faction{ID: 2, Name: "Blue", Influence: map[uint64]float64{},
		Relations: map[social.FactionID]float64{1: -69}, Baseline: map[social.FactionID]float64{1: -69}}
	st := thriving(1, "Ashby")
	st.Unrest = 1

	s := NewSimulation(world.NewMap(1), nil, []*social.Settlement{st}, []*social.Faction{a, b}, director.NewController())
	s.processFactions(5, director.PhaseStable)

	if a.Relations[2] != -72 || b.Relations[1] != -72 {
		t.Fatalf("relations = %v / %v, want -72", a.Relations[2], b.Relations[1])
	}
	if len(s.Events) != 1 || s.Events[0].Category != "conflict" || s.Events[0].Tick != 5 {
		t.Fatalf("events = %+v, want one conflict event", s.Events)
	}
}

func TestPacingFor(t *testing.T) {
	if p := PacingFor(director.PhaseCollapse); p.Yield >= 1 || p.Reconcile >= 1 {
		t.Errorf("collapse pacing = %+v, want both slowed", p)
	}
	if p := PacingFor(director.PhaseRecovery); p.Yield <= 1 || p.Reconcile <= 1 {
		t.Errorf("recovery pacing = %+v, want both quickened", p)
	}
	if p := PacingFor(director.Phase("unknown")); p != (Pacing{Yield: 1, Reconcile: 1}) {
		t.Errorf("unknown pacing = %+v, want neutral", p)
	}
}

func TestGenesisIsDeterministic(t *testing.T) {
	run := func() *Simulation {
		s := Genesis(world.SmallTestConfig(), director.NewController())
		for tick := uint64(1); tick <= 30; tick++ {
			s.TickDay(tick)
		}
		return s
	}
	a, b := run(), run()

	if len(a.Settlements) == 0 || len(a.Agents) == 0 {
		t.Fatalf("genesis produced %d settlements and %d agents", len(a.Settlements), len(a.Agents))
	}
	if a.Director.DebugState() != b.Director.DebugState() {
		t.Errorf("director diverged: %+v vs %+v", a.Director.DebugState(), b.Director.DebugState())
	}
	if a.Stats != b.Stats {
		t.Errorf("stats diverged: %+v vs %+v", a.Stats, b.Stats)
	}
	for i := range a.Agents {
		if a.Agents[i].Disposition != b.Agents[i].Disposition {
			t.Fatalf("agent %d disposition diverged", a.Agents[i].ID)
		}
	}
	for _, st := range a.Settlements {
		if hex := a.WorldMap.Get(st.Position); hex == nil || hex.SettlementID == nil || *hex.SettlementID != st.ID {
			t.Errorf("settlement %d not linked to its hex", st.ID)
		}
	}
}
