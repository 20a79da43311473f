// Package persistence provides SQLite-based world state storage and the
// director journal.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/worldpressure/internal/agents"
	"github.com/talgya/worldpressure/internal/engine"
	"github.com/talgya/worldpressure/internal/social"
	"github.com/talgya/worldpressure/internal/world"
)

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agents (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		sex INTEGER NOT NULL,
		pos_q INTEGER NOT NULL,
		pos_r INTEGER NOT NULL,
		home_settlement_id INTEGER,
		alive INTEGER NOT NULL,
		born_tick INTEGER NOT NULL,
		disposition_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settlements (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		pos_q INTEGER NOT NULL,
		pos_r INTEGER NOT NULL,
		size INTEGER NOT NULL,
		population INTEGER NOT NULL,
		yield_per_head REAL NOT NULL,
		food_stock REAL NOT NULL,
		shortage REAL NOT NULL,
		unrest REAL NOT NULL,
		departing REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS factions (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		military_preference REAL NOT NULL,
		influence_json TEXT NOT NULL,
		relations_json TEXT NOT NULL,
		baseline_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS director_journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		global_stress REAL NOT NULL,
		global_prosperity REAL NOT NULL,
		conflict_index REAL NOT NULL,
		migration_pressure REAL NOT NULL,
		faction_pressure REAL NOT NULL,
		phase TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_agents_settlement ON agents(home_settlement_id);
	CREATE INDEX IF NOT EXISTS idx_journal_run ON director_journal(run_id, tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveAgents writes all agents to the database (full replace).
func (db *DB) SaveAgents(agentList []*agents.Agent) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM agents"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO agents
		(id, name, age, sex, pos_q, pos_r, home_settlement_id, alive, born_tick, disposition_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range agentList {
		dispJSON, err := json.Marshal(a.Disposition)
		if err != nil {
			return fmt.Errorf("encode agent %d disposition: %w", a.ID, err)
		}

		var home sql.NullInt64
		if a.HomeSettID != nil {
			home = sql.NullInt64{Int64: int64(*a.HomeSettID), Valid: true}
		}

		_, err = stmt.Exec(
			a.ID, a.Name, a.Age, a.Sex,
			a.Position.Q, a.Position.R, home,
			boolInt(a.Alive), a.BornTick, string(dispJSON),
		)
		if err != nil {
			return fmt.Errorf("insert agent %d: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

type agentRow struct {
	ID          uint64        `db:"id"`
	Name        string        `db:"name"`
	Age         uint16        `db:"age"`
	Sex         uint8         `db:"sex"`
	PosQ        int           `db:"pos_q"`
	PosR        int           `db:"pos_r"`
	HomeSettID  sql.NullInt64 `db:"home_settlement_id"`
	Alive       int           `db:"alive"`
	BornTick    uint64        `db:"born_tick"`
	Disposition string        `db:"disposition_json"`
}

// LoadAgents reads every agent, ordered by ID.
func (db *DB) LoadAgents() ([]*agents.Agent, error) {
	var rows []agentRow
	if err := db.conn.Select(&rows, "SELECT * FROM agents ORDER BY id"); err != nil {
		return nil, fmt.Errorf("select agents: %w", err)
	}

	out := make([]*agents.Agent, 0, len(rows))
	for _, r := range rows {
		a := &agents.Agent{
			ID:       agents.AgentID(r.ID),
			Name:     r.Name,
			Age:      r.Age,
			Sex:      agents.Sex(r.Sex),
			Position: world.HexCoord{Q: r.PosQ, R: r.PosR},
			Alive:    r.Alive != 0,
			BornTick: r.BornTick,
		}
		if r.HomeSettID.Valid {
			sid := uint64(r.HomeSettID.Int64)
			a.HomeSettID = &sid
		}
		if err := json.Unmarshal([]byte(r.Disposition), &a.Disposition); err != nil {
			return nil, fmt.Errorf("decode agent %d disposition: %w", r.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// SaveSettlements writes all settlements to the database.
func (db *DB) SaveSettlements(settlements []*social.Settlement) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM settlements"); err != nil {
		return err
	}

	for _, s := range settlements {
		_, err := tx.Exec(`INSERT INTO settlements
			(id, name, pos_q, pos_r, size, population, yield_per_head, food_stock, shortage, unrest, departing)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.Name, s.Position.Q, s.Position.R, s.Size, s.Population,
			s.YieldPerHead, s.FoodStock, s.Shortage, s.Unrest, s.Departing,
		)
		if err != nil {
			return fmt.Errorf("insert settlement %d: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

type settlementRow struct {
	ID           uint64  `db:"id"`
	Name         string  `db:"name"`
	PosQ         int     `db:"pos_q"`
	PosR         int     `db:"pos_r"`
	Size         uint8   `db:"size"`
	Population   uint32  `db:"population"`
	YieldPerHead float64 `db:"yield_per_head"`
	FoodStock    float64 `db:"food_stock"`
	Shortage     float64 `db:"shortage"`
	Unrest       float64 `db:"unrest"`
	Departing    float64 `db:"departing"`
}

// LoadSettlements reads every settlement, ordered by ID.
func (db *DB) LoadSettlements() ([]*social.Settlement, error) {
	var rows []settlementRow
	if err := db.conn.Select(&rows, "SELECT * FROM settlements ORDER BY id"); err != nil {
		return nil, fmt.Errorf("select settlements: %w", err)
	}

	out := make([]*social.Settlement, 0, len(rows))
	for _, r := range rows {
		out = append(out, &social.Settlement{
			ID:           r.ID,
			Name:         r.Name,
			Position:     world.HexCoord{Q: r.PosQ, R: r.PosR},
			Size:         world.SettlementSize(r.Size),
			Population:   r.Population,
			YieldPerHead: r.YieldPerHead,
			FoodStock:    r.FoodStock,
			Shortage:     r.Shortage,
			Unrest:       r.Unrest,
			Departing:    r.Departing,
		})
	}
	return out, nil
}

// SaveFactions writes all factions with their influence and relations.
func (db *DB) SaveFactions(factions []*social.Faction) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM factions"); err != nil {
		return err
	}

	for _, f := range factions {
		influence, _ := json.Marshal(f.Influence)
		relations, _ := json.Marshal(f.Relations)
		baseline, _ := json.Marshal(f.Baseline)

		_, err := tx.Exec(`INSERT INTO factions
			(id, name, kind, military_preference, influence_json, relations_json, baseline_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Kind, f.MilitaryPreference,
			string(influence), string(relations), string(baseline),
		)
		if err != nil {
			return fmt.Errorf("insert faction %d: %w", f.ID, err)
		}
	}

	return tx.Commit()
}

type factionRow struct {
	ID                 uint64  `db:"id"`
	Name               string  `db:"name"`
	Kind               uint8   `db:"kind"`
	MilitaryPreference float64 `db:"military_preference"`
	Influence          string  `db:"influence_json"`
	Relations          string  `db:"relations_json"`
	Baseline           string  `db:"baseline_json"`
}

// LoadFactions reads every faction, ordered by ID.
func (db *DB) LoadFactions() ([]*social.Faction, error) {
	var rows []factionRow
	if err := db.conn.Select(&rows, "SELECT * FROM factions ORDER BY id"); err != nil {
		return nil, fmt.Errorf("select factions: %w", err)
	}

	out := make([]*social.Faction, 0, len(rows))
	for _, r := range rows {
		f := &social.Faction{
			ID:                 social.FactionID(r.ID),
			Name:               r.Name,
			Kind:               social.FactionKind(r.Kind),
			MilitaryPreference: r.MilitaryPreference,
			Influence:          make(map[social.SettlementID]float64),
			Relations:          make(map[social.FactionID]float64),
			Baseline:           make(map[social.FactionID]float64),
		}
		if err := json.Unmarshal([]byte(r.Influence), &f.Influence); err != nil {
			return nil, fmt.Errorf("decode faction %d influence: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.Relations), &f.Relations); err != nil {
			return nil, fmt.Errorf("decode faction %d relations: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.Baseline), &f.Baseline); err != nil {
			return nil, fmt.Errorf("decode faction %d baseline: %w", r.ID, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// SaveEvents appends events to the database.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
			e.Tick, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. A missing key returns sql.ErrNoRows.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// HasWorldState reports whether a previous run left settlements behind.
func (db *DB) HasWorldState() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM settlements"); err != nil {
		return false
	}
	return n > 0
}

// SaveWorldState performs a full save of all world state. Only events newer
// than the last saved tick are appended.
func (db *DB) SaveWorldState(sim *engine.Simulation) error {
	slog.Info("saving world state", "agents", len(sim.Agents), "settlements", len(sim.Settlements))

	since, err := db.metaUint("events_through")
	if err != nil {
		return fmt.Errorf("read meta: %w", err)
	}
	var fresh []engine.Event
	for _, e := range sim.Events {
		if e.Tick > since {
			fresh = append(fresh, e)
		}
	}

	if err := db.SaveAgents(sim.Agents); err != nil {
		return fmt.Errorf("save agents: %w", err)
	}
	if err := db.SaveSettlements(sim.Settlements); err != nil {
		return fmt.Errorf("save settlements: %w", err)
	}
	if err := db.SaveFactions(sim.Factions); err != nil {
		return fmt.Errorf("save factions: %w", err)
	}
	if err := db.SaveEvents(fresh); err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	tick := strconv.FormatUint(sim.CurrentTick(), 10)
	for k, v := range map[string]string{
		"last_tick":      tick,
		"events_through": tick,
		"refugees":       strconv.FormatUint(uint64(sim.Refugees), 10),
	} {
		if err := db.SaveMeta(k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}

	slog.Info("world state saved", "tick", sim.CurrentTick(), "events", len(fresh))
	return nil
}

// metaUint reads an unsigned metadata value, treating a missing key as 0.
func (db *DB) metaUint(key string) (uint64, error) {
	v, err := db.GetMeta(key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(v, 10, 64)
}

// LastTick returns the tick of the last full save, or 0.
func (db *DB) LastTick() (uint64, error) {
	return db.metaUint("last_tick")
}

// Refugees returns the saved refugee pool, or 0.
func (db *DB) Refugees() (uint32, error) {
	n, err := db.metaUint("refugees")
	return uint32(n), err
}

// SaveWorldShape records the seed and radius the saved world was generated with.
func (db *DB) SaveWorldShape(gen world.GenConfig) error {
	if err := db.SaveMeta("seed", strconv.FormatInt(gen.Seed, 10)); err != nil {
		return fmt.Errorf("save seed: %w", err)
	}
	if err := db.SaveMeta("radius", strconv.Itoa(gen.Radius)); err != nil {
		return fmt.Errorf("save radius: %w", err)
	}
	return nil
}

// WorldShape returns gen with its seed and radius replaced by the saved
// ones, so a regenerated map matches the saved settlements. Keys that were
// never saved leave gen unchanged.
func (db *DB) WorldShape(gen world.GenConfig) (world.GenConfig, error) {
	if v, err := db.GetMeta("seed"); err == nil {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return gen, fmt.Errorf("parse saved seed: %w", err)
		}
		gen.Seed = seed
	} else if !errors.Is(err, sql.ErrNoRows) {
		return gen, fmt.Errorf("read seed: %w", err)
	}

	if v, err := db.GetMeta("radius"); err == nil {
		radius, err := strconv.Atoi(v)
		if err != nil {
			return gen, fmt.Errorf("parse saved radius: %w", err)
		}
		gen.Radius = radius
	} else if !errors.Is(err, sql.ErrNoRows) {
		return gen, fmt.Errorf("read radius: %w", err)
	}
	return gen, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
