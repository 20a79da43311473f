// Director journal — a per-run record of indices and phase over time.
package persistence

import (
	"fmt"
	"slices"

	"github.com/talgya/worldpressure/internal/director"
)

// JournalEntry is one recorded director snapshot.
type JournalEntry struct {
	RunID             string  `db:"run_id" json:"run_id"`
	Tick              uint64  `db:"tick" json:"tick"`
	GlobalStress      float64 `db:"global_stress" json:"global_stress"`
	GlobalProsperity  float64 `db:"global_prosperity" json:"global_prosperity"`
	ConflictIndex     float64 `db:"conflict_index" json:"conflict_index"`
	MigrationPressure float64 `db:"migration_pressure" json:"migration_pressure"`
	FactionPressure   float64 `db:"faction_pressure" json:"faction_pressure"`
	Phase             string  `db:"phase" json:"phase"`
}

// Snapshot converts the entry back to a director snapshot.
func (e JournalEntry) Snapshot() director.Snapshot {
	return director.Snapshot{
		Indices: director.Indices{
			GlobalStress:      e.GlobalStress,
			GlobalProsperity:  e.GlobalProsperity,
			ConflictIndex:     e.ConflictIndex,
			MigrationPressure: e.MigrationPressure,
			FactionPressure:   e.FactionPressure,
		},
		Phase: director.Phase(e.Phase),
	}
}

// RecordDirector appends a director snapshot for a run at a tick.
func (db *DB) RecordDirector(runID string, tick uint64, snap director.Snapshot) error {
	_, err := db.conn.NamedExec(`INSERT INTO director_journal
		(run_id, tick, global_stress, global_prosperity, conflict_index,
		 migration_pressure, faction_pressure, phase)
		VALUES (:run_id, :tick, :global_stress, :global_prosperity, :conflict_index,
		 :migration_pressure, :faction_pressure, :phase)`,
		JournalEntry{
			RunID:             runID,
			Tick:              tick,
			GlobalStress:      snap.GlobalStress,
			GlobalProsperity:  snap.GlobalProsperity,
			ConflictIndex:     snap.ConflictIndex,
			MigrationPressure: snap.MigrationPressure,
			FactionPressure:   snap.FactionPressure,
			Phase:             string(snap.Phase),
		},
	)
	if err != nil {
		return fmt.Errorf("record director at tick %d: %w", tick, err)
	}
	return nil
}

// PhaseHistory returns a run's journal in tick order. A limit of 0 or less
// returns every entry; otherwise only the latest limit entries.
func (db *DB) PhaseHistory(runID string, limit int) ([]JournalEntry, error) {
	var entries []JournalEntry
	query := `SELECT run_id, tick, global_stress, global_prosperity, conflict_index,
		migration_pressure, faction_pressure, phase
		FROM director_journal WHERE run_id = ? ORDER BY tick DESC, id DESC`
	args := []any{runID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	if err := db.conn.Select(&entries, query, args...); err != nil {
		return nil, fmt.Errorf("select journal: %w", err)
	}

	slices.Reverse(entries)
	return entries, nil
}
