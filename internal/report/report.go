// Package report persists migration runs to a SQLite database so a finished
// migration can be audited after the fact without re-reading the JSONL log.
package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/audit"
)

// RunSummary is one migration run's final counters.
type RunSummary struct {
	ID               int64
	StartedAt        time.Time
	FinishedAt       time.Time
	Input            string
	Output           string
	Notes            int
	Skipped          int
	LinksResolved    int
	LinksUnresolved  int
	AttachmentCopies int
	Ghosts           int
	Deleted          int
	EmbedsRemoved    int
}

// DB is the report database handle.
type DB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    input TEXT NOT NULL,
    output TEXT NOT NULL,
    notes INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    links_resolved INTEGER NOT NULL,
    links_unresolved INTEGER NOT NULL,
    attachments_copied INTEGER NOT NULL,
    ghosts INTEGER NOT NULL,
    deleted INTEGER NOT NULL,
    embeds_removed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES runs(id),
    ts TEXT NOT NULL,
    event TEXT NOT NULL,
    note_id TEXT,
    note TEXT,
    bundle TEXT,
    target TEXT,
    reason TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, event);
`

// Open opens or creates the report database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open report database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize report schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// RecordRun stores one run and its log entries, returning the run id.
func (d *DB) RecordRun(run RunSummary, entries []audit.Entry) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin report transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
        (started_at, finished_at, input, output, notes, skipped,
         links_resolved, links_unresolved, attachments_copied, ghosts,
         deleted, embeds_removed)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Input, run.Output, run.Notes, run.Skipped,
		run.LinksResolved, run.LinksUnresolved, run.AttachmentCopies,
		run.Ghosts, run.Deleted, run.EmbedsRemoved)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO events
        (run_id, ts, event, note_id, note, bundle, target, reason)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(runID, e.Timestamp.UTC().Format(time.RFC3339),
			e.Event, e.NoteID, e.Note, e.Bundle, e.Target, e.Reason); err != nil {
			return 0, fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit report: %w", err)
	}
	return runID, nil
}

// LastRun returns the most recent run, or sql.ErrNoRows when none exist.
func (d *DB) LastRun() (RunSummary, error) {
	row := d.db.QueryRow(`SELECT id, started_at, finished_at, input, output,
        notes, skipped, links_resolved, links_unresolved, attachments_copied,
        ghosts, deleted, embeds_removed
        FROM runs ORDER BY id DESC LIMIT 1`)

	var run RunSummary
	var started, finished string
	if err := row.Scan(&run.ID, &started, &finished, &run.Input, &run.Output,
		&run.Notes, &run.Skipped, &run.LinksResolved, &run.LinksUnresolved,
		&run.AttachmentCopies, &run.Ghosts, &run.Deleted, &run.EmbedsRemoved); err != nil {
		return RunSummary{}, err
	}
	run.StartedAt, _ = time.Parse(time.RFC3339, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return run, nil
}

// Events returns a run's log entries, optionally filtered by event name.
func (d *DB) Events(runID int64, event string) ([]audit.Entry, error) {
	query := `SELECT ts, event, note_id, note, bundle, target, reason
        FROM events WHERE run_id = ?`
	args := []any{runID}
	if event != "" {
		query += ` AND event = ?`
		args = append(args, event)
	}
	query += ` ORDER BY id`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var ts string
		var noteID, note, bundlePath, target, reason sql.NullString
		if err := rows.Scan(&ts, &e.Event, &noteID, &note, &bundlePath, &target, &reason); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		e.NoteID, e.Note, e.Bundle = noteID.String, note.String, bundlePath.String
		e.Target, e.Reason = target.String, reason.String
		out = append(out, e)
	}
	return out, rows.Err()
}
