// Package store persists simulation runs and per-game outcomes in SQLite.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/jason-s-yu/hanabi/service/internal/sim"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("run not found")

// Run is one batch of games and its headline figures.
type Run struct {
	ID        string    `db:"id"`
	StartedAt time.Time `db:"-"`
	Started   int64     `db:"started_at"`
	Bot       string    `db:"bot"`
	Players   int       `db:"players"`
	Suits     int       `db:"suits"`
	Seed      int64     `db:"seed"`
	Finesse   bool      `db:"finesse"`
	Games     int       `db:"games"`
	Errored   int       `db:"errored"`
	Mean      float64   `db:"mean"`
	Median    float64   `db:"median"`
}

// OutcomeRow is the stored form of a sim.Outcome.
type OutcomeRow struct {
	RunID      string `db:"run_id"`
	Game       int    `db:"game"`
	Seed       int64  `db:"seed"`
	Points     int    `db:"points"`
	Reason     string `db:"reason"`
	Turns      int    `db:"turns"`
	DurationMS int64  `db:"duration_ms"`
	Error      string `db:"error"`
}

// NewRunID returns a fresh, time-ordered run id.
func NewRunID() string { return ulid.Make().String() }

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
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
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		bot TEXT NOT NULL,
		players INTEGER NOT NULL,
		suits INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		finesse INTEGER NOT NULL,
		games INTEGER NOT NULL,
		errored INTEGER NOT NULL,
		mean REAL NOT NULL,
		median REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS outcomes (
		run_id TEXT NOT NULL REFERENCES runs(id),
		game INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		points INTEGER NOT NULL,
		reason TEXT NOT NULL,
		turns INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, game)
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_points ON outcomes(run_id, points);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun inserts or replaces a run.
func (db *DB) SaveRun(r Run) error {
	r.Started = r.StartedAt.UnixMilli()
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO runs
		(id, started_at, bot, players, suits, seed, finesse, games, errored, mean, median)
		VALUES (:id, :started_at, :bot, :players, :suits, :seed, :finesse, :games, :errored, :mean, :median)`, r)
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}

// SaveOutcomes writes every outcome of a run in one transaction.
func (db *DB) SaveOutcomes(runID string, outs []sim.Outcome) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed(`INSERT OR REPLACE INTO outcomes
		(run_id, game, seed, points, reason, turns, duration_ms, error)
		VALUES (:run_id, :game, :seed, :points, :reason, :turns, :duration_ms, :error)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range outs {
		if _, err := stmt.Exec(rowOf(runID, o)); err != nil {
			return fmt.Errorf("save outcome %d: %w", o.Game, err)
		}
	}
	return tx.Commit()
}

func rowOf(runID string, o sim.Outcome) OutcomeRow {
	row := OutcomeRow{
		RunID:      runID,
		Game:       o.Game,
		Seed:       int64(o.Seed),
		Points:     o.Points,
		Reason:     o.Reason,
		Turns:      o.Turns,
		DurationMS: o.Duration.Milliseconds(),
	}
	if o.Err != nil {
		row.Error = o.Err.Error()
	}
	return row
}

// LoadRun returns one run.
func (db *DB) LoadRun(id string) (Run, error) {
	var runs []Run
	if err := db.conn.Select(&runs, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return Run{}, fmt.Errorf("load run %s: %w", id, err)
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r := runs[0]
	r.StartedAt = time.UnixMilli(r.Started)
	return r, nil
}

// ListRuns returns every run, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	var runs []Run
	if err := db.conn.Select(&runs, `SELECT * FROM runs ORDER BY started_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	for i := range runs {
		runs[i].StartedAt = time.UnixMilli(runs[i].Started)
	}
	return runs, nil
}

// LoadOutcomes returns a run's outcomes in game order.
func (db *DB) LoadOutcomes(runID string) ([]OutcomeRow, error) {
	var rows []OutcomeRow
	if err := db.conn.Select(&rows, `SELECT * FROM outcomes WHERE run_id = ? ORDER BY game`, runID); err != nil {
		return nil, fmt.Errorf("load outcomes %s: %w", runID, err)
	}
	return rows, nil
}
