package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists session history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS package_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			session_id    TEXT NOT NULL,
			package_id    TEXT,
			total_credits INTEGER,
			bank_signature INTEGER,
			bank_select    INTEGER,
			bank_classic   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_package_session ON package_events(session_id)`,

		`CREATE TABLE IF NOT EXISTS allocation_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			session_id   TEXT NOT NULL,
			course_id    INTEGER,
			category     TEXT,
			action       TEXT,
			rounds_after INTEGER,
			remaining    INTEGER,
			reason       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_allocation_session ON allocation_events(session_id)`,

		`CREATE TABLE IF NOT EXISTS top_up_events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			session_id     TEXT NOT NULL,
			credits        INTEGER,
			total_after    INTEGER,
			bank_signature INTEGER,
			bank_select    INTEGER,
			bank_classic   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_top_up_session ON top_up_events(session_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordPackage(evt *PackageEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO package_events
		(timestamp, session_id, package_id, total_credits, bank_signature, bank_select, bank_classic)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.PackageID, evt.TotalCredits,
		evt.Banks.Signature, evt.Banks.Select, evt.Banks.Classic,
	)
	return err
}

func (r *SQLiteRecorder) RecordAllocation(evt *AllocationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO allocation_events
		(timestamp, session_id, course_id, category, action, rounds_after, remaining, reason)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.CourseID, string(evt.Category),
		evt.Action, evt.RoundsAfter, evt.Remaining, evt.Reason,
	)
	return err
}

func (r *SQLiteRecorder) RecordTopUp(evt *TopUpEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO top_up_events
		(timestamp, session_id, credits, total_after, bank_signature, bank_select, bank_classic)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Credits, evt.TotalAfter,
		evt.Banks.Signature, evt.Banks.Select, evt.Banks.Classic,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
