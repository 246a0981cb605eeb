package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS outcomes (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	ticket_id         TEXT NOT NULL,
	ticket_text       TEXT NOT NULL,
	category          TEXT NOT NULL,
	response          TEXT NOT NULL,
	confidence        REAL NOT NULL,
	escalated         INTEGER NOT NULL,
	escalation_reason TEXT NOT NULL DEFAULT '',
	violation_count   INTEGER NOT NULL DEFAULT 0,
	duration_ns       INTEGER NOT NULL DEFAULT 0,
	processed_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_outcomes_processed_at ON outcomes(processed_at);
`

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite store at path, creating the parent
// directory and applying the schema.
func Open(path string) (*SqlStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SqlStore{db: db}, nil
}

func (s *SqlStore) SaveOutcome(ctx context.Context, o Outcome) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (ticket_id, ticket_text, category, response, confidence,
			escalated, escalation_reason, violation_count, duration_ns, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.TicketID, o.TicketText, o.Category, o.Response, o.Confidence,
		boolToInt(o.Escalated), o.EscalationReason, o.ViolationCount, o.DurationNS,
		o.ProcessedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save outcome: %w", err)
	}
	return nil
}

func (s *SqlStore) ListOutcomes(ctx context.Context, limit int) ([]Outcome, error) {
	q := `SELECT id, ticket_id, ticket_text, category, response, confidence,
		escalated, escalation_reason, violation_count, duration_ns, processed_at
		FROM outcomes ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var o Outcome
		var escalated int
		var processedAt string
		if err := rows.Scan(&o.ID, &o.TicketID, &o.TicketText, &o.Category, &o.Response,
			&o.Confidence, &escalated, &o.EscalationReason, &o.ViolationCount,
			&o.DurationNS, &processedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Escalated = escalated != 0
		if t, err := time.Parse(time.RFC3339Nano, processedAt); err == nil {
			o.ProcessedAt = t
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *SqlStore) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
