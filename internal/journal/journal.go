// Package journal persists history events to SQLite for diagnostics.
//
// Every push/undo/redo the engine performs lands here as a plain data row,
// so a session's edit history can be inspected after the fact. The journal
// is write-mostly and never replayed into a scene graph.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/stagehand/internal/engine"
)

//go:embed schema.sql
var schemaSQL string

// Journal is a sqlite-backed engine.Journal.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path. Applies WAL mode and
// the schema; idempotent.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: connect: %w", err)
	}

	// SQLite allows one writer; a single pooled connection avoids
	// SQLITE_BUSY under interleaved record/list calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one history event.
func (j *Journal) Record(ctx context.Context, rec engine.Record) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO history (seq, kind, op, label, payload)
		VALUES (?, ?, ?, ?, ?)
	`,
		rec.Seq,
		string(rec.Kind),
		rec.Op,
		rec.Label,
		nullableText(rec.Payload),
	)
	if err != nil {
		return fmt.Errorf("journal: record %s seq=%d: %w", rec.Kind, rec.Seq, err)
	}
	return nil
}

// List returns every recorded event in insertion order.
func (j *Journal) List(ctx context.Context) ([]engine.Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, kind, op, label, COALESCE(payload, '')
		FROM history
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	defer rows.Close()

	var recs []engine.Record
	for rows.Next() {
		var rec engine.Record
		var kind, payload string
		if err := rows.Scan(&rec.Seq, &kind, &rec.Op, &rec.Label, &payload); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		rec.Kind = engine.RecordKind(kind)
		if payload != "" {
			rec.Payload = []byte(payload)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	return recs, nil
}

func nullableText(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
