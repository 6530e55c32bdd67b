package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/intmarks/internal/marks"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// WriteSQLite writes the report to a SQLite database file at path. The
// tables are recreated on every export.
func WriteSQLite(ctx context.Context, path string, r *marks.Report) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		return fmt.Errorf("apply pragmas: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS subject_records`,
		`DROP TABLE IF EXISTS report`,
		`CREATE TABLE report (
			id TEXT PRIMARY KEY,
			generated_at TEXT NOT NULL,
			pass_mark REAL NOT NULL,
			passed INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE subject_records (
			position INTEGER PRIMARY KEY,
			report_id TEXT NOT NULL REFERENCES report(id),
			subject TEXT NOT NULL,
			cat1 REAL NOT NULL,
			cat2 REAL NOT NULL,
			cat3 REAL NOT NULL,
			assignment REAL NOT NULL,
			total REAL NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('Pass', 'Fail'))
		)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO report (id, generated_at, pass_mark, passed, failed) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.GeneratedAt.UTC().Format(time.RFC3339), marks.PassMark, r.Passed, r.Failed)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	for i, rec := range r.Records() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO subject_records (position, report_id, subject, cat1, cat2, cat3, assignment, total, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i+1, r.ID, rec.Name, rec.CAT1, rec.CAT2, rec.CAT3, rec.Assignment, rec.Total, rec.Status)
		if err != nil {
			return fmt.Errorf("insert %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
