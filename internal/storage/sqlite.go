package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docflow/internal/publish"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Ledger = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT,
			mode TEXT,
			phase TEXT,
			started_at INTEGER,
			finished_at INTEGER,
			warnings JSON
		);`,
		`CREATE TABLE IF NOT EXISTS sections (
			run_id TEXT,
			position INTEGER,
			name TEXT,
			category INTEGER,
			body TEXT,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS pages (
			run_id TEXT,
			position INTEGER,
			key TEXT,
			page_id TEXT,
			PRIMARY KEY (run_id, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root, started_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) BeginRun(ctx context.Context, root, mode string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Root:      root,
		Mode:      mode,
		Phase:     "started",
		StartedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, root, mode, phase, started_at, finished_at, warnings)
		VALUES (?, ?, ?, ?, ?, 0, '[]')
	`, run.ID, run.Root, run.Mode, run.Phase, run.StartedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

func (s *SQLiteStore) SaveDocumentation(ctx context.Context, runID string, doc publish.Documentation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE run_id = ?", runID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (run_id, position, name, category, body) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, sec := range doc.Sections() {
		if _, err := stmt.ExecContext(ctx, runID, i, sec.Name, int(sec.Category), sec.Body); err != nil {
			return fmt.Errorf("failed to save section %s: %w", sec.Name, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) SavePages(ctx context.Context, runID string, index *publish.PageIndex) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (run_id, position, key, page_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, key) DO UPDATE SET page_id=excluded.page_id
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, key := range index.Keys() {
		id, _ := index.Get(key)
		if _, err := stmt.ExecContext(ctx, runID, i, key, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID, phase string, warnings []string) error {
	if warnings == nil {
		warnings = []string{}
	}
	data, err := json.Marshal(warnings)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET phase = ?, finished_at = ?, warnings = ? WHERE id = ?
	`, phase, s.now().UTC().UnixNano(), data, runID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

func (s *SQLiteStore) LatestDocumentation(ctx context.Context, root string) (*publish.Documentation, string, error) {
	var runID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM runs
		WHERE root = ? AND EXISTS (SELECT 1 FROM sections WHERE sections.run_id = runs.id)
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`, root).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNoRuns
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to query runs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name, category, body FROM sections WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	doc := &publish.Documentation{}
	for rows.Next() {
		var name, body string
		var category int
		if err := rows.Scan(&name, &category, &body); err != nil {
			return nil, "", fmt.Errorf("failed to scan section: %w", err)
		}
		switch publish.Category(category) {
		case publish.CategoryOverview:
			doc.Overview = body
		case publish.CategoryAPI:
			doc.API = body
		default:
			doc.Modules = append(doc.Modules, publish.ModuleDoc{Name: name, Body: body})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	return doc, runID, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.root, r.mode, r.phase, r.started_at, r.finished_at, r.warnings,
			(SELECT COUNT(*) FROM pages p WHERE p.run_id = r.id)
		FROM runs r
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		var warnings []byte
		if err := rows.Scan(&r.ID, &r.Root, &r.Mode, &r.Phase, &started, &finished, &warnings, &r.Pages); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = time.Unix(0, started).UTC()
		if finished > 0 {
			r.FinishedAt = time.Unix(0, finished).UTC()
		}
		if len(warnings) > 0 {
			_ = json.Unmarshal(warnings, &r.Warnings)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) RunPages(ctx context.Context, runID string) ([]PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, page_id FROM pages WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []PageRecord
	for rows.Next() {
		var p PageRecord
		if err := rows.Scan(&p.Key, &p.PageID); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
