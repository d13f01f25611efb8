package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"foldspan/internal/folding"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
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
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			language TEXT,
			content_hash TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS fold_ranges (
			path TEXT,
			start_line INTEGER,
			end_line INTEGER,
			kind TEXT,
			PRIMARY KEY (path, start_line, end_line, kind)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ranges_path ON fold_ranges(path);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveDocument upserts the document row and replaces its range snapshot
// in one transaction.
func (s *SQLiteStore) SaveDocument(ctx context.Context, doc *DocumentFolds) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (path, language, content_hash)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			language=excluded.language,
			content_hash=excluded.content_hash
	`, doc.Path, doc.Language, doc.ContentHash)
	if err != nil {
		return err
	}

	// Snapshot semantics: old ranges for the path go away entirely.
	if _, err := tx.ExecContext(ctx, `DELETE FROM fold_ranges WHERE path = ?`, doc.Path); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fold_ranges (path, start_line, end_line, kind) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range doc.Ranges {
		if _, err := stmt.Exec(doc.Path, r.StartLine, r.EndLine, string(r.Kind)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetDocument retrieves a cached document by path. A path never stored
// returns (nil, nil).
func (s *SQLiteStore) GetDocument(ctx context.Context, path string) (*DocumentFolds, error) {
	doc := &DocumentFolds{Path: path}
	err := s.db.QueryRowContext(ctx,
		`SELECT language, content_hash FROM documents WHERE path = ?`, path,
	).Scan(&doc.Language, &doc.ContentHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT start_line, end_line, kind FROM fold_ranges
		WHERE path = ?
		ORDER BY start_line, end_line
	`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r folding.FoldRange
		var kind string
		if err := rows.Scan(&r.StartLine, &r.EndLine, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan range: %w", err)
		}
		r.Kind = folding.RegionKind(kind)
		doc.Ranges = append(doc.Ranges, r)
	}
	return doc, rows.Err()
}

// RemoveDocument drops a path and all of its ranges.
func (s *SQLiteStore) RemoveDocument(ctx context.Context, path string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM fold_ranges WHERE path = ?`, path); err != nil {
		return err
	}
	return tx.Commit()
}
