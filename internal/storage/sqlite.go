package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"pylens/internal/detect"
	"pylens/internal/provider"
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
		`CREATE TABLE IF NOT EXISTS findings (
			doc TEXT NOT NULL,
			kind TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			start_char INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			end_char INTEGER NOT NULL,
			ord INTEGER NOT NULL,
			targets JSON NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_findings_doc ON findings(doc);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveFindings replaces the stored findings for a document in one tx, so a
// re-scan is last-write-wins per document.
func (s *SQLiteStore) SaveFindings(ctx context.Context, doc provider.DocumentID, findings []detect.Finding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE doc = ?`, string(doc)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (doc, kind, start_line, start_char, end_line, end_char, ord, targets)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for ord, f := range findings {
		targets, err := json.Marshal(f.Targets)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, string(doc), string(f.Kind),
			f.Range.Start.Line, f.Range.Start.Character,
			f.Range.End.Line, f.Range.End.Character,
			ord, string(targets)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindByDocument retrieves stored findings in their original order.
func (s *SQLiteStore) FindByDocument(ctx context.Context, doc provider.DocumentID) ([]detect.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, start_line, start_char, end_line, end_char, targets
		FROM findings WHERE doc = ? ORDER BY ord
	`, string(doc))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []detect.Finding
	for rows.Next() {
		var kind, targets string
		var f detect.Finding
		if err := rows.Scan(&kind,
			&f.Range.Start.Line, &f.Range.Start.Character,
			&f.Range.End.Line, &f.Range.End.Character,
			&targets); err != nil {
			return nil, err
		}
		f.Kind = detect.FindingKind(kind)
		if err := json.Unmarshal([]byte(targets), &f.Targets); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Documents lists documents with stored findings.
func (s *SQLiteStore) Documents(ctx context.Context) ([]provider.DocumentID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT doc FROM findings ORDER BY doc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []provider.DocumentID
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		out = append(out, provider.DocumentID(doc))
	}
	return out, rows.Err()
}
