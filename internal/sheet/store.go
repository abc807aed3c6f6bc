// Package sheet implements the named-sheet row store the intake pipelines
// write to. A sheet is an ordered list of string rows under a fixed header
// row, mirroring the destination spreadsheet contract: column order is the
// consumer's contract and appends are serialized by the store.
package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSheetNotFound is returned when appending to or reading a sheet that
// was never created.
var ErrSheetNotFound = errors.New("sheet not found")

// Store provides sheet operations over the SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Exists reports whether a sheet with the given name has been created.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM sheets WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ensure creates the sheet with its header row if it does not exist yet.
// It is idempotent: an existing sheet keeps its original headers.
func (s *Store) Ensure(ctx context.Context, name string, headers []string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	encoded, err := json.Marshal(headers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sheets (name, headers) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		name, string(encoded))
	return err
}

// Headers returns the header row of a sheet.
func (s *Store) Headers(ctx context.Context, name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var encoded string
	err := s.db.QueryRowContext(ctx, `SELECT headers FROM sheets WHERE name = ?`, name).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		return nil, err
	}
	var headers []string
	if err := json.Unmarshal([]byte(encoded), &headers); err != nil {
		return nil, fmt.Errorf("corrupt headers for sheet %q: %w", name, err)
	}
	return headers, nil
}

// Append adds one row at the end of the sheet. Positions are assigned
// inside a transaction so concurrent appends from different requests are
// serialized by the store.
func (s *Store) Append(ctx context.Context, name string, row []string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	encoded, err := json.Marshal(row)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	var sheetID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM sheets WHERE name = ?`, name).Scan(&sheetID)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return ErrSheetNotFound
	}
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	var next int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM sheet_rows WHERE sheet_id = ?`, sheetID).Scan(&next); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet_id, position, cells) VALUES (?, ?, ?)`,
		sheetID, next, string(encoded)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Rows returns all data rows of a sheet in append order.
func (s *Store) Rows(ctx context.Context, name string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
SELECT r.cells FROM sheet_rows r
JOIN sheets s ON s.id = r.sheet_id
WHERE s.name = ?
ORDER BY r.position`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
			return nil, fmt.Errorf("corrupt row in sheet %q: %w", name, err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}
