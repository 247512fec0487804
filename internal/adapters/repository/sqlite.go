package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/pkg/logger"
	"github.com/okian/winedex/pkg/metrics"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore keeps one row per wine with the full record as JSON.
type SQLiteStore struct {
	db     *sql.DB
	logger logger.Logger
	closed atomic.Bool
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single writer keeps whole-list replacement serialised.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	s := &SQLiteStore{db: db, logger: newSettings(opts).logger}
	s.logger.Info(ctx, "sqlite store opened", logger.String("path", path))
	return s, nil
}

// Backend implements Store.
func (s *SQLiteStore) Backend() string { return BackendSQLite }

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (wines []types.Wine, err error) {
	defer func(start time.Time) { metrics.RecordStoreOperation(BackendSQLite, "load", start, err) }(time.Now())
	if s.closed.Load() {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `SELECT record FROM wines ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query wines: %w", err)
	}
	defer rows.Close()

	wines = []types.Wine{}
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan wine: %w", err)
		}
		var w types.Wine
		if err := json.Unmarshal([]byte(record), &w); err != nil {
			return nil, fmt.Errorf("decode wine: %w", err)
		}
		wines = append(wines, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wines: %w", err)
	}
	return wines, nil
}

// Replace implements Store. The delete and inserts share one transaction.
func (s *SQLiteStore) Replace(ctx context.Context, wines []types.Wine) (err error) {
	defer func(start time.Time) { metrics.RecordStoreOperation(BackendSQLite, "replace", start, err) }(time.Now())
	if s.closed.Load() {
		return ErrClosed
	}
	next, err := snapshot(wines)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM wines`); err != nil {
		return fmt.Errorf("delete wines: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO wines (id, name, record, updated_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, w := range next {
		record, mErr := json.Marshal(w)
		if mErr != nil {
			err = fmt.Errorf("encode wine %d: %w", w.ID, mErr)
			return err
		}
		if _, err = stmt.ExecContext(ctx, w.ID, w.Name, string(record), now); err != nil {
			return fmt.Errorf("insert wine %d: %w", w.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug(ctx, "collection replaced", logger.Int("wines", len(next)))
	return nil
}

// Clear implements Store.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.Replace(ctx, nil)
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
