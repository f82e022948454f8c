// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/logflow/internal/models"
	"github.com/mmynk/logflow/internal/storage"
)

// MemoryPath opens a private in-memory database that lives as long as the store.
const MemoryPath = ":memory:"

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// An empty path or MemoryPath selects an in-memory database; otherwise the
// parent directories are created. Migrations run automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = MemoryPath
	}
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, and writers
	// serialise anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateRomaneio persists a new romaneio and its items.
func (s *SQLiteStore) CreateRomaneio(ctx context.Context, r *models.Romaneio) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	if r.Status == "" {
		r.Status = models.StatusDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM romaneios").Scan(&seq); err != nil {
		return fmt.Errorf("failed to allocate romaneio number: %w", err)
	}
	if r.Number == "" {
		r.Number = formatNumber(seq)
	}
	if r.Title == "" {
		r.Title = generateTitle(r.Type, r.Number)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO romaneios (id, seq, number, title, type, status, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, seq, r.Number, r.Title, string(r.Type), string(r.Status), r.CreatedBy, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert romaneio: %w", err)
	}

	if err := insertItems(ctx, tx, r.ID, r.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRomaneio retrieves a romaneio by ID, including its items in order.
func (s *SQLiteStore) GetRomaneio(ctx context.Context, id string) (*models.Romaneio, error) {
	r := &models.Romaneio{}
	var typ, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, number, title, type, status, created_by, created_at
		 FROM romaneios WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Number, &r.Title, &typ, &status, &r.CreatedBy, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("romaneio %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get romaneio: %w", err)
	}
	r.Type = models.RomaneioType(typ)
	r.Status = models.Status(status)

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Items = items
	return r, nil
}

// ListRomaneios returns the romaneios matching filter, newest first.
func (s *SQLiteStore) ListRomaneios(ctx context.Context, filter storage.ListFilter) ([]*models.Romaneio, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, number, title, type, status, created_by, created_at
		 FROM romaneios
		 WHERE (? = '' OR type = ?) AND (? = '' OR status = ?)
		 ORDER BY seq DESC`,
		string(filter.Type), string(filter.Type), string(filter.Status), string(filter.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list romaneios: %w", err)
	}

	var out []*models.Romaneio
	for rows.Next() {
		r := &models.Romaneio{}
		var typ, status string
		if err := rows.Scan(&r.ID, &r.Number, &r.Title, &typ, &status, &r.CreatedBy, &r.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan romaneio: %w", err)
		}
		r.Type = models.RomaneioType(typ)
		r.Status = models.Status(status)
		out = append(out, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate romaneios: %w", err)
	}

	// Items are loaded after the header cursor is closed: the pool has a
	// single connection.
	for _, r := range out {
		items, err := s.loadItems(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		r.Items = items
	}
	return out, nil
}

// UpdateStatus sets the status of a romaneio.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	res, err := s.db.ExecContext(ctx, "UPDATE romaneios SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update romaneio status: %w", err)
	}
	return requireRow(res, id)
}

// DeleteRomaneio removes a romaneio; its items go with it.
func (s *SQLiteStore) DeleteRomaneio(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM romaneios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete romaneio: %w", err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("romaneio %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func formatNumber(seq int64) string {
	return fmt.Sprintf("ROM-%06d", seq)
}

// generateTitle creates a default title from the romaneio type and number.
func generateTitle(t models.RomaneioType, number string) string {
	switch t {
	case models.TypeManual:
		return "Romaneio manual " + number
	case models.TypeSimplified:
		return "Romaneio simplificado " + number
	case models.TypeAutomated:
		return "Romaneio automatizado " + number
	default:
		return "Romaneio " + number
	}
}
