package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/logflow/internal/models"
	"github.com/mmynk/logflow/internal/storage"
)

const itemColumns = `id, kind, product_code, product_name, description, notes, location,
	category, source, quantity, unit, weight, estimated_weight, volume, confidence,
	is_cleaned, is_verified`

// ReplaceItems swaps the stored collection of a romaneio for items.
func (s *SQLiteStore) ReplaceItems(ctx context.Context, id string, items []models.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM romaneios WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("romaneio %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get romaneio: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE romaneio_id = ?", id); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if err := insertItems(ctx, tx, id, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, romaneioID string, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (romaneio_id, position, `+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range items {
		_, err := stmt.ExecContext(ctx,
			romaneioID, i,
			it.ID, string(it.Kind), it.ProductCode, it.ProductName, it.Description, it.Notes, it.Location,
			it.Category, it.Source, nullInt(it.Quantity), string(it.Unit),
			nullFloat(it.Weight), nullFloat(it.EstimatedWeight), nullFloat(it.Volume), nullFloat(it.Confidence),
			it.IsCleaned, it.IsVerified,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item %s: %w", it.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadItems(ctx context.Context, romaneioID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE romaneio_id = ? ORDER BY position",
		romaneioID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var (
			it                                    models.Item
			kind, unit                            string
			quantity                              sql.NullInt64
			weight, estimated, volume, confidence sql.NullFloat64
		)
		err := rows.Scan(
			&it.ID, &kind, &it.ProductCode, &it.ProductName, &it.Description, &it.Notes, &it.Location,
			&it.Category, &it.Source, &quantity, &unit,
			&weight, &estimated, &volume, &confidence,
			&it.IsCleaned, &it.IsVerified,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		it.Kind = models.ItemKind(kind)
		it.Unit = models.Unit(unit)
		if quantity.Valid {
			it.Quantity = models.Int(int(quantity.Int64))
		}
		it.Weight = floatPtr(weight)
		it.EstimatedWeight = floatPtr(estimated)
		it.Volume = floatPtr(volume)
		it.Confidence = floatPtr(confidence)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return models.Float(v.Float64)
}
