// Package storage provides abstractions for romaneio storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/logflow/internal/models"
)

// ErrNotFound is returned (wrapped) when a romaneio does not exist.
var ErrNotFound = errors.New("not found")

// ListFilter narrows ListRomaneios. Zero fields match everything.
type ListFilter struct {
	Type   models.RomaneioType
	Status models.Status
}

// Store defines the interface for romaneio storage operations.
// Item collections are stored whole: ReplaceItems swaps the entire ordered
// collection so the service layer can keep collections immutable.
type Store interface {
	// CreateRomaneio persists a new romaneio with its items.
	// ID, Number and CreatedAt are populated by the store when empty.
	CreateRomaneio(ctx context.Context, r *models.Romaneio) error

	// GetRomaneio retrieves a romaneio and its items in display order.
	GetRomaneio(ctx context.Context, id string) (*models.Romaneio, error)

	// ListRomaneios returns romaneios (with items), newest first.
	ListRomaneios(ctx context.Context, filter ListFilter) ([]*models.Romaneio, error)

	// UpdateStatus sets the status of a romaneio.
	UpdateStatus(ctx context.Context, id string, status models.Status) error

	// ReplaceItems replaces the whole item collection of a romaneio.
	ReplaceItems(ctx context.Context, id string, items []models.Item) error

	// DeleteRomaneio removes a romaneio and its items.
	DeleteRomaneio(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
