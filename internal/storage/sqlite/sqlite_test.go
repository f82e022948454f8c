package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/logflow/internal/models"
	"github.com/mmynk/logflow/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateRomaneio generates ID, number and title", func(t *testing.T) {
		r := &models.Romaneio{Type: models.TypeManual}

		if err := store.CreateRomaneio(ctx, r); err != nil {
			t.Fatalf("CreateRomaneio failed: %v", err)
		}

		if r.ID == "" {
			t.Error("Expected romaneio ID to be generated")
		}
		if r.Number != "ROM-000001" {
			t.Errorf("Number = %q, want ROM-000001", r.Number)
		}
		if r.Title != "Romaneio manual ROM-000001" {
			t.Errorf("Unexpected generated title: %q", r.Title)
		}
		if r.Status != models.StatusDraft {
			t.Errorf("Status = %q, want draft", r.Status)
		}
		if r.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetRomaneio keeps item order and missing values", func(t *testing.T) {
		original := &models.Romaneio{
			Title:     "Carga Porto Alegre",
			Type:      models.TypeAutomated,
			CreatedBy: "Ana",
			Items: []models.Item{
				{
					ID: "b", Kind: models.KindAutomated, ProductCode: "PROD002", Category: "Eletrônicos",
					Quantity: models.Int(3), Unit: models.UnitBox,
					Weight: models.Float(1.5), Volume: models.Float(0), Confidence: models.Float(0.92),
					Source: "OCR + AI", IsVerified: true,
				},
				{
					ID: "a", Kind: models.KindAutomated, ProductCode: "PROD001",
					Quantity: models.Int(0), IsCleaned: true,
				},
			},
		}
		if err := store.CreateRomaneio(ctx, original); err != nil {
			t.Fatalf("CreateRomaneio failed: %v", err)
		}

		retrieved, err := store.GetRomaneio(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetRomaneio failed: %v", err)
		}

		if diff := cmp.Diff(original, retrieved); diff != "" {
			t.Errorf("romaneio mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("GetRomaneio returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetRomaneio(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ReplaceItems swaps the collection", func(t *testing.T) {
		r := &models.Romaneio{
			Type:  models.TypeSimplified,
			Items: []models.Item{{ID: "1", Kind: models.KindSimplified, Quantity: models.Int(1)}},
		}
		if err := store.CreateRomaneio(ctx, r); err != nil {
			t.Fatalf("CreateRomaneio failed: %v", err)
		}

		next := []models.Item{
			{ID: "2", Kind: models.KindSimplified, Quantity: models.Int(4), EstimatedWeight: models.Float(2.5)},
			{ID: "3", Kind: models.KindSimplified, Quantity: models.Int(1)},
		}
		if err := store.ReplaceItems(ctx, r.ID, next); err != nil {
			t.Fatalf("ReplaceItems failed: %v", err)
		}

		retrieved, err := store.GetRomaneio(ctx, r.ID)
		if err != nil {
			t.Fatalf("GetRomaneio failed: %v", err)
		}
		if diff := cmp.Diff(next, retrieved.Items); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}

		if err := store.ReplaceItems(ctx, r.ID, nil); err != nil {
			t.Fatalf("ReplaceItems(nil) failed: %v", err)
		}
		retrieved, _ = store.GetRomaneio(ctx, r.ID)
		if len(retrieved.Items) != 0 {
			t.Errorf("Expected 0 items, got %d", len(retrieved.Items))
		}
	})

	t.Run("ReplaceItems on unknown romaneio", func(t *testing.T) {
		err := store.ReplaceItems(ctx, "nonexistent-id", nil)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateStatus and ListRomaneios filter", func(t *testing.T) {
		r := &models.Romaneio{Type: models.TypeSimplified}
		if err := store.CreateRomaneio(ctx, r); err != nil {
			t.Fatalf("CreateRomaneio failed: %v", err)
		}
		if err := store.UpdateStatus(ctx, r.ID, models.StatusInProgress); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		list, err := store.ListRomaneios(ctx, storage.ListFilter{Status: models.StatusInProgress})
		if err != nil {
			t.Fatalf("ListRomaneios failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != r.ID {
			t.Fatalf("Expected only %s in progress, got %d romaneios", r.ID, len(list))
		}

		simplified, err := store.ListRomaneios(ctx, storage.ListFilter{Type: models.TypeSimplified})
		if err != nil {
			t.Fatalf("ListRomaneios failed: %v", err)
		}
		if len(simplified) != 2 {
			t.Errorf("Expected 2 simplified romaneios, got %d", len(simplified))
		}
		// Newest first.
		if simplified[0].ID != r.ID {
			t.Errorf("Expected newest romaneio first, got %s", simplified[0].Number)
		}
		if len(simplified[1].Items) != 0 {
			t.Errorf("Expected listed items to be loaded and empty, got %d", len(simplified[1].Items))
		}

		if err := store.UpdateStatus(ctx, "nonexistent-id", models.StatusCompleted); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteRomaneio cascades to items", func(t *testing.T) {
		r := &models.Romaneio{
			Type:  models.TypeManual,
			Items: []models.Item{{ID: "x", Kind: models.KindManual, Quantity: models.Int(1)}},
		}
		if err := store.CreateRomaneio(ctx, r); err != nil {
			t.Fatalf("CreateRomaneio failed: %v", err)
		}

		if err := store.DeleteRomaneio(ctx, r.ID); err != nil {
			t.Fatalf("DeleteRomaneio failed: %v", err)
		}
		if _, err := store.GetRomaneio(ctx, r.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		var n int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items WHERE romaneio_id = ?", r.ID).Scan(&n); err != nil {
			t.Fatalf("count items: %v", err)
		}
		if n != 0 {
			t.Errorf("Expected items to be deleted, %d left", n)
		}

		if err := store.DeleteRomaneio(ctx, r.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestNew_InMemory(t *testing.T) {
	store, err := New("")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	r := &models.Romaneio{Type: models.TypeManual}
	if err := store.CreateRomaneio(ctx, r); err != nil {
		t.Fatalf("CreateRomaneio failed: %v", err)
	}
	if _, err := store.GetRomaneio(ctx, r.ID); err != nil {
		t.Errorf("GetRomaneio failed: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		typ  models.RomaneioType
		want string
	}{
		{models.TypeManual, "Romaneio manual ROM-000007"},
		{models.TypeSimplified, "Romaneio simplificado ROM-000007"},
		{models.TypeAutomated, "Romaneio automatizado ROM-000007"},
		{"", "Romaneio ROM-000007"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := generateTitle(tt.typ, formatNumber(7)); got != tt.want {
				t.Errorf("generateTitle(%q) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}
