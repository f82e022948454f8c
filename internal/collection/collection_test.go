package collection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/logflow/internal/models"
)

func seed() Collection {
	return New(
		models.Item{ID: "1", Kind: models.KindManual, ProductCode: "PROD001", Quantity: models.Int(10), Weight: models.Float(5.5), Volume: models.Float(0.1), IsCleaned: true},
		models.Item{ID: "2", Kind: models.KindManual, ProductCode: "PROD002", Quantity: models.Int(5), Weight: models.Float(2.3), Volume: models.Float(0.05)},
	)
}

func ids(c Collection) []string {
	var out []string
	for _, it := range c.Items() {
		out = append(out, it.ID)
	}
	return out
}

func TestAdd(t *testing.T) {
	base := seed()
	seq := NewSequenceProvider("item-")

	next, added := base.Add(seq, models.Item{ID: "ignored", ProductCode: "PROD003", Quantity: models.Int(1)})

	if added.ID != "item-1" {
		t.Errorf("added ID = %q, want item-1", added.ID)
	}
	if diff := cmp.Diff([]string{"1", "2", "item-1"}, ids(next)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if base.Len() != 2 {
		t.Errorf("base collection was modified: len = %d", base.Len())
	}
	if got := next.Totals().TotalItems; got != 16 {
		t.Errorf("TotalItems = %d, want 16", got)
	}
}

func TestImport(t *testing.T) {
	seq := NewSequenceProvider("import_")
	next := Collection{}.Import(seq, []models.Item{
		{Category: "Eletrônicos", Quantity: models.Int(5)},
		{Category: "Móveis", Quantity: models.Int(2)},
	})

	if diff := cmp.Diff([]string{"import_1", "import_2"}, ids(next)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestReplace(t *testing.T) {
	base := seed()

	next, err := base.Replace(models.Item{ID: "1", ProductCode: "PROD001-B", Quantity: models.Int(3), Weight: models.Float(1)})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, _ := next.Get("1")
	if got.ProductCode != "PROD001-B" || *got.Quantity != 3 {
		t.Errorf("item not replaced: %+v", got)
	}
	if !got.IsCleaned {
		t.Error("expected cleaned flag to be preserved")
	}
	if diff := cmp.Diff([]string{"1", "2"}, ids(next)); diff != "" {
		t.Errorf("position changed (-want +got):\n%s", diff)
	}

	orig, _ := base.Get("1")
	if orig.ProductCode != "PROD001" {
		t.Error("base collection was modified")
	}
}

func TestRemove(t *testing.T) {
	base := seed()

	next, err := base.Remove("1")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2"}, ids(next)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if base.Len() != 2 {
		t.Error("base collection was modified")
	}
}

func TestUnknownID(t *testing.T) {
	base := seed()

	_, err := base.Remove("missing")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Remove: expected ErrItemNotFound, got %v", err)
	}
	_, err = base.Replace(models.Item{ID: "missing"})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Replace: expected ErrItemNotFound, got %v", err)
	}
	_, err = base.ToggleVerified("missing")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("ToggleVerified: expected ErrItemNotFound, got %v", err)
	}
}

func TestToggleVerified(t *testing.T) {
	next, err := seed().ToggleVerified("2")
	if err != nil {
		t.Fatalf("ToggleVerified failed: %v", err)
	}
	got, _ := next.Get("2")
	if !got.IsVerified {
		t.Error("expected item to be verified")
	}

	back, _ := next.ToggleVerified("2")
	got, _ = back.Get("2")
	if got.IsVerified {
		t.Error("expected second toggle to clear the flag")
	}
}

func TestItemsReturnsCopies(t *testing.T) {
	c := seed()

	items := c.Items()
	*items[0].Quantity = 999
	items[0].ProductCode = "changed"

	got, _ := c.Get("1")
	if *got.Quantity != 10 || got.ProductCode != "PROD001" {
		t.Errorf("collection changed through returned slice: %+v", got)
	}
}

func TestUUIDProvider(t *testing.T) {
	p := UUIDProvider{}
	a, b := p.NewID(), p.NewID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a, b)
	}
}
