package calculator

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/logflow/internal/models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.Item
		validateFunc func(t *testing.T, totals Totals)
	}{
		{
			name: "quantity times weight",
			items: []models.Item{
				{ID: "1", Quantity: models.Int(10), Weight: models.Float(5.5)},
				{ID: "2", Quantity: models.Int(5), Weight: models.Float(2.3)},
			},
			validateFunc: func(t *testing.T, totals Totals) {
				// 10*5.5 + 5*2.3 = 55 + 11.5
				assert.Equal(t, 15, totals.TotalItems)
				assert.InDelta(t, 66.5, totals.TotalWeight, 1e-9)
				assert.Empty(t, totals.Diagnostics)
			},
		},
		{
			name:  "empty collection",
			items: []models.Item{},
			validateFunc: func(t *testing.T, totals Totals) {
				assert.Equal(t, 0, totals.TotalItems)
				assert.Zero(t, totals.TotalWeight)
				assert.Zero(t, totals.TotalVolume)
				assert.Nil(t, totals.AverageConfidence, "average confidence should be not applicable")
				assert.Empty(t, totals.CountByCategory)
			},
		},
		{
			name:  "negative quantity is flagged and counted as zero",
			items: []models.Item{{ID: "neg", Quantity: models.Int(-3), Weight: models.Float(1)}},
			validateFunc: func(t *testing.T, totals Totals) {
				assert.Equal(t, 0, totals.TotalItems)
				assert.Zero(t, totals.TotalWeight)
				want := []Diagnostic{{Index: 0, ItemID: "neg", Field: "quantity", Original: "-3", Reason: ReasonNegative}}
				if diff := cmp.Diff(want, totals.Diagnostics); diff != "" {
					t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "volume from the manual variant",
			items: []models.Item{
				{ID: "1", Kind: models.KindManual, Quantity: models.Int(10), Unit: models.UnitPiece, Weight: models.Float(5.5), Volume: models.Float(0.1)},
				{ID: "2", Kind: models.KindManual, Quantity: models.Int(5), Unit: models.UnitKilogram, Weight: models.Float(2.3), Volume: models.Float(0.05)},
			},
			validateFunc: func(t *testing.T, totals Totals) {
				assert.InDelta(t, 1.25, totals.TotalVolume, 1e-9)
				assert.Nil(t, totals.AverageConfidence)
				assert.Equal(t, 2, totals.CountByType.Get("manual"))
			},
		},
		{
			name: "simplified variant uses estimated weight",
			items: []models.Item{
				{ID: "1", Kind: models.KindSimplified, Category: "Eletrônicos", Quantity: models.Int(5), EstimatedWeight: models.Float(0.2)},
				{ID: "2", Kind: models.KindSimplified, Category: "Móveis", Quantity: models.Int(2), EstimatedWeight: models.Float(25)},
			},
			validateFunc: func(t *testing.T, totals Totals) {
				assert.Equal(t, 7, totals.TotalItems)
				assert.InDelta(t, 51.0, totals.TotalWeight, 1e-9)
				assert.Empty(t, totals.Diagnostics, "volume is optional for simplified items")
			},
		},
		{
			name: "automated variant averages confidence",
			items: []models.Item{
				{ID: "1", Kind: models.KindAutomated, Quantity: models.Int(3), Weight: models.Float(0.174), Volume: models.Float(0.0001), Confidence: models.Float(0.95), IsVerified: true, IsCleaned: true},
				{ID: "2", Kind: models.KindAutomated, Quantity: models.Int(1), Weight: models.Float(25), Volume: models.Float(0.5), Confidence: models.Float(0.87), IsCleaned: true},
			},
			validateFunc: func(t *testing.T, totals Totals) {
				require.NotNil(t, totals.AverageConfidence)
				assert.InDelta(t, 0.91, *totals.AverageConfidence, 1e-9)
				assert.Equal(t, 1, totals.VerifiedCount)
				assert.Equal(t, 2, totals.CleanedCount)
			},
		},
		{
			name: "non-finite and out-of-range values",
			items: []models.Item{
				{ID: "a", Kind: models.KindAutomated, Quantity: models.Int(2), Weight: models.Float(math.NaN()), Volume: models.Float(math.Inf(1)), Confidence: models.Float(1.5)},
				{ID: "b", Kind: models.KindAutomated, Quantity: models.Int(1), Weight: models.Float(4), Volume: models.Float(1), Confidence: models.Float(0.5)},
			},
			validateFunc: func(t *testing.T, totals Totals) {
				assert.Equal(t, 3, totals.TotalItems)
				assert.InDelta(t, 4.0, totals.TotalWeight, 1e-9)
				assert.InDelta(t, 1.0, totals.TotalVolume, 1e-9)
				require.NotNil(t, totals.AverageConfidence)
				// The out-of-range confidence counts as zero: (0 + 0.5) / 2.
				assert.InDelta(t, 0.25, *totals.AverageConfidence, 1e-9)

				want := []Diagnostic{
					{Index: 0, ItemID: "a", Field: "weight", Original: "NaN", Reason: ReasonNonFinite},
					{Index: 0, ItemID: "a", Field: "volume", Original: "+Inf", Reason: ReasonNonFinite},
					{Index: 0, ItemID: "a", Field: "confidence", Original: "1.5", Reason: ReasonOutOfRange},
				}
				if diff := cmp.Diff(want, totals.Diagnostics); diff != "" {
					t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "missing required fields",
			items: []models.Item{
				{ID: "m", Kind: models.KindManual},
				{ID: "s", Kind: models.KindSimplified, Quantity: models.Int(1)},
			},
			validateFunc: func(t *testing.T, totals Totals) {
				want := []Diagnostic{
					{Index: 0, ItemID: "m", Field: "quantity", Reason: ReasonMissing},
					{Index: 0, ItemID: "m", Field: "weight", Reason: ReasonMissing},
					{Index: 0, ItemID: "m", Field: "volume", Reason: ReasonMissing},
					{Index: 1, ItemID: "s", Field: "estimated_weight", Reason: ReasonMissing},
				}
				if diff := cmp.Diff(want, totals.Diagnostics); diff != "" {
					t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
				}
				assert.Equal(t, 1, totals.TotalItems)
			},
		},
		{
			name: "untagged items go to the unspecified bucket",
			items: []models.Item{
				{ID: "1", Quantity: models.Int(1), Category: "Livros"},
				{ID: "2", Quantity: models.Int(1)},
			},
			validateFunc: func(t *testing.T, totals Totals) {
				want := Counts{{Key: "Livros", Count: 1}, {Key: Unspecified, Count: 1}}
				if diff := cmp.Diff(want, totals.CountByCategory); diff != "" {
					t.Errorf("category counts mismatch (-want +got):\n%s", diff)
				}
				assert.Equal(t, 2, totals.CountByType.Get(Unspecified))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, ComputeTotals(tt.items))
		})
	}
}

func TestComputeTotals_TotalItemsIsSumOfSanitisedQuantities(t *testing.T) {
	quantities := []*int{models.Int(4), nil, models.Int(-7), models.Int(0), models.Int(12)}
	items := make([]models.Item, len(quantities))
	want := 0
	for i, q := range quantities {
		items[i] = models.Item{Quantity: q}
		if q != nil && *q > 0 {
			want += *q
		}
	}

	assert.Equal(t, want, ComputeTotals(items).TotalItems)
}

func TestComputeTotals_Idempotent(t *testing.T) {
	items := []models.Item{
		{ID: "1", Kind: models.KindAutomated, Category: "Eletrônicos", Quantity: models.Int(3), Weight: models.Float(0.174), Volume: models.Float(0.0001), Confidence: models.Float(0.95)},
		{ID: "2", Kind: models.KindManual, Category: "Móveis", Quantity: models.Int(-1), Weight: models.Float(25)},
	}

	first := ComputeTotals(items)
	second := ComputeTotals(items)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second computation differs (-first +second):\n%s", diff)
	}
}

func TestComputeTotals_DoesNotMutateInput(t *testing.T) {
	items := []models.Item{{ID: "1", Quantity: models.Int(-2), Weight: models.Float(math.NaN())}}

	ComputeTotals(items)

	assert.Equal(t, -2, *items[0].Quantity)
	assert.True(t, math.IsNaN(*items[0].Weight))
}

func TestComputeTotals_ConcurrentCallsAgree(t *testing.T) {
	items := make([]models.Item, 200)
	for i := range items {
		items[i] = models.Item{
			ID:         string(rune('a' + i%26)),
			Kind:       models.KindAutomated,
			Category:   []string{"Eletrônicos", "Móveis", ""}[i%3],
			Quantity:   models.Int(i%7 - 1),
			Weight:     models.Float(float64(i) / 10),
			Volume:     models.Float(0.01),
			Confidence: models.Float(float64(i%10) / 10),
		}
	}
	want := ComputeTotals(items)

	g, _ := errgroup.WithContext(context.Background())
	results := make([]Totals, 8)
	for i := range results {
		i := i
		g.Go(func() error {
			results[i] = ComputeTotals(items)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("result %d differs (-want +got):\n%s", i, diff)
		}
	}
}

func TestComputeTotals_OverflowIsFlaggedAndSkipped(t *testing.T) {
	tests := []struct {
		name       string
		items      []models.Item
		wantWeight float64
		wantVolume float64
		want       []Diagnostic
	}{
		{
			name: "single product overflows",
			items: []models.Item{
				{ID: "huge", Quantity: models.Int(10), Weight: models.Float(1e308), Volume: models.Float(1)},
				{ID: "ok", Quantity: models.Int(2), Weight: models.Float(3)},
			},
			wantWeight: 6,
			wantVolume: 10,
			want: []Diagnostic{
				{Index: 0, ItemID: "huge", Field: "weight", Original: "1e+308", Reason: ReasonOverflow},
			},
		},
		{
			name: "running sum overflows",
			items: []models.Item{
				{ID: "a", Quantity: models.Int(1), Weight: models.Float(1e308)},
				{ID: "b", Quantity: models.Int(1), Weight: models.Float(1e308)},
			},
			wantWeight: 1e308,
			want: []Diagnostic{
				{Index: 1, ItemID: "b", Field: "weight", Original: "1e+308", Reason: ReasonOverflow},
			},
		},
		{
			name: "estimated weight and volume",
			items: []models.Item{
				{ID: "s", Kind: models.KindSimplified, Quantity: models.Int(3), EstimatedWeight: models.Float(math.MaxFloat64), Volume: models.Float(math.MaxFloat64)},
			},
			want: []Diagnostic{
				{Index: 0, ItemID: "s", Field: "estimated_weight", Original: "1.7976931348623157e+308", Reason: ReasonOverflow},
				{Index: 0, ItemID: "s", Field: "volume", Original: "1.7976931348623157e+308", Reason: ReasonOverflow},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.items)

			assert.False(t, math.IsInf(totals.TotalWeight, 0) || math.IsNaN(totals.TotalWeight))
			assert.False(t, math.IsInf(totals.TotalVolume, 0) || math.IsNaN(totals.TotalVolume))
			assert.Equal(t, tt.wantWeight, totals.TotalWeight)
			assert.Equal(t, tt.wantVolume, totals.TotalVolume)
			if diff := cmp.Diff(tt.want, totals.Diagnostics); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
