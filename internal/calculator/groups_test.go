package calculator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/logflow/internal/models"
)

func TestGroupBy(t *testing.T) {
	romaneios := []models.Romaneio{
		{ID: "1", Type: models.TypeManual, Status: models.StatusDraft},
		{ID: "2", Type: models.TypeManual, Status: models.StatusCompleted},
		{ID: "3", Type: models.TypeSimplified, Status: ""},
	}

	tests := []struct {
		name string
		got  Counts
		want Counts
	}{
		{
			name: "by type keeps first-seen order",
			got:  GroupBy(romaneios, ByRomaneioType),
			want: Counts{{Key: "manual", Count: 2}, {Key: "simplified", Count: 1}},
		},
		{
			name: "by status buckets missing values",
			got:  GroupBy(romaneios, ByRomaneioStatus),
			want: Counts{{Key: "draft", Count: 1}, {Key: "completed", Count: 1}, {Key: Unspecified, Count: 1}},
		},
		{
			name: "empty input",
			got:  GroupBy([]models.Item{}, ByCategory),
			want: Counts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("GroupBy() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupBy_CountsSumToLength(t *testing.T) {
	items := []models.Item{
		{Kind: models.KindManual}, {Kind: models.KindAutomated}, {},
		{Kind: models.KindManual}, {Kind: models.KindSimplified},
	}

	for _, field := range []string{"category", "type", "unit", "source", "cleaned", "verified"} {
		sel, ok := ItemSelector(field)
		if !ok {
			t.Fatalf("ItemSelector(%q) not found", field)
		}
		if got := GroupBy(items, sel).Total(); got != len(items) {
			t.Errorf("GroupBy(%s) total = %d, want %d", field, got, len(items))
		}
	}

	if _, ok := ItemSelector("colour"); ok {
		t.Error("expected unknown field to be rejected")
	}
}

func TestPercentageBreakdown(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   map[string]float64
	}{
		{
			name:   "two thirds and one third",
			counts: GroupBy([]models.Item{{Kind: "manual"}, {Kind: "manual"}, {Kind: "simplified"}}, ByKind),
			want:   map[string]float64{"manual": 66.7, "simplified": 33.3},
		},
		{
			name:   "three equal thirds round to one hundred",
			counts: Counts{{"a", 1}, {"b", 1}, {"c", 1}},
			want:   map[string]float64{"a": 33.4, "b": 33.3, "c": 33.3},
		},
		{
			name:   "zero total",
			counts: Counts{{"a", 0}, {"b", 0}},
			want:   map[string]float64{"a": 0, "b": 0},
		},
		{
			name:   "single bucket",
			counts: Counts{{"only", 9}},
			want:   map[string]float64{"only": 100},
		},
		{
			name:   "zero-count bucket stays at zero",
			counts: Counts{{"a", 1}, {"b", 0}, {"c", 2}},
			want:   map[string]float64{"a": 33.3, "b": 0, "c": 66.7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentageBreakdown(tt.counts)
			for key, want := range tt.want {
				if math.Abs(got.Get(key)-want) > 1e-9 {
					t.Errorf("%s = %v, want %v", key, got.Get(key), want)
				}
			}
			if len(got) != len(tt.counts) {
				t.Errorf("got %d shares, want %d", len(got), len(tt.counts))
			}
		})
	}
}

func TestPercentageBreakdown_SumsToHundred(t *testing.T) {
	inputs := []Counts{
		{{"a", 1}, {"b", 1}, {"c", 1}},
		{{"a", 7}, {"b", 3}, {"c", 11}, {"d", 13}},
		{{"a", 1}, {"b", 998}, {"c", 1}},
		{{"a", 0}, {"b", 0}},
	}

	for _, counts := range inputs {
		var sum float64
		for _, s := range PercentageBreakdown(counts) {
			sum += s.Percent
		}
		want := 100.0
		if counts.Total() == 0 {
			want = 0
		}
		if math.Abs(sum-want) > 1e-6 {
			t.Errorf("PercentageBreakdown(%v) sums to %v, want %v", counts, sum, want)
		}
	}
}
