package calculator

import (
	"sort"
	"strconv"

	"github.com/mmynk/logflow/internal/models"
)

// Unspecified is the bucket for items whose tag is empty.
const Unspecified = "unspecified"

// Selector extracts the tag an element is grouped on.
type Selector[T any] func(T) string

// Item selectors.
var (
	ByCategory Selector[models.Item] = func(it models.Item) string { return it.Category }
	ByKind     Selector[models.Item] = func(it models.Item) string { return string(it.Kind) }
	ByUnit     Selector[models.Item] = func(it models.Item) string { return string(it.Unit) }
	BySource   Selector[models.Item] = func(it models.Item) string { return it.Source }
	ByCleaned  Selector[models.Item] = func(it models.Item) string { return strconv.FormatBool(it.IsCleaned) }
	ByVerified Selector[models.Item] = func(it models.Item) string { return strconv.FormatBool(it.IsVerified) }
)

// Romaneio selectors.
var (
	ByRomaneioType   Selector[models.Romaneio] = func(r models.Romaneio) string { return string(r.Type) }
	ByRomaneioStatus Selector[models.Romaneio] = func(r models.Romaneio) string { return string(r.Status) }
)

// ItemSelector resolves a field name ("category", "type", "unit", "source",
// "cleaned", "verified") to an item selector.
func ItemSelector(field string) (Selector[models.Item], bool) {
	switch field {
	case "category":
		return ByCategory, true
	case "type", "kind":
		return ByKind, true
	case "unit":
		return ByUnit, true
	case "source":
		return BySource, true
	case "cleaned":
		return ByCleaned, true
	case "verified":
		return ByVerified, true
	}
	return nil, false
}

// GroupCount is the number of elements carrying one tag value.
type GroupCount struct {
	Key   string
	Count int
}

// Counts is a grouped breakdown in first-seen order.
type Counts []GroupCount

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, g := range c {
		total += g.Count
	}
	return total
}

// Get returns the count for key, or zero.
func (c Counts) Get(key string) int {
	for _, g := range c {
		if g.Key == key {
			return g.Count
		}
	}
	return 0
}

// Map returns the counts keyed by tag.
func (c Counts) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, g := range c {
		m[g.Key] = g.Count
	}
	return m
}

// GroupBy counts elements per tag value. Every distinct tag appears once, in
// the order it was first seen; empty tags are counted under Unspecified.
// The counts always sum to len(items).
func GroupBy[T any](items []T, key Selector[T]) Counts {
	counts := Counts{}
	index := make(map[string]int)
	for _, item := range items {
		k := key(item)
		if k == "" {
			k = Unspecified
		}
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, GroupCount{Key: k})
		}
		counts[i].Count++
	}
	return counts
}

// GroupShare is the percentage of the total held by one tag value.
type GroupShare struct {
	Key     string
	Percent float64
}

// Shares is a percentage breakdown in the same order as its Counts.
type Shares []GroupShare

// Get returns the percentage for key, or zero.
func (s Shares) Get(key string) float64 {
	for _, g := range s {
		if g.Key == key {
			return g.Percent
		}
	}
	return 0
}

// Map returns the percentages keyed by tag.
func (s Shares) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, g := range s {
		m[g.Key] = g.Percent
	}
	return m
}

// PercentageBreakdown converts counts into percentages rounded to one decimal.
//
// Rounding uses the largest-remainder method on tenths of a percent, so the
// rounded values always add up to exactly 100.0 for a positive total. Ties go
// to the key seen first. When the total is zero every key gets 0.
func PercentageBreakdown(counts Counts) Shares {
	shares := make(Shares, len(counts))
	total := 0
	for i, g := range counts {
		shares[i].Key = g.Key
		if g.Count > 0 {
			total += g.Count
		}
	}
	if total == 0 {
		return shares
	}

	const scale = 1000 // tenths of a percent
	tenths := make([]int, len(counts))
	remainders := make([]int, len(counts))
	assigned := 0
	for i, g := range counts {
		c := max(g.Count, 0)
		tenths[i] = c * scale / total
		remainders[i] = c * scale % total
		assigned += tenths[i]
	}

	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, i := range order[:scale-assigned] {
		tenths[i]++
	}

	for i := range shares {
		shares[i].Percent = float64(tenths[i]) / 10
	}
	return shares
}
