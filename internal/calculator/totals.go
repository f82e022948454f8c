package calculator

import (
	"math"
	"strconv"

	"github.com/mmynk/logflow/internal/models"
)

// Reason classifies why a value was replaced by zero.
type Reason string

const (
	ReasonNegative   Reason = "negative"
	ReasonNonFinite  Reason = "non_finite"
	ReasonMissing    Reason = "missing"
	ReasonOutOfRange Reason = "out_of_range"
	ReasonOverflow   Reason = "overflow"
)

// Diagnostic records one anomalous value found while aggregating.
type Diagnostic struct {
	Index    int    // Position of the item in the collection
	ItemID   string // Opaque ID of the item, if any
	Field    string // e.g. "quantity", "weight"
	Original string // Textual form of the offending value ("-3", "NaN", "")
	Reason   Reason
}

// Totals is the derived summary of a collection.
// It is recomputed from the items on demand and never mutated on its own.
type Totals struct {
	TotalItems  int
	TotalWeight float64
	TotalVolume float64

	// AverageConfidence is nil when no item carries a confidence value,
	// including the empty collection.
	AverageConfidence *float64

	CountByCategory Counts
	CountByType     Counts

	CleanedCount  int
	VerifiedCount int

	Diagnostics []Diagnostic
}

// ComputeTotals aggregates a collection into Totals.
//
// Anomalous values (negative, NaN/Inf, missing when the item kind requires
// them, confidence outside [0,1]) count as zero and are reported in
// Totals.Diagnostics, as does a contribution large enough to overflow a sum.
// The computation itself never fails and every total stays finite.
//
// Per-item contributions:
//
//	weight contribution = weight × quantity (estimated_weight when weight is absent)
//	volume contribution = volume × quantity
func ComputeTotals(items []models.Item) Totals {
	var (
		totals        Totals
		confidenceSum float64
		confidenceN   int
	)

	for i, item := range items {
		d := diagnoser{index: i, itemID: item.ID, required: requiredSet(item.Kind)}

		qty := d.quantity(item.Quantity)
		totals.TotalItems += qty

		weight, weightField := d.weight(item)
		totals.TotalWeight = d.accumulate(weightField, totals.TotalWeight, weight, qty)

		volume := d.magnitude(models.FieldVolume, item.Volume)
		totals.TotalVolume = d.accumulate(models.FieldVolume, totals.TotalVolume, volume, qty)

		if conf, ok := d.confidence(item.Confidence); ok {
			confidenceSum += conf
			confidenceN++
		}

		if item.IsCleaned {
			totals.CleanedCount++
		}
		if item.IsVerified {
			totals.VerifiedCount++
		}

		totals.Diagnostics = append(totals.Diagnostics, d.found...)
	}

	if confidenceN > 0 {
		avg := confidenceSum / float64(confidenceN)
		totals.AverageConfidence = &avg
	}

	totals.CountByCategory = GroupBy(items, ByCategory)
	totals.CountByType = GroupBy(items, ByKind)

	return totals
}

// diagnoser sanitises the numeric fields of one item and collects anomalies.
type diagnoser struct {
	index    int
	itemID   string
	required map[string]bool
	found    []Diagnostic
}

func (d *diagnoser) flag(field, original string, reason Reason) {
	d.found = append(d.found, Diagnostic{
		Index:    d.index,
		ItemID:   d.itemID,
		Field:    field,
		Original: original,
		Reason:   reason,
	})
}

func (d *diagnoser) quantity(q *int) int {
	if q == nil {
		if d.required[models.FieldQuantity] {
			d.flag(models.FieldQuantity, "", ReasonMissing)
		}
		return 0
	}
	if *q < 0 {
		d.flag(models.FieldQuantity, strconv.Itoa(*q), ReasonNegative)
		return 0
	}
	return *q
}

// weight prefers the measured weight and falls back to the estimate. It also
// returns the field the value came from.
func (d *diagnoser) weight(item models.Item) (float64, string) {
	switch {
	case item.Weight != nil:
		return d.magnitude(models.FieldWeight, item.Weight), models.FieldWeight
	case item.EstimatedWeight != nil:
		return d.magnitude(models.FieldEstimatedWeight, item.EstimatedWeight), models.FieldEstimatedWeight
	}
	d.magnitude(models.FieldWeight, nil)
	d.magnitude(models.FieldEstimatedWeight, nil)
	return 0, models.FieldWeight
}

// accumulate adds magnitude × qty to sum. A contribution that would make
// the sum non-finite is flagged as overflow and counts as zero.
func (d *diagnoser) accumulate(field string, sum, magnitude float64, qty int) float64 {
	next, ok := addFinite(sum, magnitude*float64(qty))
	if !ok {
		d.flag(field, formatFloat(magnitude), ReasonOverflow)
	}
	return next
}

func (d *diagnoser) magnitude(field string, v *float64) float64 {
	if v == nil {
		if d.required[field] {
			d.flag(field, "", ReasonMissing)
		}
		return 0
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		d.flag(field, formatFloat(*v), ReasonNonFinite)
		return 0
	}
	if *v < 0 {
		d.flag(field, formatFloat(*v), ReasonNegative)
		return 0
	}
	return *v
}

// confidence returns the value to average and whether the item takes part
// in the average at all. Anomalous confidences still count, as zero.
func (d *diagnoser) confidence(v *float64) (float64, bool) {
	if v == nil {
		if d.required[models.FieldConfidence] {
			d.flag(models.FieldConfidence, "", ReasonMissing)
		}
		return 0, false
	}
	switch {
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		d.flag(models.FieldConfidence, formatFloat(*v), ReasonNonFinite)
		return 0, true
	case *v < 0 || *v > 1:
		d.flag(models.FieldConfidence, formatFloat(*v), ReasonOutOfRange)
		return 0, true
	}
	return *v, true
}

// addFinite returns sum+v, or sum unchanged and false when v or the result
// is not finite.
func addFinite(sum, v float64) (float64, bool) {
	next := sum + v
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return sum, false
	}
	return next, true
}

func requiredSet(kind models.ItemKind) map[string]bool {
	fields := kind.RequiredFields()
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
