package models

// Unit is the unit-of-measure code attached to an item line.
type Unit string

const (
	UnitPiece       Unit = "UN"
	UnitKilogram    Unit = "KG"
	UnitLiter       Unit = "L"
	UnitMeter       Unit = "M"
	UnitSquareMeter Unit = "M2"
	UnitCubicMeter  Unit = "M3"
	UnitBox         Unit = "CX"
	UnitPackage     Unit = "PCT"
	UnitRoll        Unit = "ROL"
)

// Units lists every accepted unit code in display order.
var Units = []Unit{
	UnitPiece, UnitKilogram, UnitLiter, UnitMeter, UnitSquareMeter,
	UnitCubicMeter, UnitBox, UnitPackage, UnitRoll,
}

// Valid reports whether u is one of the known unit codes.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// ItemKind identifies which romaneio variant produced an item.
// The kind decides which magnitudes the item is expected to carry.
type ItemKind string

const (
	KindManual     ItemKind = "manual"
	KindSimplified ItemKind = "simplified"
	KindAutomated  ItemKind = "automated"
)

// Valid reports whether k is a known item kind.
func (k ItemKind) Valid() bool {
	switch k {
	case KindManual, KindSimplified, KindAutomated:
		return true
	}
	return false
}

// Field names used in diagnostics and requirement checks.
const (
	FieldQuantity        = "quantity"
	FieldWeight          = "weight"
	FieldEstimatedWeight = "estimated_weight"
	FieldVolume          = "volume"
	FieldConfidence      = "confidence"
)

// RequiredFields returns the numeric fields an item of this kind must carry.
// A required field that is absent is reported as an anomaly by the aggregator;
// absent optional fields simply contribute zero.
func (k ItemKind) RequiredFields() []string {
	switch k {
	case KindManual:
		return []string{FieldQuantity, FieldWeight, FieldVolume}
	case KindSimplified:
		return []string{FieldQuantity, FieldEstimatedWeight}
	case KindAutomated:
		return []string{FieldQuantity, FieldWeight, FieldVolume, FieldConfidence}
	default:
		return []string{FieldQuantity}
	}
}

// Item represents one line of a packing list.
//
// Numeric fields are pointers so that "missing" can be told apart from zero.
// Items are treated as values: collection operations copy them and never
// mutate an item in place.
type Item struct {
	// ID is the opaque identifier, unique within its collection.
	ID string `json:"id"`

	// Kind is the romaneio variant that produced the item.
	Kind ItemKind `json:"kind"`

	ProductCode string `json:"product_code,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Location    string `json:"location,omitempty"`

	// Category is the grouping tag shown in breakdown charts.
	Category string `json:"category,omitempty"`

	// Source records where an automated item came from (e.g. "OCR + AI").
	Source string `json:"source,omitempty"`

	Quantity *int `json:"quantity,omitempty"`
	Unit     Unit `json:"unit,omitempty"`

	// Weight is the per-unit weight in kilograms.
	Weight *float64 `json:"weight,omitempty"`

	// EstimatedWeight is the per-unit weight guess of the simplified variant.
	EstimatedWeight *float64 `json:"estimated_weight,omitempty"`

	// Volume is the per-unit volume in cubic meters.
	Volume *float64 `json:"volume,omitempty"`

	// Confidence is the recognition confidence in [0,1] of automated items.
	Confidence *float64 `json:"confidence,omitempty"`

	IsCleaned  bool `json:"is_cleaned"`
	IsVerified bool `json:"is_verified"`
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.Quantity = cloneInt(it.Quantity)
	out.Weight = cloneFloat(it.Weight)
	out.EstimatedWeight = cloneFloat(it.EstimatedWeight)
	out.Volume = cloneFloat(it.Volume)
	out.Confidence = cloneFloat(it.Confidence)
	return out
}

// Int returns a pointer to v, for populating optional item fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for populating optional item fields.
func Float(v float64) *float64 { return &v }

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
