// Package cleaning applies typed data-cleaning rules to romaneio items.
//
// Each rule kind is its own struct carrying only the parameters that kind
// needs; Apply dispatches on the concrete type.
package cleaning

import (
	"regexp"
	"sort"

	"github.com/mmynk/logflow/internal/models"
)

// Kind names a rule variant as it appears in rule files.
type Kind string

const (
	KindRemoveDuplicates   Kind = "remove_duplicates"
	KindTrimWhitespace     Kind = "trim_whitespace"
	KindStandardizeCase    Kind = "standardize_case"
	KindRemoveSpecialChars Kind = "remove_special_chars"
	KindValidateFormat     Kind = "validate_format"
	KindReplaceValues      Kind = "replace_values"
	KindMergeColumns       Kind = "merge_columns"
)

// Field is a text field of an item that rules can read and rewrite.
type Field string

const (
	FieldProductCode Field = "product_code"
	FieldProductName Field = "product_name"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldNotes       Field = "notes"
	FieldLocation    Field = "location"
	FieldSource      Field = "source"
	FieldUnit        Field = "unit"
)

// TextFields lists every rewritable field. Rules with no explicit field list
// operate on all of them.
var TextFields = []Field{
	FieldProductCode, FieldProductName, FieldDescription, FieldCategory,
	FieldNotes, FieldLocation, FieldSource, FieldUnit,
}

func (f Field) valid() bool {
	for _, known := range TextFields {
		if f == known {
			return true
		}
	}
	return false
}

func (f Field) get(it *models.Item) string {
	switch f {
	case FieldProductCode:
		return it.ProductCode
	case FieldProductName:
		return it.ProductName
	case FieldDescription:
		return it.Description
	case FieldCategory:
		return it.Category
	case FieldNotes:
		return it.Notes
	case FieldLocation:
		return it.Location
	case FieldSource:
		return it.Source
	case FieldUnit:
		return string(it.Unit)
	}
	return ""
}

func (f Field) set(it *models.Item, v string) {
	switch f {
	case FieldProductCode:
		it.ProductCode = v
	case FieldProductName:
		it.ProductName = v
	case FieldDescription:
		it.Description = v
	case FieldCategory:
		it.Category = v
	case FieldNotes:
		it.Notes = v
	case FieldLocation:
		it.Location = v
	case FieldSource:
		it.Source = v
	case FieldUnit:
		it.Unit = models.Unit(v)
	}
}

// Rule is one cleaning operation. The set of implementations is closed.
type Rule interface {
	Kind() Kind
	isRule()
}

// TrimWhitespace trims leading/trailing space and collapses inner runs.
type TrimWhitespace struct {
	Fields []Field
}

// CaseMode selects the casing applied by StandardizeCase.
type CaseMode string

const (
	CaseUpper CaseMode = "upper"
	CaseLower CaseMode = "lower"
	CaseTitle CaseMode = "title"
)

// StandardizeCase rewrites fields to one casing.
type StandardizeCase struct {
	Fields []Field
	Mode   CaseMode
}

// RemoveSpecialChars drops every rune that is not a letter, digit or space,
// except those listed in Keep.
type RemoveSpecialChars struct {
	Fields []Field
	Keep   string
}

// RemoveDuplicates keeps the first item of every group sharing the same
// values in Fields.
type RemoveDuplicates struct {
	Fields []Field
}

// ValidateFormat checks Field against Pattern. Mismatches are reported as
// warnings, or as errors with the item dropped when Drop is set.
type ValidateFormat struct {
	Field   Field
	Pattern *regexp.Regexp
	Drop    bool
}

// ReplaceValues maps exact field values to replacements.
type ReplaceValues struct {
	Field        Field
	Replacements map[string]string
}

// MergeColumns joins the non-empty Sources into Target.
type MergeColumns struct {
	Sources   []Field
	Target    Field
	Separator string
}

func (TrimWhitespace) Kind() Kind     { return KindTrimWhitespace }
func (StandardizeCase) Kind() Kind    { return KindStandardizeCase }
func (RemoveSpecialChars) Kind() Kind { return KindRemoveSpecialChars }
func (RemoveDuplicates) Kind() Kind   { return KindRemoveDuplicates }
func (ValidateFormat) Kind() Kind     { return KindValidateFormat }
func (ReplaceValues) Kind() Kind      { return KindReplaceValues }
func (MergeColumns) Kind() Kind       { return KindMergeColumns }

func (TrimWhitespace) isRule()     {}
func (StandardizeCase) isRule()    {}
func (RemoveSpecialChars) isRule() {}
func (RemoveDuplicates) isRule()   {}
func (ValidateFormat) isRule()     {}
func (ReplaceValues) isRule()      {}
func (MergeColumns) isRule()       {}

// Definition is a named, prioritised rule as configured by an operator.
type Definition struct {
	Name        string
	Description string
	Active      bool
	Priority    int
	Rule        Rule
}

// RuleSet is an ordered list of rule definitions.
type RuleSet []Definition

// Sorted returns the definitions ordered by ascending priority, keeping file
// order for equal priorities.
func (rs RuleSet) Sorted() RuleSet {
	out := make(RuleSet, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Select returns the definitions whose names are listed, in set order.
// An empty names list selects every active definition.
func (rs RuleSet) Select(names []string) RuleSet {
	if len(names) == 0 {
		var out RuleSet
		for _, d := range rs {
			if d.Active {
				out = append(out, d)
			}
		}
		return out
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out RuleSet
	for _, d := range rs {
		if wanted[d.Name] {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds a definition by name.
func (rs RuleSet) Lookup(name string) (Definition, bool) {
	for _, d := range rs {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// DefaultRules is the built-in rule set used when no rules file is configured.
func DefaultRules() RuleSet {
	return RuleSet{
		{
			Name: "trim", Description: "Trim and collapse whitespace in every text field",
			Active: true, Priority: 1, Rule: TrimWhitespace{},
		},
		{
			Name: "codes-upper", Description: "Upper-case product codes and unit codes",
			Active: true, Priority: 2, Rule: StandardizeCase{Fields: []Field{FieldProductCode, FieldUnit}, Mode: CaseUpper},
		},
		{
			Name: "codes-strip", Description: "Strip punctuation from product codes",
			Active: true, Priority: 3, Rule: RemoveSpecialChars{Fields: []Field{FieldProductCode}, Keep: "-_"},
		},
		{
			Name: "dedupe", Description: "Drop repeated lines",
			Active: true, Priority: 4, Rule: RemoveDuplicates{},
		},
		{
			Name: "unit-format", Description: "Flag unknown unit codes",
			Active: false, Priority: 5,
			Rule: ValidateFormat{Field: FieldUnit, Pattern: regexp.MustCompile(`^(UN|KG|L|M|M2|M3|CX|PCT|ROL)$`)},
		},
	}
}
