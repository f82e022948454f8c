package cleaning

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mmynk/logflow/internal/models"
)

// Issue describes a problem found while cleaning one item.
type Issue struct {
	Index   int    // Position of the item in the input collection
	ItemID  string // ID of the item
	Rule    string // Name of the rule that raised the issue
	Message string
}

// Result is the outcome of a cleaning pass.
type Result struct {
	OriginalCount int
	CleanedCount  int
	RemovedCount  int
	Warnings      []Issue
	Errors        []Issue

	// Items are the surviving items, in input order, marked as cleaned.
	Items []models.Item
}

type entry struct {
	index int
	item  models.Item
}

type pass struct {
	entries []entry
	result  Result
}

// Apply runs every definition in the set, in priority order, over a copy of
// items. Inactive definitions are skipped. The input is never modified.
func Apply(rules RuleSet, items []models.Item) Result {
	p := &pass{result: Result{OriginalCount: len(items)}}
	for i, it := range items {
		p.entries = append(p.entries, entry{index: i, item: it.Clone()})
	}

	for _, def := range rules.Sorted() {
		if !def.Active {
			continue
		}
		p.apply(def)
	}

	p.result.Items = make([]models.Item, 0, len(p.entries))
	for _, e := range p.entries {
		e.item.IsCleaned = true
		p.result.Items = append(p.result.Items, e.item)
	}
	p.result.CleanedCount = len(p.entries)
	p.result.RemovedCount = p.result.OriginalCount - p.result.CleanedCount
	return p.result
}

func (p *pass) apply(def Definition) {
	switch r := def.Rule.(type) {
	case TrimWhitespace:
		p.rewrite(r.Fields, func(s string) string { return strings.Join(strings.Fields(s), " ") })
	case StandardizeCase:
		p.rewrite(r.Fields, caser(r.Mode))
	case RemoveSpecialChars:
		p.rewrite(r.Fields, func(s string) string { return stripSpecial(s, r.Keep) })
	case RemoveDuplicates:
		p.dedupe(def.Name, r.Fields)
	case ValidateFormat:
		p.validate(def.Name, r)
	case ReplaceValues:
		p.rewrite([]Field{r.Field}, func(s string) string {
			if repl, ok := r.Replacements[s]; ok {
				return repl
			}
			return s
		})
	case MergeColumns:
		p.merge(r)
	default:
		// Rule is sealed; a new variant must be handled above.
		panic(fmt.Sprintf("cleaning: unhandled rule type %T", def.Rule))
	}
}

func (p *pass) rewrite(fields []Field, fn func(string) string) {
	if len(fields) == 0 {
		fields = TextFields
	}
	for i := range p.entries {
		it := &p.entries[i].item
		for _, f := range fields {
			f.set(it, fn(f.get(it)))
		}
	}
}

func (p *pass) dedupe(rule string, fields []Field) {
	seen := make(map[[blake2b.Size256]byte]int)
	kept := p.entries[:0:0]
	for _, e := range p.entries {
		sum := fingerprint(e.item, fields)
		if first, dup := seen[sum]; dup {
			p.result.Warnings = append(p.result.Warnings, Issue{
				Index:   e.index,
				ItemID:  e.item.ID,
				Rule:    rule,
				Message: fmt.Sprintf("duplicate of item at index %d removed", first),
			})
			continue
		}
		seen[sum] = e.index
		kept = append(kept, e)
	}
	p.entries = kept
}

func (p *pass) validate(rule string, r ValidateFormat) {
	kept := p.entries[:0:0]
	for _, e := range p.entries {
		value := r.Field.get(&e.item)
		if r.Pattern.MatchString(value) {
			kept = append(kept, e)
			continue
		}
		issue := Issue{
			Index:   e.index,
			ItemID:  e.item.ID,
			Rule:    rule,
			Message: fmt.Sprintf("%s %q does not match %s", r.Field, value, r.Pattern),
		}
		if r.Drop {
			p.result.Errors = append(p.result.Errors, issue)
			continue
		}
		p.result.Warnings = append(p.result.Warnings, issue)
		kept = append(kept, e)
	}
	p.entries = kept
}

func (p *pass) merge(r MergeColumns) {
	for i := range p.entries {
		it := &p.entries[i].item
		var parts []string
		for _, f := range r.Sources {
			if v := f.get(it); v != "" {
				parts = append(parts, v)
			}
		}
		r.Target.set(it, strings.Join(parts, r.Separator))
	}
}

func caser(mode CaseMode) func(string) string {
	switch mode {
	case CaseLower:
		c := cases.Lower(language.BrazilianPortuguese)
		return c.String
	case CaseTitle:
		c := cases.Title(language.BrazilianPortuguese)
		return c.String
	default:
		c := cases.Upper(language.BrazilianPortuguese)
		return c.String
	}
}

func stripSpecial(s, keep string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || strings.ContainsRune(keep, r) {
			return r
		}
		return -1
	}, s)
}

// fingerprint hashes the identifying values of an item. With no explicit
// fields the whole line (text and numbers) is compared.
func fingerprint(it models.Item, fields []Field) [blake2b.Size256]byte {
	var buf bytes.Buffer
	keyFields := fields
	if len(keyFields) == 0 {
		keyFields = TextFields
	}
	for _, f := range keyFields {
		buf.WriteString(f.get(&it))
		buf.WriteByte(0)
	}
	if len(fields) == 0 {
		writeInt(&buf, it.Quantity)
		for _, v := range []*float64{it.Weight, it.EstimatedWeight, it.Volume} {
			writeFloat(&buf, v)
		}
	}
	return blake2b.Sum256(buf.Bytes())
}

func writeInt(buf *bytes.Buffer, v *int) {
	if v != nil {
		buf.WriteString(strconv.Itoa(*v))
	}
	buf.WriteByte(0)
}

func writeFloat(buf *bytes.Buffer, v *float64) {
	if v != nil {
		buf.WriteString(strconv.FormatFloat(*v, 'g', -1, 64))
	}
	buf.WriteByte(0)
}
