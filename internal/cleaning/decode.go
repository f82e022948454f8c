package cleaning

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRule is wrapped by every rule-definition error.
var ErrInvalidRule = errors.New("invalid cleaning rule")

// RuleDef is the on-disk form of a rule. Only the parameters that belong to
// Type may be set; Decode rejects the rest.
type RuleDef struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	Type        string `toml:"type" yaml:"type" json:"type"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Active      *bool  `toml:"active,omitempty" yaml:"active,omitempty" json:"active,omitempty"`
	Priority    int    `toml:"priority" yaml:"priority" json:"priority"`

	Fields       []string          `toml:"fields,omitempty" yaml:"fields,omitempty" json:"fields,omitempty"`
	Field        string            `toml:"field,omitempty" yaml:"field,omitempty" json:"field,omitempty"`
	Mode         string            `toml:"mode,omitempty" yaml:"mode,omitempty" json:"mode,omitempty"`
	Keep         string            `toml:"keep,omitempty" yaml:"keep,omitempty" json:"keep,omitempty"`
	Pattern      string            `toml:"pattern,omitempty" yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Drop         bool              `toml:"drop,omitempty" yaml:"drop,omitempty" json:"drop,omitempty"`
	Replacements map[string]string `toml:"replacements,omitempty" yaml:"replacements,omitempty" json:"replacements,omitempty"`
	Sources      []string          `toml:"sources,omitempty" yaml:"sources,omitempty" json:"sources,omitempty"`
	Target       string            `toml:"target,omitempty" yaml:"target,omitempty" json:"target,omitempty"`
	Separator    string            `toml:"separator,omitempty" yaml:"separator,omitempty" json:"separator,omitempty"`
}

// File is the layout of a rules file:
//
//	[[rules]]
//	name = "trim"
//	type = "trim_whitespace"
//	priority = 1
type File struct {
	Rules []RuleDef `toml:"rules" yaml:"rules"`
}

// Format is a rules-file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported rules file extension: %s", path)
}

// LoadFile reads and decodes a rules file.
func LoadFile(path string) (RuleSet, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes rules from data in the given format.
func Parse(data []byte, format Format) (RuleSet, error) {
	var file File
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse TOML rules: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML rules: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported rules format: %q", format)
	}
	return DecodeAll(file.Rules)
}

// Marshal encodes a rule set as a rules file in the given format.
func Marshal(rs RuleSet, format Format) ([]byte, error) {
	file := File{Rules: make([]RuleDef, 0, len(rs))}
	for _, d := range rs {
		file.Rules = append(file.Rules, Encode(d))
	}
	switch format {
	case FormatTOML:
		return toml.Marshal(file)
	case FormatYAML:
		return yaml.Marshal(file)
	}
	return nil, fmt.Errorf("unsupported rules format: %q", format)
}

// DecodeAll converts definitions into a rule set, checking name uniqueness.
func DecodeAll(defs []RuleDef) (RuleSet, error) {
	rs := make(RuleSet, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		d, err := Decode(def)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("rule %d: %w: duplicate name %q", i, ErrInvalidRule, d.Name)
		}
		seen[d.Name] = true
		rs = append(rs, d)
	}
	return rs, nil
}

// params lists the parameters each kind accepts.
var params = map[Kind][]string{
	KindTrimWhitespace:     {"fields"},
	KindStandardizeCase:    {"fields", "mode"},
	KindRemoveSpecialChars: {"fields", "keep"},
	KindRemoveDuplicates:   {"fields"},
	KindValidateFormat:     {"field", "pattern", "drop"},
	KindReplaceValues:      {"field", "replacements"},
	KindMergeColumns:       {"sources", "target", "separator"},
}

// Decode converts one definition into its typed variant.
func Decode(def RuleDef) (Definition, error) {
	fail := func(format string, args ...any) (Definition, error) {
		return Definition{}, fmt.Errorf("%w %q: %s", ErrInvalidRule, def.Name, fmt.Sprintf(format, args...))
	}

	if def.Name == "" {
		return fail("name is required")
	}
	kind := Kind(def.Type)
	allowed, ok := params[kind]
	if !ok {
		return fail("unknown type %q", def.Type)
	}
	for _, p := range def.setParams() {
		if !contains(allowed, p) {
			return fail("parameter %q does not apply to %s", p, kind)
		}
	}

	out := Definition{
		Name:        def.Name,
		Description: def.Description,
		Active:      def.Active == nil || *def.Active,
		Priority:    def.Priority,
	}

	switch kind {
	case KindTrimWhitespace:
		fields, err := parseFields(def.Fields)
		if err != nil {
			return fail("%v", err)
		}
		out.Rule = TrimWhitespace{Fields: fields}

	case KindStandardizeCase:
		fields, err := parseFields(def.Fields)
		if err != nil {
			return fail("%v", err)
		}
		mode := CaseMode(def.Mode)
		switch mode {
		case "":
			mode = CaseUpper
		case CaseUpper, CaseLower, CaseTitle:
		default:
			return fail("unknown case mode %q", def.Mode)
		}
		out.Rule = StandardizeCase{Fields: fields, Mode: mode}

	case KindRemoveSpecialChars:
		fields, err := parseFields(def.Fields)
		if err != nil {
			return fail("%v", err)
		}
		out.Rule = RemoveSpecialChars{Fields: fields, Keep: def.Keep}

	case KindRemoveDuplicates:
		fields, err := parseFields(def.Fields)
		if err != nil {
			return fail("%v", err)
		}
		out.Rule = RemoveDuplicates{Fields: fields}

	case KindValidateFormat:
		field, err := parseField(def.Field)
		if err != nil {
			return fail("%v", err)
		}
		if def.Pattern == "" {
			return fail("pattern is required")
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return fail("bad pattern: %v", err)
		}
		out.Rule = ValidateFormat{Field: field, Pattern: re, Drop: def.Drop}

	case KindReplaceValues:
		field, err := parseField(def.Field)
		if err != nil {
			return fail("%v", err)
		}
		if len(def.Replacements) == 0 {
			return fail("replacements are required")
		}
		repl := make(map[string]string, len(def.Replacements))
		for k, v := range def.Replacements {
			repl[k] = v
		}
		out.Rule = ReplaceValues{Field: field, Replacements: repl}

	case KindMergeColumns:
		sources, err := parseFields(def.Sources)
		if err != nil {
			return fail("%v", err)
		}
		if len(sources) < 2 {
			return fail("at least two sources are required")
		}
		target, err := parseField(def.Target)
		if err != nil {
			return fail("%v", err)
		}
		sep := def.Separator
		if sep == "" {
			sep = " "
		}
		out.Rule = MergeColumns{Sources: sources, Target: target, Separator: sep}
	}

	return out, nil
}

// Encode converts a definition back to its on-disk form.
func Encode(d Definition) RuleDef {
	active := d.Active
	def := RuleDef{
		Name:        d.Name,
		Type:        string(d.Rule.Kind()),
		Description: d.Description,
		Active:      &active,
		Priority:    d.Priority,
	}
	switch r := d.Rule.(type) {
	case TrimWhitespace:
		def.Fields = fieldNames(r.Fields)
	case StandardizeCase:
		def.Fields = fieldNames(r.Fields)
		def.Mode = string(r.Mode)
	case RemoveSpecialChars:
		def.Fields = fieldNames(r.Fields)
		def.Keep = r.Keep
	case RemoveDuplicates:
		def.Fields = fieldNames(r.Fields)
	case ValidateFormat:
		def.Field = string(r.Field)
		def.Pattern = r.Pattern.String()
		def.Drop = r.Drop
	case ReplaceValues:
		def.Field = string(r.Field)
		def.Replacements = make(map[string]string, len(r.Replacements))
		for k, v := range r.Replacements {
			def.Replacements[k] = v
		}
	case MergeColumns:
		def.Sources = fieldNames(r.Sources)
		def.Target = string(r.Target)
		def.Separator = r.Separator
	}
	return def
}

func (def RuleDef) setParams() []string {
	var set []string
	if len(def.Fields) > 0 {
		set = append(set, "fields")
	}
	if def.Field != "" {
		set = append(set, "field")
	}
	if def.Mode != "" {
		set = append(set, "mode")
	}
	if def.Keep != "" {
		set = append(set, "keep")
	}
	if def.Pattern != "" {
		set = append(set, "pattern")
	}
	if def.Drop {
		set = append(set, "drop")
	}
	if len(def.Replacements) > 0 {
		set = append(set, "replacements")
	}
	if len(def.Sources) > 0 {
		set = append(set, "sources")
	}
	if def.Target != "" {
		set = append(set, "target")
	}
	if def.Separator != "" {
		set = append(set, "separator")
	}
	return set
}

func parseField(name string) (Field, error) {
	f := Field(name)
	if !f.valid() {
		return "", fmt.Errorf("unknown field %q", name)
	}
	return f, nil
}

func parseFields(names []string) ([]Field, error) {
	var out []Field
	for _, n := range names {
		f, err := parseField(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func fieldNames(fields []Field) []string {
	var out []string
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
