package options

import (
	"fmt"
	"strconv"
)

// valueSource records where an option value came from. Command-line values
// outrank config-file values for scalar options; repeatable options
// accumulate across both sources.
type valueSource int

const (
	sourceCLI valueSource = iota
	sourceFile
)

type slot struct {
	vals []string
	cli  bool
}

// Values holds the configuration values parsed from the command line and the
// config file against a merged schema. Lookups fall back to schema defaults.
type Values struct {
	schema *Set
	slots  map[string]*slot
}

func newValues(schema *Set) *Values {
	return &Values{schema: schema, slots: make(map[string]*slot)}
}

// Has reports whether the option was explicitly supplied or carries a
// schema default. A switch that was never passed reports false.
func (v *Values) Has(name string) bool {
	if _, ok := v.slots[name]; ok {
		return true
	}
	e, ok := v.schema.Lookup(name)
	return ok && e.HasDefault
}

// String returns the option's value, falling back to the schema default.
// Repeated occurrences resolve to the last one.
func (v *Values) String(name string) string {
	if s, ok := v.slots[name]; ok && len(s.vals) > 0 {
		return s.vals[len(s.vals)-1]
	}
	if e, ok := v.schema.Lookup(name); ok && e.HasDefault {
		return e.Default
	}
	return ""
}

// Strings returns every supplied occurrence of a repeatable option, in the
// order they were seen (command line first, then config file).
func (v *Values) Strings(name string) []string {
	if s, ok := v.slots[name]; ok {
		return s.vals
	}
	return nil
}

// Bool returns the option's value as a boolean. Unsupplied switches without a
// default report false.
func (v *Values) Bool(name string) bool {
	b, err := strconv.ParseBool(v.String(name))
	if err != nil {
		return false
	}
	return b
}

// Int returns the option's value as an integer.
func (v *Values) Int(name string) (int, error) {
	raw := v.String(name)
	if raw == "" {
		return 0, fmt.Errorf("option %q has no value", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("option %q: %w", name, err)
	}
	return n, nil
}

// Override replaces an option's value with one computed during bootstrap,
// such as the absolute data directory. The value outranks config-file input
// like a command-line value would.
func (v *Values) Override(name, value string) {
	v.slots[name] = &slot{vals: []string{value}, cli: true}
}

// apply records parsed values for an option. For scalar options a config-file
// value never replaces a command-line value; for repeatable options every
// occurrence from every source accumulates.
func (v *Values) apply(e Entry, vals []string, src valueSource) {
	s, ok := v.slots[e.Name]
	if !ok {
		v.slots[e.Name] = &slot{vals: append([]string(nil), vals...), cli: src == sourceCLI}
		return
	}
	if e.Repeatable {
		s.vals = append(s.vals, vals...)
		return
	}
	if src == sourceFile && s.cli {
		return
	}
	s.vals = append([]string(nil), vals...)
	if src == sourceCLI {
		s.cli = true
	}
}
