// Package options implements the host's merged option schema: every plugin
// contributes command-line and config-file entries, the host appends its own
// fixed entries, and the merged result drives CLI parsing, config-file
// generation, and config-file parsing.
package options

// Entry describes a single named option in a schema.
type Entry struct {
	// Name is the long option name, unique within a merged schema.
	Name string

	// Shorthand is an optional single-letter alias.
	Shorthand string

	// Description is the human-readable help text, also emitted as the
	// comment line above the entry in a generated config file.
	Description string

	// Default is the rendered default value. Only meaningful when
	// HasDefault is true.
	Default string

	// HasDefault distinguishes "defaults to empty string" from "no default".
	HasDefault bool

	// Switch marks a boolean option that takes no argument.
	Switch bool

	// Repeatable marks an option that may be given multiple times and
	// whose occurrences accumulate.
	Repeatable bool
}

// Set is an ordered option schema. Order is preserved across Add and Merge so
// that help output and generated config files are reproducible across runs.
type Set struct {
	entries []Entry
	index   map[string]int
}

// NewSet creates an empty schema.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add inserts an entry. When the name is already present the earlier
// declaration wins; a differing later description is folded into the earlier
// entry so both contributions stay visible in help and config output.
func (s *Set) Add(e Entry) {
	if i, ok := s.index[e.Name]; ok {
		if e.Description != "" && e.Description != s.entries[i].Description {
			if s.entries[i].Description == "" {
				s.entries[i].Description = e.Description
			} else {
				s.entries[i].Description += "; " + e.Description
			}
		}
		return
	}
	s.index[e.Name] = len(s.entries)
	s.entries = append(s.entries, e)
}

// String adds an option taking a string argument with a default value.
func (s *Set) String(name, shorthand, def, description string) {
	s.Add(Entry{Name: name, Shorthand: shorthand, Description: description, Default: def, HasDefault: true})
}

// StringNoDefault adds an option taking a string argument with no default.
func (s *Set) StringNoDefault(name, description string) {
	s.Add(Entry{Name: name, Description: description})
}

// Switch adds a boolean option that takes no argument.
func (s *Set) Switch(name, shorthand, description string) {
	s.Add(Entry{Name: name, Shorthand: shorthand, Description: description, Switch: true})
}

// Repeatable adds an option that may be supplied multiple times.
func (s *Set) Repeatable(name, description string) {
	s.Add(Entry{Name: name, Description: description, Repeatable: true})
}

// Merge folds other into s, preserving the relative order of both sides.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		s.Add(e)
	}
}

// Entries returns the schema entries in declaration order.
func (s *Set) Entries() []Entry {
	return s.entries
}

// Lookup returns the entry for name.
func (s *Set) Lookup(name string) (Entry, bool) {
	i, ok := s.index[name]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}
