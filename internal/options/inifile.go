package options

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteDefault generates a config file at path from the config schema:
// one block per entry, comment line from the description, assignment line
// from the default. A switch with no explicit default renders as false; any
// other option without a default renders as an empty assignment. Output is
// deterministic for a given schema.
//
// Callers only invoke this when path does not exist yet; an existing file is
// user-owned and is never rewritten.
func WriteDefault(path string, schema *Set) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	var buf bytes.Buffer
	for _, e := range schema.Entries() {
		if e.Description != "" {
			fmt.Fprintf(&buf, "# %s\n", e.Description)
		}
		switch {
		case e.HasDefault:
			fmt.Fprintf(&buf, "%s = %s\n", e.Name, e.Default)
		case e.Switch:
			fmt.Fprintf(&buf, "%s = false\n", e.Name)
		default:
			fmt.Fprintf(&buf, "%s = \n", e.Name)
		}
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ParseFile parses a line-oriented config file against the config schema and
// merges the values into vals. Lines starting with # are comments, blank
// lines separate entries, and everything else must be a key = value
// assignment. Keys that are not part of the schema are ignored, and an empty
// value leaves the option unset. Command-line values already present in vals
// keep precedence for scalar options.
func ParseFile(path string, schema *Set, vals *Values) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, rawVal, found := strings.Cut(line, "=")
		if !found {
			return &ParseError{Source: path, Err: fmt.Errorf("line %d: expected key = value, got %q", lineNo, line)}
		}
		key = strings.TrimSpace(key)
		val := os.ExpandEnv(strings.TrimSpace(rawVal))
		if val == "" {
			continue
		}

		e, ok := schema.Lookup(key)
		if !ok {
			continue
		}
		vals.apply(e, []string{val}, sourceFile)
	}
	if err := scanner.Err(); err != nil {
		return &ParseError{Source: path, Err: err}
	}
	return nil
}
