package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ParseError reports malformed command-line arguments or config-file input.
type ParseError struct {
	Source string // "command line" or the config file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// flagSet binds a schema into a pflag set. Order is preserved so usage output
// matches schema order.
func flagSet(schema *Set) *pflag.FlagSet {
	fs := pflag.NewFlagSet("apphost", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {} // callers render usage themselves
	for _, e := range schema.Entries() {
		switch {
		case e.Repeatable:
			fs.StringArray(e.Name, nil, e.Description)
		case e.Switch:
			fs.BoolP(e.Name, e.Shorthand, false, e.Description)
		default:
			fs.StringP(e.Name, e.Shorthand, e.Default, e.Description)
		}
	}
	return fs
}

// ParseArgs parses command-line arguments against the merged schema and
// returns the resulting values. Only flags the user actually passed are
// recorded; everything else resolves through schema defaults.
func ParseArgs(schema *Set, args []string) (*Values, error) {
	fs := flagSet(schema)
	if err := fs.Parse(args); err != nil {
		return nil, &ParseError{Source: "command line", Err: err}
	}

	vals := newValues(schema)
	var visitErr error
	fs.Visit(func(f *pflag.Flag) {
		e, ok := schema.Lookup(f.Name)
		if !ok {
			return
		}
		if e.Repeatable {
			arr, err := fs.GetStringArray(f.Name)
			if err != nil {
				visitErr = err
				return
			}
			vals.apply(e, arr, sourceCLI)
			return
		}
		vals.apply(e, []string{f.Value.String()}, sourceCLI)
	})
	if visitErr != nil {
		return nil, &ParseError{Source: "command line", Err: visitErr}
	}
	return vals, nil
}

// Usage renders the human-readable help text for the merged schema.
func Usage(schema *Set) string {
	return "Application Options:\n" + flagSet(schema).FlagUsages()
}
