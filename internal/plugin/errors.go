package plugin

import "fmt"

// NotFoundError reports a registry lookup for a name that was never
// registered. It is surfaced to the caller rather than swallowed; during
// bootstrap it is fatal.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to find plugin: %s", e.Name)
}

// DuplicateError reports an attempt to register a plugin under a name that is
// already present. Re-registration is a programmer or configuration error,
// not a runtime condition to retry.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("plugin %s already registered", e.Name)
}
