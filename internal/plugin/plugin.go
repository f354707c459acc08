// Package plugin provides the host's plugin model: a capability interface
// implemented by concrete plugins, a managed wrapper enforcing the lifecycle
// state machine, and the registry that owns every plugin instance together
// with its ordering records.
package plugin

import (
	"git.home.luguber.info/inful/apphost/internal/options"
)

// Plugin is the capability interface a service module implements to be hosted.
// The registry stores handles to this interface, never concrete types.
type Plugin interface {
	// Name returns the unique plugin identifier, stable for the process
	// lifetime.
	Name() string

	// DeclareOptions fills the plugin's command-line and config-file option
	// contributions. Entries added to cfg are also part of the combined
	// command-line schema; entries added only to cli never appear in the
	// config file.
	DeclareOptions(cli, cfg *options.Set)

	// Init performs one-time initialization with the parsed configuration
	// values. A plugin declares its dependencies imperatively here by
	// pulling them in through reg.Get(name) and initializing them before
	// using them; the managed wrapper makes such nested calls idempotent.
	Init(reg *Registry, vals *options.Values) error

	// Start begins active operation. Called once, after every selected
	// plugin has been initialized, in initialization order.
	Start() error

	// Stop ends active operation. Called once, in reverse startup order.
	Stop() error
}

// State tracks a plugin's position in the lifecycle. States only advance;
// a stopped plugin is never revived.
type State int

const (
	StateRegistered State = iota
	StateInitialized
	StateStarted
	StateStopped
)

// String returns the lowercase state name used in logs.
func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateInitialized:
		return "initialized"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
