package plugin

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/apphost/internal/logfields"
	"git.home.luguber.info/inful/apphost/internal/options"
)

// Managed wraps a Plugin with its lifecycle state. The registry exclusively
// owns every Managed instance; other components only borrow references during
// lifecycle calls.
type Managed struct {
	impl  Plugin
	state State
}

// Name returns the wrapped plugin's name.
func (m *Managed) Name() string {
	return m.impl.Name()
}

// State returns the plugin's current lifecycle state.
func (m *Managed) State() State {
	return m.state
}

// Impl exposes the wrapped plugin so peers that pulled it in as a dependency
// can use its concrete API after initializing it.
func (m *Managed) Impl() Plugin {
	return m.impl
}

// Initialize drives the registered → initialized transition. It is a no-op
// once the plugin has left the registered state, which makes the nested
// dependency pulls performed inside Init safe even when a plugin is requested
// repeatedly or cyclically. The state advances before Init runs so a cycle
// terminates instead of recursing; the registry records the plugin only after
// its Init completed, which is what puts dependencies ahead of their
// dependents in initialization order.
func (m *Managed) Initialize(reg *Registry, vals *options.Values) error {
	if m.state != StateRegistered {
		return nil
	}
	m.state = StateInitialized

	slog.Debug("Initializing plugin", logfields.Plugin(m.Name()))
	if err := m.impl.Init(reg, vals); err != nil {
		return fmt.Errorf("initialize plugin %s: %w", m.Name(), err)
	}

	reg.markInitialized(m)
	return nil
}

// Startup drives the initialized → started transition. Plugins that never
// left the registered state are skipped entirely.
func (m *Managed) Startup(reg *Registry) error {
	if m.state != StateInitialized {
		return nil
	}

	slog.Debug("Starting plugin", logfields.Plugin(m.Name()))
	if err := m.impl.Start(); err != nil {
		return fmt.Errorf("start plugin %s: %w", m.Name(), err)
	}

	m.state = StateStarted
	reg.markStarted(m)
	return nil
}

// Shutdown drives the started → stopped transition. Stopped is terminal.
func (m *Managed) Shutdown() {
	if m.state != StateStarted {
		return
	}
	m.state = StateStopped

	slog.Debug("Stopping plugin", logfields.Plugin(m.Name()))
	if err := m.impl.Stop(); err != nil {
		slog.Error("Plugin failed to stop cleanly", logfields.Plugin(m.Name()), logfields.Error(err))
	}
}
