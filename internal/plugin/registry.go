package plugin

import (
	"git.home.luguber.info/inful/apphost/internal/foundation"
)

// Registry owns every plugin instance for one application, keyed by name,
// together with three ordered views: registration order, initialization
// order, and startup order. Startup order is always a subsequence of
// initialization order and no plugin appears twice in either.
//
// All registry mutation happens on the application's main goroutine — during
// bootstrap before the event loop starts and during shutdown after it
// returns — so the registry relies on single-goroutine confinement instead of
// locking.
type Registry struct {
	all         map[string]*Managed
	order       []*Managed
	initialized []*Managed
	started     []*Managed
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{all: make(map[string]*Managed)}
}

// Register inserts a plugin under its name and returns the managed handle.
// Registering a name twice fails with a DuplicateError.
func (r *Registry) Register(p Plugin) (*Managed, error) {
	name := p.Name()
	if _, exists := r.all[name]; exists {
		return nil, &DuplicateError{Name: name}
	}
	m := &Managed{impl: p}
	r.all[name] = m
	r.order = append(r.order, m)
	return m, nil
}

// Find returns the plugin registered under name, or nil. It never fails.
func (r *Registry) Find(name string) *Managed {
	return r.all[name]
}

// Get returns the plugin registered under name, or a NotFoundError carrying
// the requested name. Callers can recover instead of unwinding.
func (r *Registry) Get(name string) foundation.Result[*Managed, *NotFoundError] {
	if m, ok := r.all[name]; ok {
		return foundation.Ok[*Managed, *NotFoundError](m)
	}
	return foundation.Err[*Managed](&NotFoundError{Name: name})
}

// All returns every registered plugin in registration order.
func (r *Registry) All() []*Managed {
	return r.order
}

// Initialized returns plugins in the order their initialization completed.
func (r *Registry) Initialized() []*Managed {
	return r.initialized
}

// Started returns running plugins in startup order.
func (r *Registry) Started() []*Managed {
	return r.started
}

// markInitialized appends to the initialization order exactly once.
func (r *Registry) markInitialized(m *Managed) {
	for _, existing := range r.initialized {
		if existing == m {
			return
		}
	}
	r.initialized = append(r.initialized, m)
}

// markStarted appends to the startup order exactly once.
func (r *Registry) markStarted(m *Managed) {
	for _, existing := range r.started {
		if existing == m {
			return
		}
	}
	r.started = append(r.started, m)
}

// Remove deletes the named plugin from the lookup map. The ordered views are
// untouched; shutdown clears them separately once every plugin has stopped.
func (r *Registry) Remove(name string) {
	delete(r.all, name)
}

// Clear empties the registry. Only used at the end of shutdown, after every
// running plugin has been told to stop.
func (r *Registry) Clear() {
	r.all = make(map[string]*Managed)
	r.order = nil
	r.initialized = nil
	r.started = nil
}
