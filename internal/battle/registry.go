package battle

import (
	"log/slog"
	"sort"
	"sync"
)

// Factory builds an effect bound to owner.
type Factory func(id string, owner *Battler) Effect

// Registry maps effect identifiers to factories, per family.
// It is filled at load time and frozen before battles start; lookups never
// fail and unknown identifiers resolve to the family default.
type Registry struct {
	mu        sync.RWMutex
	factories map[Family]map[string]Factory
	frozen    bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Family]map[string]Factory)}
}

// Register binds id to factory. Registering the same id again replaces the
// previous factory. Panics once the registry is frozen.
func (r *Registry) Register(family Family, id string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("Registry.Register: registry is frozen")
	}
	m, ok := r.factories[family]
	if !ok {
		m = make(map[string]Factory)
		r.factories[family] = m
	}
	m[id] = factory
}

// RegisterAll binds several ids to the same factory.
func (r *Registry) RegisterAll(family Family, factory Factory, ids ...string) {
	for _, id := range ids {
		r.Register(family, id, factory)
	}
}

// Freeze makes the registry immutable.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Has reports whether id has a registered factory.
func (r *Registry) Has(family Family, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[family][id]
	return ok
}

// Create builds the effect registered for id, or the family default.
func (r *Registry) Create(family Family, id string, owner *Battler) Effect {
	r.mu.RLock()
	factory, ok := r.factories[family][id]
	r.mu.RUnlock()
	if !ok {
		if id != "" {
			slog.Debug("no effect registered, using default", "family", family, "id", id)
		}
		return NewDefault(family, id, owner)
	}
	e := factory(id, owner)
	if e == nil {
		return NewDefault(family, id, owner)
	}
	return e
}

// IDs returns the sorted registered identifiers of a family.
func (r *Registry) IDs(family Family) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories[family]))
	for id := range r.factories[family] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
