package policy

import (
	"fmt"
	"sort"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// Registry holds all monitored target policies.
// It is built once at startup and never mutated afterwards.
type Registry struct {
	targets map[string]TargetPolicy
}

// NewRegistry creates a registry with all default targets.
func NewRegistry() *Registry {
	r := &Registry{
		targets: make(map[string]TargetPolicy),
	}

	r.Register(NewChromeTarget())
	r.Register(NewInstagramTarget())
	r.Register(NewFacebookTarget())
	r.Register(NewWhatsAppTarget())

	return r
}

// NewRegistryWithTargets creates a registry with custom targets (for testing).
func NewRegistryWithTargets(targets ...TargetPolicy) *Registry {
	r := &Registry{
		targets: make(map[string]TargetPolicy),
	}
	for _, t := range targets {
		r.Register(t)
	}
	return r
}

// Register adds a target to the registry.
func (r *Registry) Register(t TargetPolicy) {
	r.targets[t.ID()] = t
}

// Get returns a target by ID.
func (r *Registry) Get(id string) (TargetPolicy, bool) {
	t, ok := r.targets[id]
	return t, ok
}

// GetAll returns all registered targets sorted by ID.
func (r *Registry) GetAll() []TargetPolicy {
	result := make([]TargetPolicy, 0, len(r.targets))
	for _, t := range r.targets {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// List returns all target IDs sorted.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.targets))
	for id := range r.targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Patterns returns the process patterns of a target.
func (r *Registry) Patterns(id string) ([]string, error) {
	t, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, id)
	}
	return t.ProcessPatterns(), nil
}

// RegistryTargetStore adapts Registry to implement domain.TargetStore interface.
type RegistryTargetStore struct {
	registry *Registry
}

// NewTargetStore creates a TargetStore backed by the default Registry.
func NewTargetStore() domain.TargetStore {
	return &RegistryTargetStore{registry: NewRegistry()}
}

// NewTargetStoreFromRegistry creates a TargetStore backed by r.
func NewTargetStoreFromRegistry(r *Registry) domain.TargetStore {
	return &RegistryTargetStore{registry: r}
}

func (s *RegistryTargetStore) Contains(id string) bool {
	_, ok := s.registry.Get(id)
	return ok
}

func (s *RegistryTargetStore) List() []string {
	return s.registry.List()
}

// Ensure RegistryTargetStore implements domain.TargetStore.
var _ domain.TargetStore = (*RegistryTargetStore)(nil)
