package node

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry holds models by name. It is safe for concurrent use.
type Registry struct {
	models map[string]Populator
	mu     sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]Populator),
	}
}

// Register adds models. Registering the same model twice is a no-op;
// a different model under a taken name is an error.
func (r *Registry) Register(models ...Populator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, model := range models {
		if isNil(model) || model.Name() == "" {
			return ErrEmptyName
		}

		name := model.Name()
		if existing, exists := r.models[name]; exists {
			if existing == model {
				continue
			}

			return fmt.Errorf("%w: %s", ErrDuplicateModel, name)
		}

		r.models[name] = model
	}

	return nil
}

// Lookup finds a model by name. A nil registry holds nothing.
func (r *Registry) Lookup(name string) (Populator, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	return model, ok
}

// Names returns the registered model names in ascending order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortedKeys(r.models)
}

// Reachable returns root followed by every model its schema reaches through
// nested descriptors, the rest ordered by name. Ref descriptors that do not
// resolve are skipped.
func (r *Registry) Reachable(root Populator) []Populator {
	if isNil(root) {
		return nil
	}

	var (
		dealer Dealer
		found  []Populator
	)

	dealer.Needs(root)
	for model, ok := dealer.NextNeeds(); ok; model, ok = dealer.NextNeeds() {
		found = append(found, model)

		schema := model.Schema()
		for _, name := range sortedKeys(schema) {
			for _, nested := range r.nestedModels(schema[name]) {
				dealer.Needs(nested)
			}
		}
	}

	slices.SortFunc(found[1:], func(a, b Populator) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return found
}

func (r *Registry) nestedModels(d Descriptor) []Populator {
	if d == nil {
		return nil
	}

	kind := d.Kind()
	if kind.IsCollection() {
		return r.nestedModels(elemOf(d))
	}

	if !kind.IsModel() {
		return nil
	}

	switch d := d.(type) {
	case ModelDescriptor:
		if !isNil(d.Model) {
			return []Populator{d.Model}
		}
	case RefDescriptor:
		if model, ok := r.Lookup(d.Name); ok {
			return []Populator{model}
		}
	}

	return nil
}
