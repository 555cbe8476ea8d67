package action

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/meshkit/core"
)

// Registry maps action names to actions. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds actions; a duplicate name is an error and nothing after it is registered.
func (r *Registry) Register(actions ...Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range actions {
		if _, exists := r.actions[a.Name()]; exists {
			return fmt.Errorf("action %q already registered", a.Name())
		}
		r.actions[a.Name()] = a
	}
	return nil
}

// Get returns the action registered under name.
func (r *Registry) Get(name string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// Names returns the registered action names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for n := range r.actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run invokes the named action. Unknown names fail with core.ErrInvalidArgument.
func (r *Registry) Run(ctx context.Context, name string, in Input) (Result, error) {
	a, ok := r.Get(name)
	if !ok {
		return Result{}, core.InvalidArgumentf("unknown action %q", name)
	}
	return a.Run(ctx, in)
}
