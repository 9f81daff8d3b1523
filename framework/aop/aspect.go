package aop

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownAspect is returned by NewWeaver for a rule naming an aspect
	// that was never registered.
	ErrUnknownAspect = errors.New("aop: unknown aspect")

	// ErrInvalidRule is returned by NewWeaver for a rule without an aspect
	// or bean name.
	ErrInvalidRule = errors.New("aop: invalid rule")
)

// ProxyFactory wraps target in a proxy whose methods go through d. It
// returns false when target does not have the shape the factory knows.
type ProxyFactory func(target any, d *Dispatcher) (proxy any, ok bool)

// Aspect is a named piece of advice together with the proxy that applies it.
type Aspect struct {
	Name   string
	Advice Advice
	Proxy  ProxyFactory
}

// Registry holds aspects in registration order.
type Registry struct {
	mu      sync.RWMutex
	aspects map[string]Aspect
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{aspects: make(map[string]Aspect)}
}

// Default is the registry aop.Register writes to.
var Default = NewRegistry()

// Register adds a to the default registry. Call it from init().
func Register(a Aspect) { Default.Register(a) }

// Register adds a to r. It panics on an empty name, a nil proxy factory or
// a name registered twice; all three are programmer errors.
func (r *Registry) Register(a Aspect) {
	if a.Name == "" {
		panic("aop: aspect without a name")
	}
	if a.Proxy == nil {
		panic("aop: aspect " + a.Name + " has no proxy factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.aspects[a.Name]; exists {
		panic("aop: aspect already registered: " + a.Name)
	}
	r.aspects[a.Name] = a
	r.order = append(r.order, a.Name)
}

// Lookup returns the aspect registered under name.
func (r *Registry) Lookup(name string) (Aspect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.aspects[name]
	return a, ok
}

// Names returns the registered aspect names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
