package scan

import (
	"reflect"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrRootNotFound is returned when a scan root is empty or no registered
// package lives at or below it.
var ErrRootNotFound = errors.New("scan: root not found")

// Unit is one discovered component: its struct type plus the metadata read
// from its declaration.
type Unit struct {
	Type reflect.Type
	Meta Metadata
}

// Catalog holds registered component types in registration order.
type Catalog struct {
	mu    sync.RWMutex
	types []reflect.Type
	seen  map[reflect.Type]bool
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{seen: make(map[reflect.Type]bool)}
}

// Default is the process-wide catalog filled by Register.
var Default = NewCatalog()

// Register adds prototype's type to the Default catalog. Called from init().
func Register(prototype any) {
	Default.Register(prototype)
}

// Register adds the struct type behind prototype to the catalog.
// prototype may be a struct value, a pointer to one, or a typed nil pointer.
//
// Registering the same type twice panics: it can only happen through a
// programming mistake at init time, and database/sql.Register does the same.
func (c *Catalog) Register(prototype any) {
	if prototype == nil {
		panic("scan: Register called with nil")
	}
	t := reflect.TypeOf(prototype)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic("scan: component must be a struct type, got " + t.String())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen[t] {
		panic("scan: component already registered: " + t.String())
	}
	c.seen[t] = true
	c.types = append(c.types, t)
	log.Debugf("scan: registered %s", t)
}

// Types returns every registered type in registration order.
func (c *Catalog) Types() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]reflect.Type, len(c.types))
	copy(out, c.types)
	return out
}

// Enumerate returns the registered types whose package path is root or lies
// below it, in registration order.
func (c *Catalog) Enumerate(root string) ([]reflect.Type, error) {
	root = strings.TrimSuffix(strings.TrimSpace(root), "/")
	if root == "" {
		return nil, ErrRootNotFound
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []reflect.Type
	for _, t := range c.types {
		if underRoot(t.PkgPath(), root) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, &RootError{Root: root}
	}
	return out, nil
}

// Components enumerates root and describes every type found there, dropping
// types that do not carry the Component marker.
func (c *Catalog) Components(root string) ([]Unit, error) {
	types, err := c.Enumerate(root)
	if err != nil {
		return nil, err
	}
	units := make([]Unit, 0, len(types))
	for _, t := range types {
		meta, ok := Describe(t)
		if !ok {
			log.Debugf("scan: %s is not a component, skipping", t)
			continue
		}
		units = append(units, Unit{Type: t, Meta: meta})
	}
	return units, nil
}

// RootError reports a scan root that resolves to no registered package.
type RootError struct{ Root string }

func (e *RootError) Error() string {
	return "scan: no components registered under " + e.Root
}

// Is lets errors.Is(err, ErrRootNotFound) match.
func (e *RootError) Is(target error) bool { return target == ErrRootNotFound }

func underRoot(pkg, root string) bool {
	return pkg == root || strings.HasPrefix(pkg, root+"/")
}
