package container

import (
	"reflect"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/km-arc/beans/framework/scan"
)

// ── Scope ─────────────────────────────────────────────────────────────────────

// Scope is the lifecycle policy of a bean.
type Scope int

const (
	// Singleton beans are built once, eagerly, and cached for the container's lifetime.
	Singleton Scope = iota
	// Prototype beans are built anew on every retrieval and never cached.
	Prototype
)

func (s Scope) String() string {
	if s == Prototype {
		return "prototype"
	}
	return "singleton"
}

// ParseScope converts a declared scope value. Matching ignores case; an empty
// value means Singleton.
func ParseScope(v string) (Scope, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "singleton":
		return Singleton, true
	case "prototype":
		return Prototype, true
	}
	return Singleton, false
}

// ── Type keys ─────────────────────────────────────────────────────────────────

// TypeKey names a Go type for logs and the introspection API. By-type
// matching needs equal keys and identical types, so *T never matches T or
// an interface T implements.
type TypeKey string

// KeyOf returns the TypeKey of t: the package-qualified name, prefixed with
// one "*" per pointer level.
//
//	container.KeyOf(reflect.TypeOf(&dao.UserDAO{}))  // "*github.com/km-arc/beans/demo/component/dao.UserDAO"
func KeyOf(t reflect.Type) TypeKey {
	var b strings.Builder
	for t.Kind() == reflect.Ptr {
		b.WriteByte('*')
		t = t.Elem()
	}
	if t.Name() == "" {
		b.WriteString(t.String())
	} else {
		b.WriteString(t.PkgPath())
		b.WriteByte('.')
		b.WriteString(t.Name())
	}
	return TypeKey(b.String())
}

// ── Descriptor ────────────────────────────────────────────────────────────────

// Descriptor is the static metadata the container uses to produce a bean.
// It is immutable once the definition pass is over.
type Descriptor struct {
	Name  string
	Scope Scope

	// Type is the component's struct type; beans are always *Type.
	Type reflect.Type
	// Key is the TypeKey of the produced pointer type.
	Key TypeKey

	Fields []scan.InjectionPoint

	// Processor is set when *Type implements BeanPostProcessor.
	Processor bool
	// Initializing is set when *Type implements InitializingBean.
	Initializing bool
}

// ── DescriptorStore ───────────────────────────────────────────────────────────

// DescriptorStore maps bean names to descriptors and remembers insertion
// order. It is written during the definition pass and only read afterwards;
// reads are safe from any goroutine.
type DescriptorStore struct {
	mu sync.RWMutex
	m  *orderedmap.OrderedMap[string, *Descriptor]
}

// NewDescriptorStore returns an empty store.
func NewDescriptorStore() *DescriptorStore {
	return &DescriptorStore{m: orderedmap.New[string, *Descriptor]()}
}

// Put stores d under d.Name. An existing entry with the same name is
// replaced in place and returned with replaced=true.
func (s *DescriptorStore) Put(d *Descriptor) (previous *Descriptor, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Set(d.Name, d)
}

// Get returns the descriptor stored under name.
func (s *DescriptorStore) Get(name string) (*Descriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Get(name)
}

// Len returns the number of descriptors.
func (s *DescriptorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Len()
}

// All returns the descriptors in insertion order.
func (s *DescriptorStore) All() []*Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Descriptor, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// FindByType returns the first descriptor, in insertion order, whose produced
// type is exactly t. Keys are only compared as a fast reject: two distinct
// types can share a key (function-local types of one package).
func (s *DescriptorStore) FindByType(t reflect.Type) (*Descriptor, bool) {
	k := KeyOf(t)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Key == k && reflect.PointerTo(pair.Value.Type) == t {
			return pair.Value, true
		}
	}
	return nil, false
}
