package container

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/scan"
)

// ── Construction inputs ───────────────────────────────────────────────────────

// Source yields the components found below a scan root. *scan.Catalog
// implements it.
type Source interface {
	Components(root string) ([]scan.Unit, error)
}

// Config is everything the container needs to know before it starts.
type Config struct {
	// ScanRoot is the import path below which components are discovered.
	ScanRoot string
	// StrictInjection turns unresolved injection points into errors instead
	// of leaving the field at its zero value.
	StrictInjection bool
}

// Option customises New.
type Option func(*options)

type options struct {
	source     Source
	processors []BeanPostProcessor
	logger     *logrus.Logger
}

// WithSource replaces the default component source (scan.Default).
func WithSource(s Source) Option {
	return func(o *options) { o.source = s }
}

// WithProcessors registers infrastructure post-processors. They run before
// every discovered processor, in the order given.
func WithProcessors(p ...BeanPostProcessor) Option {
	return func(o *options) { o.processors = append(o.processors, p...) }
}

// WithLogger sets the logger; the default is logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ── State ─────────────────────────────────────────────────────────────────────

// State is the construction stage a container has reached.
type State int

const (
	Uninitialized State = iota
	DefinitionsBuilt
	Ready
)

func (s State) String() string {
	switch s {
	case DefinitionsBuilt:
		return "definitions-built"
	case Ready:
		return "ready"
	}
	return "uninitialized"
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container discovers components, builds them and serves them by name.
//
// A Container only exists in the Ready state: New either finishes all three
// construction stages or returns an error. Once returned it is safe for
// concurrent use.
type Container struct {
	id  string
	cfg Config
	log *logrus.Entry

	stateMu sync.RWMutex
	state   State

	descriptors *DescriptorStore
	processors  []BeanPostProcessor

	cacheMu    sync.RWMutex
	singletons map[string]any
}

// New builds a container in three strictly ordered stages:
//
//  1. enumerate cfg.ScanRoot and build the descriptor store
//  2. collect the post-processors
//  3. create every singleton that is not a post-processor
//
// Any failure aborts construction and is returned; there is no partially
// usable container.
//
//	c, err := container.New(container.Config{ScanRoot: "github.com/acme/app/component"})
//	svc, err := c.GetBean("userService")
func New(cfg Config, opts ...Option) (*Container, error) {
	o := options{source: scan.Default, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	c := &Container{
		id:         id,
		cfg:        cfg,
		log:        logrus.NewEntry(o.logger).WithField("container", id[:8]),
		singletons: make(map[string]any),
	}
	c.log.WithField("root", cfg.ScanRoot).Info("starting container")

	units, err := o.source.Components(cfg.ScanRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "container: scan %q", cfg.ScanRoot)
	}
	store, err := BuildDefinitions(units, c.log)
	if err != nil {
		return nil, err
	}
	c.descriptors = store
	c.setState(DefinitionsBuilt)

	c.processors = append(c.processors, o.processors...)
	c.processors = append(c.processors, CollectProcessors(store, c.log)...)

	if err := c.preInstantiateSingletons(); err != nil {
		return nil, errors.WithMessage(err, "container: eager singleton pass")
	}
	c.setState(Ready)
	return c, nil
}

func (c *Container) preInstantiateSingletons() error {
	for _, d := range c.descriptors.All() {
		if d.Processor || d.Scope != Singleton {
			continue
		}
		if _, err := c.singleton(d); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()

	c.log.WithFields(logrus.Fields{
		"state":      s,
		"beans":      c.descriptors.Len(),
		"processors": len(c.processors),
		"singletons": c.singletonCount(),
	}).Info("container state changed")
}

// ── Retrieval ─────────────────────────────────────────────────────────────────

// GetBean returns the bean registered under name.
//
// Singletons come from the cache and are the same instance on every call.
// Prototypes are built on the calling goroutine on every call; a failure
// there is returned to the caller and leaves the container untouched.
// Unknown names and post-processors yield a *NotFoundError.
func (c *Container) GetBean(name string) (any, error) {
	d, ok := c.descriptors.Get(name)
	if !ok || d.Processor {
		return nil, &NotFoundError{Name: name}
	}
	if d.Scope == Singleton {
		return c.singleton(d)
	}
	return c.create(d)
}

// singleton returns the cached instance of d, building and caching it when
// it has not been built yet. That only happens during construction, when a
// singleton is injected before its own turn in the eager pass.
func (c *Container) singleton(d *Descriptor) (any, error) {
	c.cacheMu.RLock()
	bean, ok := c.singletons[d.Name]
	c.cacheMu.RUnlock()
	if ok {
		return bean, nil
	}

	bean, err := c.create(d)
	if err != nil {
		return nil, err
	}
	c.cacheMu.Lock()
	c.singletons[d.Name] = bean
	c.cacheMu.Unlock()
	return bean, nil
}

// getBeanByType returns the bean of the first descriptor, in discovery
// order, whose produced type is exactly t. found is false when none matches.
func (c *Container) getBeanByType(t reflect.Type) (bean any, found bool, err error) {
	d, ok := c.descriptors.FindByType(t)
	if !ok || d.Processor {
		return nil, false, nil
	}
	bean, err = c.GetBean(d.Name)
	if err != nil {
		return nil, false, err
	}
	return bean, true, nil
}

// ── Introspection ─────────────────────────────────────────────────────────────

// ID returns the unique id of this container.
func (c *Container) ID() string { return c.id }

// Config returns the configuration the container was built with.
func (c *Container) Config() Config { return c.cfg }

// State returns the construction stage reached.
func (c *Container) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// Descriptors returns every descriptor, post-processors included, in
// discovery order.
func (c *Container) Descriptors() []*Descriptor { return c.descriptors.All() }

// Descriptor returns the descriptor stored under name.
func (c *Container) Descriptor(name string) (*Descriptor, bool) {
	return c.descriptors.Get(name)
}

// Names returns the names GetBean can serve, in discovery order.
func (c *Container) Names() []string {
	all := c.descriptors.All()
	out := make([]string, 0, len(all))
	for _, d := range all {
		if !d.Processor {
			out = append(out, d.Name)
		}
	}
	return out
}

// Contains reports whether GetBean can serve name.
func (c *Container) Contains(name string) bool {
	d, ok := c.descriptors.Get(name)
	return ok && !d.Processor
}

// IsSingleton reports whether name is a singleton bean.
func (c *Container) IsSingleton(name string) bool {
	d, ok := c.descriptors.Get(name)
	return ok && !d.Processor && d.Scope == Singleton
}

// IsPrototype reports whether name is a prototype bean.
func (c *Container) IsPrototype(name string) bool {
	d, ok := c.descriptors.Get(name)
	return ok && !d.Processor && d.Scope == Prototype
}

// Processors returns the extension registry in invocation order.
func (c *Container) Processors() []BeanPostProcessor {
	out := make([]BeanPostProcessor, len(c.processors))
	copy(out, c.processors)
	return out
}

func (c *Container) singletonCount() int {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	return len(c.singletons)
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is GetBean plus a type assertion.
//
//	svc, err := container.Resolve[*service.UserService](c, "userService")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	bean, err := c.GetBean(name)
	if err != nil {
		return zero, err
	}
	typed, ok := bean.(T)
	if !ok {
		return zero, errors.Wrapf(ErrTypeMismatch, "%q is %T, not %s", name, bean, reflect.TypeOf((*T)(nil)).Elem())
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve: %v", err))
	}
	return typed
}
