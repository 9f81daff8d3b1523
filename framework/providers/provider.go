package providers

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/config"
	"github.com/km-arc/beans/framework/container"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider contributes infrastructure to an application in two
// phases.
//
// Register runs before the container exists. It reads the configuration and
// adds post-processors, which the container installs ahead of any processor
// it discovers itself.
//
// Boot runs once the container is Ready, in registration order. It may
// inspect beans but must not assume any particular one exists.
//
//	type AuditProvider struct{ providers.BaseProvider }
//
//	func (p *AuditProvider) Register(r *providers.Registry) error {
//	    r.AddProcessor(&audit.Processor{})
//	    return nil
//	}
type ServiceProvider interface {
	Name() string
	Register(r *Registry) error
	Boot(c *container.Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider supplies a no-op Boot. Embed it and implement the rest.
type BaseProvider struct{}

func (BaseProvider) Boot(*container.Container) error { return nil }

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry runs providers and collects what they contribute. It is used from
// a single goroutine during application start-up.
type Registry struct {
	cfg        *config.Config
	providers  []ServiceProvider
	registered map[string]bool
	processors []container.BeanPostProcessor
	booted     bool
}

// NewRegistry returns a registry handing cfg to its providers.
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{cfg: cfg, registered: make(map[string]bool)}
}

// Config returns the configuration providers read from.
func (r *Registry) Config() *config.Config { return r.cfg }

// Register runs p.Register. A provider whose name is already registered is
// skipped.
func (r *Registry) Register(p ServiceProvider) error {
	if r.registered[p.Name()] {
		return nil
	}
	if r.booted {
		return errors.Errorf("providers: %s registered after boot", p.Name())
	}
	if err := p.Register(r); err != nil {
		return errors.Wrapf(err, "providers: register %s", p.Name())
	}
	r.registered[p.Name()] = true
	r.providers = append(r.providers, p)
	log.WithField("provider", p.Name()).Debug("provider registered")
	return nil
}

// AddProcessor appends an infrastructure post-processor. Processors run in
// the order they were added.
func (r *Registry) AddProcessor(p container.BeanPostProcessor) {
	r.processors = append(r.processors, p)
}

// Processors returns the processors added so far.
func (r *Registry) Processors() []container.BeanPostProcessor {
	out := make([]container.BeanPostProcessor, len(r.processors))
	copy(out, r.processors)
	return out
}

// Boot calls Boot on every provider, once.
func (r *Registry) Boot(c *container.Container) error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, p := range r.providers {
		if err := p.Boot(c); err != nil {
			return errors.Wrapf(err, "providers: boot %s", p.Name())
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *Registry) Booted() bool { return r.booted }

// Providers returns the registered providers in order.
func (r *Registry) Providers() []ServiceProvider {
	out := make([]ServiceProvider, len(r.providers))
	copy(out, r.providers)
	return out
}
