package providers

import (
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/aop"
	"github.com/km-arc/beans/framework/container"
	"github.com/km-arc/beans/framework/metrics"
)

// Defaults returns the framework providers in the order their processors
// must run: metrics first so it counts every bean, aspects second.
func Defaults() []ServiceProvider {
	return []ServiceProvider{&MetricsServiceProvider{}, &AspectServiceProvider{}}
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider installs a metrics.Recorder when metrics.enabled is
// set. Recorder is nil otherwise.
type MetricsServiceProvider struct {
	Recorder *metrics.Recorder
}

func (p *MetricsServiceProvider) Name() string { return "metrics" }

func (p *MetricsServiceProvider) Register(r *Registry) error {
	if !r.Config().Metrics.Enabled {
		return nil
	}
	p.Recorder = metrics.NewRecorder(nil)
	r.AddProcessor(p.Recorder)
	return nil
}

func (p *MetricsServiceProvider) Boot(c *container.Container) error {
	if p.Recorder == nil {
		return nil
	}
	log.WithFields(log.Fields{
		"container": c.ID(),
		"created":   p.Recorder.Snapshot()[metrics.TotalCreated],
	}).Info("eager pass counted")
	return nil
}

// ── AspectServiceProvider ─────────────────────────────────────────────────────

// AspectServiceProvider installs an aop.Weaver built from the configured
// aspect rules. Registration fails when a rule names an aspect nobody
// registered. Registry defaults to aop.Default.
type AspectServiceProvider struct {
	BaseProvider
	Registry *aop.Registry

	Weaver *aop.Weaver
}

func (p *AspectServiceProvider) Name() string { return "aspects" }

func (p *AspectServiceProvider) Register(r *Registry) error {
	rules := r.Config().Rules()
	if len(rules) == 0 {
		return nil
	}
	w, err := aop.NewWeaver(p.Registry, rules...)
	if err != nil {
		return err
	}
	p.Weaver = w
	r.AddProcessor(w)
	return nil
}
