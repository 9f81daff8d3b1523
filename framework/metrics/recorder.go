// Package metrics counts what the container builds.
//
// Recorder is a container.BeanPostProcessor backed by a go-metrics
// registry. Install it ahead of other processors so every bean is counted,
// including the ones a later processor replaces.
package metrics

import (
	"sort"

	gometrics "github.com/rcrowley/go-metrics"
)

const (
	// TotalCreated counts every bean that completed AfterInit.
	TotalCreated = "beans.created"
	// TotalInitializing counts beans that entered BeforeInit.
	TotalInitializing = "beans.initializing"
)

// Recorder counts bean construction per name and in total. It is safe for
// concurrent use.
type Recorder struct {
	registry gometrics.Registry
}

// NewRecorder returns a Recorder writing to reg, or to a fresh registry when
// reg is nil.
func NewRecorder(reg gometrics.Registry) *Recorder {
	if reg == nil {
		reg = gometrics.NewRegistry()
	}
	return &Recorder{registry: reg}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() gometrics.Registry { return r.registry }

func (r *Recorder) BeforeInit(bean any, _ string) any {
	r.counter(TotalInitializing).Inc(1)
	return bean
}

func (r *Recorder) AfterInit(bean any, name string) any {
	r.counter(TotalCreated).Inc(1)
	r.counter(BeanCounter(name)).Inc(1)
	return bean
}

// Created returns how many instances of name have been built.
// Reading an unknown name does not register a counter.
func (r *Recorder) Created(name string) int64 {
	if c, ok := r.registry.Get(BeanCounter(name)).(gometrics.Counter); ok {
		return c.Count()
	}
	return 0
}

// Snapshot returns the current value of every counter.
func (r *Recorder) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	r.registry.Each(func(name string, m interface{}) {
		if c, ok := m.(gometrics.Counter); ok {
			out[name] = c.Count()
		}
	})
	return out
}

// Names returns the counter names in sorted order.
func (r *Recorder) Names() []string {
	snap := r.Snapshot()
	names := make([]string, 0, len(snap))
	for n := range snap {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BeanCounter is the counter name used for one bean.
func BeanCounter(name string) string { return "beans." + name + ".created" }

func (r *Recorder) counter(name string) gometrics.Counter {
	return gometrics.GetOrRegisterCounter(name, r.registry)
}
