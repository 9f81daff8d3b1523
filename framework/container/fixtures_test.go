package container_test

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/beans/framework/container"
	"github.com/km-arc/beans/framework/scan"
)

// ── journal ───────────────────────────────────────────────────────────────────

// recorder is an append-only event log shared by fixtures and processors.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

var journal = &recorder{}

// ── fixtures ──────────────────────────────────────────────────────────────────

type userDAO struct {
	scan.Component `component:"userDAO"`
}

type userService struct {
	scan.Component `component:"userService"`

	dao *userDAO `autowired:"true"`
}

type badScope struct {
	scan.Component `scope:"foo"`
}

type car struct {
	scan.Component

	inits int
}

func (c *car) AfterPropertiesSet() error {
	c.inits++
	journal.add("init:car")
	return nil
}

type ticket struct {
	scan.Component `scope:"prototype"`

	Car   *car `autowired:"true"`
	inits int
	// carAtInit records whether Car was already injected when the init
	// callback ran.
	carAtInit bool
}

func (t *ticket) AfterPropertiesSet() error {
	t.inits++
	t.carAtInit = t.Car != nil
	return nil
}

// emptyProto declares nothing but the marker.
type emptyProto struct {
	scan.Component `scope:"prototype"`
}

type unregistered struct{}

// shadowedDep returns a type named like the dep in
// TestInjection_SameNamedTypesStayDistinct but declared in another scope.
func shadowedDep() any {
	type dep struct {
		scan.Component `component:"otherDep"`

		n int
	}
	return (*dep)(nil)
}

type lonely struct {
	scan.Component

	Missing *unregistered `autowired:"true"`
}

type byName struct {
	scan.Component `component:"byName"`

	dao   *userDAO `resource:"userDAO"`
	ghost *userDAO `resource:"ghost"`
}

type wrongName struct {
	scan.Component

	dao *car `resource:"userDAO"`
}

type brokenInit struct {
	scan.Component
}

func (*brokenInit) AfterPropertiesSet() error { return errors.New("boom") }

var flaky atomic.Bool

type flakyProto struct {
	scan.Component `scope:"prototype"`
}

func (*flakyProto) AfterPropertiesSet() error {
	if flaky.Load() {
		return errors.New("flaky init")
	}
	return nil
}

type panicky struct {
	scan.Component `scope:"prototype"`
}

func (*panicky) AfterPropertiesSet() error { panic("kaboom") }

// auditProcessor is discovered through the catalog like any component.
type auditProcessor struct {
	scan.Component
	container.BaseProcessor
}

func (*auditProcessor) AfterInit(bean any, name string) any {
	journal.add("audit:" + name)
	return bean
}

type dupA struct {
	scan.Component `component:"dup"`
}

type dupB struct {
	scan.Component `component:"dup"`
}

type greeter interface{ Greet() string }

type english struct {
	scan.Component
}

func (*english) Greet() string { return "hello" }

type polite struct {
	scan.Component

	G greeter `autowired:"true"`
}

// ── processors passed through WithProcessors ──────────────────────────────────

type recordingProcessor struct {
	id int
	j  *recorder
}

func (p *recordingProcessor) BeforeInit(bean any, name string) any {
	p.j.add(fmt.Sprintf("before:%d:%s", p.id, name))
	return bean
}

func (p *recordingProcessor) AfterInit(bean any, name string) any {
	p.j.add(fmt.Sprintf("after:%d:%s", p.id, name))
	return bean
}

// wrapped is what substitutingProcessor hands out instead of the real bean.
type wrapped struct{ inner any }

type substitutingProcessor struct {
	target string
}

func (p *substitutingProcessor) BeforeInit(any, string) any { return nil }

func (p *substitutingProcessor) AfterInit(bean any, name string) any {
	if name == p.target {
		return &wrapped{inner: bean}
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

var root = reflect.TypeOf(userDAO{}).PkgPath()

func catalog(prototypes ...any) *scan.Catalog {
	c := scan.NewCatalog()
	for _, p := range prototypes {
		c.Register(p)
	}
	return c
}

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

func build(t *testing.T, cfg container.Config, cat *scan.Catalog, opts ...container.Option) *container.Container {
	t.Helper()
	if cfg.ScanRoot == "" {
		cfg.ScanRoot = root
	}
	opts = append([]container.Option{container.WithSource(cat), container.WithLogger(quietLogger())}, opts...)
	c, err := container.New(cfg, opts...)
	require.NoError(t, err)
	require.Equal(t, container.Ready, c.State())
	return c
}

func tryBuild(cfg container.Config, cat *scan.Catalog, opts ...container.Option) (*container.Container, error) {
	if cfg.ScanRoot == "" {
		cfg.ScanRoot = root
	}
	opts = append([]container.Option{container.WithSource(cat), container.WithLogger(quietLogger())}, opts...)
	return container.New(cfg, opts...)
}
