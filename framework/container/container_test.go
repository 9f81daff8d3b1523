package container_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/beans/framework/container"
	"github.com/km-arc/beans/framework/container/mock_container"
	"github.com/km-arc/beans/framework/scan"
)

// ── Scenarios ─────────────────────────────────────────────────────────────────

func TestScenario_UserServiceGetsUserDAO(t *testing.T) {
	c := build(t, container.Config{}, catalog((*userDAO)(nil), (*userService)(nil)))

	first, err := c.GetBean("userService")
	require.NoError(t, err)
	second, err := c.GetBean("userService")
	require.NoError(t, err)
	require.Same(t, first, second)

	dao, err := c.GetBean("userDAO")
	require.NoError(t, err)

	svc := first.(*userService)
	require.NotNil(t, svc.dao)
	assert.Same(t, dao, svc.dao)
}

func TestScenario_InvalidScopeAbortsConstruction(t *testing.T) {
	c, err := tryBuild(container.Config{}, catalog((*userDAO)(nil), (*badScope)(nil)))
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, container.ErrConfiguration))

	var cfgErr *container.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "foo", cfgErr.Scope)
	assert.Contains(t, err.Error(), `unknown scope "foo"`)
}

func TestScenario_UnknownNameLeavesOtherBeansAlone(t *testing.T) {
	c := build(t, container.Config{}, catalog((*userDAO)(nil), (*userService)(nil)))

	before, err := c.GetBean("userService")
	require.NoError(t, err)

	bean, err := c.GetBean("doesNotExist")
	assert.Nil(t, bean)
	require.Error(t, err)
	assert.True(t, errors.Is(err, container.ErrNotFound))

	var nf *container.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "doesNotExist", nf.Name)

	after, err := c.GetBean("userService")
	require.NoError(t, err)
	assert.Same(t, before, after)
	assert.Equal(t, container.Ready, c.State())
}

// ── Scopes ────────────────────────────────────────────────────────────────────

func TestPrototype_NewInstanceEveryCall(t *testing.T) {
	c := build(t, container.Config{}, catalog((*car)(nil), (*ticket)(nil)))

	a, err := c.GetBean("ticket")
	require.NoError(t, err)
	b, err := c.GetBean("ticket")
	require.NoError(t, err)
	require.NotSame(t, a, b)

	carBean, err := c.GetBean("car")
	require.NoError(t, err)
	for _, bean := range []any{a, b} {
		tk := bean.(*ticket)
		assert.Same(t, carBean, tk.Car, "each prototype is injected with the singleton")
		assert.Equal(t, 1, tk.inits)
		assert.True(t, tk.carAtInit, "fields are injected before AfterPropertiesSet")
	}
	assert.Equal(t, 1, carBean.(*car).inits)
	assert.True(t, c.IsPrototype("ticket"))
	assert.True(t, c.IsSingleton("car"))
}

func TestPrototype_MarkerOnlyComponentIsDistinct(t *testing.T) {
	c := build(t, container.Config{}, catalog((*emptyProto)(nil)))

	a, err := c.GetBean("emptyProto")
	require.NoError(t, err)
	b, err := c.GetBean("emptyProto")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.False(t, a == b)
}

func TestSingleton_BuiltOnDemandBeforeItsTurn(t *testing.T) {
	journal.reset()
	// ticket is a prototype so it is skipped by the eager pass; use a
	// singleton that depends on car and is registered first.
	type garage struct {
		scan.Component

		Car *car `autowired:"true"`
	}
	c := build(t, container.Config{}, catalog((*garage)(nil), (*car)(nil)))

	g, err := c.GetBean("garage")
	require.NoError(t, err)
	carBean, err := c.GetBean("car")
	require.NoError(t, err)

	assert.Same(t, carBean, g.(*garage).Car)
	assert.Equal(t, []string{"init:car"}, journal.all(), "car is built exactly once")
}

// ── Injection ─────────────────────────────────────────────────────────────────

func TestInjection_MissingCandidateLeftUnset(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c, err := container.New(container.Config{ScanRoot: root},
		container.WithSource(catalog((*lonely)(nil))),
		container.WithLogger(logger))
	require.NoError(t, err)

	bean, err := c.GetBean("lonely")
	require.NoError(t, err)
	assert.Nil(t, bean.(*lonely).Missing)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["field"] == "Missing" {
			warned = true
		}
	}
	assert.True(t, warned, "unresolved field is logged")
}

func TestInjection_SameNamedTypesStayDistinct(t *testing.T) {
	type dep struct {
		scan.Component

		n int
	}
	type user struct {
		scan.Component

		D *dep `autowired:"true"`
	}
	c := build(t, container.Config{StrictInjection: true}, catalog(shadowedDep(), (*dep)(nil), (*user)(nil)))

	other, err := c.GetBean("otherDep")
	require.NoError(t, err)
	mine, err := c.GetBean("dep")
	require.NoError(t, err)
	u, err := c.GetBean("user")
	require.NoError(t, err)

	assert.Equal(t, c.Descriptors()[0].Key, c.Descriptors()[1].Key, "both types share a key")
	assert.Same(t, mine, u.(*user).D)
	assert.NotEqual(t, reflect.TypeOf(other), reflect.TypeOf(u.(*user).D))
}

func TestInjection_StrictModeFailsOnMissingCandidate(t *testing.T) {
	c, err := tryBuild(container.Config{StrictInjection: true}, catalog((*lonely)(nil)))
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, container.ErrInjection))

	var injErr *container.InjectionError
	require.True(t, errors.As(err, &injErr))
	assert.Equal(t, "lonely", injErr.Bean)
	assert.Equal(t, "Missing", injErr.Field)
}

func TestInjection_ExactTypeOnly(t *testing.T) {
	c := build(t, container.Config{}, catalog((*english)(nil), (*polite)(nil)))

	bean, err := c.GetBean("polite")
	require.NoError(t, err)
	assert.Nil(t, bean.(*polite).G, "interface fields never match a concrete component")
}

func TestInjection_ByName(t *testing.T) {
	c := build(t, container.Config{}, catalog((*userDAO)(nil), (*byName)(nil)))

	bean, err := c.GetBean("byName")
	require.NoError(t, err)
	dao, err := c.GetBean("userDAO")
	require.NoError(t, err)

	bn := bean.(*byName)
	assert.Same(t, dao, bn.dao)
	assert.Nil(t, bn.ghost)
}

func TestInjection_ByNameStrictFailsOnUnknownName(t *testing.T) {
	_, err := tryBuild(container.Config{StrictInjection: true}, catalog((*userDAO)(nil), (*byName)(nil)))
	require.Error(t, err)

	var injErr *container.InjectionError
	require.True(t, errors.As(err, &injErr))
	assert.Equal(t, "ghost", injErr.Target)
}

func TestInjection_ByNameWrongTypeAlwaysFails(t *testing.T) {
	_, err := tryBuild(container.Config{}, catalog((*userDAO)(nil), (*wrongName)(nil)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, container.ErrInjection))
	assert.Contains(t, err.Error(), "not assignable")
}

func TestInjection_SingletonGetsFreshPrototype(t *testing.T) {
	type office struct {
		scan.Component

		T *ticket `autowired:"true"`
	}
	c := build(t, container.Config{}, catalog((*car)(nil), (*ticket)(nil), (*office)(nil)))

	o, err := c.GetBean("office")
	require.NoError(t, err)
	tk, err := c.GetBean("ticket")
	require.NoError(t, err)

	require.NotNil(t, o.(*office).T)
	assert.NotSame(t, tk, o.(*office).T)
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

func TestLifecycle_ErrorAbortsConstruction(t *testing.T) {
	c, err := tryBuild(container.Config{}, catalog((*brokenInit)(nil)))
	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, container.ErrLifecycle))
	assert.Contains(t, err.Error(), "boom")
}

func TestLifecycle_PrototypeErrorIsLocalToTheCall(t *testing.T) {
	c := build(t, container.Config{}, catalog((*userDAO)(nil), (*flakyProto)(nil)))
	dao, err := c.GetBean("userDAO")
	require.NoError(t, err)

	flaky.Store(true)
	defer flaky.Store(false)

	_, err = c.GetBean("flakyProto")
	require.Error(t, err)
	assert.True(t, errors.Is(err, container.ErrLifecycle))

	flaky.Store(false)
	_, err = c.GetBean("flakyProto")
	require.NoError(t, err)

	again, err := c.GetBean("userDAO")
	require.NoError(t, err)
	assert.Same(t, dao, again)
}

func TestLifecycle_PanicBecomesInstantiationError(t *testing.T) {
	c := build(t, container.Config{}, catalog((*userDAO)(nil), (*panicky)(nil)))

	bean, err := c.GetBean("panicky")
	assert.Nil(t, bean)
	require.Error(t, err)
	assert.True(t, errors.Is(err, container.ErrInstantiation))
	assert.Contains(t, err.Error(), "kaboom")
}

// ── Post-processors ───────────────────────────────────────────────────────────

func TestProcessors_DiscoveredAreNotBeans(t *testing.T) {
	journal.reset()
	c := build(t, container.Config{}, catalog((*auditProcessor)(nil), (*userDAO)(nil), (*car)(nil)))

	_, err := c.GetBean("auditProcessor")
	assert.True(t, errors.Is(err, container.ErrNotFound))
	assert.False(t, c.Contains("auditProcessor"))
	assert.Equal(t, []string{"userDAO", "car"}, c.Names())
	assert.Len(t, c.Descriptors(), 3)
	require.Len(t, c.Processors(), 1)

	assert.Equal(t, []string{"audit:userDAO", "init:car", "audit:car"}, journal.all())
}

func TestProcessors_InfrastructureRunBeforeDiscovered(t *testing.T) {
	journal.reset()
	rec := &recordingProcessor{id: 0, j: journal}
	c := build(t, container.Config{}, catalog((*auditProcessor)(nil), (*userDAO)(nil)),
		container.WithProcessors(rec))

	procs := c.Processors()
	require.Len(t, procs, 2)
	assert.Same(t, rec, procs[0])
	assert.Equal(t, []string{"before:0:userDAO", "after:0:userDAO", "audit:userDAO"}, journal.all())
}

func TestProcessors_HookOrderAroundInit(t *testing.T) {
	journal.reset()
	c := build(t, container.Config{}, catalog((*car)(nil)),
		container.WithProcessors(&recordingProcessor{id: 0, j: journal}, &recordingProcessor{id: 1, j: journal}))
	require.True(t, c.Contains("car"))

	assert.Equal(t, []string{
		"before:0:car",
		"before:1:car",
		"init:car",
		"after:0:car",
		"after:1:car",
	}, journal.all())
}

func TestProcessors_MockedInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock_container.NewMockBeanPostProcessor(ctrl)
	second := mock_container.NewMockBeanPostProcessor(ctrl)

	gomock.InOrder(
		first.EXPECT().BeforeInit(gomock.Any(), "car").Return(nil),
		second.EXPECT().BeforeInit(gomock.Any(), "car").Return(nil),
		first.EXPECT().AfterInit(gomock.Any(), "car").Return(nil),
		second.EXPECT().AfterInit(gomock.Any(), "car").Return(nil),
	)

	build(t, container.Config{}, catalog((*car)(nil)), container.WithProcessors(first, second))
}

func TestProcessors_BeforeInitReplacementReceivesInitCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	replacement := mock_container.NewMockInitializingBean(ctrl)
	proc := mock_container.NewMockBeanPostProcessor(ctrl)

	gomock.InOrder(
		proc.EXPECT().BeforeInit(gomock.Any(), "userDAO").Return(replacement),
		replacement.EXPECT().AfterPropertiesSet().Return(nil),
		proc.EXPECT().AfterInit(replacement, "userDAO").Return(nil),
	)

	c := build(t, container.Config{}, catalog((*userDAO)(nil)), container.WithProcessors(proc))
	bean, err := c.GetBean("userDAO")
	require.NoError(t, err)
	assert.Same(t, replacement, bean)
}

func TestProcessors_AfterInitSubstitutionIsCached(t *testing.T) {
	c := build(t, container.Config{}, catalog((*userDAO)(nil), (*userService)(nil)),
		container.WithProcessors(&substitutingProcessor{target: "userService"}))

	a, err := c.GetBean("userService")
	require.NoError(t, err)
	w, ok := a.(*wrapped)
	require.True(t, ok, "substituted bean is served")
	assert.IsType(t, &userService{}, w.inner)

	b, err := c.GetBean("userService")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

// ── Definitions ───────────────────────────────────────────────────────────────

func TestDefinitions_DuplicateNameLastWriteWins(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c, err := container.New(container.Config{ScanRoot: root},
		container.WithSource(catalog((*dupA)(nil), (*userDAO)(nil), (*dupB)(nil))),
		container.WithLogger(logger))
	require.NoError(t, err)

	d, ok := c.Descriptor("dup")
	require.True(t, ok)
	assert.Equal(t, "dupB", d.Type.Name())
	assert.Equal(t, []string{"dup", "userDAO"}, c.Names(), "the first slot is kept")

	bean, err := c.GetBean("dup")
	require.NoError(t, err)
	assert.IsType(t, &dupB{}, bean)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["bean"] == "dup" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestDefinitions_UnknownScanRoot(t *testing.T) {
	_, err := tryBuild(container.Config{ScanRoot: "example.com/missing"}, catalog((*userDAO)(nil)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, scan.ErrRootNotFound))
}

func TestDefinitions_Descriptor(t *testing.T) {
	c := build(t, container.Config{}, catalog((*car)(nil), (*ticket)(nil), (*auditProcessor)(nil)))

	d, ok := c.Descriptor("car")
	require.True(t, ok)
	assert.Equal(t, container.Singleton, d.Scope)
	assert.True(t, d.Initializing)
	assert.False(t, d.Processor)
	assert.Equal(t, container.TypeKey("*"+root+".car"), d.Key)

	d, ok = c.Descriptor("ticket")
	require.True(t, ok)
	assert.Equal(t, container.Prototype, d.Scope)
	require.Len(t, d.Fields, 1)
	assert.Equal(t, scan.ByType, d.Fields[0].Mode)

	d, ok = c.Descriptor("auditProcessor")
	require.True(t, ok)
	assert.True(t, d.Processor)
}

// ── Resolve ───────────────────────────────────────────────────────────────────

func TestResolve_Typed(t *testing.T) {
	c := build(t, container.Config{}, catalog((*userDAO)(nil), (*userService)(nil)))

	svc, err := container.Resolve[*userService](c, "userService")
	require.NoError(t, err)
	assert.NotNil(t, svc.dao)

	_, err = container.Resolve[*car](c, "userService")
	assert.True(t, errors.Is(err, container.ErrTypeMismatch))

	_, err = container.Resolve[*car](c, "nope")
	assert.True(t, errors.Is(err, container.ErrNotFound))

	assert.Panics(t, func() { container.MustResolve[*car](c, "nope") })
	assert.NotPanics(t, func() { container.MustResolve[*userDAO](c, "userDAO") })
}

// ── Concurrency ───────────────────────────────────────────────────────────────

func TestGetBean_ConcurrentReaders(t *testing.T) {
	c := build(t, container.Config{}, catalog((*car)(nil), (*ticket)(nil)))
	want, err := c.GetBean("car")
	require.NoError(t, err)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.GetBean("car")
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("singleton identity changed")
				return
			}
			tk, err := c.GetBean("ticket")
			if err != nil {
				errs <- err
				return
			}
			if tk.(*ticket).Car != want {
				errs <- errors.New("prototype not injected with the singleton")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
