// Package app assembles a beans application: configuration, framework
// providers, the container and the HTTP introspection API.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/beans/framework/aop"
	"github.com/km-arc/beans/framework/config"
	"github.com/km-arc/beans/framework/container"
	"github.com/km-arc/beans/framework/metrics"
	"github.com/km-arc/beans/framework/providers"
	"github.com/km-arc/beans/routing"
)

// Version is reported by the CLI and GET /.
const Version = "0.1.0"

// Application owns one container and everything built around it.
type Application struct {
	Config    *config.Config
	Container *container.Container
	Providers *providers.Registry
	Router    *routing.Router
	Log       *logrus.Logger

	metrics *providers.MetricsServiceProvider
	aspects *providers.AspectServiceProvider
}

// Option customises New.
type Option func(*settings)

type settings struct {
	source  container.Source
	logger  *logrus.Logger
	aspects *aop.Registry
}

// WithSource replaces the component source (scan.Default).
func WithSource(s container.Source) Option { return func(o *settings) { o.source = s } }

// WithLogger replaces the logger (logrus.StandardLogger()).
func WithLogger(l *logrus.Logger) Option { return func(o *settings) { o.logger = l } }

// WithAspects replaces the aspect registry (aop.Default).
func WithAspects(r *aop.Registry) Option { return func(o *settings) { o.aspects = r } }

// New registers the framework providers, builds the container, boots the
// providers and mounts the routes. The logger level is set from
// cfg.App.LogLevel.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	o := settings{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger.SetLevel(cfg.Level())

	a := &Application{
		Config:    cfg,
		Providers: providers.NewRegistry(cfg),
		Log:       o.logger,
		metrics:   &providers.MetricsServiceProvider{},
		aspects:   &providers.AspectServiceProvider{Registry: o.aspects},
	}
	for _, p := range []providers.ServiceProvider{a.metrics, a.aspects} {
		if err := a.Providers.Register(p); err != nil {
			return nil, err
		}
	}

	copts := []container.Option{
		container.WithLogger(o.logger),
		container.WithProcessors(a.Providers.Processors()...),
	}
	if o.source != nil {
		copts = append(copts, container.WithSource(o.source))
	}
	c, err := container.New(cfg.Container(), copts...)
	if err != nil {
		return nil, err
	}
	a.Container = c

	if err := a.Providers.Boot(c); err != nil {
		return nil, err
	}

	a.Router = routing.New(o.logger)
	a.routes()
	return a, nil
}

// Metrics returns the creation counters, or nil when metrics are disabled.
func (a *Application) Metrics() *metrics.Recorder { return a.metrics.Recorder }

// Weaver returns the aspect weaver, or nil when no aspect rule is configured.
func (a *Application) Weaver() *aop.Weaver { return a.aspects.Weaver }

// Run serves the introspection API on cfg.Addr() until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.Log.WithFields(logrus.Fields{
		"app":  a.Config.App.Name,
		"addr": srv.Addr,
		"env":  a.Config.App.Env,
	}).Info("serving bean introspection")

	select {
	case err := <-errc:
		return errors.Wrap(err, "app: serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "app: shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "app: serve")
	}
	return nil
}

// Environment helpers.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
