// Package config loads the settings of a beans application.
//
// Values come from three layers, later ones winning:
//
//  1. built-in defaults (Default)
//  2. an optional YAML file
//  3. environment variables, after .env files are loaded with godotenv
//
//	cfg, err := config.Load("beans.yaml")
//	if err != nil { ... }
//	c, err := container.New(cfg.Container())
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/beans/framework/aop"
	"github.com/km-arc/beans/framework/container"
	"github.com/km-arc/beans/framework/validation"
)

// ErrInvalidValue is returned by Validate and Load when a setting is invalid.
var ErrInvalidValue = errors.New("config: invalid value")

// DefaultScanRoot is the package tree holding the bundled demo components.
const DefaultScanRoot = "github.com/km-arc/beans/demo/component"

// Environment variables read by Load.
const (
	EnvScanRoot        = "BEANS_SCAN_ROOT"
	EnvStrictInjection = "BEANS_STRICT_INJECTION"
	EnvLogLevel        = "BEANS_LOG_LEVEL"
	EnvHTTPPort        = "BEANS_HTTP_PORT"
	EnvMetrics         = "BEANS_METRICS"
	EnvAppEnv          = "BEANS_ENV"
)

// Config is the full application configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Scan    ScanConfig    `yaml:"scan"`
	Metrics MetricsConfig `yaml:"metrics"`
	Aspects []AspectRule  `yaml:"aspects"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"` // local | production | testing
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

type ScanConfig struct {
	Root            string `yaml:"root"`
	StrictInjection bool   `yaml:"strict_injection"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AspectRule applies a registered aspect to the bean with the given name.
type AspectRule struct {
	Aspect  string   `yaml:"aspect"`
	Bean    string   `yaml:"bean"`
	Methods []string `yaml:"methods"`
}

// Default returns the built-in configuration: the demo components, metrics
// on and the smartAnimal aspect advising smartDog.getSum.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "beans",
			Env:      "local",
			Port:     "8000",
			LogLevel: "info",
		},
		Scan:    ScanConfig{Root: DefaultScanRoot},
		Metrics: MetricsConfig{Enabled: true},
		Aspects: []AspectRule{
			{Aspect: "smartAnimal", Bean: "smartDog", Methods: []string{"getSum"}},
		},
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and the environment. envFiles default to ".env"; a
// missing .env file is not an error. The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist
	_ = godotenv.Load(files...)

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parse %s", path)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Scan.Root = env(EnvScanRoot, c.Scan.Root)
	c.Scan.StrictInjection = envBool(EnvStrictInjection, c.Scan.StrictInjection)
	c.App.LogLevel = env(EnvLogLevel, c.App.LogLevel)
	c.App.Port = env(EnvHTTPPort, c.App.Port)
	c.App.Env = env(EnvAppEnv, c.App.Env)
	c.Metrics.Enabled = envBool(EnvMetrics, c.Metrics.Enabled)
}

// Validate checks every setting. The returned error wraps ErrInvalidValue
// and lists each failing key.
func (c *Config) Validate() error {
	data := map[string]string{
		"app.name":      c.App.Name,
		"app.env":       c.App.Env,
		"app.port":      c.App.Port,
		"app.log_level": c.App.LogLevel,
		"scan.root":     c.Scan.Root,
	}
	rules := validation.Rules{
		"app.name":      "required",
		"app.env":       "required|in:local,production,testing",
		"app.port":      "required|integer|gte:1|lte:65535",
		"app.log_level": "required|in:trace,debug,info,warn,warning,error",
		"scan.root":     `required|regex:^[A-Za-z0-9._~\-/]+$`,
	}
	for i, a := range c.Aspects {
		key := fmt.Sprintf("aspects[%d]", i)
		data[key+".aspect"], rules[key+".aspect"] = a.Aspect, "required|identifier"
		data[key+".bean"], rules[key+".bean"] = a.Bean, "required|identifier"
		for j, m := range a.Methods {
			mk := fmt.Sprintf("%s.methods[%d]", key, j)
			data[mk], rules[mk] = m, "required|identifier"
		}
	}

	v := validation.Make(data, rules)
	if v.Fails() {
		return errors.Wrap(ErrInvalidValue, v.Errors().Error())
	}
	return nil
}

// Container returns the settings the container itself needs.
func (c *Config) Container() container.Config {
	return container.Config{
		ScanRoot:        c.Scan.Root,
		StrictInjection: c.Scan.StrictInjection,
	}
}

// Rules returns the aspect rules in the form the weaver takes.
func (c *Config) Rules() []aop.Rule {
	out := make([]aop.Rule, 0, len(c.Aspects))
	for _, a := range c.Aspects {
		out = append(out, aop.Rule{Aspect: a.Aspect, Bean: a.Bean, Methods: a.Methods})
	}
	return out
}

// Level returns the logrus level for App.LogLevel, Info when it does not
// parse.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.App.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string { return ":" + c.App.Port }

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
