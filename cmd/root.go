// root.go defines the root command and the shared application bootstrap.
//
// Every subcommand builds its own Application from the persistent flags, so
// one process can run several commands in tests without shared state.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/km-arc/beans/framework/app"
	"github.com/km-arc/beans/framework/config"
)

// options holds the persistent flags.
type options struct {
	configPath string
	scanRoot   string
	logLevel   string
	strict     bool
}

// NewRootCmd returns the beans command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "beans",
		Short:         "Inspect and exercise a beans container",
		Long:          `Builds a container from the registered components below a scan root and lets you list, fetch and serve its beans.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&o.scanRoot, "scan", "", "scan root import path (overrides config)")
	f.StringVar(&o.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	f.BoolVar(&o.strict, "strict", false, "fail on unresolved injection points")

	root.AddCommand(newListCmd(o), newGetCmd(o), newDemoCmd(o), newServeCmd(o))
	return root
}

// load reads the configuration and applies the flags that were set.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("scan") {
		cfg.Scan.Root = o.scanRoot
	}
	if flags.Changed("log-level") {
		cfg.App.LogLevel = o.logLevel
	}
	if flags.Changed("strict") {
		cfg.Scan.StrictInjection = o.strict
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// application builds the Application every subcommand works on.
func (o *options) application(cmd *cobra.Command, extra ...app.Option) (*app.Application, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, extra...)
}

// Execute runs the root command. Exit code 1 indicates an error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
