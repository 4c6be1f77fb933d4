// Package cli implements the spectree command line over a spec registry.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/specvital/spectree/pkg/config"
	"github.com/specvital/spectree/pkg/locate"
	"github.com/specvital/spectree/pkg/logging"
	"github.com/specvital/spectree/pkg/registry"
	"github.com/specvital/spectree/pkg/report"
)

// ErrTestsFailed is returned by run when a test or group failed.
var ErrTestsFailed = errors.New("tests failed")

// app is the state shared by all subcommands of one invocation.
type app struct {
	registry *registry.Registry
	version  string

	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd builds the spectree command over the specs of reg.
func NewRootCmd(reg *registry.Registry, version string) *cobra.Command {
	a := &app{registry: reg, version: version}

	rootCmd := &cobra.Command{
		Use:   "spectree",
		Short: "Plan and run behavior specs",
		Long: `spectree lists and executes registered behavior specs: nested groups
of tests with beforeAll/beforeEach/afterEach/afterAll hooks.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// such as failing tests.
		SilenceUsage:      true,
		Version:           version,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetVersionTemplate(`{{printf "spectree version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is ./"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text, json")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg = config.Merge(cfg, config.Config{Log: config.Log{Level: a.logLevel, Format: a.logFormat}})
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logging.DefaultConfig()
	logCfg.Level, _ = logging.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cmd.ErrOrStderr()
	a.logger = logging.Init(logCfg)
	return nil
}

func (a *app) planner() *registry.Planner {
	opts := []registry.PlanOption{
		registry.WithRegistry(a.registry),
		registry.WithWorkers(a.cfg.Workers),
		registry.WithTimeout(time.Duration(a.cfg.Timeout)),
		registry.WithLogger(a.logger.With("component", "registry")),
	}
	if a.cfg.SourceSpans {
		opts = append(opts, registry.WithLocator(locate.NewResolver(locate.WithLogger(a.logger.With("component", "locate")))))
	}
	return registry.NewPlanner(opts...)
}

// output returns the output format selected by flag, or the configured one.
func (a *app) output(flag string) (string, error) {
	if flag == "" {
		return a.cfg.Output, nil
	}
	if !report.ValidFormat(flag) {
		return "", fmt.Errorf("%w: %q", config.ErrInvalidOutput, flag)
	}
	return flag, nil
}

// specs resolves the spec names selected by args, or by the configured patterns.
func (a *app) specs(args []string) ([]string, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = a.cfg.Specs
	}
	return a.registry.Match(patterns)
}
