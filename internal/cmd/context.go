package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/waverun-org/waverun/internal/config"
	"github.com/waverun-org/waverun/internal/logger"
	"github.com/waverun-org/waverun/internal/runner"
	"github.com/waverun-org/waverun/internal/scenario"
)

// Context holds the loaded configuration and logger-carrying context for one
// command invocation.
type Context struct {
	context.Context

	Command  *cobra.Command
	Flags    []commandLineFlag
	Config   *config.Config
	Quiet    bool
	registry *scenario.Registry
}

// NewContext loads configuration, sets up the logger context and logs any
// warnings collected while loading.
func NewContext(cmd *cobra.Command, flags []commandLineFlag) (*Context, error) {
	ctx := cmd.Context()

	bindFlags(cmd, flags...)

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	var loaderOpts []config.LoaderOption
	if cfgPath := viper.GetString("config"); cfgPath != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(cfgPath))
	}

	cfg, err := config.Load(loaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var opts []logger.Option
	if cfg.Global.Debug || os.Getenv("DEBUG") != "" {
		opts = append(opts, logger.WithDebug())
	}
	if quiet {
		opts = append(opts, logger.WithQuiet())
	}
	if cfg.Global.LogFormat != "" {
		opts = append(opts, logger.WithFormat(cfg.Global.LogFormat))
	}
	ctx = logger.WithLogger(ctx, logger.NewLogger(opts...))

	for _, w := range cfg.Warnings {
		logger.Warn(ctx, w)
	}

	return &Context{
		Context:  ctx,
		Command:  cmd,
		Flags:    flags,
		Config:   cfg,
		Quiet:    quiet,
		registry: scenario.NewRegistry(),
	}, nil
}

// Registry returns the scenario defaults registry, built once per command
// invocation so repeated lookups return identical values.
func (c *Context) Registry() *scenario.Registry {
	return c.registry
}

// Orchestrator builds a run orchestrator from the loaded configuration.
func (c *Context) Orchestrator(opts ...runner.Option) *runner.Orchestrator {
	return runner.New(c.Config, opts...)
}

// StringParam retrieves a string flag value.
func (c *Context) StringParam(name string) (string, error) {
	val, err := c.Command.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get flag %s: %w", name, err)
	}
	return val, nil
}

// NewCommand wraps a cobra command with flag registration, context setup and
// uniform error handling.
func NewCommand(cmd *cobra.Command, flags []commandLineFlag, runFunc func(ctx *Context, args []string) error) *cobra.Command {
	initFlags(cmd, flags...)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ctx, err := NewContext(cmd, flags)
		if err != nil {
			fmt.Printf("Initialization error: %v\n", err)
			os.Exit(1)
		}
		if err := runFunc(ctx, args); err != nil {
			logger.Error(ctx.Context, "Command failed", "err", err)
			return err
		}
		return nil
	}

	return cmd
}
