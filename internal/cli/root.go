// Package cli implements the valist-go command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/valist-go/internal/config"
	"github.com/hsiuhsiu/valist-go/pkg/valist/logging"
)

type app struct {
	out    io.Writer
	errOut io.Writer

	cfgPath   string
	logLevel  string
	logFormat string

	cfg config.Config
	log logging.Logger
}

// Execute runs the command tree with args and returns the first error.
func Execute(args []string, out, errOut io.Writer) error {
	root := buildRootCmd(&app{out: out, errOut: errOut})
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func buildRootCmd(a *app) *cobra.Command {
	def := config.Default()
	root := &cobra.Command{
		Use:           "valist-go",
		Short:         "Invoke printf-style callbacks with a typed or native va_list",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Config file (.yaml, .yml, .json, .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", def.LogLevel, "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", def.LogFormat, "Log format: console|json")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}

	root.AddCommand(newDemoCmd(a), newRunCmd(a), newVersionCmd(a))
	return root
}

// setup resolves configuration as defaults < config file < flags and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.cfgPath != "" {
		fileCfg, err := config.Load(a.cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel, cfg.LogFormat, a.errOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}
