// Package cli implements the fiberworld command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chenyukang/fiber-world/internal/config"
	"github.com/chenyukang/fiber-world/internal/logging"
)

var version = "0.3.0"

// app is the state shared by subcommands once the root pre-run has loaded it.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool

	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "fiberworld",
		Short:         "Animated payment-channel network visualizer",
		Long:          brand.Sprint("fiberworld") + " renders a synthetic payment network with animated routes\n" + subtle.Sprint("Render PNG frames, inspect layouts, or serve a live stream over HTTP"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetVersionTemplate("fiberworld {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.Path(), "Path to the TOML config file")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&a.logJSON, "log-json", false, "Emit JSON logs (overrides config)")

	root.AddCommand(
		renderCmd(a),
		inspectCmd(a),
		serveCmd(a),
		themeCmd(a),
		configCmd(a),
	)
	return root
}

// Execute runs the command tree with os.Args and prints a failure to stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		bad.Fprintf(root.ErrOrStderr(), "fiberworld: %v\n", err)
		return err
	}
	return nil
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	lc := logging.Config{
		Level:   cfg.Log.Level,
		JSON:    cfg.Log.JSON,
		Service: "fiberworld",
		Output:  cmd.ErrOrStderr(),
	}
	if cmd.Flags().Changed("log-level") {
		lc.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		lc.JSON = a.logJSON
	}
	log, err := logging.New(lc)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}
