package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/waktu-solat/internal/app"
	"github.com/smokyabdulrahman/waktu-solat/internal/config"
	"github.com/smokyabdulrahman/waktu-solat/internal/display"
	"github.com/smokyabdulrahman/waktu-solat/internal/logging"
	"github.com/smokyabdulrahman/waktu-solat/internal/metrics"
	"github.com/smokyabdulrahman/waktu-solat/internal/server"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  waktu-solat config set zone SGR01\n  waktu-solat config set time_format 24h\n  waktu-solat config set format name-and-remaining\n  waktu-solat config set cache_backend redis\n  waktu-solat config set redis_addr localhost:6379",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one config value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the stored configuration next to the defaults.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	defaults := config.Defaults()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
			if def, _ := defaults.Get(key); def != "" {
				shown += " " + display.Gray("default: "+def)
			}
		}
		fmt.Fprintf(out, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigGet prints the effective value of key: flags, environment,
// file, then defaults.
func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	val, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

var flagPrefsPath string

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the table interactively with a live countdown",
		Long: `Open the full-screen browser: a month of the zone's table with today
highlighted, a countdown to the next prayer, two clocks and rotating captions.

Logs are written to ` + logging.DefaultFile() + ` so the screen stays clean.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
	cmd.Flags().StringVar(&flagPrefsPath, "prefs", "", "Preferences file (default: ~/.config/waktu-solat/prefs.toml)")
	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	logPath := logging.DefaultFile()
	if f, err := logging.OpenFile(logPath); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
	} else {
		defer f.Close()
		logOut = f
	}

	d, err := newDeps(cmd, logOut, false, nil)
	if err != nil {
		return err
	}

	// Without a zone the UI starts empty and asks for one.
	zone, err := d.resolveZone(cmd.Context())
	if err != nil {
		d.log.Warn().Err(err).Msg("starting without a zone")
		zone = ""
	}

	return app.Run(cmd.Context(), app.Options{
		Loader:    d.loader,
		Zone:      zone,
		PrefsPath: flagPrefsPath,
		Now:       now,
		Logger:    d.log,
	})
}

var flagServeListen string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tables over HTTP",
		Long: `Serve an HTML page, a JSON API, raw downloads and Prometheus metrics.

Routes:
  GET /                                 month page (?zone=&month=&q=)
  GET /healthz                          liveness
  GET /metrics                          Prometheus metrics
  GET /api/v1/zones                     zone catalogue (?state=)
  GET /api/v1/zones/:zone/schedule      month rows (?month=&q=)
  GET /api/v1/zones/:zone/next          next prayer and countdown
  GET /download/:zone/:kind             original csv or pdf

Logs are written to stderr as JSON.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&flagServeListen, "listen", "", "Listen address (overrides config, default "+config.DefaultListen+")")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	d, err := newDeps(cmd, cmd.ErrOrStderr(), true, m)
	if err != nil {
		return err
	}

	listen := d.cfg.Listen
	if cmd.Flags().Changed("listen") {
		listen = flagServeListen
	}

	srv, err := server.New(server.Options{
		Loader:      d.loader,
		DefaultZone: d.cfg.Zone,
		Logger:      d.log,
		Metrics:     m,
		Registry:    registry,
		Now:         now,
	})
	if err != nil {
		return err
	}

	d.log.Info().
		Str("listen", listen).
		Str("source", d.loader.Source()).
		Str("cache", d.cfg.CacheBackend).
		Msg("starting server")
	return srv.Run(cmd.Context(), listen)
}
