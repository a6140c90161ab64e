package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/waktu-solat/internal/config"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

// Global flags shared across all subcommands.
var (
	FlagZone       string
	FlagSource     string
	FlagCacheDir   string
	FlagNoCache    bool
	FlagJSON       bool
	FlagTimeFormat string
	FlagLogLevel   string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// now is the clock every command resolves against. Tables are published in
// Malaysia time, so that is the wall clock used regardless of the host zone.
var now = func() time.Time {
	return time.Now().In(schedule.Malaysia)
}

// repairsConfig reports whether cmd still works with a broken config file,
// so that `config reset` and `config path` can be used to fix it.
func repairsConfig(cmd *cobra.Command) bool {
	if cmd.Parent() == nil || cmd.Parent().Name() != "config" {
		return false
	}
	return cmd.Name() == "reset" || cmd.Name() == "path"
}

// NewRootCmd creates the root command for the waktu-solat CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "waktu-solat",
		Short:   "Malaysian prayer times from the JAKIM yearly tables",
		Long:    "Browse, search and count down to Malaysian prayer times published per JAKIM zone.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				if !repairsConfig(cmd) {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = &config.Config{}
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer times.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&FlagZone, "zone", "z", "", "JAKIM zone code, e.g. SGR01 (overrides config)")
	pf.StringVar(&FlagSource, "source", "", "Directory or URL the yearly tables are read from")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/waktu-solat/)")
	pf.BoolVar(&FlagNoCache, "no-cache", false, "Fetch fresh tables and skip the location cache")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: debug, info, warn or error")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newZonesCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("waktu-solat %s\n", version)
}

// globalFlags maps persistent flags to the config keys they override.
var globalFlags = []struct {
	flag string
	key  string
	val  *string
}{
	{"zone", "zone", &FlagZone},
	{"source", "source", &FlagSource},
	{"cache-dir", "cache_dir", &FlagCacheDir},
	{"time-format", "time_format", &FlagTimeFormat},
	{"log-level", "log_level", &FlagLogLevel},
}

// effectiveConfig returns the merged configuration values, applying the
// priority: CLI flags > environment (.env included) > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Defaults()
	if loadedConfig != nil {
		cfg = cfg.Merge(*loadedConfig)
	}

	env, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(env)

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	var over config.Config
	for _, f := range globalFlags {
		if !flagWasSet(flags, root, f.flag) {
			continue
		}
		if err := over.Set(f.key, *f.val); err != nil {
			return nil, fmt.Errorf("--%s: %w", f.flag, err)
		}
	}
	cfg = cfg.Merge(over)

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
