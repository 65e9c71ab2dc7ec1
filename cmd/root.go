package cmd

import (
	"fmt"
	"os"

	"github.com/exynos7904/powerd/internal/config"
	"github.com/exynos7904/powerd/internal/logging"
	"github.com/spf13/cobra"
)

var flags config.Flags

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default: ~/.powerd/config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flags.SysfsRoot, "sysfs-root", "", "Directory control node paths are resolved against (default: /)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: verbose, debug, info, warn, error")
}

var rootCmd = &cobra.Command{
	Use:   "powerd",
	Short: "powerd: power HAL for exynos7904 devices",
	Long: `powerd receives power hints, interactivity changes, feature toggles and
profile switches from the platform power service and applies them to the
kernel control nodes of exynos7904 devices: the little cluster CPU
frequency cap, the touchscreen and LCD enable nodes, and the touchscreen
double-tap-to-wake gesture.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.Setup(os.Stderr, level)
	return cfg, nil
}
