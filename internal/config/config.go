package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/exynos7904/powerd/internal/logging"
	"github.com/exynos7904/powerd/internal/power"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Token     string         `yaml:"token"`
	URL       string         `yaml:"url"`
	Listen    string         `yaml:"listen"`
	SysfsRoot string         `yaml:"sysfs_root"`
	LogLevel  string         `yaml:"log_level"`
	Platform  power.Platform `yaml:"platform"`
	Reconnect Reconnect      `yaml:"reconnect"`
}

// Reconnect bounds the delay between redials of the power service.
type Reconnect struct {
	MinBackoff time.Duration `yaml:"min_backoff"`
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

// Flags carries command-line overrides. Empty values are ignored.
type Flags struct {
	ConfigFile string
	Token      string
	URL        string
	Listen     string
	SysfsRoot  string
	LogLevel   string
}

// Load resolves configuration from flags > env > config file > defaults.
func Load(flags Flags) (*Config, error) {
	cfg := &Config{
		SysfsRoot: "/",
		LogLevel:  "info",
		Platform:  power.DefaultPlatform(),
		Reconnect: Reconnect{
			MinBackoff: time.Second,
			MaxBackoff: 30 * time.Second,
		},
	}

	// 1. Config file over defaults
	cfgPath := flags.ConfigFile
	if cfgPath == "" {
		cfgPath = configFilePath()
	}
	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			if flags.ConfigFile != "" {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// 2. Environment variables override config file
	if v := os.Getenv("POWERD_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("POWERD_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("POWERD_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("POWERD_SYSFS_ROOT"); v != "" {
		cfg.SysfsRoot = v
	}
	if v := os.Getenv("POWERD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// 3. CLI flags override everything
	if flags.Token != "" {
		cfg.Token = flags.Token
	}
	if flags.URL != "" {
		cfg.URL = flags.URL
	}
	if flags.Listen != "" {
		cfg.Listen = flags.Listen
	}
	if flags.SysfsRoot != "" {
		cfg.SysfsRoot = flags.SysfsRoot
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.Platform.CPUMaxFreqNode == "" {
		return nil, fmt.Errorf("platform.cpu_max_freq_node must not be empty")
	}

	if cfg.Reconnect.MinBackoff <= 0 {
		return nil, fmt.Errorf("reconnect.min_backoff must be positive")
	}
	if cfg.Reconnect.MaxBackoff < cfg.Reconnect.MinBackoff {
		return nil, fmt.Errorf("reconnect.max_backoff must not be below min_backoff")
	}

	abs, err := filepath.Abs(cfg.SysfsRoot)
	if err != nil {
		return nil, fmt.Errorf("invalid sysfs root: %w", err)
	}
	cfg.SysfsRoot = abs

	return cfg, nil
}

func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".powerd", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
