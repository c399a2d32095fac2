// Package config loads the app configuration from an optional YAML file,
// DESKTOPCLEANER_* environment variables and defaults, in that order of
// precedence: env, file, default.
package config

import (
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DESKTOPCLEANER"
	fileName  = "desktopcleaner"
)

type Config struct {
	// DesktopDir overrides the detected desktop folder.
	DesktopDir string `mapstructure:"desktop_dir"`
	// DataDir overrides the folder holding state, settings and logs.
	DataDir string `mapstructure:"data_dir"`

	Log    Log    `mapstructure:"log"`
	Bridge Bridge `mapstructure:"bridge"`
	Scan   Scan   `mapstructure:"scan"`
	Watch  Watch  `mapstructure:"watch"`
}

type Log struct {
	Level string `mapstructure:"level"`
	// Path is the rolling log file; empty means next to the state file.
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type Bridge struct {
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
}

type Scan struct {
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
}

type Watch struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("desktop_dir", "")
	v.SetDefault("data_dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", false)
	v.SetDefault("bridge.retry_interval", 250*time.Millisecond)
	v.SetDefault("bridge.max_attempts", 40)
	v.SetDefault("scan.progress_interval", 150*time.Millisecond)
	v.SetDefault("watch.debounce", 2*time.Second)
}

// Load reads path when given. Without a path it looks for
// desktopcleaner.yaml in the working folder and the user config folder,
// and a missing file is not an error.
func Load(path string, searchDirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName(fileName)
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Bridge.MaxAttempts < 0 {
		return errors.Errorf("bridge.max_attempts must not be negative, got %d", c.Bridge.MaxAttempts)
	}
	if c.Watch.Debounce < 0 {
		return errors.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}
