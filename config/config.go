package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dhamidi/javasym/format"
	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the working directory,
// without its extension.
const FileName = ".javasym"

var (
	ErrInvalidFormat  = errors.New("invalid output format")
	ErrInvalidWorkers = errors.New("invalid worker count")
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // one of format.Names()
	Docs   bool   `yaml:"docs" mapstructure:"docs"`     // include javadoc in output
}

type ScanConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns relative to the scan root
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
	Workers int      `yaml:"workers" mapstructure:"workers"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity" mapstructure:"verbosity"`
	File      string `yaml:"file" mapstructure:"file"` // empty means stderr
}

func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
			Docs:   true,
		},
		Scan: ScanConfig{
			Include: []string{"**/*.java"},
			Exclude: []string{"**/build/**", "**/target/**"},
			Workers: 4,
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Log: LogConfig{
			Verbosity: 0,
		},
	}
}

// Load reads configuration for dir. Environment variables (JAVASYM_*) win
// over the config file, which wins over the defaults. A missing config
// file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("JAVASYM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.docs", defaults.Output.Docs)

	v.SetDefault("scan.include", defaults.Scan.Include)
	v.SetDefault("scan.exclude", defaults.Scan.Exclude)
	v.SetDefault("scan.workers", defaults.Scan.Workers)

	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	v.SetDefault("log.verbosity", defaults.Log.Verbosity)
	v.SetDefault("log.file", defaults.Log.File)
}

func Validate(cfg *Config) error {
	var errs []error

	if !slices.Contains(format.Names(), cfg.Output.Format) {
		errs = append(errs, fmt.Errorf("%w: must be one of %s, got '%s'",
			ErrInvalidFormat, strings.Join(format.Names(), ", "), cfg.Output.Format))
	}

	if cfg.Scan.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Scan.Workers))
	}

	for _, pattern := range append(slices.Clone(cfg.Scan.Include), cfg.Scan.Exclude...) {
		if strings.TrimSpace(pattern) == "" {
			errs = append(errs, fmt.Errorf("%w: empty pattern", ErrInvalidPattern))
		}
	}

	return errors.Join(errs...)
}
