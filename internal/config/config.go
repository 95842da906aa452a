// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Generator() GeneratorConfig

	SetGeneratorPreset(name string)
	SetGeneratorSeed(seed int64)
	SetGeneratorDiagnostics(enabled bool)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	GeneratorCfg GeneratorConfig `mapstructure:"generator" yaml:"generator"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig       { return c.LoggerCfg }
func (c *Config) Generator() GeneratorConfig { return c.GeneratorCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetGeneratorPreset(name string)       { c.GeneratorCfg.Preset = name }
func (c *Config) SetGeneratorSeed(seed int64)          { c.GeneratorCfg.Seed = seed }
func (c *Config) SetGeneratorDiagnostics(enabled bool) { c.GeneratorCfg.Diagnostics = enabled }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// GeneratorConfig selects the autoplay preset and any per-parameter overrides.
type GeneratorConfig struct {
	Preset string `mapstructure:"preset" yaml:"preset"`
	// Seed drives humanization noise; equal seeds give identical output.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
	// Diagnostics routes timeline construction events to the logger at debug level.
	Diagnostics bool           `mapstructure:"diagnostics" yaml:"diagnostics"`
	Overrides   OverrideConfig `mapstructure:"overrides" yaml:"overrides"`
}

// OverrideConfig replaces individual preset parameters. Nil fields keep the preset's value.
type OverrideConfig struct {
	ReactionTime     *float64 `mapstructure:"reaction_time" yaml:"reaction_time,omitempty"`
	ReleaseWait      *float64 `mapstructure:"release_wait" yaml:"release_wait,omitempty"`
	ReleaseDelay     *float64 `mapstructure:"release_delay" yaml:"release_delay,omitempty"`
	AntiRebindOffset *float64 `mapstructure:"anti_rebind_offset" yaml:"anti_rebind_offset,omitempty"`
	AntiRebindTime   *float64 `mapstructure:"anti_rebind_time" yaml:"anti_rebind_time,omitempty"`
	SpinRadius       *float64 `mapstructure:"spin_radius" yaml:"spin_radius,omitempty"`
	SpinRate         *float64 `mapstructure:"spin_rate" yaml:"spin_rate,omitempty"`

	Follow         *bool    `mapstructure:"follow" yaml:"follow,omitempty"`
	FollowInterval *float64 `mapstructure:"follow_interval" yaml:"follow_interval,omitempty"`
	LegacyOrdering *bool    `mapstructure:"legacy_ordering" yaml:"legacy_ordering,omitempty"`

	Humanize       *bool    `mapstructure:"humanize" yaml:"humanize,omitempty"`
	Bounce         *bool    `mapstructure:"bounce" yaml:"bounce,omitempty"`
	Step           *float64 `mapstructure:"step" yaml:"step,omitempty"`
	JumpGuard      *float64 `mapstructure:"jump_guard" yaml:"jump_guard,omitempty"`
	NoiseAmplitude *float64 `mapstructure:"noise_amplitude" yaml:"noise_amplitude,omitempty"`
	CoerceCircles  *bool    `mapstructure:"coerce_circles" yaml:"coerce_circles,omitempty"`
	CoerceHolds    *bool    `mapstructure:"coerce_holds" yaml:"coerce_holds,omitempty"`
}

// NewDefaultConfig creates a configuration populated only with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// The defaults are static; failing here is a programming error.
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "autoplay-cli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Generator --
	v.SetDefault("generator.preset", "default")
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.diagnostics", false)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	// Short aliases for the settings most often changed per run.
	v.BindEnv("generator.preset", "AUTOPLAY_PRESET")
	v.BindEnv("generator.seed", "AUTOPLAY_SEED")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.GeneratorCfg.Validate(); err != nil {
		return fmt.Errorf("generator configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the generator section. Preset names are resolved later by the
// preset package; here only presence is required.
func (g *GeneratorConfig) Validate() error {
	if strings.TrimSpace(g.Preset) == "" {
		return fmt.Errorf("preset is required")
	}
	return g.Overrides.Validate()
}

// Validate checks that overridden durations and rates are usable.
func (o *OverrideConfig) Validate() error {
	nonNegative := map[string]*float64{
		"release_wait":       o.ReleaseWait,
		"release_delay":      o.ReleaseDelay,
		"anti_rebind_offset": o.AntiRebindOffset,
		"anti_rebind_time":   o.AntiRebindTime,
		"spin_radius":        o.SpinRadius,
		"jump_guard":         o.JumpGuard,
		"noise_amplitude":    o.NoiseAmplitude,
	}
	for name, v := range nonNegative {
		if v != nil && *v < 0 {
			return fmt.Errorf("overrides.%s must not be negative", name)
		}
	}
	positive := map[string]*float64{
		"follow_interval": o.FollowInterval,
		"step":            o.Step,
	}
	for name, v := range positive {
		if v != nil && *v <= 0 {
			return fmt.Errorf("overrides.%s must be positive", name)
		}
	}
	return nil
}
