// File: internal/config/config_test.go
package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "console", cfg.Logger().Format)
	assert.Equal(t, "autoplay-cli", cfg.Logger().ServiceName)
	assert.Equal(t, "default", cfg.Generator().Preset)
	assert.Equal(t, int64(0), cfg.Generator().Seed)
	assert.False(t, cfg.Generator().Diagnostics)
	assert.Nil(t, cfg.Generator().Overrides.Follow, "no override should be set by default")
}

func TestSetters(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetGeneratorPreset("stiff")
	cfg.SetGeneratorSeed(42)
	cfg.SetGeneratorDiagnostics(true)

	assert.Equal(t, "stiff", cfg.Generator().Preset)
	assert.Equal(t, int64(42), cfg.Generator().Seed)
	assert.True(t, cfg.Generator().Diagnostics)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	t.Run("Core Validation", func(t *testing.T) {
		cfg := NewDefaultConfig()
		assert.NoError(t, cfg.Validate())

		missingPreset := *cfg
		missingPreset.GeneratorCfg.Preset = "  "
		err := missingPreset.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "preset is required")
	})

	t.Run("Override Validation", func(t *testing.T) {
		valid := OverrideConfig{
			ReleaseWait:  ptr(200.0),
			ReleaseDelay: ptr(80.0),
			Step:         ptr(16.0),
			ReactionTime: ptr(-0.25),
		}
		assert.NoError(t, valid.Validate(), "negative reaction time is a relative value, not an error")

		negativeWait := valid
		negativeWait.ReleaseWait = ptr(-1.0)
		err := negativeWait.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overrides.release_wait must not be negative")

		zeroStep := valid
		zeroStep.Step = ptr(0.0)
		err = zeroStep.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overrides.step must be positive")

		zeroInterval := valid
		zeroInterval.FollowInterval = ptr(0.0)
		err = zeroInterval.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overrides.follow_interval must be positive")
	})
}

// -- Factory Function Tests --

func TestNewConfigFromViper(t *testing.T) {
	t.Run("Successful Load from YAML", func(t *testing.T) {
		yamlBytes := []byte(`
generator:
  preset: playful
  seed: 7
  overrides:
    follow: false
    release_wait: 275
`)
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlBytes)))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		gen := cfg.Generator()
		assert.Equal(t, "playful", gen.Preset)
		assert.Equal(t, int64(7), gen.Seed)
		require.NotNil(t, gen.Overrides.Follow)
		assert.False(t, *gen.Overrides.Follow)
		require.NotNil(t, gen.Overrides.ReleaseWait)
		assert.Equal(t, 275.0, *gen.Overrides.ReleaseWait)
		assert.Nil(t, gen.Overrides.ReleaseDelay)
		// Defaults are still present for untouched sections.
		assert.Equal(t, "info", cfg.Logger().Level)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("generator.overrides.step", -3)

		cfg, err := NewConfigFromViper(v)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "overrides.step must be positive")
	})

	t.Run("Environment Variable Binding", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBufferString("generator:\n  preset: stiff\n")))

		t.Setenv("AUTOPLAY_PRESET", "player-like")
		t.Setenv("AUTOPLAY_SEED", "99")

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "player-like", cfg.Generator().Preset, "environment should override the config file")
		assert.Equal(t, int64(99), cfg.Generator().Seed)
	})
}

// -- Struct and Mapping Tests --

func TestConfigStructureMapping(t *testing.T) {
	yamlInput := `
logger:
  level: debug
  log_file: /var/log/autoplay.log
  colors:
    info: blue
generator:
  overrides:
    humanize: true
    noise_amplitude: 1.5
    legacy_ordering: true
`
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(yamlInput)))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "debug", cfg.Logger().Level)
	assert.Equal(t, "/var/log/autoplay.log", cfg.Logger().LogFile)
	assert.Equal(t, "blue", cfg.Logger().Colors.Info)
	assert.Equal(t, "red", cfg.Logger().Colors.Error)
	require.NotNil(t, cfg.Generator().Overrides.Humanize)
	assert.True(t, *cfg.Generator().Overrides.Humanize)
	require.NotNil(t, cfg.Generator().Overrides.NoiseAmplitude)
	assert.Equal(t, 1.5, *cfg.Generator().Overrides.NoiseAmplitude)
	require.NotNil(t, cfg.Generator().Overrides.LegacyOrdering)
	assert.True(t, *cfg.Generator().Overrides.LegacyOrdering)
}
