package config

import "time"

// Config is the top-level medialib configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Upload   UploadConfig   `mapstructure:"upload" yaml:"upload"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// APIConfig holds asset server connection settings.
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	TokenEnv string `mapstructure:"token_env" yaml:"token_env"`
	Token    string `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// UploadConfig tunes the upload pipeline.
type UploadConfig struct {
	Concurrency  int           `mapstructure:"concurrency" yaml:"concurrency"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// DefaultsConfig holds default values for browsing.
type DefaultsConfig struct {
	Filter string `mapstructure:"filter" yaml:"filter"` // "", "image" or "video"
}

// EffectiveConcurrency returns the configured upload bound or the
// fallback when unset.
func (u UploadConfig) EffectiveConcurrency(fallback int) int {
	if u.Concurrency > 0 {
		return u.Concurrency
	}
	return fallback
}

// EffectivePollInterval returns the configured poll interval or the
// fallback when unset.
func (u UploadConfig) EffectivePollInterval(fallback time.Duration) time.Duration {
	if u.PollInterval > 0 {
		return u.PollInterval
	}
	return fallback
}
