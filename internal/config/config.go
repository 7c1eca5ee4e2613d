package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "medialib", "config.yml")
}

// Load reads the config from disk (or env). Returns a config with
// defaults filled in if no file exists yet — the init command creates
// one.
func Load() (*Config, error) {
	// A .env in the working directory is picked up before viper reads
	// the environment. Missing file is fine.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.token_env", "MEDIALIB_TOKEN")
	v.SetDefault("upload.concurrency", 4)
	v.SetDefault("upload.poll_interval", "2s")
	v.SetDefault("defaults.filter", "")

	v.SetEnvPrefix("MEDIALIB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("MEDIALIB_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine — the init command creates it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve token from env (never stored in file).
	tokenEnv := cfg.API.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "MEDIALIB_TOKEN"
	}
	cfg.API.Token = os.Getenv(tokenEnv)

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
