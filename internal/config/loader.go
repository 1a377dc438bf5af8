package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigDir returns $XDG_CONFIG_HOME/linkparse, falling back to ~/.config/linkparse
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, configDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, ".config", configDirName)
}

// SavePath returns the path of the config file
func SavePath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Exists reports whether the config file is present
func Exists() bool {
	_, err := os.Stat(SavePath())
	return err == nil
}

// Load reads the config file if present, then LINKPARSE_* environment overrides
func Load() (*Config, error) {
	return load(SavePath(), false)
}

// LoadFrom is like Load but reads an explicit file, which must exist
func LoadFrom(path string) (*Config, error) {
	return load(path, true)
}

// LoadOrDefault loads the config, falling back to defaults on any error
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func load(path string, required bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if required {
		return nil, fmt.Errorf("config file: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.WebDAVServers == nil {
		cfg.WebDAVServers = map[string]WebDAVServer{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("workers", DefaultWorkers)
}

// Save writes cfg to SavePath
func Save(cfg *Config) error {
	return SaveTo(SavePath(), cfg)
}

// SaveTo validates cfg and writes it as YAML to path
func SaveTo(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	// Passwords live in this file
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
