package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Display skin constants: the vocabulary used by the UI. Storage is
// unaffected by the skin.
const (
	SkinQuest = "quest"
	SkinTask  = "task"
)

// StorageConfig selects and locates the key-value storage provider.
type StorageConfig struct {
	// Driver is "sqlite" (default) or "file".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the data directory holding the database or JSON files.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// Skin chooses the quest or task vocabulary for labels.
	Skin  string `mapstructure:"skin" yaml:"skin"`
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	// Level is a zerolog level string ("debug", "info", ...).
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/questline/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "questline", "config.yaml")
}

// DefaultDataDir returns the default directory for persisted state.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "questline")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   DefaultDataDir(),
		},
		Display: DisplayConfig{
			Skin:  SkinQuest,
			Theme: "default",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", DefaultDataDir())
	v.SetDefault("display.skin", SkinQuest)
	v.SetDefault("display.theme", "default")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
