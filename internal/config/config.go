package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/famwallet/famwallet/internal/store"
)

// FileName is the config file looked up in the ledger directory.
const FileName = "famwallet.yaml"

// EnvPrefix prefixes environment overrides, e.g. FAMWALLET_STORAGE_KEY.
const EnvPrefix = "FAMWALLET"

// Config represents famwallet.yaml.
type Config struct {
	Storage     StorageConfig `yaml:"storage" mapstructure:"storage"`
	Display     DisplayConfig `yaml:"display" mapstructure:"display"`
	Log         LogConfig     `yaml:"log" mapstructure:"log"`
	ActivityLog bool          `yaml:"activity_log" mapstructure:"activity_log"`
}

// StorageConfig names the key the collection is stored under.
type StorageConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// DisplayConfig controls money formatting.
type DisplayConfig struct {
	Currency string `yaml:"currency" mapstructure:"currency"`
	Locale   string `yaml:"locale" mapstructure:"locale"` // BCP 47, e.g. "en-IN"
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // zerolog level name
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Key: store.DefaultKey},
		Display: DisplayConfig{
			Currency: "₹",
			Locale:   "en-IN",
		},
		Log:         LogConfig{Level: "info"},
		ActivityLog: true,
	}
}

// Load reads a famwallet.yaml file from disk, applying defaults for unset
// keys and FAMWALLET_* environment overrides.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadOrDefault is Load, except a missing file yields the defaults (still
// subject to environment overrides).
func LoadOrDefault(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, required bool) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
		if required || !missing {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("display.currency", d.Display.Currency)
	v.SetDefault("display.locale", d.Display.Locale)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("activity_log", d.ActivityLog)
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Storage.Key == "" || strings.ContainsAny(c.Storage.Key, `/\`) {
		return fmt.Errorf("invalid config: storage.key %q", c.Storage.Key)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid config: log.level: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
