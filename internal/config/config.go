// Package config loads docdrift settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DOCDRIFT_MIGRATION_RENDERER
const EnvPrefix = "DOCDRIFT"

// Setting keys
const (
	KeyRegistryPath       = "registry.path"
	KeyKeyring            = "credentials.keyring"
	KeyKeyringService     = "credentials.service"
	KeyRenderer           = "migration.renderer"
	KeyTemplate           = "migration.template"
	KeyEditor             = "editor"
	KeyProgress           = "progress"
	KeyDebug              = "debug"
	defaultKeyringService = "docdrift"
)

// Renderer names
const (
	RendererTemplate = "template"
	RendererPHP      = "php"
)

// Config holds the resolved settings
type Config struct {
	Registry    RegistryConfig    `mapstructure:"registry"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Migration   MigrationConfig   `mapstructure:"migration"`
	Editor      string            `mapstructure:"editor"`
	Progress    bool              `mapstructure:"progress"`
	Debug       bool              `mapstructure:"debug"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type CredentialsConfig struct {
	// Keyring stores passwords in the OS keyring instead of the registry
	Keyring bool   `mapstructure:"keyring"`
	Service string `mapstructure:"service"`
}

type MigrationConfig struct {
	Renderer string `mapstructure:"renderer"`
	// Template is a file path or a builtin name such as builtin:arangosh
	Template string `mapstructure:"template"`
}

// New returns a viper instance with defaults and environment overrides set
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRegistryPath, filepath.Join(DataDir(), "connections.db"))
	v.SetDefault(KeyKeyring, true)
	v.SetDefault(KeyKeyringService, defaultKeyringService)
	v.SetDefault(KeyRenderer, RendererTemplate)
	v.SetDefault(KeyTemplate, "builtin:arangosh")
	v.SetDefault(KeyEditor, "")
	v.SetDefault(KeyProgress, true)
	v.SetDefault(KeyDebug, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and returns the resolved settings.
// An empty file looks for config.yaml in ConfigDir; a missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be checked by type alone
func (c *Config) Validate() error {
	switch c.Migration.Renderer {
	case RendererTemplate, RendererPHP:
	default:
		return fmt.Errorf("invalid migration.renderer %q (expected %s or %s)", c.Migration.Renderer, RendererTemplate, RendererPHP)
	}
	if c.Migration.Renderer == RendererTemplate && strings.TrimSpace(c.Migration.Template) == "" {
		return fmt.Errorf("migration.template is required with the %s renderer", RendererTemplate)
	}
	if strings.TrimSpace(c.Registry.Path) == "" {
		return fmt.Errorf("registry.path is required")
	}
	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/docdrift
func ConfigDir() string {
	return filepath.Join(xdg("XDG_CONFIG_HOME", ".config"), "docdrift")
}

// DataDir returns $XDG_DATA_HOME/docdrift
func DataDir() string {
	return filepath.Join(xdg("XDG_DATA_HOME", filepath.Join(".local", "share")), "docdrift")
}

func xdg(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(home, fallback)
}
