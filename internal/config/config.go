// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package config provides centralized configuration management for histocat.
// It supports deterministic precedence (flags > env > profile > defaults)
// using Viper, and fail-fast validation to prevent silent misconfiguration.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata" // display.timezone must resolve without system tzdata

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable histocat reads.
const EnvPrefix = "HISTOCAT"

// Config holds all application configuration.
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	ES      ESConfig      `mapstructure:"es"`
	Schema  SchemaConfig  `mapstructure:"schema"`
	State   StateConfig   `mapstructure:"state"`
	Display DisplayConfig `mapstructure:"display"`
	OTLP    OTLPConfig    `mapstructure:"otlp"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// BackendConfig holds distributions backend connection settings.
type BackendConfig struct {
	URL      string        `mapstructure:"url"`      // Backend base URL
	Timeout  time.Duration `mapstructure:"timeout"`  // Request timeout
	APIKey   string        `mapstructure:"api_key"`  // API key
	Username string        `mapstructure:"username"` // Basic auth user
	Password string        `mapstructure:"password"` // Basic auth password
}

// ESConfig holds Elasticsearch settings for the field caps schema lookup.
// An empty URL disables the lookup.
type ESConfig struct {
	URL      string        `mapstructure:"url"`
	Index    string        `mapstructure:"index"`
	Timeout  time.Duration `mapstructure:"timeout"`
	APIKey   string        `mapstructure:"api_key"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
}

// SchemaConfig holds the static schema settings.
type SchemaConfig struct {
	File       string   `mapstructure:"file"`        // YAML schema file
	DateFields []string `mapstructure:"date_fields"` // Date-only fields among ES date fields
}

// StateConfig holds the session state inputs.
type StateConfig struct {
	File    string `mapstructure:"file"`    // YAML state file (dataset, view, filters)
	Journal string `mapstructure:"journal"` // Mutation journal; each new line forces a refresh
	Dataset string `mapstructure:"dataset"` // Dataset when no state file is used
}

// DisplayConfig holds label rendering settings.
type DisplayConfig struct {
	Timezone   string `mapstructure:"timezone"`    // IANA zone for date-time fields
	DateLayout string `mapstructure:"date_layout"` // Go layout for the date portion
}

// OTLPConfig holds OpenTelemetry Protocol settings. An empty endpoint
// disables log export.
type OTLPConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint
	Insecure bool   `mapstructure:"insecure"` // Use insecure connection
}

// TUIConfig holds TUI timing and request settings.
type TUIConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// Default configuration values.
const (
	DefaultBackendURL     = "http://localhost:5151"
	DefaultTimeout        = 30 * time.Second
	DefaultIndex          = "*"
	DefaultTimezone       = "UTC"
	DefaultDateLayout     = "2006-01-02"
	DefaultFetchTimeout   = 20 * time.Second
	DefaultDotEnvFilename = ".env"
)

// ContextKey is used to store config in context.
type ContextKey struct{}

// FromContext retrieves Config from context.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(ContextKey{}).(Config)
	return cfg, ok
}

// WithContext stores Config in context.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, ContextKey{}, cfg)
}

// Load builds a Config using Viper with precedence:
// flags > env (including .env) > active profile > defaults.
// It binds flags from the command (and its parents) and fails fast on invalid values.
func Load(cmd *cobra.Command) (Config, error) {
	if err := LoadDotEnv(DefaultDotEnvFilename); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := applyActiveProfile(v, profileFlag(cmd)); err != nil {
		return Config{}, err
	}
	if err := bindFlagsRecursive(v, cmd); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// setDefaults registers default values with Viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", DefaultBackendURL)
	v.SetDefault("backend.timeout", DefaultTimeout)
	v.SetDefault("backend.api_key", "")
	v.SetDefault("backend.username", "")
	v.SetDefault("backend.password", "")

	v.SetDefault("es.url", "")
	v.SetDefault("es.index", DefaultIndex)
	v.SetDefault("es.timeout", DefaultTimeout)
	v.SetDefault("es.api_key", "")
	v.SetDefault("es.username", "")
	v.SetDefault("es.password", "")

	v.SetDefault("schema.file", "")
	v.SetDefault("schema.date_fields", []string{})

	v.SetDefault("state.file", "")
	v.SetDefault("state.journal", "")
	v.SetDefault("state.dataset", "")

	v.SetDefault("display.timezone", DefaultTimezone)
	v.SetDefault("display.date_layout", DefaultDateLayout)

	v.SetDefault("otlp.endpoint", "")
	v.SetDefault("otlp.insecure", true)

	v.SetDefault("tui.fetch_timeout", DefaultFetchTimeout)
}

// profileFlag returns the --profile value of cmd or its parents.
func profileFlag(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			if f := fs.Lookup("profile"); f != nil && f.Value.String() != "" {
				return f.Value.String()
			}
		}
	}
	return ""
}

// applyActiveProfile layers the active profile over the defaults.
func applyActiveProfile(v *viper.Viper, name string) error {
	profiles, err := LoadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	profile, active := profiles.GetActiveProfile(name)
	if profile == nil {
		if name != "" {
			return fmt.Errorf("profile %q not found", name)
		}
		return nil
	}
	resolved, err := profile.Resolve()
	if err != nil {
		return fmt.Errorf("profile %q: %w", active, err)
	}

	set := func(key, value string) {
		if value != "" {
			v.SetDefault(key, value)
		}
	}
	set("backend.url", resolved.Backend.URL)
	set("backend.api_key", resolved.Backend.APIKey)
	set("backend.username", resolved.Backend.Username)
	set("backend.password", resolved.Backend.Password)
	set("es.url", resolved.Elasticsearch.URL)
	set("es.index", resolved.Elasticsearch.Index)
	set("es.api_key", resolved.Elasticsearch.APIKey)
	set("es.username", resolved.Elasticsearch.Username)
	set("es.password", resolved.Elasticsearch.Password)
	set("otlp.endpoint", resolved.OTLP.Endpoint)
	if resolved.OTLP.Insecure != nil {
		v.SetDefault("otlp.insecure", *resolved.OTLP.Insecure)
	}
	set("display.timezone", resolved.Display.Timezone)
	return nil
}

// bindFlagsRecursive binds flags from cmd and all parents so Viper sees them.
func bindFlagsRecursive(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	if err := bindFlagSet(v, cmd.Flags()); err != nil {
		return err
	}
	if err := bindFlagSet(v, cmd.PersistentFlags()); err != nil {
		return err
	}
	return bindFlagsRecursive(v, cmd.Parent())
}

// flagToKey maps flag names to nested Viper keys.
var flagToKey = map[string]string{
	"backend-url":     "backend.url",
	"backend-timeout": "backend.timeout",
	"es-url":          "es.url",
	"index":           "es.index",
	"schema":          "schema.file",
	"date-fields":     "schema.date_fields",
	"state":           "state.file",
	"journal":         "state.journal",
	"dataset":         "state.dataset",
	"tz":              "display.timezone",
	"date-layout":     "display.date_layout",
	"otlp":            "otlp.endpoint",
	"fetch-timeout":   "tui.fetch_timeout",
}

// bindFlagSet binds flags to Viper keys using explicit mappings to nested keys.
func bindFlagSet(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagToKey[f.Name]
		if !ok {
			// Flags without a config key (e.g. --profile, --output) stay local
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Validate enforces correctness and fails fast on invalid configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return fmt.Errorf("backend.url is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be > 0")
	}
	if strings.TrimSpace(c.ES.URL) != "" {
		if strings.TrimSpace(c.ES.Index) == "" {
			return fmt.Errorf("es.index is required when es.url is set")
		}
		if c.ES.Timeout <= 0 {
			return fmt.Errorf("es.timeout must be > 0")
		}
	}
	if _, err := c.Display.Location(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Display.DateLayout) == "" {
		return fmt.Errorf("display.date_layout is required")
	}
	if c.TUI.FetchTimeout <= 0 {
		return fmt.Errorf("tui.fetch_timeout must be > 0")
	}
	return nil
}

// Location resolves the display timezone.
func (d DisplayConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(d.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("display.timezone %q: %w", d.Timezone, err)
	}
	return loc, nil
}
