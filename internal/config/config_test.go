// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	// Root-level flags
	cmd.PersistentFlags().String("profile", "", "")
	cmd.PersistentFlags().String("backend-url", "", "")
	cmd.PersistentFlags().String("es-url", "", "")
	cmd.PersistentFlags().String("index", "", "")
	cmd.PersistentFlags().String("tz", "", "")
	cmd.PersistentFlags().String("otlp", "", "")

	// Command flags
	cmd.Flags().String("state", "", "")
	cmd.Flags().String("journal", "", "")
	cmd.Flags().String("schema", "", "")
	cmd.Flags().StringSlice("date-fields", nil, "")
	cmd.Flags().Duration("fetch-timeout", 0, "")
	cmd.Flags().String("output", "", "")

	return cmd
}

// isolate points the profile store at an empty directory and clears env.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"HISTOCAT_BACKEND_URL",
		"HISTOCAT_BACKEND_TIMEOUT",
		"HISTOCAT_ES_URL",
		"HISTOCAT_ES_INDEX",
		"HISTOCAT_DISPLAY_TIMEZONE",
		"HISTOCAT_OTLP_ENDPOINT",
		"HISTOCAT_TUI_FETCH_TIMEOUT",
		"HISTOCAT_SCHEMA_DATE_FIELDS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(newTestCmd())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != DefaultBackendURL {
		t.Errorf("Backend.URL = %q, want %q", cfg.Backend.URL, DefaultBackendURL)
	}
	if cfg.Backend.Timeout != DefaultTimeout {
		t.Errorf("Backend.Timeout = %v, want %v", cfg.Backend.Timeout, DefaultTimeout)
	}
	if cfg.ES.URL != "" {
		t.Errorf("ES.URL = %q, want disabled", cfg.ES.URL)
	}
	if cfg.Display.Timezone != DefaultTimezone || cfg.Display.DateLayout != DefaultDateLayout {
		t.Errorf("Display = %+v", cfg.Display)
	}
	if cfg.TUI.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("TUI.FetchTimeout = %v, want %v", cfg.TUI.FetchTimeout, DefaultFetchTimeout)
	}
	if cfg.OTLP.Endpoint != "" {
		t.Errorf("OTLP.Endpoint = %q, want disabled", cfg.OTLP.Endpoint)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HISTOCAT_BACKEND_URL", "http://backend:5151")
	t.Setenv("HISTOCAT_BACKEND_TIMEOUT", "7s")
	t.Setenv("HISTOCAT_ES_URL", "http://custom:9200")
	t.Setenv("HISTOCAT_ES_INDEX", "quickstart-*")
	t.Setenv("HISTOCAT_DISPLAY_TIMEZONE", "Europe/Paris")
	t.Setenv("HISTOCAT_OTLP_ENDPOINT", "custom:4318")
	t.Setenv("HISTOCAT_TUI_FETCH_TIMEOUT", "11s")
	t.Setenv("HISTOCAT_SCHEMA_DATE_FIELDS", "birthday,anniversary")

	cfg, err := Load(newTestCmd())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != "http://backend:5151" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 7*time.Second {
		t.Errorf("Backend.Timeout = %v, want 7s", cfg.Backend.Timeout)
	}
	if cfg.ES.URL != "http://custom:9200" || cfg.ES.Index != "quickstart-*" {
		t.Errorf("ES = %+v", cfg.ES)
	}
	if cfg.Display.Timezone != "Europe/Paris" {
		t.Errorf("Display.Timezone = %q", cfg.Display.Timezone)
	}
	if cfg.OTLP.Endpoint != "custom:4318" {
		t.Errorf("OTLP.Endpoint = %q", cfg.OTLP.Endpoint)
	}
	if cfg.TUI.FetchTimeout != 11*time.Second {
		t.Errorf("TUI.FetchTimeout = %v, want 11s", cfg.TUI.FetchTimeout)
	}
	if !reflect.DeepEqual(cfg.Schema.DateFields, []string{"birthday", "anniversary"}) {
		t.Errorf("Schema.DateFields = %v", cfg.Schema.DateFields)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("HISTOCAT_BACKEND_URL", "http://env:5151")

	cmd := newTestCmd()
	_ = cmd.PersistentFlags().Set("backend-url", "http://flag:5151")
	_ = cmd.Flags().Set("state", "session.yaml")

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != "http://flag:5151" {
		t.Errorf("Backend.URL = %q, want flag value", cfg.Backend.URL)
	}
	if cfg.State.File != "session.yaml" {
		t.Errorf("State.File = %q, want session.yaml", cfg.State.File)
	}
}

func TestLoad_ProfileBetweenDefaultsAndEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PROFILE_KEY", "from-env-ref")

	insecure := false
	if err := SaveProfiles(&ProfileConfig{
		CurrentProfile: "staging",
		Profiles: map[string]Profile{
			"staging": {
				Backend:       BackendProfile{URL: "http://staging:5151", APIKey: "${PROFILE_KEY}"},
				Elasticsearch: ESProfile{URL: "http://staging:9200", Index: "staging-*"},
				OTLP:          OTLPProfile{Endpoint: "staging:4318", Insecure: &insecure},
				Display:       DisplayProfile{Timezone: "Asia/Tokyo"},
			},
			"other": {
				Backend: BackendProfile{URL: "http://other:5151"},
			},
		},
	}); err != nil {
		t.Fatalf("SaveProfiles: %v", err)
	}

	cfg, err := Load(newTestCmd())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != "http://staging:5151" || cfg.Backend.APIKey != "from-env-ref" {
		t.Errorf("Backend = %+v", cfg.Backend)
	}
	if cfg.ES.Index != "staging-*" {
		t.Errorf("ES.Index = %q", cfg.ES.Index)
	}
	if cfg.OTLP.Insecure {
		t.Error("OTLP.Insecure should come from the profile")
	}
	if cfg.Display.Timezone != "Asia/Tokyo" {
		t.Errorf("Display.Timezone = %q", cfg.Display.Timezone)
	}

	// Env beats the profile.
	t.Setenv("HISTOCAT_BACKEND_URL", "http://env:5151")
	cfg, err = Load(newTestCmd())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != "http://env:5151" {
		t.Errorf("Backend.URL = %q, want env value", cfg.Backend.URL)
	}

	// --profile selects another profile.
	os.Unsetenv("HISTOCAT_BACKEND_URL")
	cmd := newTestCmd()
	_ = cmd.PersistentFlags().Set("profile", "other")
	cfg, err = Load(cmd)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != "http://other:5151" {
		t.Errorf("Backend.URL = %q, want other profile", cfg.Backend.URL)
	}

	cmd = newTestCmd()
	_ = cmd.PersistentFlags().Set("profile", "missing")
	if _, err := Load(cmd); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestLoad_InvalidEnv_FailsFast(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"HISTOCAT_TUI_FETCH_TIMEOUT", "abc"},
		{"HISTOCAT_DISPLAY_TIMEZONE", "Mars/Olympus"},
		{"HISTOCAT_BACKEND_URL", " "},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			isolate(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(newTestCmd()); err == nil {
				t.Fatalf("expected error for %s=%q, got nil", tc.key, tc.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Backend: BackendConfig{URL: DefaultBackendURL, Timeout: DefaultTimeout},
		Display: DisplayConfig{Timezone: "UTC", DateLayout: DefaultDateLayout},
		TUI:     TUIConfig{FetchTimeout: DefaultFetchTimeout},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero backend timeout", func(c *Config) { c.Backend.Timeout = 0 }},
		{"es without index", func(c *Config) { c.ES.URL = "http://es:9200"; c.ES.Timeout = time.Second }},
		{"es without timeout", func(c *Config) { c.ES.URL = "http://es:9200"; c.ES.Index = "x" }},
		{"empty date layout", func(c *Config) { c.Display.DateLayout = "" }},
		{"zero fetch timeout", func(c *Config) { c.TUI.FetchTimeout = 0 }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDisplayConfig_Location(t *testing.T) {
	t.Parallel()

	loc, err := DisplayConfig{}.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("empty timezone = %v, %v; want UTC", loc, err)
	}
	loc, err = DisplayConfig{Timezone: "America/New_York"}.Location()
	if err != nil || loc.String() != "America/New_York" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("HISTOCAT_TEST_DOTENV=from-file\nHISTOCAT_TEST_PRESET=from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HISTOCAT_TEST_PRESET", "from-env")
	t.Setenv("HISTOCAT_TEST_DOTENV", "")
	os.Unsetenv("HISTOCAT_TEST_DOTENV")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("HISTOCAT_TEST_DOTENV"); got != "from-file" {
		t.Errorf("HISTOCAT_TEST_DOTENV = %q, want from-file", got)
	}
	if got := os.Getenv("HISTOCAT_TEST_PRESET"); got != "from-env" {
		t.Errorf("existing variable overwritten: %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
