// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestProfileConfig_CRUD(t *testing.T) {
	t.Parallel()

	cfg := &ProfileConfig{}
	if got := cfg.ListProfiles(); len(got) != 0 {
		t.Fatalf("ListProfiles() on empty config = %v", got)
	}
	if _, err := cfg.GetProfile("local"); err == nil {
		t.Fatal("expected error for missing profile")
	}

	cfg.SetProfile("staging", Profile{Backend: BackendProfile{URL: "https://staging:5151"}})
	cfg.SetProfile("local", Profile{
		Backend: BackendProfile{URL: "http://localhost:5151"},
		Display: DisplayProfile{Timezone: "Europe/Paris"},
	})
	cfg.CurrentProfile = "local"

	if got, want := cfg.ListProfiles(), []string{"local", "staging"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListProfiles() = %v, want %v", got, want)
	}

	p, err := cfg.GetProfile("local")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Display.Timezone != "Europe/Paris" {
		t.Errorf("Timezone = %q", p.Display.Timezone)
	}

	if err := cfg.DeleteProfile("missing"); err == nil {
		t.Error("expected error deleting a missing profile")
	}
	if err := cfg.DeleteProfile("local"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if cfg.CurrentProfile != "" {
		t.Errorf("deleting the current profile should clear it, got %q", cfg.CurrentProfile)
	}
	if got := cfg.ListProfiles(); !reflect.DeepEqual(got, []string{"staging"}) {
		t.Errorf("ListProfiles() after delete = %v", got)
	}
}

func TestProfileConfig_GetActiveProfile(t *testing.T) {
	t.Parallel()

	cfg := &ProfileConfig{
		CurrentProfile: "local",
		Profiles: map[string]Profile{
			"local":   {Backend: BackendProfile{URL: "http://localhost:5151"}},
			"staging": {Backend: BackendProfile{URL: "https://staging:5151"}},
		},
	}

	tests := []struct {
		name     string
		flag     string
		current  string
		wantName string
	}{
		{"current profile", "", "local", "local"},
		{"flag wins", "staging", "local", "staging"},
		{"unknown flag", "prod", "local", ""},
		{"nothing selected", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := *cfg
			c.CurrentProfile = tt.current
			p, name := c.GetActiveProfile(tt.flag)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if (p == nil) != (tt.wantName == "") {
				t.Errorf("profile = %v for name %q", p, name)
			}
		})
	}
}

func TestIsEnvRef(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"${API_KEY}":    true,
		"${A}":          true,
		"$API_KEY":      false,
		"plain":         false,
		"${}":           false,
		"x${API_KEY}":   false,
		"${API_KEY}x":   false,
		"":              false,
		"${BACKEND_PW}": true,
	}
	for input, want := range tests {
		if got := IsEnvRef(input); got != want {
			t.Errorf("IsEnvRef(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestProfile_Resolve(t *testing.T) {
	t.Setenv("HISTOCAT_TEST_BACKEND_KEY", "backend-secret")
	t.Setenv("HISTOCAT_TEST_ES_PASSWORD", "es-secret")

	p := Profile{
		Backend:       BackendProfile{URL: "http://localhost:5151", APIKey: "${HISTOCAT_TEST_BACKEND_KEY}"},
		Elasticsearch: ESProfile{Username: "elastic", Password: "${HISTOCAT_TEST_ES_PASSWORD}"},
	}
	resolved, err := p.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Backend.APIKey != "backend-secret" {
		t.Errorf("backend api key = %q", resolved.Backend.APIKey)
	}
	if resolved.Elasticsearch.Password != "es-secret" {
		t.Errorf("es password = %q", resolved.Elasticsearch.Password)
	}
	if resolved.Elasticsearch.Username != "elastic" {
		t.Errorf("plain values must pass through, got %q", resolved.Elasticsearch.Username)
	}
	if p.Backend.APIKey != "${HISTOCAT_TEST_BACKEND_KEY}" {
		t.Error("Resolve must not modify the receiver")
	}

	p.Backend.Password = "${HISTOCAT_TEST_UNDEFINED}"
	_, err = p.Resolve()
	if err == nil || !strings.Contains(err.Error(), "backend password") {
		t.Errorf("expected undefined variable error naming the field, got %v", err)
	}
}

func TestProfile_Credentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		profile   Profile
		has       bool
		plainText bool
	}{
		{"none", Profile{Backend: BackendProfile{URL: "http://localhost:5151"}}, false, false},
		{"env backend key", Profile{Backend: BackendProfile{APIKey: "${KEY}"}}, true, false},
		{"plain backend password", Profile{Backend: BackendProfile{Password: "hunter2"}}, true, true},
		{"plain es api key", Profile{Elasticsearch: ESProfile{APIKey: "abc"}}, true, true},
		{"env es credentials", Profile{Elasticsearch: ESProfile{Username: "${U}", Password: "${P}"}}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.profile.HasCredentials(); got != tt.has {
				t.Errorf("HasCredentials() = %v, want %v", got, tt.has)
			}
			if got := tt.profile.HasPlainTextCredentials(); got != tt.plainText {
				t.Errorf("HasPlainTextCredentials() = %v, want %v", got, tt.plainText)
			}
		})
	}
}

func TestProfile_MaskCredentials(t *testing.T) {
	t.Parallel()

	p := Profile{
		Backend:       BackendProfile{URL: "http://localhost:5151", APIKey: "secret", Username: "${USER}"},
		Elasticsearch: ESProfile{Password: "hunter2"},
	}
	masked := p.MaskCredentials()

	if masked.Backend.APIKey != "****" || masked.Elasticsearch.Password != "****" {
		t.Errorf("plain text credentials not masked: %+v", masked)
	}
	if masked.Backend.Username != "${USER}" {
		t.Errorf("env references should stay visible, got %q", masked.Backend.Username)
	}
	if masked.Backend.URL != "http://localhost:5151" {
		t.Errorf("URL should not be masked, got %q", masked.Backend.URL)
	}
	if p.Backend.APIKey != "secret" {
		t.Error("MaskCredentials must not modify the receiver")
	}
}

func TestProfileConfig_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	insecure := false
	cfg := &ProfileConfig{CurrentProfile: "nyc"}
	cfg.SetProfile("nyc", Profile{
		Backend:       BackendProfile{URL: "https://dist.example.com", APIKey: "${KEY}"},
		Elasticsearch: ESProfile{URL: "https://es.example.com", Index: "pets-*"},
		OTLP:          OTLPProfile{Endpoint: "otel:4318", Insecure: &insecure},
		Display:       DisplayProfile{Timezone: "America/New_York"},
	})
	if err := SaveProfiles(cfg); err != nil {
		t.Fatalf("SaveProfiles: %v", err)
	}

	path := filepath.Join(dir, ConfigDirName, ConfigFileName)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %04o, want 0600", perm)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadProfiles_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if cfg.Profiles == nil || len(cfg.Profiles) != 0 || cfg.CurrentProfile != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadProfiles_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, ConfigDirName, ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("profiles: [not, a, map]\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfiles(); err == nil || !strings.Contains(err.Error(), "parse config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "histocat", "config.yaml"); path != want {
		t.Errorf("GetConfigPath() = %q, want %q", path, want)
	}
}

func TestProfileConfig_String(t *testing.T) {
	t.Parallel()

	cfg := ProfileConfig{
		CurrentProfile: "local",
		Profiles: map[string]Profile{
			"local": {Backend: BackendProfile{URL: "http://localhost:5151", Password: "hunter2"}},
		},
	}
	out := cfg.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("String() leaks a credential:\n%s", out)
	}
	for _, want := range []string{"current-profile: local", "http://localhost:5151", "****"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}
