// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileConfig represents the top-level configuration file structure.
// Stored at ~/.config/histocat/config.yaml
type ProfileConfig struct {
	CurrentProfile string             `yaml:"current-profile,omitempty"`
	Profiles       map[string]Profile `yaml:"profiles,omitempty"`
}

// Profile represents a named configuration profile containing
// connection settings for the backend, Elasticsearch and OTLP.
type Profile struct {
	Backend       BackendProfile `yaml:"backend,omitempty"`
	Elasticsearch ESProfile      `yaml:"elasticsearch,omitempty"`
	OTLP          OTLPProfile    `yaml:"otlp,omitempty"`
	Display       DisplayProfile `yaml:"display,omitempty"`
}

// BackendProfile holds distributions backend settings for a profile.
type BackendProfile struct {
	URL      string `yaml:"url,omitempty"`
	APIKey   string `yaml:"api-key,omitempty"` // Supports ${ENV_VAR} syntax
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"` // Supports ${ENV_VAR} syntax
}

// ESProfile holds Elasticsearch connection settings for a profile.
type ESProfile struct {
	URL      string `yaml:"url,omitempty"`
	Index    string `yaml:"index,omitempty"`
	APIKey   string `yaml:"api-key,omitempty"` // Supports ${ENV_VAR} syntax
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"` // Supports ${ENV_VAR} syntax
}

// OTLPProfile holds OTLP connection settings for a profile.
type OTLPProfile struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Insecure *bool  `yaml:"insecure,omitempty"` // Pointer to distinguish unset from false
}

// DisplayProfile holds display settings for a profile.
type DisplayProfile struct {
	Timezone string `yaml:"timezone,omitempty"`
}

// Default configuration directory and file names.
const (
	ConfigDirName  = "histocat"
	ConfigFileName = "config.yaml"
)

// GetConfigDir returns the path to the histocat config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/histocat
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadProfiles loads the profile configuration from disk.
// Returns an empty ProfileConfig if the file doesn't exist.
// Warns to stderr if file permissions are insecure.
func LoadProfiles() (*ProfileConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ProfileConfig{Profiles: make(map[string]Profile)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	checkFilePermissions(path)

	cfg := ProfileConfig{Profiles: make(map[string]Profile)}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	return &cfg, nil
}

// SaveProfiles writes the profile configuration to disk with 0600
// permissions, creating the config directory if needed. The file is
// replaced atomically so a failed write never leaves a truncated config.
func SaveProfiles(cfg *ProfileConfig) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func profileNotFound(name string) error {
	return fmt.Errorf("profile %q not found", name)
}

// GetProfile returns the named profile, or an error if it doesn't exist.
func (c *ProfileConfig) GetProfile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, profileNotFound(name)
	}
	return p, nil
}

// SetProfile creates or updates a named profile.
func (c *ProfileConfig) SetProfile(name string, profile Profile) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = profile
}

// DeleteProfile removes a named profile and clears the current profile if
// it was the deleted one.
func (c *ProfileConfig) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return profileNotFound(name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return nil
}

// ListProfiles returns the sorted profile names.
func (c *ProfileConfig) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetActiveProfile returns the profile named by profileFlag, or the
// current profile when the flag is empty. It returns nil and an empty name
// when no profile is active.
func (c *ProfileConfig) GetActiveProfile(profileFlag string) (*Profile, string) {
	name := profileFlag
	if name == "" {
		name = c.CurrentProfile
	}
	p, ok := c.Profiles[name]
	if name == "" || !ok {
		return nil, ""
	}
	return &p, name
}

// envVarPattern matches ${VAR_NAME} patterns
var envVarPattern = regexp.MustCompile(`^\$\{([^}]+)\}$`)

// IsEnvRef returns true if the string is an environment variable reference.
func IsEnvRef(s string) bool {
	return envVarPattern.MatchString(s)
}

// expandEnvVar expands a single ${VAR} reference.
// Returns the expanded value and true if successful.
// Returns empty string and false if the env var is not set.
func expandEnvVar(s string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(s)
	if len(matches) != 2 {
		return s, true // Not an env var reference, return as-is
	}
	varName := matches[1]
	value, ok := os.LookupEnv(varName)
	return value, ok
}

// credential is one secret-bearing profile field.
type credential struct {
	name  string
	value *string
}

// credentials lists the secret-bearing fields of p.
func (p *Profile) credentials() []credential {
	return []credential{
		{"backend api-key", &p.Backend.APIKey},
		{"backend username", &p.Backend.Username},
		{"backend password", &p.Backend.Password},
		{"api-key", &p.Elasticsearch.APIKey},
		{"username", &p.Elasticsearch.Username},
		{"password", &p.Elasticsearch.Password},
	}
}

// Resolve returns a copy of the profile with all ${ENV_VAR} references expanded.
// Returns an error if any referenced environment variable is undefined.
func (p Profile) Resolve() (Profile, error) {
	resolved := p
	for _, c := range resolved.credentials() {
		if !IsEnvRef(*c.value) {
			continue
		}
		val, ok := expandEnvVar(*c.value)
		if !ok {
			return Profile{}, fmt.Errorf("undefined environment variable in %s: %s", c.name, *c.value)
		}
		*c.value = val
	}
	return resolved, nil
}

// HasCredentials returns true if the profile contains any authentication credentials.
func (p Profile) HasCredentials() bool {
	for _, c := range p.credentials() {
		if *c.value != "" {
			return true
		}
	}
	return false
}

// HasPlainTextCredentials returns true if the profile contains credentials
// that are not environment variable references.
func (p Profile) HasPlainTextCredentials() bool {
	for _, c := range p.credentials() {
		if *c.value != "" && !IsEnvRef(*c.value) {
			return true
		}
	}
	return false
}

// checkFilePermissions warns to stderr if the config file has insecure permissions.
func checkFilePermissions(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	mode := info.Mode().Perm()
	if mode&0077 != 0 { // group or world can read
		fmt.Fprintf(os.Stderr, "Warning: %s has permissions %04o, should be 0600 for security\n", path, mode)
	}
}

// MaskCredentials returns a copy of the profile with credentials masked for display.
// Environment variable references are shown as-is, plain text values are replaced with "****".
func (p Profile) MaskCredentials() Profile {
	masked := p
	for _, c := range masked.credentials() {
		if *c.value != "" && !IsEnvRef(*c.value) {
			*c.value = "****"
		}
	}
	return masked
}

// MaskAllCredentials returns a copy of the config with all profile credentials masked.
func (c ProfileConfig) MaskAllCredentials() ProfileConfig {
	masked := ProfileConfig{
		CurrentProfile: c.CurrentProfile,
		Profiles:       make(map[string]Profile),
	}
	for name, profile := range c.Profiles {
		masked.Profiles[name] = profile.MaskCredentials()
	}
	return masked
}

// String returns a YAML representation of the config with credentials masked.
func (c ProfileConfig) String() string {
	masked := c.MaskAllCredentials()
	data, err := yaml.Marshal(masked)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return strings.TrimSpace(string(data))
}

// PlainTextCredentialWarning returns a warning message if any profiles contain
// plain text credentials.
func PlainTextCredentialWarning() string {
	return "Warning: Storing credentials in plain text. Consider using environment\n" +
		"variable references (e.g., api-key: ${MY_API_KEY}) for better security."
}
