// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/elastic/histocat/internal/config"
	"github.com/spf13/cobra"
)

// Flags for set-profile command
var (
	setProfileBackendURL      string
	setProfileBackendAPIKey   string
	setProfileBackendUsername string
	setProfileBackendPassword string
	setProfileESURL           string
	setProfileESIndex         string
	setProfileESAPIKey        string
	setProfileESUsername      string
	setProfileESPassword      string
	setProfileOTLP            string
	setProfileOTLPInsec       bool
	setProfileTimezone        string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage histocat configuration and profiles",
	Long: `Manage histocat configuration profiles.

Profiles allow you to define multiple backend/Elasticsearch/OTLP configurations
and switch between them easily (similar to kubectl contexts).

Configuration is stored in ~/.config/histocat/config.yaml`,
	// Profile commands edit the file the configuration is loaded from.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var useProfileCmd = &cobra.Command{
	Use:   "use-profile <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		// Verify profile exists
		if _, err := cfg.GetProfile(name); err != nil {
			return fmt.Errorf("profile %q does not exist", name)
		}

		cfg.CurrentProfile = name
		if err := config.SaveProfiles(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %q\n", name)
		return nil
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set-profile <name>",
	Short: "Create or update a profile",
	Long: `Create or update a named profile with connection settings.

Examples:
  # Create a local development profile
  histocat config set-profile local --backend-url http://localhost:5151

  # Create a staging profile with API key (using env var reference)
  histocat config set-profile staging \
    --backend-url https://staging.example.com \
    --backend-api-key '${STAGING_API_KEY}' \
    --es-url https://staging.es.example.com:9243

  # Render date-times in New York time by default
  histocat config set-profile nyc --tz America/New_York

Credentials can be stored as:
  - Environment variable references: ${MY_SECRET} (recommended)
  - Plain text values (warning will be shown)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		// Get existing profile or create new one
		profile, _ := cfg.GetProfile(name)
		applyProfileFlags(cmd, &profile)
		cfg.SetProfile(name, profile)

		if err := config.SaveProfiles(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		// Warn if plain text credentials were stored
		if profile.HasPlainTextCredentials() {
			fmt.Fprintln(cmd.ErrOrStderr(), config.PlainTextCredentialWarning())
			fmt.Fprintln(cmd.ErrOrStderr())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved\n", name)
		return nil
	},
}

// applyProfileFlags updates profile with the set-profile flags that were given.
func applyProfileFlags(cmd *cobra.Command, profile *config.Profile) {
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&profile.Backend.URL, setProfileBackendURL)
	set(&profile.Backend.APIKey, setProfileBackendAPIKey)
	set(&profile.Backend.Username, setProfileBackendUsername)
	set(&profile.Backend.Password, setProfileBackendPassword)
	set(&profile.Elasticsearch.URL, setProfileESURL)
	set(&profile.Elasticsearch.Index, setProfileESIndex)
	set(&profile.Elasticsearch.APIKey, setProfileESAPIKey)
	set(&profile.Elasticsearch.Username, setProfileESUsername)
	set(&profile.Elasticsearch.Password, setProfileESPassword)
	set(&profile.OTLP.Endpoint, setProfileOTLP)
	set(&profile.Display.Timezone, setProfileTimezone)
	if cmd.Flags().Changed("otlp-insecure") {
		insecure := setProfileOTLPInsec
		profile.OTLP.Insecure = &insecure
	}
}

var getProfilesCmd = &cobra.Command{
	Use:     "get-profiles",
	Aliases: []string{"list-profiles", "profiles"},
	Short:   "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		names := cfg.ListProfiles()
		if len(names) == 0 {
			fmt.Fprintln(out, "No profiles configured.")
			fmt.Fprintln(out, "Create one with: histocat config set-profile <name> --backend-url <url>")
			return nil
		}

		fmt.Fprintln(out, "PROFILES:")
		for _, name := range names {
			marker := "  "
			if name == cfg.CurrentProfile {
				marker = "* "
			}
			profile, _ := cfg.GetProfile(name)
			fmt.Fprintf(out, "%s%-20s  %s\n", marker, name, formatProfileSummary(profile))
		}

		if cfg.CurrentProfile != "" {
			fmt.Fprintf(out, "\n* = current profile\n")
		}

		return nil
	},
}

var currentProfileCmd = &cobra.Command{
	Use:   "current-profile",
	Short: "Show the current profile name",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		if cfg.CurrentProfile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No profile selected (using defaults)")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), cfg.CurrentProfile)
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		if err := cfg.DeleteProfile(name); err != nil {
			return err
		}

		if err := config.SaveProfiles(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile %q deleted\n", name)
		return nil
	},
}

var viewConfigCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the full configuration (credentials masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg, err := config.LoadProfiles()
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		if len(cfg.Profiles) == 0 && cfg.CurrentProfile == "" {
			fmt.Fprintln(out, "No configuration found.")
			fmt.Fprintln(out, "Create a profile with: histocat config set-profile <name> --backend-url <url>")
			return nil
		}

		// Print the masked config
		fmt.Fprintln(out, cfg.String())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	// set-profile flags
	setProfileCmd.Flags().StringVar(&setProfileBackendURL, "backend-url", "", "Distributions backend URL")
	setProfileCmd.Flags().StringVar(&setProfileBackendAPIKey, "backend-api-key", "", "Backend API key (supports ${ENV_VAR} syntax)")
	setProfileCmd.Flags().StringVar(&setProfileBackendUsername, "backend-username", "", "Backend username")
	setProfileCmd.Flags().StringVar(&setProfileBackendPassword, "backend-password", "", "Backend password (supports ${ENV_VAR} syntax)")
	setProfileCmd.Flags().StringVar(&setProfileESURL, "es-url", "", "Elasticsearch URL")
	setProfileCmd.Flags().StringVar(&setProfileESIndex, "es-index", "", "Elasticsearch index pattern for field caps")
	setProfileCmd.Flags().StringVar(&setProfileESAPIKey, "es-api-key", "", "Elasticsearch API key (supports ${ENV_VAR} syntax)")
	setProfileCmd.Flags().StringVar(&setProfileESUsername, "es-username", "", "Elasticsearch username")
	setProfileCmd.Flags().StringVar(&setProfileESPassword, "es-password", "", "Elasticsearch password (supports ${ENV_VAR} syntax)")
	setProfileCmd.Flags().StringVar(&setProfileOTLP, "otlp", "", "OTLP endpoint")
	setProfileCmd.Flags().BoolVar(&setProfileOTLPInsec, "otlp-insecure", true, "Use insecure OTLP connection")
	setProfileCmd.Flags().StringVar(&setProfileTimezone, "tz", "", "Display timezone (IANA name)")

	// Add subcommands
	configCmd.AddCommand(useProfileCmd)
	configCmd.AddCommand(setProfileCmd)
	configCmd.AddCommand(getProfilesCmd)
	configCmd.AddCommand(currentProfileCmd)
	configCmd.AddCommand(deleteProfileCmd)
	configCmd.AddCommand(viewConfigCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

// formatProfileSummary returns a brief summary of a profile's settings.
func formatProfileSummary(p config.Profile) string {
	var parts []string
	if p.Backend.URL != "" {
		parts = append(parts, fmt.Sprintf("backend=%s", p.Backend.URL))
	}
	if p.Elasticsearch.URL != "" {
		esStr := p.Elasticsearch.URL
		if p.Elasticsearch.Index != "" {
			esStr = fmt.Sprintf("%s (index: %s)", p.Elasticsearch.URL, p.Elasticsearch.Index)
		}
		parts = append(parts, fmt.Sprintf("es=%s", esStr))
	}
	if p.OTLP.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("otlp=%s", p.OTLP.Endpoint))
	}
	if p.Display.Timezone != "" {
		parts = append(parts, fmt.Sprintf("tz=%s", p.Display.Timezone))
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}
