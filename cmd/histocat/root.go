// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"time"

	"github.com/elastic/histocat/internal/config"
	"github.com/spf13/cobra"
)

// Global flags shared across commands.
// Values are bound via Viper; variables keep Cobra compatibility.
var (
	profileFlag        string
	backendURLFlag     string
	backendTimeoutFlag time.Duration
	esURLFlag          string
	esIndexFlag        string
	schemaFileFlag     string
	dateFieldsFlag     []string
	stateFileFlag      string
	journalFlag        string
	datasetFlag        string
	timezoneFlag       string
	dateLayoutFlag     string
	otlpFlag           string
)

var rootCmd = &cobra.Command{
	Use:   "histocat",
	Short: "Explore per-field value distributions from the terminal",
	Long: `histocat - Per-field histograms of a dataset, with bucket ranges you can read.

Fetch the distributions of a field group with 'histocat dist labels',
browse them interactively with 'histocat ui', or write an HTML report
with 'histocat export labels -o labels.html'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	// Global flags (Viper precedence: flags > env > profile > defaults)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&profileFlag, "profile", "", "Configuration profile to use (default: current profile)")
	flags.StringVar(&backendURLFlag, "backend-url", config.DefaultBackendURL, "Distributions backend URL (env: HISTOCAT_BACKEND_URL)")
	flags.DurationVar(&backendTimeoutFlag, "backend-timeout", config.DefaultTimeout, "Backend request timeout (env: HISTOCAT_BACKEND_TIMEOUT)")
	flags.StringVar(&esURLFlag, "es-url", "", "Elasticsearch URL for field types; empty disables (env: HISTOCAT_ES_URL)")
	flags.StringVarP(&esIndexFlag, "index", "i", config.DefaultIndex, "Index pattern for field caps (env: HISTOCAT_ES_INDEX)")
	flags.StringVar(&schemaFileFlag, "schema", "", "YAML schema file mapping field paths to types (env: HISTOCAT_SCHEMA_FILE)")
	flags.StringSliceVar(&dateFieldsFlag, "date-fields", nil, "Fields holding calendar dates without time of day (env: HISTOCAT_SCHEMA_DATE_FIELDS)")
	flags.StringVar(&stateFileFlag, "state", "", "YAML session file with dataset, view and filters (env: HISTOCAT_STATE_FILE)")
	flags.StringVar(&journalFlag, "journal", "", "Mutation journal; new lines force a refresh (env: HISTOCAT_STATE_JOURNAL)")
	flags.StringVarP(&datasetFlag, "dataset", "d", "", "Dataset name, overrides the state file (env: HISTOCAT_STATE_DATASET)")
	flags.StringVar(&timezoneFlag, "tz", config.DefaultTimezone, "IANA timezone for date-time fields (env: HISTOCAT_DISPLAY_TIMEZONE)")
	flags.StringVar(&dateLayoutFlag, "date-layout", config.DefaultDateLayout, "Go layout for the date part of labels (env: HISTOCAT_DISPLAY_DATE_LAYOUT)")
	flags.StringVar(&otlpFlag, "otlp", "", "OTLP HTTP endpoint for logs; empty disables (env: HISTOCAT_OTLP_ENDPOINT)")
}
