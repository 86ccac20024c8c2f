// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/elastic/histocat/internal/distributions"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var outputFormat string

var distCmd = &cobra.Command{
	Use:   "dist <group>",
	Short: "Print the distributions of a field group",
	Long: `Fetches the distributions of a field group (for example labels or
scalars) for the current dataset and prints one table per field, with the
bucket range of every bar.

Use --output json to get the same data as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDist(cmd.Context(), cmd.OutOrStdout(), args[0], outputFormat)
	},
}

func init() {
	distCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table or json")
	rootCmd.AddCommand(distCmd)
}

func runDist(ctx context.Context, w io.Writer, group, format string) error {
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown output format %q (expected table, json)", format)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	snap, err := a.presenter().Load(ctx, a.store.Snapshot().Request(group))
	if err != nil {
		return err
	}

	if format == "json" {
		return writeChartsJSON(w, snap)
	}

	if snap.State == distributions.StateEmpty {
		fmt.Fprintln(w, snap.Message)
		return nil
	}
	barWidth := barColumnWidth(detectTerminalWidth())
	for i, chart := range snap.Charts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, renderChartTable(chart, barWidth))
	}
	return nil
}

// renderChartTable renders one distribution as a table with a bar column.
func renderChartTable(chart distributions.Chart, barWidth int) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s [%s]", chart.Title, chart.Classification))
	t.AppendHeader(table.Row{"#", "Bucket", "Range", "Count", ""})

	max := chart.MaxCount()
	for i, bar := range chart.Bars {
		title := ""
		if tip, ok := chart.Tooltip(chart.PointAt(i)); ok {
			title = tip.Title
		}
		t.AppendRow(table.Row{i + 1, bar.Tick, title, bar.Count, strings.Repeat("█", scaleBar(bar.Count, max, barWidth))})
	}
	if chart.Truncated {
		t.AppendFooter(table.Row{"", "", "first " + strconv.Itoa(len(chart.Bars)) + " buckets only", "", ""})
	}

	t.SetStyle(table.StyleLight)
	return t.Render()
}

// scaleBar returns the bar length of count. Non-zero counts get at least one cell.
func scaleBar(count, max int64, width int) int {
	if count <= 0 || max <= 0 || width <= 0 {
		return 0
	}
	n := int(count * int64(width) / max)
	if n == 0 {
		n = 1
	}
	return n
}

// barColumnWidth leaves room for the other columns of a chart table.
func barColumnWidth(termWidth int) int {
	w := termWidth - 70
	if w < 10 {
		return 10
	}
	if w > 60 {
		return 60
	}
	return w
}

func detectTerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if env := os.Getenv("COLUMNS"); env != "" {
		if val, err := strconv.Atoi(env); err == nil && val > 0 {
			return val
		}
	}
	return 80
}

type chartJSON struct {
	Path      string       `json:"path"`
	Title     string       `json:"title"`
	Type      string       `json:"type"`
	Kind      string       `json:"kind"`
	Truncated bool         `json:"truncated"`
	Buckets   []bucketJSON `json:"buckets"`
}

type bucketJSON struct {
	Key     string `json:"key"`
	Tick    string `json:"tick"`
	Tooltip string `json:"tooltip"`
	Count   int64  `json:"count"`
}

type groupJSON struct {
	Group   string      `json:"group"`
	State   string      `json:"state"`
	Message string      `json:"message,omitempty"`
	Charts  []chartJSON `json:"charts"`
}

func writeChartsJSON(w io.Writer, snap distributions.Snapshot) error {
	out := groupJSON{
		Group:   snap.Group,
		State:   snap.State.String(),
		Message: snap.Message,
		Charts:  make([]chartJSON, 0, len(snap.Charts)),
	}
	for _, chart := range snap.Charts {
		c := chartJSON{
			Path:      chart.Path,
			Title:     chart.Title,
			Type:      chart.Type,
			Kind:      chart.Classification.String(),
			Truncated: chart.Truncated,
			Buckets:   make([]bucketJSON, 0, len(chart.Bars)),
		}
		for i, bar := range chart.Bars {
			b := bucketJSON{Key: bar.Key, Tick: bar.Tick, Count: bar.Count}
			if tip, ok := chart.Tooltip(chart.PointAt(i)); ok {
				b.Tooltip = tip.Title
			}
			c.Buckets = append(c.Buckets, b)
		}
		out.Charts = append(out.Charts, c)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
