// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/elastic/histocat/internal/distributions"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
)

// tooltipFormatter shows the bucket range stored as the data item name.
const tooltipFormatter = "{b}<br/>Count: {c}"

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <group>",
	Short: "Write the distributions of a field group as an HTML page",
	Long: `Fetches the distributions of a field group and writes a standalone HTML
page with one bar chart per field. Hovering a bar shows its bucket range
and count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), cmd.OutOrStdout(), args[0], exportOutput)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "distributions.html", "HTML file to write")
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, w io.Writer, group, path string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	snap, err := a.presenter().Load(ctx, a.store.Snapshot().Request(group))
	if err != nil {
		return err
	}
	if snap.State == distributions.StateEmpty {
		fmt.Fprintln(w, snap.Message)
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := renderPage(f, group, snap.Charts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %d charts to %s\n", len(snap.Charts), path)
	return nil
}

// renderPage writes one bar chart per distribution into a single page.
func renderPage(w io.Writer, group string, list []distributions.Chart) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("histocat - %s", group)
	for _, chart := range list {
		page.AddCharts(newBarChart(chart))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

func newBarChart(chart distributions.Chart) *charts.Bar {
	ticks, interval := axisTicks(chart)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    chart.Title,
			Subtitle: chart.Classification.String(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: tooltipFormatter,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: interval},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Count",
			Type: "value",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "400px",
		}),
	)

	data := make([]opts.BarData, len(chart.Bars))
	for i, b := range chart.Bars {
		name := b.Key
		if tip, ok := chart.Tooltip(chart.PointAt(i)); ok {
			name = tip.Title
		}
		data[i] = opts.BarData{Name: name, Value: b.Count}
	}

	bar.SetXAxis(ticks).AddSeries("Count", data)
	return bar
}

// labeledOnly shows a category label only when it is not blank.
var labeledOnly = string(opts.FuncOpts("function (index, value) { return value !== ''; }"))

// axisTicks returns the category labels and the axis label interval for a
// chart's tick setting. Exact ticks blank the unselected labels and hide
// the blanks, auto ticks let the chart thin the labels, and the default
// leaves the interval unset.
func axisTicks(chart distributions.Chart) ([]string, string) {
	labels := make([]string, len(chart.Bars))
	if chart.Ticks.Mode == distributions.TickExact {
		for _, i := range chart.Ticks.Indices(len(chart.Bars), 0) {
			labels[i] = chart.Bars[i].Tick
		}
		return labels, labeledOnly
	}
	for i, b := range chart.Bars {
		labels[i] = b.Tick
	}
	if chart.Ticks.Mode == distributions.TickAuto {
		return labels, "auto"
	}
	return labels, ""
}
