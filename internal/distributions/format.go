// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// DefaultDateLayout is the date portion of temporal labels.
const DefaultDateLayout = "2006-01-02"

// maxTickWidth is the widest categorical axis label before elision.
const maxTickWidth = 24

// rangeSeparator joins the two ends of a temporal range.
const rangeSeparator = " – "

// Formatter renders bucket labels. The zero value uses DefaultDateLayout.
type Formatter struct {
	DateLayout string // Go reference layout for the date portion
}

var defaultFormatter = Formatter{}

// FormatBucket renders the tooltip title of a bucket using the default layout.
func FormatBucket(key string, edges []Edge, c Classification) string {
	return defaultFormatter.FormatBucket(key, edges, c)
}

// TickLabel renders an axis tick label using the default layout.
func TickLabel(key string, c Classification) string {
	return defaultFormatter.TickLabel(key, c)
}

// FormatBucket renders the tooltip title of a bucket:
//
//	numeric:  "Range: [lo, hi)"
//	temporal: "Range: <start> – <end>"
//	other:    "Value: <key>"
//
// Missing or malformed edges fall back to the "Value:" form.
func (f Formatter) FormatBucket(key string, edges []Edge, c Classification) string {
	if len(edges) != 2 {
		return valueLabel(key)
	}
	switch c.Kind {
	case KindNumeric:
		if edges[0].Date || edges[1].Date {
			return valueLabel(key)
		}
		return fmt.Sprintf("Range: [%s, %s)", formatNumber(edges[0].Value, c.Numeric), formatNumber(edges[1].Value, c.Numeric))
	case KindTemporal:
		if !edges[0].Date || !edges[1].Date {
			return valueLabel(key)
		}
		return "Range: " + f.formatTimeRange(edges[0].Millis(), edges[1].Millis(), c.location())
	default:
		return valueLabel(key)
	}
}

// TickLabel renders an axis tick. Temporal keys holding epoch milliseconds
// become date-times, fractional numbers get three decimals, and long values
// are elided.
func (f Formatter) TickLabel(key string, c Classification) string {
	if c.IsTemporal() {
		millis, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return key
		}
		t := time.UnixMilli(millis).In(c.location())
		return normalizeDate(t.Format(f.dateLayout())) + " " + t.Format("15:04:05")
	}
	if v, ok := parseFraction(key); ok {
		return formatDecimal(v)
	}
	return ansi.Truncate(key, maxTickWidth, "...")
}

// BucketLabel is the key shown for a bucket. Temporal keys stay raw so they
// can still be parsed by TickLabel; everything else goes through prettify.
func BucketLabel(key string, c Classification, prettify Prettifier) string {
	if c.IsTemporal() {
		return key
	}
	if prettify == nil {
		prettify = Prettify
	}
	return prettify(key)
}

func valueLabel(key string) string {
	return "Value: " + key
}

func formatNumber(v float64, kind NumericKind) string {
	if kind == NumericInteger {
		r := math.Round(v)
		if r == 0 {
			r = 0 // drop the sign of negative zero
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return formatDecimal(v)
}

// formatDecimal prints v with three decimals. Values that round to zero
// print unsigned.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

// parseFraction reports whether s is a finite number with a fractional part.
func parseFraction(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, v != math.Trunc(v)
}

func (f Formatter) dateLayout() string {
	if f.DateLayout == "" {
		return DefaultDateLayout
	}
	return f.DateLayout
}

// precision is the finest time unit needed to print both range ends exactly.
type precision int

const (
	precisionDay precision = iota
	precisionHour
	precisionMinute
	precisionSecond
	precisionMillisecond
)

func precisionOf(t time.Time) precision {
	switch {
	case t.Nanosecond()/int(time.Millisecond) != 0:
		return precisionMillisecond
	case t.Second() != 0:
		return precisionSecond
	case t.Minute() != 0:
		return precisionMinute
	case t.Hour() != 0:
		return precisionHour
	default:
		return precisionDay
	}
}

func (p precision) clockLayout() string {
	switch p {
	case precisionHour, precisionMinute:
		return "15:04"
	case precisionSecond:
		return "15:04:05"
	case precisionMillisecond:
		return "15:04:05.000"
	default:
		return ""
	}
}

func (f Formatter) formatTimeRange(startMillis, endMillis int64, loc *time.Location) string {
	start := time.UnixMilli(startMillis).In(loc)
	end := time.UnixMilli(endMillis).In(loc)

	p := precisionOf(start)
	if q := precisionOf(end); q > p {
		p = q
	}

	startDate := normalizeDate(start.Format(f.dateLayout()))
	endDate := normalizeDate(end.Format(f.dateLayout()))
	if p == precisionDay {
		return startDate + rangeSeparator + endDate
	}

	layout := p.clockLayout()
	startClock := start.Format(layout)
	endClock := end.Format(layout)

	if sameDay(start, end) {
		return startDate + " " + startClock + rangeSeparator + endClock
	}
	return startDate + " " + startClock + rangeSeparator + endDate + " " + endClock
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// normalizeDate joins date components with "-" whatever the layout uses.
func normalizeDate(s string) string {
	return strings.ReplaceAll(s, "/", "-")
}
