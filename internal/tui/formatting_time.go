// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"time"
)

// formatClockTime returns zero-padded HH:MM:SS
func formatClockTime(t time.Time) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// formatAge formats how long before now t happened.
func formatAge(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Second:
		return "now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

// formatUpdated renders the last refresh for the status bar.
func formatUpdated(t, now time.Time) string {
	return formatClockTime(t) + " (" + formatAge(t, now) + ")"
}
