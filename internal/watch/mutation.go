// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package watch follows the files that signal dataset changes: the session
// state file (fsnotify) and the mutation journal (tail).
package watch

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Mutation is one line of the mutation journal.
type Mutation struct {
	Timestamp time.Time
	Op        string // e.g. "add_samples", "set_field"; empty when unknown
	Dataset   string // empty when the line does not name a dataset
	RawLine   string
	IsJSON    bool
}

// Affects reports whether the mutation touched dataset. A mutation that
// names no dataset affects every dataset.
func (m Mutation) Affects(dataset string) bool {
	return m.Dataset == "" || dataset == "" || m.Dataset == dataset
}

// Common timestamp patterns in plain-text journal lines
var timestampPatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z`), time.RFC3339Nano},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`), time.RFC3339},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d+`), "2006-01-02 15:04:05.000"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`), "2006-01-02 15:04:05"},
	{regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`), "2006/01/02 15:04:05"},
}

// dataset=<name> in plain-text lines
var datasetPattern = regexp.MustCompile(`\bdataset=("[^"]*"|\S+)`)

// ParseMutation parses a journal line. It returns false for blank lines.
func ParseMutation(line string) (Mutation, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Mutation{}, false
	}

	m := Mutation{Timestamp: time.Now(), RawLine: line}

	// Try JSON first
	if strings.HasPrefix(trimmed, "{") {
		if parseJSONMutation(trimmed, &m) {
			m.IsJSON = true
			return m, true
		}
	}

	// Plain text: "<timestamp> <op> dataset=<name>"
	if ts := parseTimestamp(trimmed); !ts.IsZero() {
		m.Timestamp = ts
	}
	if match := datasetPattern.FindStringSubmatch(trimmed); match != nil {
		m.Dataset = strings.Trim(match[1], `"`)
	}
	m.Op = plainOp(trimmed)
	return m, true
}

func parseJSONMutation(line string, m *Mutation) bool {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return false
	}

	for _, key := range []string{"op", "operation", "action", "event"} {
		if v, ok := raw[key].(string); ok {
			m.Op = v
			break
		}
	}

	for _, key := range []string{"dataset", "dataset_name", "name"} {
		if v, ok := raw[key].(string); ok {
			m.Dataset = v
			break
		}
	}

	for _, key := range []string{"timestamp", "time", "ts", "@timestamp", "datetime"} {
		if v, ok := raw[key]; ok {
			switch t := v.(type) {
			case string:
				if parsed := parseTimestampString(t); !parsed.IsZero() {
					m.Timestamp = parsed
				}
			case float64:
				// Unix timestamp (seconds or milliseconds)
				if t > 1e12 {
					m.Timestamp = time.UnixMilli(int64(t))
				} else {
					m.Timestamp = time.Unix(int64(t), 0)
				}
			}
			break
		}
	}
	return true
}

// plainOp is the first token that is neither part of the timestamp nor a
// key=value pair.
func plainOp(line string) string {
	rest := line
	for _, p := range timestampPatterns {
		if loc := p.re.FindStringIndex(rest); loc != nil {
			rest = rest[:loc[0]] + rest[loc[1]:]
			break
		}
	}
	for _, tok := range strings.Fields(rest) {
		if strings.Contains(tok, "=") {
			continue
		}
		return tok
	}
	return ""
}

func parseTimestamp(line string) time.Time {
	for _, p := range timestampPatterns {
		if match := p.re.FindString(line); match != "" {
			if t, err := time.Parse(p.layout, match); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func parseTimestampString(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05.000",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
