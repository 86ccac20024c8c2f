// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"strconv"
	"strings"
)

// Prettifier turns a raw bucket key into display text.
type Prettifier func(raw string) string

// Prettify is the default Prettifier. Null-like tokens collapse to "None",
// booleans are capitalized and fractional numbers are written in their
// shortest form at full precision. Other values are returned unchanged.
func Prettify(raw string) string {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "null", "none", "nil", "undefined":
		return "None"
	case "true":
		return "True"
	case "false":
		return "False"
	}
	if v, ok := parseFraction(s); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return raw
}
