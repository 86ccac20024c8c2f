// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
)

// keyHint renders a consistent key hint like: "[k1/k2] label".
// This should be the only way UI code formats key hints with brackets.
func keyHint(keys []string, label string) string {
	if len(keys) == 0 {
		return label
	}
	return "[" + strings.Join(keys, "/") + "] " + label
}

// bindingHint renders a key hint for a binding.
func bindingHint(b KeyBinding) string {
	return keyHint(b.Keys, b.Label)
}
