// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import "strings"

// renderHelpBar renders the quick bindings of the current view.
func (m Model) renderHelpBar() string {
	var keys []string
	for _, b := range m.QuickBindings() {
		keys = append(keys, HelpKeyStyle.Render(strings.Join(b.Keys, "/"))+HelpDescStyle.Render(" "+b.Label))
	}
	return HelpStyle.Render(strings.Join(keys, "  "))
}
