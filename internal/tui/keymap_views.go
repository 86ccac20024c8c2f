// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

// ViewKeymap returns the full keymap for the current view/mode.
func (m Model) ViewKeymap() []KeyBinding {
	mode := m.UI.Mode
	if mode == viewHelp {
		mode = m.peekViewStack()
	}
	switch mode {
	case viewCharts:
		return m.keymapCharts()
	case viewDataset:
		return []KeyBinding{
			ActionBinding(ActionSelect, KeyKindQuick, "Dataset"),
			ActionBindingWithLabel(ActionBack, "cancel", KeyKindQuick, "Dataset"),
		}
	case viewErrorModal:
		return []KeyBinding{
			ActionBinding(ActionCopy, KeyKindQuick, "Error"),
			ActionBindingWithLabel(ActionBack, "close", KeyKindQuick, "Error"),
		}
	default:
		return nil
	}
}

func (m Model) keymapCharts() []KeyBinding {
	quick := []KeyBinding{
		ScrollBinding(KeyKindQuick),
		FieldBinding(KeyKindQuick),
		ActionBinding(ActionCycleGroup, KeyKindQuick, "View"),
		ActionBinding(ActionRefresh, KeyKindQuick, "View"),
		ActionBinding(ActionCopy, KeyKindQuick, "Clipboard"),
		ActionBinding(ActionQuit, KeyKindQuick, "System"),
	}

	// Full list excludes items already in quick to avoid duplicates in help overlay
	full := []KeyBinding{
		ActionBinding(ActionPageUp, KeyKindFull, "Navigate"),
		ActionBinding(ActionPageDown, KeyKindFull, "Navigate"),
		ActionBinding(ActionGoTop, KeyKindFull, "Navigate"),
		ActionBinding(ActionGoBottom, KeyKindFull, "Navigate"),
		ActionBinding(ActionDataset, KeyKindFull, "View"),
		m.timezoneBinding(),
	}
	return append(quick, full...)
}

func (m Model) timezoneBinding() KeyBinding {
	if m.Chart.UTC {
		return ActionBindingWithLabel(ActionTimezone, "display timezone", KeyKindFull, "View")
	}
	return ActionBinding(ActionTimezone, KeyKindFull, "View")
}
