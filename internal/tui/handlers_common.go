// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"golang.design/x/clipboard"
)

// statusTTL is how long a status message stays in the status bar.
const statusTTL = 5 * time.Second

// listNav handles standard list navigation, returning the new cursor position.
// cursor: current position, listLen: total items, key: the pressed key.
// Returns -1 if the key is not a navigation key.
func listNav(cursor, listLen int, key string) int {
	switch GetAction(key) {
	case ActionScrollUp:
		if cursor > 0 {
			return cursor - 1
		}
		return cursor
	case ActionScrollDown:
		if cursor < listLen-1 {
			return cursor + 1
		}
		return cursor
	case ActionGoTop:
		return 0
	case ActionGoBottom:
		if listLen > 0 {
			return listLen - 1
		}
		return 0
	case ActionPageUp:
		newCursor := cursor - 10
		if newCursor < 0 {
			return 0
		}
		return newCursor
	case ActionPageDown:
		newCursor := cursor + 10
		if listLen > 0 && newCursor >= listLen {
			return listLen - 1
		}
		if newCursor < 0 {
			return 0
		}
		return newCursor
	}
	return -1 // Not a navigation key
}

// moveBucket moves the bucket cursor of the focused chart.
func (m *Model) moveBucket(key string) {
	chart, ok := m.focusedChart()
	if !ok {
		return
	}
	next := listNav(m.Chart.Bucket, len(chart.Bars), key)
	if next < 0 {
		return
	}
	m.Chart.Bucket = next
	m.clampCursors()
	m.syncViewport()
}

// moveField focuses the previous (-1) or next (+1) chart, wrapping around.
func (m *Model) moveField(delta int) {
	n := len(m.Chart.Snapshot.Charts)
	if n == 0 {
		return
	}
	m.Chart.Field = ((m.Chart.Field+delta)%n + n) % n
	m.Chart.Bucket = 0
	m.Components.Viewport.GotoTop()
	m.syncViewport()
}

// clampCursors keeps the cursors inside the current snapshot.
func (m *Model) clampCursors() {
	n := len(m.Chart.Snapshot.Charts)
	if m.Chart.Field >= n {
		m.Chart.Field = max(n-1, 0)
	}
	chart, ok := m.focusedChart()
	if !ok {
		m.Chart.Bucket = 0
		return
	}
	if m.Chart.Bucket >= len(chart.Bars) {
		m.Chart.Bucket = len(chart.Bars) - 1
	}
	if m.Chart.Bucket < 0 {
		m.Chart.Bucket = 0
	}
}

// pushView saves current mode to stack and switches to new mode
func (m *Model) pushView(newMode viewMode) {
	m.UI.ViewStack = append(m.UI.ViewStack, ViewContext{Mode: m.UI.Mode})
	m.UI.Mode = newMode
}

// popView returns to the previous view from the stack, returns false if stack is empty
func (m *Model) popView() bool {
	if len(m.UI.ViewStack) == 0 {
		return false
	}
	n := len(m.UI.ViewStack) - 1
	m.UI.Mode = m.UI.ViewStack[n].Mode
	m.UI.ViewStack = m.UI.ViewStack[:n]
	return true
}

// peekViewStack returns the mode at the top of the stack without removing it
// Returns the current mode if stack is empty (for rendering background)
func (m Model) peekViewStack() viewMode {
	if len(m.UI.ViewStack) == 0 {
		return m.UI.Mode
	}
	return m.UI.ViewStack[len(m.UI.ViewStack)-1].Mode
}

// showErrorModal displays err in the error dialog.
func (m *Model) showErrorModal(err error) {
	m.UI.Err = err
	m.Components.ErrorViewport.SetContent(err.Error())
	m.Components.ErrorViewport.GotoTop()
	if m.UI.Mode != viewErrorModal {
		m.pushView(viewErrorModal)
	}
}

func (m *Model) setStatus(msg string) {
	m.UI.StatusMessage = msg
	m.UI.StatusTime = time.Now()
}

// copyTooltip copies the tooltip of the focused bar.
func (m *Model) copyTooltip() {
	tip, ok := m.focusedTooltip()
	if !ok {
		m.setStatus("Nothing to copy")
		return
	}
	m.copyToClipboard(tip.String(), "Tooltip copied to clipboard!")
}

// copyToClipboard copies text to the clipboard and sets a status message
func (m *Model) copyToClipboard(text, successMsg string) {
	if err := m.copyText(text); err != nil {
		m.setStatus("Clipboard error: " + err.Error())
		return
	}
	m.setStatus(successMsg)
}

func writeClipboard(text string) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
