// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package tui

// Action represents a user action that can be triggered by one or more keys
type Action int

const (
	ActionNone Action = iota

	// Navigation - bucket cursor movement
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionGoTop
	ActionGoBottom
	ActionPrevItem // left arrow, shift+tab: previous field
	ActionNextItem // right arrow, tab: next field

	// Common actions
	ActionSelect     // enter - confirm input
	ActionBack       // esc - close overlay/input
	ActionQuit       // q - quit app
	ActionHelp       // ? - show help overlay
	ActionRefresh    // r - bump the refresh token
	ActionCycleGroup // m - cycle field group
	ActionCopy       // y - copy tooltip to clipboard
	ActionDataset    // d - edit dataset
	ActionTimezone   // t - toggle display timezone and UTC
)

// DefaultKeyBindings maps keys to their primary action.
var DefaultKeyBindings = map[string]Action{
	// Navigation - includes vim keys (j/k) for bucket scrolling
	"up":        ActionScrollUp,
	"k":         ActionScrollUp,
	"down":      ActionScrollDown,
	"j":         ActionScrollDown,
	"pgup":      ActionPageUp,
	"pgdown":    ActionPageDown,
	"home":      ActionGoTop,
	"g":         ActionGoTop,
	"end":       ActionGoBottom,
	"G":         ActionGoBottom,
	"left":      ActionPrevItem,
	"h":         ActionPrevItem,
	"shift+tab": ActionPrevItem,
	"right":     ActionNextItem,
	"l":         ActionNextItem,
	"tab":       ActionNextItem,

	// Common actions
	"enter":  ActionSelect,
	"esc":    ActionBack,
	"q":      ActionQuit,
	"ctrl+c": ActionQuit,
	"?":      ActionHelp,
	"r":      ActionRefresh,
	"m":      ActionCycleGroup,
	"y":      ActionCopy,
	"d":      ActionDataset,
	"t":      ActionTimezone,
}

// GetAction returns the action for a key from the default bindings.
// Returns ActionNone if the key is not bound.
func GetAction(key string) Action {
	if action, ok := DefaultKeyBindings[key]; ok {
		return action
	}
	return ActionNone
}

// IsNavAction returns true if the action is a navigation action
func IsNavAction(action Action) bool {
	return action >= ActionScrollUp && action <= ActionNextItem
}

// IsListNavAction returns true if the action is for bucket navigation (up/down/page/home/end)
func IsListNavAction(action Action) bool {
	return action >= ActionScrollUp && action <= ActionGoBottom
}

// ActionInfo provides display information for an action
type ActionInfo struct {
	DisplayKeys []string // Keys to show in help bar (e.g., ["↑", "↓"])
	Label       string   // Label for the action (e.g., "scroll")
}

// ActionDisplay maps actions to their display information
var ActionDisplay = map[Action]ActionInfo{
	ActionScrollUp:   {DisplayKeys: []string{"↑"}, Label: "up"},
	ActionScrollDown: {DisplayKeys: []string{"↓"}, Label: "down"},
	ActionPageUp:     {DisplayKeys: []string{"pgup"}, Label: "page up"},
	ActionPageDown:   {DisplayKeys: []string{"pgdown"}, Label: "page down"},
	ActionGoTop:      {DisplayKeys: []string{"g"}, Label: "top"},
	ActionGoBottom:   {DisplayKeys: []string{"G"}, Label: "bottom"},
	ActionPrevItem:   {DisplayKeys: []string{"←"}, Label: "prev field"},
	ActionNextItem:   {DisplayKeys: []string{"→"}, Label: "next field"},
	ActionSelect:     {DisplayKeys: []string{"enter"}, Label: "apply"},
	ActionBack:       {DisplayKeys: []string{"esc"}, Label: "back"},
	ActionQuit:       {DisplayKeys: []string{"q"}, Label: "quit"},
	ActionHelp:       {DisplayKeys: []string{"?"}, Label: "help"},
	ActionRefresh:    {DisplayKeys: []string{"r"}, Label: "refresh"},
	ActionCycleGroup: {DisplayKeys: []string{"m"}, Label: "group"},
	ActionCopy:       {DisplayKeys: []string{"y"}, Label: "copy"},
	ActionDataset:    {DisplayKeys: []string{"d"}, Label: "dataset"},
	ActionTimezone:   {DisplayKeys: []string{"t"}, Label: "UTC"},
}

// ScrollDisplayKeys returns the combined display for scroll up/down
var ScrollDisplayKeys = []string{"↑", "↓"}

// PrevNextDisplayKeys returns the combined display for prev/next field
var PrevNextDisplayKeys = []string{"←", "→"}

// ActionBinding creates a KeyBinding from an action
func ActionBinding(action Action, kind KeyKind, group string) KeyBinding {
	info := ActionDisplay[action]
	return KeyBinding{
		Keys:  info.DisplayKeys,
		Label: info.Label,
		Kind:  kind,
		Group: group,
	}
}

// ActionBindingWithLabel creates a KeyBinding from an action with a custom label
func ActionBindingWithLabel(action Action, label string, kind KeyKind, group string) KeyBinding {
	info := ActionDisplay[action]
	return KeyBinding{
		Keys:  info.DisplayKeys,
		Label: label,
		Kind:  kind,
		Group: group,
	}
}

// CombinedBinding creates a KeyBinding from multiple keys with a custom label
func CombinedBinding(keys []string, label string, kind KeyKind, group string) KeyBinding {
	return KeyBinding{
		Keys:  keys,
		Label: label,
		Kind:  kind,
		Group: group,
	}
}
