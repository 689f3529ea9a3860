package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/karel-quest/internal/core"
)

// DefaultHoldTicks is how long a movement key counts as held after its last
// key event. Terminals only report presses (and auto-repeat), never releases,
// so walking is kept alive across the gap before the first repeat arrives.
const DefaultHoldTicks = 10

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case " ", "up", "w", "k":
		return core.ActionJump, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// HoldState turns discrete key events into held movement.
// Left and right stay active for a window of ticks after their last event;
// pressing one direction releases the other. Every other action fires once.
type HoldState struct {
	window  int
	left    int
	right   int
	pending core.InputFrame
}

// NewHoldState creates a hold tracker. A window below 1 uses DefaultHoldTicks.
func NewHoldState(window int) *HoldState {
	if window < 1 {
		window = DefaultHoldTicks
	}
	return &HoldState{window: window, pending: core.NewInputFrame()}
}

// Press records a key action.
func (h *HoldState) Press(a core.Action) {
	switch a {
	case core.ActionNone:
	case core.ActionLeft:
		h.left = h.window
		h.right = 0
	case core.ActionRight:
		h.right = h.window
		h.left = 0
	default:
		h.pending.Set(a)
	}
}

// Frame builds the input for the next tick and ages the hold counters.
// One-shot actions are consumed.
func (h *HoldState) Frame() core.InputFrame {
	frame := h.pending.Clone()
	h.pending.Clear()

	if h.left > 0 {
		frame.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		frame.Set(core.ActionRight)
		h.right--
	}
	return frame
}

// Reset drops any held or pending input.
func (h *HoldState) Reset() {
	h.left, h.right = 0, 0
	h.pending.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
