package host

import "github.com/gdamore/tcell/v2"

// Action represents a viewer-requested host action.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextScene
	ActionSpawn
	ActionPause
	ActionShapes
	ActionLogo
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionRecenter
)

// keyToAction maps a tcell key event to a host action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyTab:
		return ActionNextScene
	case tcell.KeyLeft:
		return ActionPanLeft
	case tcell.KeyRight:
		return ActionPanRight
	case tcell.KeyUp:
		return ActionPanUp
	case tcell.KeyDown:
		return ActionPanDown
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return ActionQuit
	case ' ':
		return ActionSpawn
	case 'p', 'P':
		return ActionPause
	case 'd', 'D':
		return ActionShapes
	case 'l', 'L':
		return ActionLogo
	case 'c', 'C':
		return ActionRecenter
	}
	return ActionNone
}
