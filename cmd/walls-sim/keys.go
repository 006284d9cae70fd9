package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/walls3d/sim"
)

// actionForKey maps a key press to a simulator action. quit reports an exit request
func actionForKey(ev *tcell.EventKey) (a sim.Action, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return sim.None, true
	case tcell.KeyUp:
		return sim.Forward, false
	case tcell.KeyDown:
		return sim.Backward, false
	case tcell.KeyLeft:
		return sim.TurnLeft, false
	case tcell.KeyRight:
		return sim.TurnRight, false
	case tcell.KeyRune:
	default:
		return sim.None, false
	}

	switch ev.Rune() {
	case 'w', 'W':
		return sim.Forward, false
	case 's', 'S':
		return sim.Backward, false
	case 'a', 'A':
		return sim.TurnLeft, false
	case 'd', 'D':
		return sim.TurnRight, false
	case 'q', 'Q':
		return sim.StrafeLeft, false
	case 'e', 'E':
		return sim.StrafeRight, false
	case 'r', 'R':
		return sim.SwitchRenderer, false
	}
	return sim.None, false
}
