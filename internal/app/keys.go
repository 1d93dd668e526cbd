package app

import "predprey/internal/control"

// keyAction decides what a key press bound to cmd does in the current state.
// While the menu is open only the menu keys and Escape get through, and they
// close it. Escape otherwise quits. Single steps are ignored while running.
func keyAction(cmd control.Command, escape, menuOpen, running bool) (control.Command, bool) {
	if menuOpen {
		if escape || cmd == control.CommandToggleMenu {
			return control.CommandToggleMenu, true
		}
		return control.CommandNone, false
	}
	if cmd == control.CommandStep && running {
		return control.CommandNone, false
	}
	return cmd, true
}
