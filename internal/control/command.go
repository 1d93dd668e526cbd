package control

import (
	"errors"
	"fmt"
	"strings"
)

// Command is a front-end independent request to the controller.
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandPause
	CommandTogglePause
	CommandReset
	CommandReseed
	CommandStep
	CommandToggleMenu
	CommandQuit
)

var (
	// ErrQuit is returned by Dispatch when the user asked to leave.
	ErrQuit = errors.New("quit requested")
	// ErrUnknownCommand is returned for commands the controller does not know.
	ErrUnknownCommand = errors.New("unknown command")
)

var commandNames = map[Command]string{
	CommandStart:       "start",
	CommandPause:       "pause",
	CommandTogglePause: "toggle-pause",
	CommandReset:       "reset",
	CommandReseed:      "reseed",
	CommandStep:        "step",
	CommandToggleMenu:  "menu",
	CommandQuit:        "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand maps a command name back to its value.
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for cmd, n := range commandNames {
		if n == name {
			return cmd, nil
		}
	}
	return CommandNone, fmt.Errorf("%w %q", ErrUnknownCommand, name)
}
