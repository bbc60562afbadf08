package game

import "fmt"

// CommandKind enumerates paddle input.
type CommandKind int

const (
	CommandMoveUp CommandKind = iota + 1
	CommandMoveDown
	CommandStop
	CommandSetPosition
)

func (k CommandKind) String() string {
	switch k {
	case CommandMoveUp:
		return "up"
	case CommandMoveDown:
		return "down"
	case CommandStop:
		return "stop"
	case CommandSetPosition:
		return "position"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one input event for a paddle. Position is only read by
// CommandSetPosition and is normalized to 0..1.
type Command struct {
	Kind     CommandKind `json:"kind"`
	Position float64     `json:"position,omitempty"`
}

func MoveUp() Command   { return Command{Kind: CommandMoveUp} }
func MoveDown() Command { return Command{Kind: CommandMoveDown} }
func Stop() Command     { return Command{Kind: CommandStop} }

func SetPosition(normalized float64) Command {
	return Command{Kind: CommandSetPosition, Position: normalized}
}
