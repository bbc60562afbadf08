package server

import (
	"errors"
	"fmt"

	"github.com/lguibr/pongai/game"
	"github.com/lguibr/pongai/utils"
)

// ErrInvalidControl is wrapped by every rejected inbound message.
var ErrInvalidControl = errors.New("invalid control message")

const (
	ActionStart       = "start"
	ActionStop        = "stop"
	ActionFootprints  = "footprints"
	ActionPredictions = "predictions"
)

// ControlMessage is what remote clients send on /subscribe. A message with
// an Action drives the match; otherwise it moves Player's paddle. Position
// wins over Direction and a missing or null direction stops the paddle.
type ControlMessage struct {
	Action    string   `json:"action,omitempty"`
	Players   int      `json:"players,omitempty"`
	On        *bool    `json:"on,omitempty"`
	Player    int      `json:"player,omitempty"`
	Direction *string  `json:"direction"`
	Position  *float64 `json:"position,omitempty"`
}

// ToActorMessage converts a control message into the MatchActor message it
// stands for. Players are numbered 1 and 2 on the wire.
func (c ControlMessage) ToActorMessage() (interface{}, error) {
	switch c.Action {
	case ActionStart:
		if c.Players < 0 || c.Players > utils.MaxPlayers {
			return nil, fmt.Errorf("%w: players must be 0..%d, got %d", ErrInvalidControl, utils.MaxPlayers, c.Players)
		}
		return game.StartMatchCommand{Players: c.Players}, nil
	case ActionStop:
		return game.StopMatchCommand{}, nil
	case ActionFootprints, ActionPredictions:
		if c.On == nil {
			return nil, fmt.Errorf("%w: %s needs \"on\"", ErrInvalidControl, c.Action)
		}
		if c.Action == ActionFootprints {
			return game.SetFootprintsCommand{On: *c.On}, nil
		}
		return game.SetPredictionsCommand{On: *c.On}, nil
	case "":
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidControl, c.Action)
	}

	if c.Player < 1 || c.Player > utils.MaxPlayers {
		return nil, fmt.Errorf("%w: player must be 1..%d, got %d", ErrInvalidControl, utils.MaxPlayers, c.Player)
	}
	player := c.Player - 1

	if c.Position != nil {
		if *c.Position < 0 || *c.Position > 1 {
			return nil, fmt.Errorf("%w: position must be 0..1, got %v", ErrInvalidControl, *c.Position)
		}
		return game.PlayerCommand{Player: player, Command: game.SetPosition(*c.Position)}, nil
	}

	if c.Direction == nil {
		return game.PlayerCommand{Player: player, Command: game.Stop()}, nil
	}
	switch *c.Direction {
	case "up":
		return game.PlayerCommand{Player: player, Command: game.MoveUp()}, nil
	case "down":
		return game.PlayerCommand{Player: player, Command: game.MoveDown()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidControl, *c.Direction)
	}
}
