// File: game/messages.go
package game

import (
	"golang.org/x/net/websocket"
)

// --- Message Header ---
// Used for identifying message types after unmarshalling from JSON
type MessageHeader struct {
	MessageType string `json:"messageType" msgpack:"messageType"`
}

// --- WebSocket Messages (Server -> Client) ---

// StateUpdate is the frame pushed to subscribers after every tick.
type StateUpdate struct {
	MessageType string     `json:"messageType" msgpack:"messageType"` // "state"
	MatchID     string     `json:"matchId" msgpack:"matchId"`
	State       MatchState `json:"state" msgpack:"state"`
	Events      []Event    `json:"events,omitempty" msgpack:"events,omitempty"`
}

// WelcomeMessage tells a new subscriber its client ID.
type WelcomeMessage struct {
	MessageType string `json:"messageType" msgpack:"messageType"` // "welcome"
	ClientID    string `json:"clientId" msgpack:"clientId"`
	MatchID     string `json:"matchId" msgpack:"matchId"`
}

const (
	MessageTypeState   = "state"
	MessageTypeWelcome = "welcome"
)

// Format is the encoding a subscriber asked for.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat maps a query value to a Format, defaulting to JSON.
func ParseFormat(s string) Format {
	if Format(s) == FormatMsgpack {
		return FormatMsgpack
	}
	return FormatJSON
}

// --- Internal Actor Messages ---

// StartMatchCommand starts a match with Players humans (0, 1 or 2).
type StartMatchCommand struct {
	Players int
}

// StopMatchCommand abandons the running match.
type StopMatchCommand struct {
	Ask bool
}

// PlayerCommand routes one input command to a paddle.
type PlayerCommand struct {
	Player  int
	Command Command
}

// SetFootprintsCommand toggles the ball trail in snapshots.
type SetFootprintsCommand struct {
	On bool
}

// SetPredictionsCommand toggles prediction boxes in snapshots.
type SetPredictionsCommand struct {
	On bool
}

// StateQuery asks the MatchActor for a snapshot. Reply should be buffered;
// the actor never blocks on it.
type StateQuery struct {
	Reply chan MatchState
}

// ClientConnect registers a subscriber connection.
type ClientConnect struct {
	ID     string
	Conn   *websocket.Conn
	Format Format
}

// ClientDisconnect signals that a subscriber went away.
type ClientDisconnect struct {
	ID string
}

// matchTick is sent by the MatchActor's ticker goroutine to itself.
type matchTick struct{}

// --- Broadcaster Messages ---

// AddClient registers a connection with the broadcaster.
type AddClient struct {
	ID     string
	Conn   *websocket.Conn
	Format Format
}

// RemoveClient closes and forgets a connection.
type RemoveClient struct {
	ID string
}

// BroadcastStateCommand fans an update out to every client.
type BroadcastStateCommand struct {
	Update StateUpdate
}

// SendToClientCommand sends a single message to one client.
type SendToClientCommand struct {
	ID      string
	Message interface{}
}
