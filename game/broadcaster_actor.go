// File: game/broadcaster_actor.go
package game

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/lguibr/pongai/bollywood"
	"golang.org/x/net/websocket"
)

type subscriber struct {
	conn  *websocket.Conn
	codec websocket.Codec
}

// BroadcasterActor sends match updates to subscribed clients. Only its own
// Receive touches the client map.
type BroadcasterActor struct {
	clients       map[string]*subscriber
	selfPID       *bollywood.PID
	matchActorPID *bollywood.PID // Notified when a send finds a dead connection
}

// NewBroadcasterProducer creates a producer for BroadcasterActor.
func NewBroadcasterProducer(matchActorPID *bollywood.PID) bollywood.Producer {
	return func() bollywood.Actor {
		return &BroadcasterActor{
			clients:       make(map[string]*subscriber),
			matchActorPID: matchActorPID,
		}
	}
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in BroadcasterActor %s Receive: %v\nStack trace:\n%s\n", a.selfPID, r, string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:

	case AddClient:
		if msg.Conn != nil {
			a.clients[msg.ID] = &subscriber{conn: msg.Conn, codec: CodecFor(msg.Format)}
		}

	case RemoveClient:
		if client, exists := a.clients[msg.ID]; exists {
			delete(a.clients, msg.ID)
			_ = client.conn.Close()
		}

	case SendToClientCommand:
		if client, exists := a.clients[msg.ID]; exists {
			if err := client.codec.Send(client.conn, msg.Message); err != nil {
				a.handleSendError(ctx, msg.ID, err)
			}
		}

	case BroadcastStateCommand:
		a.broadcastState(ctx, msg.Update)

	case bollywood.Stopping:
		fmt.Printf("Broadcaster %s: Stopping. Closing remaining connections.\n", a.selfPID)
		a.closeAllConnections()

	case bollywood.Stopped:

	default:
		fmt.Printf("BroadcasterActor %s: Received unknown message type: %T\n", a.selfPID, msg)
	}
}

// broadcastState sends the update to every client in its own format.
func (a *BroadcasterActor) broadcastState(ctx bollywood.Context, update StateUpdate) {
	for id, client := range a.clients {
		if err := client.codec.Send(client.conn, &update); err != nil {
			a.handleSendError(ctx, id, err)
		}
	}
}

func (a *BroadcasterActor) handleSendError(ctx bollywood.Context, id string, err error) {
	if !isClosedError(err) {
		fmt.Printf("ERROR: BroadcasterActor %s: Failed to write to client %s: %v\n", a.selfPID, id, err)
		return
	}
	delete(a.clients, id)
	if a.matchActorPID != nil && ctx.Engine() != nil {
		ctx.Engine().Send(a.matchActorPID, ClientDisconnect{ID: id}, a.selfPID)
	}
}

func (a *BroadcasterActor) closeAllConnections() {
	if len(a.clients) > 0 {
		fmt.Printf("Broadcaster %s: Closing %d connections.\n", a.selfPID, len(a.clients))
	}
	for id, client := range a.clients {
		_ = client.conn.Close()
		delete(a.clients, id)
	}
}

func isClosedError(err error) bool {
	if err == io.EOF {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset by peer") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "write: connection timed out")
}
