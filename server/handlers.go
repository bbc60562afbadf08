// File: server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lguibr/pongai/game"
	"golang.org/x/net/websocket"
)

// HandleSubscribe registers the connection with the MatchActor and reads
// control messages until the client goes away. Add ?format=msgpack for
// binary state frames.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		connectionAddr := ws.RemoteAddr().String()
		clientID := uuid.NewString()
		fmt.Printf("HandleSubscribe: New connection %s from %s\n", clientID, connectionAddr)

		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("PANIC recovered in HandleSubscribe/readLoop for %s: %v\nStack trace:\n%s\n", connectionAddr, r, string(debug.Stack()))
			}
			_ = ws.Close()
		}()

		engine, matchPID := s.GetEngine(), s.GetMatchPID()
		if engine == nil || matchPID == nil {
			fmt.Printf("HandleSubscribe: Server engine or MatchPID is nil. Closing connection %s.\n", connectionAddr)
			return
		}

		format := game.FormatJSON
		if req := ws.Request(); req != nil {
			format = game.ParseFormat(req.URL.Query().Get("format"))
		}

		engine.Send(matchPID, game.ClientConnect{ID: clientID, Conn: ws, Format: format}, nil)
		s.readLoop(ws, clientID)
	}
}

// readLoop forwards control messages from a single connection. Malformed
// messages are logged and skipped; read errors end the loop.
func (s *Server) readLoop(conn *websocket.Conn, clientID string) {
	engine, matchPID := s.GetEngine(), s.GetMatchPID()
	defer func() {
		engine.Send(matchPID, game.ClientDisconnect{ID: clientID}, nil)
		fmt.Printf("ReadLoop: Finished for %s.\n", clientID)
	}()

	for {
		var data []byte
		if err := websocket.Message.Receive(conn, &data); err != nil {
			var netErr net.Error
			switch {
			case err == io.EOF || strings.Contains(err.Error(), "closed"):
			case errors.As(err, &netErr) && netErr.Timeout():
				fmt.Printf("ReadLoop: Read timeout for %s. Assuming disconnect.\n", clientID)
			default:
				fmt.Printf("ReadLoop: Error receiving from %s: %v\n", clientID, err)
			}
			return
		}

		var control ControlMessage
		if err := json.Unmarshal(data, &control); err != nil {
			fmt.Printf("ReadLoop: Ignoring malformed message from %s: %v\n", clientID, err)
			continue
		}
		msg, err := control.ToActorMessage()
		if err != nil {
			fmt.Printf("ReadLoop: Ignoring message from %s: %v\n", clientID, err)
			continue
		}
		engine.Send(matchPID, msg, nil)
	}
}

// HandleGetState returns the current match snapshot as JSON.
func (s *Server) HandleGetState() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fmt.Printf("PANIC recovered in HandleGetState: %v\nStack trace:\n%s\n", rec, string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		reply := make(chan game.MatchState, 1)
		s.GetEngine().Send(s.GetMatchPID(), game.StateQuery{Reply: reply}, nil)

		var state game.MatchState
		select {
		case state = <-reply:
		case <-time.After(s.stateTimeout):
			http.Error(w, "match did not answer", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			fmt.Println("Error writing HTTP match state:", err)
		}
	}
}
