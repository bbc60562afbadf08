package game

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/pongai/bollywood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

// startBroadcastServer registers every accepted connection with the
// broadcaster and keeps it open until the client goes away.
func startBroadcastServer(t *testing.T, engine *bollywood.Engine, broadcaster *bollywood.PID, format Format) (string, <-chan string) {
	t.Helper()
	registered := make(chan string, 1)
	s := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		id := "client-" + string(format)
		engine.Send(broadcaster, AddClient{ID: id, Conn: ws, Format: format}, nil)
		registered <- id
		_, _ = io.Copy(io.Discard, ws)
	}))
	t.Cleanup(s.Close)
	return "ws" + strings.TrimPrefix(s.URL, "http"), registered
}

func TestBroadcaster_SendsStateInClientFormat(t *testing.T) {
	testCases := []struct {
		name   string
		format Format
	}{
		{"JSON", FormatJSON},
		{"Msgpack", FormatMsgpack},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine := bollywood.NewEngine()
			defer engine.Shutdown(time.Second)
			broadcaster := engine.Spawn(bollywood.NewProps(NewBroadcasterProducer(nil)))
			require.NotNil(t, broadcaster)

			url, registered := startBroadcastServer(t, engine, broadcaster, tc.format)
			ws, err := websocket.Dial(url, "", "http://localhost/")
			require.NoError(t, err)
			defer ws.Close()

			select {
			case <-registered:
			case <-time.After(time.Second):
				t.Fatal("client was never registered")
			}

			match, _ := newTestMatch(t)
			match.Start(0)
			sent := StateUpdate{
				MessageType: MessageTypeState,
				MatchID:     "match-1",
				State:       match.Snapshot(),
				Events:      []Event{{Kind: EventMatchStarted, Player: -1}},
			}
			engine.Send(broadcaster, BroadcastStateCommand{Update: sent}, nil)

			require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
			var received StateUpdate
			require.NoError(t, CodecFor(tc.format).Receive(ws, &received))

			assert.Equal(t, MessageTypeState, received.MessageType)
			assert.Equal(t, "match-1", received.MatchID)
			assert.Equal(t, PhasePlaying, received.State.Phase)
			require.NotNil(t, received.State.Ball)
			assert.Equal(t, sent.State.Ball.X, received.State.Ball.X)
			assert.Equal(t, sent.Events, received.Events)
		})
	}
}

func TestBroadcaster_ReportsDeadClients(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(time.Second)

	mock := &MockBroadcasterActor{}
	matchPID := engine.Spawn(bollywood.NewProps(func() bollywood.Actor { return mock }))
	broadcaster := engine.Spawn(bollywood.NewProps(NewBroadcasterProducer(matchPID)))

	url, registered := startBroadcastServer(t, engine, broadcaster, FormatJSON)
	ws, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	id := <-registered
	require.NoError(t, ws.Close())

	update := StateUpdate{MessageType: MessageTypeState}
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		engine.Send(broadcaster, BroadcastStateCommand{Update: update}, nil)
		for _, m := range mock.GetMessages() {
			if m == (ClientDisconnect{ID: id}) {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("dead client should be reported to the match actor")
}
