package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/lguibr/pongai/bollywood"
	"github.com/lguibr/pongai/utils"
	"github.com/stretchr/testify/require"
)

func newTestRand() *rand.Rand { return rand.New(rand.NewSource(42)) }

// newTestMatch builds a match on the default config with a seeded source
// and an event recorder.
func newTestMatch(t *testing.T, mutate ...func(*utils.Config)) (*Match, *EventRecorder) {
	t.Helper()
	cfg := utils.DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	events := &EventRecorder{}
	match, err := NewMatch(cfg, WithNotifier(events), WithRand(newTestRand()))
	require.NoError(t, err)
	return match, events
}

// placeBall moves the ball without touching its trail bookkeeping.
func placeBall(ball *Ball, x, y, dx, dy float64) {
	ball.setPosition(x, y)
	ball.Dx = dx
	ball.Dy = dy
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// --- Mock Broadcaster Actor ---
// Simple actor to capture messages sent to it
type MockBroadcasterActor struct {
	mu       sync.Mutex
	Received []interface{}
	PID      *bollywood.PID
}

func (a *MockBroadcasterActor) Receive(ctx bollywood.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.PID == nil {
		a.PID = ctx.Self()
	}
	a.Received = append(a.Received, ctx.Message())
}

func (a *MockBroadcasterActor) GetMessages() []interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	msgs := make([]interface{}, len(a.Received))
	copy(msgs, a.Received)
	return msgs
}

// waitForMessage polls the mock until match accepts one of its messages.
func waitForMessage(t *testing.T, mock *MockBroadcasterActor, match func(interface{}) bool, timeout time.Duration) (interface{}, bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, msg := range mock.GetMessages() {
			if match(msg) {
				return msg, true
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil, false
}
