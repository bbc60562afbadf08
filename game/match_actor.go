// File: game/match_actor.go
package game

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/lguibr/pongai/bollywood"
	"github.com/lguibr/pongai/utils"
)

// MatchActor hosts a Match. Every mutation (ticks, input, queries) goes
// through its mailbox, so the match has a single writer.
type MatchActor struct {
	cfg            utils.Config
	id             string
	engine         *bollywood.Engine
	match          *Match
	events         *EventRecorder
	selfPID        *bollywood.PID
	broadcasterPID *bollywood.PID
	ticker         *time.Ticker
	stopTickerCh   chan struct{}
	lastTick       time.Time
	now            func() time.Time
}

// NewMatchActorProducer creates a producer for the MatchActor. The producer
// returns nil, and the engine drops the actor, when cfg is invalid.
func NewMatchActorProducer(engine *bollywood.Engine, cfg utils.Config, opts ...MatchOption) bollywood.Producer {
	return func() bollywood.Actor {
		a, err := newMatchActor(engine, cfg, opts...)
		if err != nil {
			fmt.Printf("MatchActor: %v\n", err)
			return nil
		}
		return a
	}
}

func newMatchActor(engine *bollywood.Engine, cfg utils.Config, opts ...MatchOption) (*MatchActor, error) {
	events := &EventRecorder{}
	match, err := NewMatch(cfg, append([]MatchOption{WithNotifier(events)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &MatchActor{
		cfg:          cfg,
		id:           uuid.NewString(),
		engine:       engine,
		match:        match,
		events:       events,
		stopTickerCh: make(chan struct{}),
		now:          time.Now,
	}, nil
}

// Receive is the main message handler for the MatchActor.
func (a *MatchActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in MatchActor %s Receive: %v\nStack trace:\n%s\n", a.selfPID, r, string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch m := ctx.Message().(type) {
	case bollywood.Started:
		a.handleStart(ctx)

	case matchTick:
		a.tick()

	case StartMatchCommand:
		if m.Players < 0 || m.Players > utils.MaxPlayers {
			fmt.Printf("MatchActor %s: Ignoring start with %d players.\n", a.selfPID, m.Players)
			return
		}
		a.match.Start(m.Players)
		a.lastTick = a.now()
		fmt.Printf("MatchActor %s: Match started with %d human player(s).\n", a.selfPID, m.Players)
		a.broadcast()

	case StopMatchCommand:
		if a.match.Stop(m.Ask) {
			fmt.Printf("MatchActor %s: Match stopped.\n", a.selfPID)
			a.broadcast()
		}

	case PlayerCommand:
		if !a.match.Apply(m.Player, m.Command) {
			fmt.Printf("MatchActor %s: Ignored %s for player %d.\n", a.selfPID, m.Command.Kind, m.Player)
		}

	case SetFootprintsCommand:
		a.match.SetFootprints(m.On)

	case SetPredictionsCommand:
		a.match.SetPredictions(m.On)

	case StateQuery:
		if m.Reply == nil {
			return
		}
		select {
		case m.Reply <- a.match.Snapshot():
		default:
			fmt.Printf("MatchActor %s: StateQuery reply channel not ready, dropping.\n", a.selfPID)
		}

	case ClientConnect:
		fmt.Printf("MatchActor %s: Client %s connected (%s).\n", a.selfPID, m.ID, m.Format)
		a.engine.Send(a.broadcasterPID, AddClient{ID: m.ID, Conn: m.Conn, Format: m.Format}, a.selfPID)
		a.engine.Send(a.broadcasterPID, SendToClientCommand{
			ID:      m.ID,
			Message: WelcomeMessage{MessageType: MessageTypeWelcome, ClientID: m.ID, MatchID: a.id},
		}, a.selfPID)
		a.engine.Send(a.broadcasterPID, SendToClientCommand{ID: m.ID, Message: a.update(nil)}, a.selfPID)

	case ClientDisconnect:
		fmt.Printf("MatchActor %s: Client %s disconnected.\n", a.selfPID, m.ID)
		a.engine.Send(a.broadcasterPID, RemoveClient{ID: m.ID}, a.selfPID)

	case bollywood.Stopping:
		fmt.Printf("MatchActor %s: Stopping.\n", a.selfPID)
		a.stopTicker()
		if a.broadcasterPID != nil {
			a.engine.Stop(a.broadcasterPID)
		}

	case bollywood.Stopped:
		fmt.Printf("MatchActor %s: Stopped.\n", a.selfPID)

	default:
		fmt.Printf("MatchActor %s: Received unknown message type: %T\n", a.selfPID, m)
	}
}

// handleStart spawns the broadcaster, unless one was injected, and the ticker.
func (a *MatchActor) handleStart(ctx bollywood.Context) {
	if a.broadcasterPID == nil {
		a.broadcasterPID = a.engine.Spawn(bollywood.NewProps(NewBroadcasterProducer(a.selfPID)))
		if a.broadcasterPID == nil {
			fmt.Printf("FATAL: MatchActor %s failed to spawn BroadcasterActor. Stopping self.\n", a.selfPID)
			a.engine.Stop(a.selfPID)
			return
		}
	}
	fmt.Printf("MatchActor %s: Started match %s. Broadcaster: %s.\n", a.selfPID, a.id, a.broadcasterPID)

	a.lastTick = a.now()
	a.ticker = time.NewTicker(a.cfg.TickPeriod())
	go a.runTickerLoop(a.ticker.C, a.stopTickerCh)
}

// runTickerLoop sends matchTick messages to the actor's own mailbox.
func (a *MatchActor) runTickerLoop(tickerCh <-chan time.Time, stopCh <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in MatchActor %s Ticker Loop: %v\n", a.selfPID, r)
		}
	}()

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-tickerCh:
			if !ok {
				return
			}
			a.engine.Send(a.selfPID, matchTick{}, nil)
		}
	}
}

func (a *MatchActor) stopTicker() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
	select {
	case <-a.stopTickerCh:
	default:
		close(a.stopTickerCh)
	}
}

// tick advances the match by the wall clock time since the previous tick,
// clamped to MaxFrameDelta.
func (a *MatchActor) tick() {
	now := a.now()
	dt := now.Sub(a.lastTick).Seconds()
	a.lastTick = now
	a.step(dt)
}

func (a *MatchActor) step(dt float64) {
	dt = utils.Clamp(dt, 0, a.cfg.MaxFrameDelta)
	wasPlaying := a.match.Playing()
	a.match.Update(dt)

	if winner := a.match.Winner(); wasPlaying && !a.match.Playing() && winner != utils.NoPlayer {
		fmt.Printf("MatchActor %s: Player %d won %v.\n", a.selfPID, winner+1, a.match.Scores())
	}
	a.broadcast()
}

func (a *MatchActor) broadcast() {
	if a.broadcasterPID == nil {
		return
	}
	a.engine.Send(a.broadcasterPID, BroadcastStateCommand{Update: a.update(a.events.Drain())}, a.selfPID)
}

func (a *MatchActor) update(events []Event) StateUpdate {
	return StateUpdate{
		MessageType: MessageTypeState,
		MatchID:     a.id,
		State:       a.match.Snapshot(),
		Events:      events,
	}
}
