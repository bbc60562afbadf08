package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lguibr/pongai/utils"
)

// Phase is the match state machine: Idle between matches, Playing during one.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePlaying Phase = "playing"
)

// Confirmer asks the user a yes/no question, e.g. before abandoning a match.
type Confirmer func(prompt string) bool

// Match composes the ball and both paddles and owns the score. It is not
// safe for concurrent use; hosts serialize calls (see MatchActor).
type Match struct {
	cfg      utils.Config
	phase    Phase
	scores   [utils.MaxPlayers]int
	winner   int
	paddles  [utils.MaxPlayers]*Paddle
	ball     *Ball
	notifier Notifier
	confirm  Confirmer
}

// MatchOption customizes a Match at construction.
type MatchOption func(*Match)

// WithNotifier sets the receiver of match events.
func WithNotifier(n Notifier) MatchOption {
	return func(m *Match) { m.notifier = n }
}

// WithConfirmer sets the prompt used by Stop(true). Without one, stopping
// is always confirmed.
func WithConfirmer(c Confirmer) MatchOption {
	return func(m *Match) { m.confirm = c }
}

// WithRand sets the random source shared by the serve and the AI error.
func WithRand(rng *rand.Rand) MatchOption {
	return func(m *Match) {
		m.ball.rng = rng
		for _, p := range m.paddles {
			p.rng = rng
		}
	}
}

// NewMatch validates cfg and builds an idle match.
func NewMatch(cfg utils.Config, opts ...MatchOption) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating match: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m := &Match{
		cfg:    cfg,
		phase:  PhaseIdle,
		winner: utils.NoPlayer,
		ball:   NewBall(cfg, rng),
	}
	for i := range m.paddles {
		m.paddles[i] = NewPaddle(cfg, i, rng)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Match) Config() utils.Config          { return m.cfg }
func (m *Match) Phase() Phase                  { return m.phase }
func (m *Match) Playing() bool                 { return m.phase == PhasePlaying }
func (m *Match) Scores() [utils.MaxPlayers]int { return m.scores }
func (m *Match) Winner() int                   { return m.winner }
func (m *Match) Ball() *Ball                   { return m.ball }
func (m *Match) LeftPaddle() *Paddle           { return m.paddles[0] }
func (m *Match) RightPaddle() *Paddle          { return m.paddles[1] }

// Paddle returns the paddle for player index, or nil when out of range.
func (m *Match) Paddle(index int) *Paddle {
	if index < 0 || index >= len(m.paddles) {
		return nil
	}
	return m.paddles[index]
}

// Level is the difficulty row index for player. Leading raises it.
func (m *Match) Level(player int) int {
	other := 1 - player
	return utils.TieLevel + (m.scores[player] - m.scores[other])
}

// Start begins a match with numPlayers humans: 0 is a demo, 1 puts the
// human on the left, 2 is two humans. It does nothing while playing.
func (m *Match) Start(numPlayers int) {
	if m.Playing() {
		return
	}
	m.scores = [utils.MaxPlayers]int{}
	m.winner = utils.NoPlayer
	m.phase = PhasePlaying
	m.paddles[0].SetAuto(numPlayers < 1, m.Level(0))
	m.paddles[1].SetAuto(numPlayers < 2, m.Level(1))
	m.ball.Reset(utils.NoPlayer)
	m.emit(Event{Kind: EventMatchStarted, Player: utils.NoPlayer})
}

// Stop abandons the match. With ask, the confirmer decides.
func (m *Match) Stop(ask bool) bool {
	if !m.Playing() {
		return false
	}
	if ask && m.confirm != nil && !m.confirm(utils.AbandonMatchPrompt) {
		return false
	}
	m.finish()
	m.emit(Event{Kind: EventMatchStopped, Player: m.winner})
	return true
}

func (m *Match) finish() {
	m.phase = PhaseIdle
	m.paddles[0].SetAuto(false, 0)
	m.paddles[1].SetAuto(false, 0)
}

// Apply routes an input command to player's paddle. It reports false when
// the player is unknown or the paddle is autonomous.
func (m *Match) Apply(player int, cmd Command) bool {
	paddle := m.Paddle(player)
	if paddle == nil {
		return false
	}
	return paddle.Apply(cmd)
}

// Update advances the simulation by dt seconds. Paddles always move; the
// ball and scoring only run while playing. Callers clamp dt.
func (m *Match) Update(dt float64) {
	m.paddles[0].Update(dt, m.ball)
	m.paddles[1].Update(dt, m.ball)

	if !m.Playing() {
		return
	}

	dx, dy := m.ball.Dx, m.ball.Dy
	m.ball.Update(dt, m.paddles[0], m.paddles[1])

	if m.ball.Dx < 0 && dx > 0 {
		m.emit(Event{Kind: EventPaddleHitRight, Player: 1})
	} else if m.ball.Dx > 0 && dx < 0 {
		m.emit(Event{Kind: EventPaddleHitLeft, Player: 0})
	} else if m.ball.Dy*dy < 0 {
		m.emit(Event{Kind: EventWallBounce, Player: utils.NoPlayer})
	}

	if m.ball.Left > m.cfg.Width {
		m.goal(0)
	} else if m.ball.Right < 0 {
		m.goal(1)
	}
}

func (m *Match) goal(player int) {
	m.scores[player]++
	lastGoal := m.scores[player] >= m.cfg.MaxGoals
	m.emit(Event{Kind: EventGoalScored, Player: player, Score: m.scores[player], MatchPoint: lastGoal})

	if lastGoal {
		m.winner = player
		m.finish()
		m.emit(Event{Kind: EventMatchWon, Player: player, Score: m.scores[player]})
		return
	}

	m.ball.Reset(1 - player)
	m.paddles[0].SetLevel(m.Level(0))
	m.paddles[1].SetLevel(m.Level(1))
}

func (m *Match) emit(e Event) {
	if m.notifier != nil {
		m.notifier.Notify(e)
	}
}
