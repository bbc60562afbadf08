package game

import (
	"github.com/lguibr/pongai/utils"
)

// BallState is the renderer view of the ball.
type BallState struct {
	X          float64        `json:"x" msgpack:"x"`
	Y          float64        `json:"y" msgpack:"y"`
	Radius     float64        `json:"radius" msgpack:"radius"`
	Footprints []utils.Vector `json:"footprints,omitempty" msgpack:"footprints,omitempty"`
}

// PaddleState is the renderer view of a paddle. Prediction and Exact are
// the guessed and exact impact boxes, present only when predictions are shown.
type PaddleState struct {
	Index      int         `json:"index" msgpack:"index"`
	X          float64     `json:"x" msgpack:"x"`
	Y          float64     `json:"y" msgpack:"y"`
	Width      float64     `json:"width" msgpack:"width"`
	Height     float64     `json:"height" msgpack:"height"`
	Auto       bool        `json:"auto" msgpack:"auto"`
	Level      int         `json:"level" msgpack:"level"`
	Prediction *utils.Rect `json:"prediction,omitempty" msgpack:"prediction,omitempty"`
	Exact      *utils.Rect `json:"exact,omitempty" msgpack:"exact,omitempty"`
}

// MatchState is a read-only snapshot handed to renderers and clients.
type MatchState struct {
	Phase     Phase                         `json:"phase" msgpack:"phase"`
	Scores    [utils.MaxPlayers]int         `json:"scores" msgpack:"scores"`
	Winner    int                           `json:"winner" msgpack:"winner"`
	Width     float64                       `json:"width" msgpack:"width"`
	Height    float64                       `json:"height" msgpack:"height"`
	WallWidth float64                       `json:"wallWidth" msgpack:"wallWidth"`
	Ball      *BallState                    `json:"ball,omitempty" msgpack:"ball,omitempty"`
	Paddles   [utils.MaxPlayers]PaddleState `json:"paddles" msgpack:"paddles"`
}

// Snapshot copies the state a renderer needs. The ball is only included
// while playing.
func (m *Match) Snapshot() MatchState {
	state := MatchState{
		Phase:     m.phase,
		Scores:    m.scores,
		Winner:    m.winner,
		Width:     m.cfg.Width,
		Height:    m.cfg.Height,
		WallWidth: m.cfg.WallWidth,
	}

	if m.Playing() {
		ball := &BallState{X: m.ball.X, Y: m.ball.Y, Radius: m.ball.Radius}
		if m.cfg.Footprints {
			ball.Footprints = append([]utils.Vector(nil), m.ball.Footprints...)
		}
		state.Ball = ball
	}

	for i, p := range m.paddles {
		ps := PaddleState{
			Index:  p.Index,
			X:      p.X,
			Y:      p.Y,
			Width:  p.Width,
			Height: p.Height,
			Auto:   p.Auto,
			Level:  p.Level,
		}
		if m.cfg.Predictions && p.prediction != nil {
			guess := predictionBox(p.prediction.X, p.prediction.Y, p.prediction.Radius)
			exact := predictionBox(p.prediction.X, p.prediction.ExactY, p.prediction.Radius)
			ps.Prediction = &guess
			ps.Exact = &exact
		}
		state.Paddles[i] = ps
	}
	return state
}

func predictionBox(x, y, radius float64) utils.Rect {
	return utils.Rect{Left: x - radius, Top: y - radius, Right: x + radius, Bottom: y + radius}
}

// SetFootprints toggles trail samples in snapshots.
func (m *Match) SetFootprints(on bool) {
	m.cfg.Footprints = on
	m.ball.Footprints = nil
	m.ball.footprintCount = 0
}

// SetPredictions toggles prediction boxes in snapshots.
func (m *Match) SetPredictions(on bool) { m.cfg.Predictions = on }
