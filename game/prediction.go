package game

import (
	"github.com/lguibr/pongai/utils"
)

// PredictionState is the cache state of a paddle's prediction.
type PredictionState int

const (
	PredictionEmpty PredictionState = iota
	PredictionFresh
	PredictionStale
)

func (s PredictionState) String() string {
	switch s {
	case PredictionFresh:
		return "fresh"
	case PredictionStale:
		return "stale"
	default:
		return "empty"
	}
}

// Prediction is where a paddle expects to meet the ball. Y carries the
// level's aiming error; ExactX/ExactY are the noise free impact.
type Prediction struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	ExactX float64 `json:"exactX"`
	ExactY float64 `json:"exactY"`
	Dx     float64 `json:"dx"`
	Dy     float64 `json:"dy"`
	Radius float64 `json:"radius"`
	Since  float64 `json:"since"`
}

// Prediction returns a copy of the cached prediction, or nil.
func (p *Paddle) Prediction() *Prediction {
	if p.prediction == nil {
		return nil
	}
	copied := *p.prediction
	return &copied
}

// PredictionState reports whether the cached prediction may be reused for
// the ball's current direction.
func (p *Paddle) PredictionState(ball *Ball) PredictionState {
	if p.prediction == nil {
		return PredictionEmpty
	}
	if utils.SameDirection(p.prediction.Dx, ball.Dx) &&
		utils.SameDirection(p.prediction.Dy, ball.Dy) &&
		p.prediction.Since < p.ai.AIReaction {
		return PredictionFresh
	}
	return PredictionStale
}

// think steers the paddle toward where the ball is expected to arrive.
func (p *Paddle) think(dt float64, ball *Ball) {
	if (ball.X < p.Left() && ball.Dx < 0) || (ball.X > p.Right() && ball.Dx > 0) {
		p.SetDirection(0)
		return
	}

	p.predict(ball, dt)

	if p.prediction == nil {
		p.SetDirection(0)
		return
	}

	if p.prediction.Y < p.Top()+p.Height/2-p.deadband {
		p.SetDirection(-1)
	} else if p.prediction.Y > p.Bottom()-p.Height/2+p.deadband {
		p.SetDirection(1)
	} else {
		p.SetDirection(0)
	}
}

// predict refreshes the cached prediction when it is empty or stale and
// ages it otherwise.
func (p *Paddle) predict(ball *Ball, dt float64) {
	if p.PredictionState(ball) == PredictionFresh {
		p.prediction.Since += dt
		return
	}

	band := utils.Rect{
		Left:   p.Left(),
		Right:  p.Right(),
		Top:    -utils.PredictionBandHalfHeight,
		Bottom: utils.PredictionBandHalfHeight,
	}
	ray := utils.MultiplyVectorByScalar(utils.Vector{X: ball.Dx, Y: ball.Dy}, utils.PredictionRayScale)
	hit, ok := utils.BallIntercept(ball.Center(), ball.Radius, band, ray.X, ray.Y)
	if !ok {
		p.prediction = nil
		return
	}

	top := p.MinY + ball.Radius
	bottom := p.MaxY + p.Height - ball.Radius
	y := utils.Unfold(hit.Point.Y, top, bottom)

	prediction := &Prediction{
		X:      hit.Point.X,
		Y:      y,
		ExactX: hit.Point.X,
		ExactY: y,
		Dx:     ball.Dx,
		Dy:     ball.Dy,
		Radius: ball.Radius,
	}

	closeness := (p.Left() - ball.X) / p.courtWidth
	if ball.Dx < 0 {
		closeness = (ball.X - p.Right()) / p.courtWidth
	}
	aimError := p.ai.AIError * closeness
	prediction.Y += utils.RandomBetween(p.rng, -aimError, aimError)

	p.prediction = prediction
}
