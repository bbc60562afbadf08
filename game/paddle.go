// File: game/paddle.go
package game

import (
	"math"
	"math/rand"

	"github.com/lguibr/pongai/utils"
)

// Paddle is one player's bat. Up and Down are non-negative speed
// multipliers; Down-Up is the signed vertical intent.
type Paddle struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Up     float64 `json:"up"`
	Down   float64 `json:"down"`
	Auto   bool    `json:"auto"`
	Level  int     `json:"level"`

	MinY  float64 `json:"minY"`
	MaxY  float64 `json:"maxY"`
	Speed float64 `json:"speed"`

	ai         utils.Level
	prediction *Prediction

	courtWidth  float64
	courtHeight float64
	wallWidth   float64
	tiltFactor  float64
	deadband    float64
	levels      func(int) utils.Level
	rng         *rand.Rand
}

// NewPaddle creates the paddle for player index (0 left, 1 right), centered
// in its travel range.
func NewPaddle(cfg utils.Config, index int, rng *rand.Rand) *Paddle {
	paddle := &Paddle{
		Index:       index,
		Width:       cfg.PaddleWidth,
		Height:      cfg.PaddleHeight,
		MinY:        cfg.WallWidth,
		MaxY:        cfg.Height - cfg.WallWidth - cfg.PaddleHeight,
		courtWidth:  cfg.Width,
		courtHeight: cfg.Height,
		wallWidth:   cfg.WallWidth,
		tiltFactor:  cfg.TiltFactor,
		deadband:    cfg.AIDeadband,
		levels:      cfg.Level,
		rng:         rng,
	}
	paddle.Speed = (paddle.MaxY - paddle.MinY) / cfg.PaddleSpeed

	x := 0.0
	if index == 1 {
		x = cfg.Width - cfg.PaddleWidth
	}
	paddle.X = x
	paddle.Y = paddle.MinY + (paddle.MaxY-paddle.MinY)/2
	return paddle
}

func (p *Paddle) Left() float64   { return p.X }
func (p *Paddle) Right() float64  { return p.X + p.Width }
func (p *Paddle) Top() float64    { return p.Y }
func (p *Paddle) Bottom() float64 { return p.Y + p.Height }

// Rect returns the paddle's current rectangle.
func (p *Paddle) Rect() utils.Rect {
	return utils.Rect{Left: p.Left(), Top: p.Top(), Right: p.Right(), Bottom: p.Bottom()}
}

// SetDirection sets the intents from a signed multiplier.
func (p *Paddle) SetDirection(dy float64) {
	p.Up = 0
	p.Down = 0
	if dy < 0 {
		p.Up = -dy
	} else if dy > 0 {
		p.Down = dy
	}
}

func (p *Paddle) MoveUp()         { p.Up = 1 }
func (p *Paddle) MoveDown()       { p.Down = 1 }
func (p *Paddle) StopMovingUp()   { p.Up = 0 }
func (p *Paddle) StopMovingDown() { p.Down = 0 }

// SetAuto switches autonomous control. Entering assigns level; leaving
// clears the intents and the prediction and keeps the position.
func (p *Paddle) SetAuto(on bool, level int) {
	if on && !p.Auto {
		p.Auto = true
		p.prediction = nil
		p.SetDirection(0)
		p.SetLevel(level)
	} else if !on && p.Auto {
		p.Auto = false
		p.prediction = nil
		p.SetDirection(0)
	}
}

// SetLevel changes the AI difficulty. It has no effect on a manual paddle.
func (p *Paddle) SetLevel(level int) {
	if !p.Auto {
		return
	}
	p.Level = level
	if p.levels != nil {
		p.ai = p.levels(level)
	}
}

// Apply handles an input command. Commands are rejected while the paddle
// is autonomous.
func (p *Paddle) Apply(cmd Command) bool {
	if p.Auto {
		return false
	}
	switch cmd.Kind {
	case CommandMoveUp:
		p.StopMovingDown()
		p.MoveUp()
	case CommandMoveDown:
		p.StopMovingUp()
		p.MoveDown()
	case CommandStop:
		p.SetDirection(0)
	case CommandSetPosition:
		p.SetPosition(cmd.Position)
	default:
		return false
	}
	return true
}

// SetPosition places the paddle from a normalized 0..1 input. The input is
// stretched past the travel range by the tilt factor so the ends saturate.
func (p *Paddle) SetPosition(normalized float64) {
	travel := p.courtHeight - p.Height - p.wallWidth
	amplified := travel * (1 + p.tiltFactor)
	absolute := math.Round(normalized*amplified - travel*(p.tiltFactor/2))
	p.Y = utils.Clamp(absolute, p.MinY, p.MaxY)
}

// Update runs the AI when autonomous and then moves the paddle by its
// intent, keeping it inside its travel range.
func (p *Paddle) Update(dt float64, ball *Ball) {
	if p.Auto && ball != nil {
		p.think(dt, ball)
	}

	amount := p.Down - p.Up
	y := p.Y
	if amount != 0 {
		y += amount * dt * p.Speed
	}
	p.Y = utils.Clamp(y, p.MinY, p.MaxY)
}
