package game

import (
	"math/rand"

	"github.com/lguibr/pongai/utils"
)

// Ball owns its position, velocity and trail. The bounding box is derived
// from the center and refreshed on every position change.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Dx     float64 `json:"dx"`
	Dy     float64 `json:"dy"`
	Radius float64 `json:"radius"`
	Accel  float64 `json:"accel"`

	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`

	Footprints []utils.Vector `json:"footprints"`

	minX, maxX float64
	minY, maxY float64
	speed      float64

	dxChanged      bool
	dyChanged      bool
	footprintCount int

	rng *rand.Rand
}

// NewBall builds a ball for the court described by cfg. It is placed at the
// left serve position and does not move until Reset is called.
func NewBall(cfg utils.Config, rng *rand.Rand) *Ball {
	ball := &Ball{
		Radius: cfg.BallRadius,
		Accel:  cfg.BallAccel,
		minX:   cfg.BallRadius,
		maxX:   cfg.Width - cfg.BallRadius,
		minY:   cfg.WallWidth + cfg.BallRadius,
		maxY:   cfg.Height - cfg.WallWidth - cfg.BallRadius,
		rng:    rng,
	}
	ball.speed = (ball.maxX - ball.minX) / cfg.BallSpeed
	ball.setPosition(ball.minX, ball.minY+(ball.maxY-ball.minY)/2)
	return ball
}

// Reset serves the ball toward receiver, the player that just lost the
// point. Receiver 0 is served from the right edge, receiver 1 or NoPlayer
// from the left edge. The vertical start is random inside the play area.
func (ball *Ball) Reset(receiver int) {
	ball.Footprints = nil
	ball.footprintCount = 0

	y := utils.RandomBetween(ball.rng, ball.minY, ball.maxY)
	if receiver == 0 {
		ball.setPosition(ball.maxX, y)
		ball.setDirection(-ball.speed, ball.speed)
	} else {
		ball.setPosition(ball.minX, y)
		ball.setDirection(ball.speed, ball.speed)
	}
}

// Speed is the serve speed along each axis.
func (ball *Ball) Speed() float64 { return ball.speed }

// Center returns the current center as a vector.
func (ball *Ball) Center() utils.Vector { return utils.Vector{X: ball.X, Y: ball.Y} }

// Bounds returns the vertical range the center is kept in by the walls.
func (ball *Ball) Bounds() (minY, maxY float64) { return ball.minY, ball.maxY }

func (ball *Ball) setPosition(x, y float64) {
	ball.X = x
	ball.Y = y
	ball.Left = x - ball.Radius
	ball.Top = y - ball.Radius
	ball.Right = x + ball.Radius
	ball.Bottom = y + ball.Radius
}

func (ball *Ball) setDirection(dx, dy float64) {
	ball.dxChanged = (ball.Dx < 0) != (dx < 0)
	ball.dyChanged = (ball.Dy < 0) != (dy < 0)
	ball.Dx = dx
	ball.Dy = dy
}

// Update advances the ball by dt, bouncing it off the top and bottom walls
// and off the paddle it is heading toward. A ball that misses the paddle
// keeps travelling past the court edge.
func (ball *Ball) Update(dt float64, left, right *Paddle) {
	pos := utils.Accelerate(ball.X, ball.Y, ball.Dx, ball.Dy, ball.Accel, dt)

	if pos.Dy > 0 && pos.Y > ball.maxY {
		pos.Y = ball.maxY
		pos.Dy = -pos.Dy
	} else if pos.Dy < 0 && pos.Y < ball.minY {
		pos.Y = ball.minY
		pos.Dy = -pos.Dy
	}

	paddle := right
	if pos.Dx < 0 {
		paddle = left
	}

	if paddle != nil {
		if hit, ok := utils.BallIntercept(ball.Center(), ball.Radius, paddle.Rect(), pos.Nx, pos.Ny); ok {
			switch hit.Side {
			case utils.SideLeft, utils.SideRight:
				pos.X = hit.Point.X
				pos.Dx = -pos.Dx
			case utils.SideTop, utils.SideBottom:
				pos.Y = hit.Point.Y
				pos.Dy = -pos.Dy
			}
			pos.Dy = ApplySpin(pos.Dy, paddle.Up, paddle.Down)
		}
	}

	ball.setPosition(pos.X, pos.Y)
	ball.setDirection(pos.Dx, pos.Dy)
	ball.footprint()
}

// ApplySpin adjusts the outgoing vertical velocity of a ball struck by a
// paddle with the given intents. Moving with the ball damps it, moving
// against it boosts it. There is no upper bound on the resulting speed.
func ApplySpin(dy, up, down float64) float64 {
	if up > 0 {
		if dy < 0 {
			return dy * utils.SpinDampFactor
		}
		return dy * utils.SpinBoostFactor
	} else if down > 0 {
		if dy > 0 {
			return dy * utils.SpinDampFactor
		}
		return dy * utils.SpinBoostFactor
	}
	return dy
}

func (ball *Ball) footprint() {
	if ball.footprintCount == 0 || ball.dxChanged || ball.dyChanged {
		ball.Footprints = append(ball.Footprints, ball.Center())
		if len(ball.Footprints) > utils.MaxFootprints {
			ball.Footprints = ball.Footprints[1:]
		}
		ball.footprintCount = utils.FootprintInterval
	} else {
		ball.footprintCount--
	}
}
