package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lguibr/pongai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPredictingPaddle returns an autonomous right paddle with no aiming error.
func newPredictingPaddle() (*Paddle, *Ball) {
	cfg := utils.DefaultConfig()
	paddle := NewPaddle(cfg, 1, newTestRand())
	paddle.SetAuto(true, utils.TieLevel)
	paddle.ai.AIError = 0
	return paddle, NewBall(cfg, newTestRand())
}

func TestPrediction_States(t *testing.T) {
	paddle, ball := newPredictingPaddle()
	placeBall(ball, 320, 240, 157.5, 50)

	assert.Equal(t, PredictionEmpty, paddle.PredictionState(ball))

	paddle.predict(ball, 0.1)
	assert.Equal(t, PredictionFresh, paddle.PredictionState(ball))

	ball.Dy = -50
	assert.Equal(t, PredictionStale, paddle.PredictionState(ball), "vertical reversal")

	ball.Dy = 50
	paddle.prediction.Since = paddle.ai.AIReaction
	assert.Equal(t, PredictionStale, paddle.PredictionState(ball), "older than the reaction time")
}

func TestPrediction_FreshIsReused(t *testing.T) {
	paddle, ball := newPredictingPaddle()
	placeBall(ball, 320, 240, 157.5, 50)

	paddle.predict(ball, 0.1)
	first := paddle.Prediction()
	require.NotNil(t, first)
	assert.InDelta(t, 623, first.ExactX, 1e-9)
	assert.InDelta(t, 336.190476, first.ExactY, 1e-6)

	placeBall(ball, 400, 300, 160, 55)
	paddle.predict(ball, 0.1)
	second := paddle.Prediction()
	require.NotNil(t, second)
	assert.Equal(t, first.ExactY, second.ExactY)
	assert.InDelta(t, 0.1, second.Since, 1e-9)
}

func TestPrediction_RecomputedOnReversal(t *testing.T) {
	paddle, ball := newPredictingPaddle()
	placeBall(ball, 320, 240, 157.5, 50)
	paddle.predict(ball, 0.1)

	ball.Dy = -50
	paddle.predict(ball, 0.1)

	prediction := paddle.Prediction()
	require.NotNil(t, prediction)
	assert.InDelta(t, 143.809524, prediction.ExactY, 1e-6)
	assert.Equal(t, 0.0, prediction.Since)
	assert.Equal(t, -50.0, prediction.Dy)
}

func TestPrediction_UnfoldsWallBounces(t *testing.T) {
	paddle, ball := newPredictingPaddle()
	placeBall(ball, 320, 240, 157.5, 1000)

	paddle.predict(ball, 0.1)

	prediction := paddle.Prediction()
	require.NotNil(t, prediction)
	assert.InDelta(t, 379.809524, prediction.ExactY, 1e-6)
	assert.Equal(t, prediction.ExactY, prediction.Y)
}

func TestPrediction_AimErrorIsBounded(t *testing.T) {
	cfg := utils.DefaultConfig()
	ball := NewBall(cfg, newTestRand())
	placeBall(ball, 320, 240, 157.5, 50)

	// closeness = (628 - 320) / 640, level 8 error = 120
	maxError := 120 * (628.0 - 320.0) / 640.0

	for seed := int64(0); seed < 20; seed++ {
		paddle := NewPaddle(cfg, 1, rand.New(rand.NewSource(seed)))
		paddle.SetAuto(true, utils.TieLevel)
		paddle.predict(ball, 0)

		prediction := paddle.Prediction()
		require.NotNil(t, prediction)
		assert.LessOrEqual(t, math.Abs(prediction.Y-prediction.ExactY), maxError)
		assert.Equal(t, prediction.ExactX, prediction.X)
	}
}

func TestPrediction_NoHitClearsPrediction(t *testing.T) {
	paddle, ball := newPredictingPaddle()
	placeBall(ball, 320, 240, 157.5, 0)
	paddle.predict(ball, 0.1)
	require.NotNil(t, paddle.Prediction())

	placeBall(ball, 320, 240, -157.5, 0)
	paddle.predict(ball, 0.1)
	assert.Nil(t, paddle.Prediction())
}

func TestPaddle_Think(t *testing.T) {
	testCases := []struct {
		name     string
		x, dx    float64
		dy       float64
		wantUp   float64
		wantDown float64
	}{
		{"BallMovingAwayIdles", 320, -157.5, 50, 0, 0},
		{"ImpactBelowMovesDown", 320, 157.5, 50, 0, 1},
		{"ImpactAboveMovesUp", 320, 157.5, -50, 1, 0},
		{"ImpactInsideDeadbandHolds", 320, 157.5, 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paddle, ball := newPredictingPaddle()
			placeBall(ball, tc.x, 240, tc.dx, tc.dy)

			paddle.think(1.0/60, ball)

			assert.Equal(t, tc.wantUp, paddle.Up)
			assert.Equal(t, tc.wantDown, paddle.Down)
		})
	}
}

func TestPaddle_AutoTracksBall(t *testing.T) {
	paddle, ball := newPredictingPaddle()
	placeBall(ball, 320, 240, 157.5, 50)

	for i := 0; i < 60; i++ {
		paddle.Update(1.0/60, ball)
	}

	center := paddle.Y + paddle.Height/2
	assert.InDelta(t, 336.19, center, paddle.deadband+paddle.Speed/60)
}
