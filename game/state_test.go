package game

import (
	"testing"

	"github.com/lguibr/pongai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_SnapshotIdle(t *testing.T) {
	match, _ := newTestMatch(t)

	state := match.Snapshot()

	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Equal(t, utils.NoPlayer, state.Winner)
	assert.Nil(t, state.Ball)
	assert.Equal(t, 640.0, state.Width)
	assert.Equal(t, 480.0, state.Height)
	assert.Equal(t, 12.0, state.WallWidth)
	assert.Equal(t, 628.0, state.Paddles[1].X)
	assert.Nil(t, state.Paddles[0].Prediction)
}

func TestMatch_SnapshotFootprints(t *testing.T) {
	match, _ := newTestMatch(t)
	match.Start(2)
	match.Update(1.0 / 60)

	state := match.Snapshot()
	require.NotNil(t, state.Ball)
	assert.Empty(t, state.Ball.Footprints)

	match.SetFootprints(true)
	match.Update(1.0 / 60)
	state = match.Snapshot()
	require.NotNil(t, state.Ball)
	assert.Len(t, state.Ball.Footprints, 1)

	state.Ball.Footprints[0].X = -1
	assert.NotEqual(t, -1.0, match.Ball().Footprints[0].X, "snapshot owns its trail copy")
}

func TestMatch_SnapshotPredictions(t *testing.T) {
	match, _ := newTestMatch(t)
	match.Start(0)
	match.Update(1.0 / 60)

	assert.Nil(t, match.Snapshot().Paddles[1].Prediction)

	match.SetPredictions(true)
	state := match.Snapshot()

	right := state.Paddles[1]
	require.NotNil(t, right.Prediction)
	require.NotNil(t, right.Exact)
	radius := match.Ball().Radius
	assert.InDelta(t, 2*radius, right.Exact.Right-right.Exact.Left, 1e-9)
	assert.Equal(t, right.Exact.Left, right.Prediction.Left)
}
