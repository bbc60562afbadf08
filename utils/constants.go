package utils

const (
	// MaxPlayers is the number of paddles on the court.
	MaxPlayers = 2

	// NoPlayer marks the absence of a player index (no winner, random serve).
	NoPlayer = -1

	// TieLevel is the level index used when both players have the same score.
	TieLevel = 8

	// PredictionRayScale stretches the ball velocity into a ray long enough to
	// reach any paddle in a single intersection test.
	PredictionRayScale = 10
	// PredictionBandHalfHeight bounds the paddle column used for predictions.
	PredictionBandHalfHeight = 10000

	MaxFootprints      = 50
	FootprintInterval  = 5
	SpinDampFactor     = 0.5
	SpinBoostFactor    = 1.5
	AbandonMatchPrompt = "Abandon game in progress ?"
)
