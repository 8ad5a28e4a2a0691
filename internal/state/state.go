// Package state holds the small mutable records shared between the
// stepper, the contact monitor and the state exporter: the fields a
// contact callback fired mid-step must be able to mutate and the post-step
// code must then observe consistently.
package state

// Game is the per-episode game state record.
type Game struct {
	ScoreTime  float64
	Score      float64
	HighScore  float64
	GameEnded  bool
	Fallen     bool
	Jumped     bool
	JumpLanded bool
}

// Reset zeroes every field except HighScore, which survives resets.
func (g *Game) Reset() {
	highScore := g.HighScore
	*g = Game{HighScore: highScore}
}

// RaiseHighScore bumps HighScore up to score if score is higher, keeping
// HighScore >= Score always.
func (g *Game) RaiseHighScore(score float64) {
	if score > g.HighScore {
		g.HighScore = score
	}
}

// Keys is the four-button input state.
type Keys struct {
	Q, W, O, P bool
}
