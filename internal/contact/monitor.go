// Package contact drives the jump/landing/fall state machine from the
// physics engine's contact-begin events.
package contact

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"

	"ragdollcore/internal/physics"
	"ragdollcore/internal/state"
)

var upperBodyParts = map[physics.PartName]bool{
	physics.Head:         true,
	physics.LeftArm:      true,
	physics.RightArm:     true,
	physics.LeftForearm:  true,
	physics.RightForearm: true,
}

var feetParts = map[physics.PartName]bool{
	physics.LeftFoot:  true,
	physics.RightFoot: true,
}

// Monitor observes new track-vs-ragdoll contacts and mutates the shared
// game state. It registers itself as a chipmunk collision handler against
// a World's space.
type Monitor struct {
	game   *state.Game
	logger *log.Logger
}

// NewMonitor creates a Monitor writing to game.
func NewMonitor(game *state.Game, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{game: game, logger: logger}
}

// Attach registers the monitor's begin-contact callback on every collision
// pair chipmunk reports for space. Chipmunk dispatches per collision-type
// pair, but this core does not assign per-part collision types (the tag
// carried on Body.UserData is enough to distinguish track from ragdoll), so
// a single wildcard handler on the default collision type covers every
// pair.
func (m *Monitor) Attach(space *cp.Space) {
	handler := space.NewCollisionHandler(0, 0)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		m.onBegin(arb)
		return true
	}
}

func (m *Monitor) onBegin(arb *cp.Arbiter) {
	bodyA, bodyB := arb.Bodies()

	tagA, isTrackA := bodyA.UserData.(string)
	tagB, isTrackB := bodyB.UserData.(string)
	isTrackA = isTrackA && tagA == physics.TrackTag
	isTrackB = isTrackB && tagB == physics.TrackTag

	if isTrackA == isTrackB {
		// Neither or both are track: ignore.
		return
	}

	var partName physics.PartName
	var partBody *cp.Body
	if isTrackA {
		partBody = bodyB
	} else {
		partBody = bodyA
	}
	name, ok := partBody.UserData.(physics.PartName)
	if !ok {
		return
	}
	partName = name

	maxX := m.contactMaxX(arb, partBody)

	switch {
	case feetParts[partName]:
		m.handleFoot(maxX)
	case upperBodyParts[partName]:
		m.handleUpperBody(maxX)
	default:
		// torso, thighs, calves touching track: explicitly ignored.
	}
}

// contactMaxX computes the greatest world-space X among the contact
// manifold's points, falling back to the part body's world centre X if the
// manifold carries no points.
func (m *Monitor) contactMaxX(arb *cp.Arbiter, partBody *cp.Body) float64 {
	set := arb.ContactPointSet()
	if set.Count == 0 {
		return partBody.Position().X
	}
	maxX := math.Inf(-1)
	for i := 0; i < set.Count; i++ {
		p := set.Points[i]
		if p.PointA.X > maxX {
			maxX = p.PointA.X
		}
		if p.PointB.X > maxX {
			maxX = p.PointB.X
		}
	}
	return maxX
}

func (m *Monitor) handleFoot(maxX float64) {
	g := m.game
	if g.GameEnded || g.Fallen {
		return
	}
	pixelX := maxX * physics.WorldScale
	if !g.Jumped && pixelX > physics.JumpTriggerPx {
		g.Jumped = true
		m.logger.Printf("[contact] jump armed at x=%.2f", maxX)
	}
	if g.Jumped && !g.JumpLanded && pixelX > physics.LandingTriggerPx {
		g.JumpLanded = true
		g.Score = roundScoreMetres(maxX)
		g.RaiseHighScore(g.Score)
		m.logger.Printf("[contact] jump landed at x=%.2f, score=%.2f", maxX, g.Score)
	}
}

func (m *Monitor) handleUpperBody(maxX float64) {
	g := m.game
	if g.Fallen {
		return
	}
	g.Fallen = true
	if g.Jumped && !g.JumpLanded {
		g.JumpLanded = true
	}
	g.Score = roundScoreMetres(maxX)
	g.RaiseHighScore(g.Score)
	m.logger.Printf("[contact] fell at x=%.2f, score=%.2f", maxX, g.Score)
}

// roundScoreMetres rounds the world-space X coordinate — expressed in
// decimetres — to the nearest integer decimetre (half away from zero),
// then divides by 10 to get a one-decimal metre value. Go's math.Round
// already rounds half away from zero, so no override is needed here.
func roundScoreMetres(x float64) float64 {
	return math.Round(x) / 10
}
