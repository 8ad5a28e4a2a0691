// Package ragdoll composes the world builder, control translator, contact
// monitor and state exporter into the four operations exposed at the edge
// of the physics core: Reset, SetAction, Step and GetObservation.
package ragdoll

import (
	"log"
	"math"

	"ragdollcore/internal/contact"
	"ragdollcore/internal/control"
	"ragdollcore/internal/physics"
	"ragdollcore/internal/rng"
	"ragdollcore/internal/state"
	"ragdollcore/internal/telemetry"
)

// Core is one self-contained ragdoll simulation instance. Every instance
// owns its world exclusively; instances are safe to run concurrently on
// separate goroutines provided each is only ever driven from one goroutine
// at a time — Step must never be called re-entrantly on the same Core.
type Core struct {
	world *physics.World
	game  state.Game
	keys  state.Keys

	monitor    *contact.Monitor
	mixer      *rng.Mixer
	telemetry  *telemetry.Recorder
	logger     *log.Logger
	firstClick bool
	tick       uint64
}

// Option configures a Core at construction time.
type Option func(*Core)

// WithLogger overrides the default logger. A nil logger keeps log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Core) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTelemetry attaches a trace recorder; every Step call records a
// snapshot, and the step on which the game ends is recorded as a
// "gameEnded" event. Fall, jump and landing transitions are not recorded as
// separate events; they appear only in the snapshots' flags.
func WithTelemetry(r *telemetry.Recorder) Option {
	return func(c *Core) { c.telemetry = r }
}

// New creates a Core. The world itself is not built until the first Reset
// call, so constructing a Core never touches the physics library.
func New(opts ...Option) *Core {
	c := &Core{
		mixer:  rng.New(physics.GetConfig().DefaultSeed),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset rebuilds the world to its spawn state, preserving HighScore across
// episodes. A nil seed leaves the mixer's current seed untouched.
func (c *Core) Reset(seed *uint32) bool {
	if c.world == nil {
		c.world = physics.NewWorld(c.logger)
		c.monitor = contact.NewMonitor(&c.game, c.logger)
		c.monitor.Attach(c.world.Space)
	} else {
		c.world.DestroyRagdoll()
	}

	if seed != nil {
		c.mixer.Seed(*seed)
	}

	if err := c.world.BuildRagdoll(); err != nil {
		// The constants that drive BuildRagdoll are compile-time literals,
		// so reaching here means the physics library itself failed;
		// propagate that as a fatal error rather than limping on with a
		// half-built ragdoll.
		panic(err)
	}

	c.game.Reset()
	c.keys = state.Keys{}
	c.firstClick = true
	c.tick = 0

	if c.telemetry != nil {
		c.telemetry.Reset()
	}

	c.logger.Printf("[ragdoll] reset complete, highScore=%.2f", c.game.HighScore)
	return true
}

// SetAction overwrites the four-button key state.
func (c *Core) SetAction(q, w, o, p bool) bool {
	c.keys = state.Keys{Q: q, W: w, O: o, P: p}
	return true
}

// Step advances the simulation exactly one fixed tick: it updates the
// score clock, applies the head-stabilising torque, runs the control
// translator, advances the solver, updates the score, and finally checks
// for the terminal transition. dt overrides the physics timestep (default
// 0.04s); timeDt overrides the score-time delta (default: same as dt).
func (c *Core) Step(dt, timeDt *float64) bool {
	if !c.firstClick || c.world == nil {
		return true
	}

	physicsDT := physics.FixedDT
	if dt != nil {
		physicsDT = *dt
	}
	scoreDT := physicsDT
	if timeDt != nil {
		scoreDT = *timeDt
	}

	g := &c.game

	// Advance scoreTime while the game hasn't ended.
	if !g.GameEnded {
		g.ScoreTime += scoreDT
	}

	// Head-stabilising torque, suppressed once fallen.
	if !g.Fallen {
		c.applyHeadTorque()
	}

	// Control translator runs before the solver advances.
	control.Apply(c.world.Joints, c.keys)

	// Advance the solver; contact callbacks fire synchronously here.
	c.world.Space.Step(physicsDT)

	// Post-solve score update.
	if !g.JumpLanded && !g.GameEnded {
		if torso, ok := c.world.Bodies[physics.Torso]; ok {
			g.Score = math.Round(torso.Position().X) / 10
		}
	}

	// Terminal transition. Apart from the contact monitor's fall/landing
	// handling, HighScore is only raised here, at the end of the episode —
	// never from the per-tick torso score update above.
	wasEnded := g.GameEnded
	switch {
	case g.JumpLanded && !g.GameEnded:
		g.GameEnded = true
		g.RaiseHighScore(g.Score)
	case !g.JumpLanded && !g.GameEnded && g.Fallen:
		g.GameEnded = true
		g.RaiseHighScore(g.Score)
	}

	c.tick++
	c.recordTelemetry(wasEnded)

	return true
}

func (c *Core) applyHeadTorque() {
	head, ok := c.world.Bodies[physics.Head]
	if !ok {
		return
	}
	tau := -physics.HeadTorqueGain * (head.Angle() + physics.HeadTorqueBias)
	head.SetTorque(tau)
}

func (c *Core) recordTelemetry(wasEnded bool) {
	if c.telemetry == nil {
		return
	}
	g := c.game
	snap := telemetry.Snapshot{
		Tick:       c.tick,
		ScoreTime:  g.ScoreTime,
		Score:      g.Score,
		Fallen:     g.Fallen,
		Jumped:     g.Jumped,
		JumpLanded: g.JumpLanded,
		GameEnded:  g.GameEnded,
	}
	if g.GameEnded && !wasEnded {
		c.telemetry.RecordEvent(snap, "gameEnded")
		return
	}
	c.telemetry.Record(snap)
}

// GetObservation reads the current state without mutating anything.
func (c *Core) GetObservation() Observation {
	var obs Observation

	if c.world != nil {
		for i, name := range bodyOrder {
			body, ok := c.world.Bodies[name]
			if !ok {
				continue
			}
			pos := body.Position()
			vel := body.Velocity()
			base := i * ScalarsPerPart
			obs.Obs[base+0] = pos.X
			obs.Obs[base+1] = pos.Y
			obs.Obs[base+2] = body.Angle()
			obs.Obs[base+3] = vel.X
			obs.Obs[base+4] = vel.Y
		}
		if torso, ok := c.world.Bodies[physics.Torso]; ok {
			obs.Distance = torso.Position().X / 10
		}
	}

	obs.Time = c.game.ScoreTime / 10
	obs.Fallen = c.game.Fallen
	obs.Jumped = c.game.Jumped
	obs.JumpLanded = c.game.JumpLanded
	obs.GameEnded = c.game.GameEnded || obs.Distance < distanceLowerBound || obs.Distance > distanceUpperBound
	obs.Success = obs.Distance > successThreshold

	return obs
}

// HighScore exposes the persisted high score, mainly for tests and for a
// host that wants to display it without going through GetObservation.
func (c *Core) HighScore() float64 {
	return c.game.HighScore
}
