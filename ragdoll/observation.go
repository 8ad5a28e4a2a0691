package ragdoll

import "ragdollcore/internal/physics"

// ScalarsPerPart is the number of observation scalars exported per body
// part: worldCenter.x, worldCenter.y, angle, linearVelocity.x,
// linearVelocity.y.
const ScalarsPerPart = 5

// NumParts is the number of ragdoll body parts.
const NumParts = 12

// ObservationSize is the fixed width of the exported observation vector.
const ObservationSize = NumParts * ScalarsPerPart

// Observation is the fixed-shape, read-only record produced by
// GetObservation. Units are not renormalised; callers scale as they see
// fit.
type Observation struct {
	Obs        [ObservationSize]float64
	Distance   float64
	Time       float64
	GameEnded  bool
	Success    bool
	Fallen     bool
	Jumped     bool
	JumpLanded bool
}

// distanceLowerBound and distanceUpperBound are extra bounds on top of the
// core's own gameEnded flag, so a caller observes termination even if the
// internal state machine hasn't flipped gameEnded (a body launched
// off-screen, for instance).
const (
	distanceLowerBound = -10.0
	distanceUpperBound = 105.0
	successThreshold   = 100.0
)

// bodyOrder mirrors internal/physics.BodySpecs' construction order — the
// observation's per-part slice order is defined to be the construction
// order, not any alphabetic or otherwise convenient listing order.
var bodyOrder = func() []physics.PartName {
	names := make([]physics.PartName, len(physics.BodySpecs))
	for i, spec := range physics.BodySpecs {
		names[i] = spec.Name
	}
	return names
}()
