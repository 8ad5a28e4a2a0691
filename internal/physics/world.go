package physics

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
)

// Joint is the domain view of one hinge: a pivot anchor, an angular limit,
// and an optional torque-bounded motor. Chipmunk has no single constraint
// combining all three the way Box2D's revolute joint does, so a Joint owns
// up to three underlying constraints created and destroyed together.
type Joint struct {
	Name           JointName
	BodyA, BodyB   PartName
	ReferenceAngle float64
	MaxMotorTorque float64
	EnableMotor    bool

	pivot *cp.Constraint
	limit *cp.RotaryLimitJoint
	motor *cp.SimpleMotor
}

// SetLimits overwrites the joint's angular limits, folding in the joint's
// reference angle. This is the mutation path the control translator uses
// every step to reconfigure hip limits; each call replaces the previous
// limits outright rather than stacking on top of them.
func (j *Joint) SetLimits(lower, upper float64) {
	if j.limit == nil {
		return
	}
	j.limit.Min = j.ReferenceAngle + lower
	j.limit.Max = j.ReferenceAngle + upper
}

// Limits returns the joint's current angular limits.
func (j *Joint) Limits() (lower, upper float64) {
	if j.limit == nil {
		return 0, 0
	}
	return j.limit.Min, j.limit.Max
}

// MotorRate returns the joint's current commanded motor speed, or 0 if the
// joint has no motor.
func (j *Joint) MotorRate() float64 {
	if j.motor == nil {
		return 0
	}
	return j.motor.Rate
}

// SetMotorRate commands the joint's motor to the given target angular
// speed. No-ops if the joint has no motor (elbows, neck and ankles are
// unpowered hinges).
func (j *Joint) SetMotorRate(rate float64) {
	if j.motor == nil {
		return
	}
	j.motor.Rate = rate
}

// World owns the chipmunk space, the ground and the ragdoll's bodies and
// joints. It is created once and persists across episodes; resetting an
// episode rebuilds only the ragdoll, not the world or the ground.
type World struct {
	Space  *cp.Space
	Ground []*cp.Shape

	Bodies map[PartName]*cp.Body
	Joints map[JointName]*Joint

	logger *log.Logger
}

// NewWorld creates the space, applies gravity/iterations/allow-sleep from
// the current physics.Config, and builds the three ground segments. It is
// called once, lazily, on the very first reset.
func NewWorld(logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	cfg := GetConfig()

	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	space.SleepTimeThreshold = sleepThreshold(cfg.AllowSleep)

	w := &World{
		Space:  space,
		Bodies: make(map[PartName]*cp.Body),
		Joints: make(map[JointName]*Joint),
		logger: logger,
	}
	w.buildGround()
	return w
}

// sleepThreshold maps the boolean "allow sleep" flag onto chipmunk's
// numeric sleep-time threshold: a very large threshold effectively disables
// sleeping.
func sleepThreshold(allow bool) float64 {
	if allow {
		return 0.5
	}
	return 1e9
}

func (w *World) buildGround() {
	for i, x := range GroundXPositions {
		body := cp.NewStaticBody()
		body.SetPosition(cp.Vector{X: x, Y: GroundY})
		body.UserData = TrackTag

		shape := cp.NewBox(body, GroundHalfWidth*2, GroundHalfHeight*2, 0)
		shape.SetFriction(GroundFriction)
		shape.SetFilter(cp.NewShapeFilter(0, GroundCategory, GroundMask))
		shape.UserData = TrackTag

		w.Space.AddBody(body)
		w.Space.AddShape(shape)
		w.Ground = append(w.Ground, shape)

		w.logger.Printf("[physics] ground segment %d at x=%.2f", i, x)
	}
}

// BuildRagdoll constructs the twelve body parts and eleven joints from the
// spawn tables in a fixed construction order (bodies before joints, joints
// in the order joints reference already-built bodies). It assumes the
// ragdoll is not currently built; callers must destroy any existing
// ragdoll first (see Reset).
func (w *World) BuildRagdoll() error {
	for _, spec := range BodySpecs {
		body := cp.NewBody(mass(spec), moment(spec))
		if body == nil {
			return fmt.Errorf("physics: failed to construct body %q", spec.Name)
		}
		body.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})
		body.SetAngle(spec.Angle)
		body.UserData = spec.Name

		shape := cp.NewBox(body, spec.HalfWidth*2, spec.HalfHeight*2, 0)
		shape.SetFriction(spec.Friction)
		shape.SetFilter(cp.NewShapeFilter(0, PartCategory, PartMask))
		shape.UserData = spec.Name

		w.Space.AddBody(body)
		w.Space.AddShape(shape)
		w.Bodies[spec.Name] = body
	}

	for _, spec := range JointSpecs {
		joint, err := w.buildJoint(spec)
		if err != nil {
			return err
		}
		w.Joints[spec.Name] = joint
	}

	w.logger.Printf("[physics] ragdoll built: %d bodies, %d joints", len(w.Bodies), len(w.Joints))
	return nil
}

func (w *World) buildJoint(spec JointSpec) (*Joint, error) {
	bodyA, ok := w.Bodies[spec.BodyA]
	if !ok {
		return nil, fmt.Errorf("physics: joint %q references unknown body %q", spec.Name, spec.BodyA)
	}
	bodyB, ok := w.Bodies[spec.BodyB]
	if !ok {
		return nil, fmt.Errorf("physics: joint %q references unknown body %q", spec.Name, spec.BodyB)
	}

	localA := bodyA.WorldToLocal(spec.WorldAnchorA)
	localB := bodyB.WorldToLocal(spec.WorldAnchorB)

	pivot := cp.NewPivotJoint2(bodyA, bodyB, localA, localB)
	w.Space.AddConstraint(pivot)

	limitConstraint := cp.NewRotaryLimitJoint(bodyA, bodyB, spec.ReferenceAngle+spec.Lower, spec.ReferenceAngle+spec.Upper)
	w.Space.AddConstraint(limitConstraint)
	limit := limitConstraint.Class.(*cp.RotaryLimitJoint)

	j := &Joint{
		Name:           spec.Name,
		BodyA:          spec.BodyA,
		BodyB:          spec.BodyB,
		ReferenceAngle: spec.ReferenceAngle,
		MaxMotorTorque: spec.MaxMotorTorque,
		EnableMotor:    spec.EnableMotor,
		pivot:          pivot,
		limit:          limit,
	}

	if spec.EnableMotor {
		motorConstraint := cp.NewSimpleMotor(bodyA, bodyB, 0)
		motorConstraint.SetMaxForce(spec.MaxMotorTorque)
		w.Space.AddConstraint(motorConstraint)
		j.motor = motorConstraint.Class.(*cp.SimpleMotor)
	}

	return j, nil
}

// DestroyRagdoll removes every joint then every body from the space,
// retaining the world and the ground segments.
func (w *World) DestroyRagdoll() {
	for name, joint := range w.Joints {
		if joint.motor != nil {
			w.Space.RemoveConstraint(joint.motor.Constraint)
		}
		w.Space.RemoveConstraint(joint.limit.Constraint)
		w.Space.RemoveConstraint(joint.pivot)
		delete(w.Joints, name)
	}
	for name, body := range w.Bodies {
		body.EachShape(func(shape *cp.Shape) {
			w.Space.RemoveShape(shape)
		})
		w.Space.RemoveBody(body)
		delete(w.Bodies, name)
	}
}

func mass(spec BodySpec) float64 {
	return spec.Density * (spec.HalfWidth * 2) * (spec.HalfHeight * 2)
}

func moment(spec BodySpec) float64 {
	return cp.MomentForBox(mass(spec), spec.HalfWidth*2, spec.HalfHeight*2)
}
