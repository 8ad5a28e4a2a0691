// Package physics builds and owns the rigid-body world: the ground, the
// twelve ragdoll body parts and the eleven joints that hold them together.
//
// Every numeric literal in this file is a compatibility constant. None of
// them are configuration — changing any of them breaks parity with the
// game a training agent has been calibrated against.
package physics

import "github.com/jakecoffman/cp"

// PartName identifies one of the twelve ragdoll body parts.
type PartName string

const (
	Torso        PartName = "torso"
	Head         PartName = "head"
	LeftArm      PartName = "leftArm"
	LeftForearm  PartName = "leftForearm"
	LeftThigh    PartName = "leftThigh"
	LeftCalf     PartName = "leftCalf"
	LeftFoot     PartName = "leftFoot"
	RightArm     PartName = "rightArm"
	RightForearm PartName = "rightForearm"
	RightThigh   PartName = "rightThigh"
	RightCalf    PartName = "rightCalf"
	RightFoot    PartName = "rightFoot"

	// TrackTag is the body tag carried by ground segments; the contact
	// monitor uses it to tell ground from ragdoll in a contact pair.
	TrackTag = "track"
)

// JointName identifies one of the eleven hinge joints.
type JointName string

const (
	Neck          JointName = "neck"
	RightShoulder JointName = "rightShoulder"
	LeftShoulder  JointName = "leftShoulder"
	LeftHip       JointName = "leftHip"
	RightHip      JointName = "rightHip"
	LeftElbow     JointName = "leftElbow"
	RightElbow    JointName = "rightElbow"
	LeftKnee      JointName = "leftKnee"
	RightKnee     JointName = "rightKnee"
	LeftAnkle     JointName = "leftAnkle"
	RightAnkle    JointName = "rightAnkle"
)

// BodySpec is the spawn-time description of one dynamic body part.
type BodySpec struct {
	Name                PartName
	X, Y, Angle         float64
	HalfWidth, HalfHeight float64
	Friction, Density   float64
}

// JointSpec is the construction-time description of one hinge joint.
// WorldAnchorA/B are expressed in world space; the builder transforms them
// into each body's local frame at construction time.
type JointSpec struct {
	Name                   JointName
	BodyA, BodyB           PartName
	WorldAnchorA, WorldAnchorB cp.Vector
	Lower, Upper           float64
	ReferenceAngle         float64
	EnableMotor            bool
	MaxMotorTorque         float64
}

// Physical/collision constants shared by every body part and ground segment.
const (
	Gravity    = 10.0 // m/s^2, downward
	FixedDT    = 0.04 // seconds per physics tick
	Iterations = 5    // combined velocity/position iteration count

	WorldScale = 20.0 // pixels per metre; used only for the jump/landing thresholds

	GroundY          = 10.74275
	GroundHalfWidth  = 16.0
	GroundHalfHeight = 1.6
	GroundFriction   = 0.2
	GroundDensity    = 30.0

	// Chipmunk collision categories/masks. Ground is category 1 and collides
	// with everything; ragdoll parts are category 2 and never collide with
	// each other (mask 0xFFFD clears bit 1, i.e. category 2 itself).
	GroundCategory uint = 1
	GroundMask     uint = 0xFFFFFFFF
	PartCategory   uint = 2
	PartMask       uint = 0xFFFD

	// Head-stabilising torque: tau = -HeadTorqueGain*(headAngle+HeadTorqueBias)
	HeadTorqueGain = 4.0
	HeadTorqueBias = 0.2

	// Jump/landing thresholds, expressed in pixels; the contact monitor
	// compares world-X*WorldScale against them.
	SandPitXPixels   = 20000.0
	JumpArmOffsetPx  = 220.0
	JumpTriggerPx    = SandPitXPixels - JumpArmOffsetPx // 19780
	LandingTriggerPx = SandPitXPixels                   // 20000
)

// GroundXPositions are the world-space X centres of the three ground
// segments providing coverage across the run.
var GroundXPositions = [3]float64{0, 32, 64}

// BodySpecs lists the twelve body parts in construction order: torso,
// head, leftArm, leftCalf, leftFoot, leftForearm, leftThigh, rightArm,
// rightCalf, rightFoot, rightForearm, rightThigh. The order is a
// compatibility constant, not just a listing convenience.
var BodySpecs = []BodySpec{
	{Torso, 2.511172622600016, -1.870951753395794, -1.251449711930133, 3.275, 1.425, 0.2, 1},
	{Head, 3.888130278719558, -5.621802929095265, 0.064484158352251, 1.075, 1.325, 0.2, 1},
	{LeftArm, 4.417861014480877, -2.806563606410589, 0.904009589527283, 1.850, 0.625, 0.2, 1},
	{LeftCalf, 3.125857319740870, 5.525511655361298, -1.590397152822527, 2.500, 0.750, 0.2, 1},
	{LeftFoot, 3.926921842806667, 8.088840320496220, 0.120275246434088, 1.350, 0.675, 1.5, 3},
	{LeftForearm, 5.830008603424893, -2.873353963115958, -1.204977261842124, 1.750, 0.550, 0.2, 1},
	{LeftThigh, 2.564898762820388, 1.648090668682522, -2.017723442682339, 2.525, 1.000, 0.2, 1},
	{RightArm, 1.181230366327285, -3.500025651860101, -0.522221740463439, 1.950, 0.750, 0.2, 1},
	{RightCalf, -0.072539057367905, 5.347881871063159, -0.758885996710445, 2.500, 0.750, 0.2, 1},
	{RightFoot, -1.125474264390871, 7.567193169625567, 0.589760541821960, 1.350, 0.725, 1.5, 3},
	{RightForearm, 0.407820642079743, -1.059995323308417, -1.755335828385730, 2.225, 0.675, 0.2, 1},
	{RightThigh, 1.612018613567877, 2.061532056188152, 1.484942296452803, 2.650, 1.000, 0.2, 1},
}

// JointSpecs lists the eleven hinge joints in construction order: joints
// are only built once both the bodies they connect already exist, and some
// solvers are sensitive to constraint order, so this order is a
// compatibility constant, not an implementation detail.
var JointSpecs = []JointSpec{
	{Neck, Head, Torso,
		cp.Vector{X: 3.5885141908, Y: -4.5262242236}, cp.Vector{X: 3.5887333416, Y: -4.5264346585},
		-0.5, 0.0, -1.308996406363529, false, 0},
	{RightShoulder, RightArm, Torso,
		cp.Vector{X: 2.2284768218, Y: -4.0864687322}, cp.Vector{X: 2.2289299939, Y: -4.0870755594},
		-0.5, 1.5, -0.785390706546396, true, 1000},
	{LeftShoulder, LeftArm, Torso,
		cp.Vector{X: 3.6241979857, Y: -3.5334881618}, cp.Vector{X: 3.6241778782, Y: -3.5339504345},
		-2.0, 0.0, -2.094383118168290, true, 1000},
	{LeftHip, LeftThigh, Torso,
		cp.Vector{X: 2.0030339754, Y: 0.2373716062}, cp.Vector{X: 2.0033671814, Y: 0.2380259039},
		-1.5, 0.5, 0.725847750894404, true, 6000},
	{RightHip, RightThigh, Torso,
		cp.Vector{X: 1.2475900729, Y: -0.0110466429}, cp.Vector{X: 1.2470052824, Y: -0.0116353472},
		-1.3, 0.7, -2.719359381718199, true, 6000},
	{LeftElbow, LeftForearm, LeftArm,
		cp.Vector{X: 5.5253753328, Y: -1.6385620493}, cp.Vector{X: 5.5253753295, Y: -1.6385620366},
		-0.1, 0.5, 2.094383118168290, false, 0},
	{RightElbow, RightForearm, RightArm,
		cp.Vector{X: -0.0060908591, Y: -2.8004758839}, cp.Vector{X: -0.0060908612, Y: -2.8004758929},
		-0.1, 0.5, 1.296819901227469, false, 0},
	{LeftKnee, LeftCalf, LeftThigh,
		cp.Vector{X: 3.3843234120, Y: 3.5168931241}, cp.Vector{X: 3.3844684377, Y: 3.5174122998},
		-1.6, 0.0, -0.395311376411983, true, 3000},
	{RightKnee, RightCalf, RightThigh,
		cp.Vector{X: 1.4982369235, Y: 4.1756003060}, cp.Vector{X: 1.4982043533, Y: 4.1749352067},
		-1.3, 0.3, 2.289340624715868, true, 3000},
	{LeftAnkle, LeftFoot, LeftCalf,
		cp.Vector{X: 3.3123225078, Y: 7.9477048539}, cp.Vector{X: 3.3123224825, Y: 7.9477048363},
		-0.5, 0.5, -1.724432758501023, false, 2000},
	{RightAnkle, RightFoot, RightCalf,
		cp.Vector{X: -1.6562855402, Y: 6.9615514526}, cp.Vector{X: -1.6557266705, Y: 6.9614938270},
		-0.5, 0.5, -1.570804582594276, false, 2000},
}

// DefaultHipLimits are the hip limits restored whenever neither the O nor
// P control group is held.
var DefaultHipLimits = map[JointName][2]float64{
	LeftHip:  {-1.5, 0.5},
	RightHip: {-1.3, 0.7},
}
