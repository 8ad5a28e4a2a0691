// Package control translates the four-button key state into joint motor
// speeds and hip-limit overwrites, once per physics tick, before the
// solver advances.
package control

import (
	"ragdollcore/internal/physics"
	"ragdollcore/internal/state"
)

// Apply commands motor speeds and hip limits for one tick from the current
// key state. It is idempotent and side-effect free beyond mutating the
// joints it is given; a missing joint is silently skipped.
func Apply(joints map[physics.JointName]*physics.Joint, keys state.Keys) {
	applyQGroup(joints, keys)
	applyOGroup(joints, keys)
}

func applyQGroup(joints map[physics.JointName]*physics.Joint, keys state.Keys) {
	var rightHip, leftHip, rightShoulder, leftShoulder float64
	switch {
	case keys.Q:
		rightHip, leftHip, rightShoulder, leftShoulder = 2.5, -2.5, -2.0, 2.0
	case keys.W:
		rightHip, leftHip, rightShoulder, leftShoulder = -2.5, 2.5, 2.0, -2.0
	}

	setRate(joints, physics.RightHip, rightHip)
	setRate(joints, physics.LeftHip, leftHip)
	setRate(joints, physics.RightShoulder, rightShoulder)
	setRate(joints, physics.LeftShoulder, leftShoulder)
}

func applyOGroup(joints map[physics.JointName]*physics.Joint, keys state.Keys) {
	var rightKnee, leftKnee float64
	var leftHipLimits, rightHipLimits [2]float64

	switch {
	case keys.O:
		rightKnee, leftKnee = 2.5, -2.5
		leftHipLimits = [2]float64{-1.0, 1.0}
		rightHipLimits = [2]float64{-1.3, 0.7}
	case keys.P:
		rightKnee, leftKnee = -2.5, 2.5
		leftHipLimits = [2]float64{-1.5, 0.5}
		rightHipLimits = [2]float64{-0.8, 1.2}
	default:
		leftHipLimits = physics.DefaultHipLimits[physics.LeftHip]
		rightHipLimits = physics.DefaultHipLimits[physics.RightHip]
	}

	setRate(joints, physics.RightKnee, rightKnee)
	setRate(joints, physics.LeftKnee, leftKnee)
	setLimits(joints, physics.LeftHip, leftHipLimits)
	setLimits(joints, physics.RightHip, rightHipLimits)
}

func setRate(joints map[physics.JointName]*physics.Joint, name physics.JointName, rate float64) {
	joint, ok := joints[name]
	if !ok {
		return
	}
	joint.SetMotorRate(rate)
}

func setLimits(joints map[physics.JointName]*physics.Joint, name physics.JointName, limits [2]float64) {
	joint, ok := joints[name]
	if !ok {
		return
	}
	joint.SetLimits(limits[0], limits[1])
}
