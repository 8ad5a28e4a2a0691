package physics

import (
	"log"
	"os"
	"testing"
)

func testLogger() *log.Logger {
	return log.New(os.Stdout, "[TEST] ", log.LstdFlags)
}

func TestBuildRagdoll_SpawnPositionsMatchTable(t *testing.T) {
	w := NewWorld(testLogger())
	if err := w.BuildRagdoll(); err != nil {
		t.Fatalf("BuildRagdoll: %v", err)
	}

	for _, spec := range BodySpecs {
		body, ok := w.Bodies[spec.Name]
		if !ok {
			t.Fatalf("missing body %q", spec.Name)
		}
		pos := body.Position()
		if pos.X != spec.X || pos.Y != spec.Y {
			t.Errorf("%s: position = (%v, %v), want (%v, %v)", spec.Name, pos.X, pos.Y, spec.X, spec.Y)
		}
		if body.Angle() != spec.Angle {
			t.Errorf("%s: angle = %v, want %v", spec.Name, body.Angle(), spec.Angle)
		}
	}
}

func TestBuildRagdoll_JointCount(t *testing.T) {
	w := NewWorld(testLogger())
	if err := w.BuildRagdoll(); err != nil {
		t.Fatalf("BuildRagdoll: %v", err)
	}
	if len(w.Joints) != len(JointSpecs) {
		t.Fatalf("got %d joints, want %d", len(w.Joints), len(JointSpecs))
	}
	for _, spec := range JointSpecs {
		if _, ok := w.Joints[spec.Name]; !ok {
			t.Errorf("missing joint %q", spec.Name)
		}
	}
}

func TestDestroyRagdoll_RemovesEverything(t *testing.T) {
	w := NewWorld(testLogger())
	if err := w.BuildRagdoll(); err != nil {
		t.Fatalf("BuildRagdoll: %v", err)
	}
	w.DestroyRagdoll()

	if len(w.Bodies) != 0 {
		t.Errorf("Bodies not empty after destroy: %d", len(w.Bodies))
	}
	if len(w.Joints) != 0 {
		t.Errorf("Joints not empty after destroy: %d", len(w.Joints))
	}
	if len(w.Ground) != 3 {
		t.Errorf("ground segments should survive destroy, got %d", len(w.Ground))
	}
}

func TestJointSetLimits_FoldsReferenceAngle(t *testing.T) {
	w := NewWorld(testLogger())
	if err := w.BuildRagdoll(); err != nil {
		t.Fatalf("BuildRagdoll: %v", err)
	}
	leftHip := w.Joints[LeftHip]
	leftHip.SetLimits(-1.0, 1.0)

	wantMin := leftHip.ReferenceAngle - 1.0
	wantMax := leftHip.ReferenceAngle + 1.0
	if leftHip.limit.Min != wantMin || leftHip.limit.Max != wantMax {
		t.Errorf("limits = (%v, %v), want (%v, %v)", leftHip.limit.Min, leftHip.limit.Max, wantMin, wantMax)
	}
}

func TestJointSetMotorRate_NoopWithoutMotor(t *testing.T) {
	w := NewWorld(testLogger())
	if err := w.BuildRagdoll(); err != nil {
		t.Fatalf("BuildRagdoll: %v", err)
	}
	neck := w.Joints[Neck]
	// Neck has no motor; this must not panic.
	neck.SetMotorRate(5.0)
}
