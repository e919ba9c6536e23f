package spatialmath

import (
	"math"

	"github.com/pkg/errors"
)

// eePoseLen is the number of task-space components: x, y, z, pitch, roll.
const eePoseLen = 5

// EEPose is a 5-DOF end-effector pose: position in meters plus pitch
// (rotation about Y) and roll (rotation about X) in radians. Yaw is absent
// because a 5-DOF arm cannot independently control it.
type EEPose struct {
	X     float64
	Y     float64
	Z     float64
	Pitch float64
	Roll  float64
}

// NewPoseArrayLengthError returns the error for a pose array whose length
// is not 5.
func NewPoseArrayLengthError(got int) error {
	return errors.Errorf("pose array must have %d elements [x y z pitch roll], got %d", eePoseLen, got)
}

// ToArray returns the pose as [x, y, z, pitch, roll].
func (p EEPose) ToArray() []float64 {
	return []float64{p.X, p.Y, p.Z, p.Pitch, p.Roll}
}

// NewEEPoseFromArray builds an EEPose from [x, y, z, pitch, roll]. It is the
// exact inverse of ToArray.
func NewEEPoseFromArray(values []float64) (EEPose, error) {
	if len(values) != eePoseLen {
		return EEPose{}, NewPoseArrayLengthError(len(values))
	}
	return EEPose{
		X:     values[0],
		Y:     values[1],
		Z:     values[2],
		Pitch: values[3],
		Roll:  values[4],
	}, nil
}

// NewEEPoseFromTransform extracts the 5-DOF pose from a homogeneous
// transform. The angle convention is fixed:
//
//	pitch = atan2(-R20, sqrt(R00^2 + R10^2))
//	roll  = atan2(R21, R22)
//
// which is the pitch/roll subset of an extrinsic ZYX Euler decomposition of
// the rotation block. The same convention must be used anywhere poses are
// differenced, or solver errors become inconsistent with FK.
func NewEEPoseFromTransform(t *Transform) EEPose {
	pt := t.Point()
	pitch := math.Atan2(-t.At(2, 0), math.Hypot(t.At(0, 0), t.At(1, 0)))
	roll := math.Atan2(t.At(2, 1), t.At(2, 2))
	return EEPose{X: pt.X, Y: pt.Y, Z: pt.Z, Pitch: pitch, Roll: roll}
}
