package kinematics

import "github.com/pkg/errors"

var errNoJoints = errors.New("a kinematic chain needs at least one joint")

// NewJointCountError returns the error for a joint-angle vector whose length
// does not match the chain's joint count.
func NewJointCountError(want, got int) error {
	return errors.Errorf("expected %d joint angles, got %d", want, got)
}

// NewLimitOrderError returns the error for a joint whose lower limit exceeds
// its upper limit.
func NewLimitOrderError(name string, min, max float64) error {
	return errors.Errorf("joint %q has lower limit %f above upper limit %f", name, min, max)
}
