// Package kinematics models serial revolute chains for small robot arms and
// solves inverse kinematics over them with a damped least-squares iteration.
// Chains and solver configs are immutable and safe for concurrent use; every
// operation is a pure function of its arguments.
package kinematics

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"github.com/armlab/kinarm/spatialmath"
	"github.com/armlab/kinarm/utils"
)

// jacobianDelta is the finite-difference step in radians. Chosen to balance
// truncation error against floating-point cancellation.
const jacobianDelta = 1e-4

// Limit is the inclusive angular range a joint may occupy, in radians.
type Limit struct {
	Min float64
	Max float64
}

// RevoluteJoint describes one joint of a serial chain: a fixed translation
// from the parent joint's frame followed by a rotation about one principal
// axis. Its local transform at angle q is Translation(Offset) * Rotation(q).
type RevoluteJoint struct {
	Name   string
	Offset r3.Vector
	Axis   spatialmath.Axis
	Limit  Limit
}

func (j RevoluteJoint) validate() error {
	var err error
	if axisErr := j.Axis.Validate(); axisErr != nil {
		err = multierr.Append(err, errors.Wrapf(axisErr, "joint %q", j.Name))
	}
	if j.Limit.Min > j.Limit.Max {
		err = multierr.Append(err, NewLimitOrderError(j.Name, j.Limit.Min, j.Limit.Max))
	}
	return err
}

func (j RevoluteJoint) transform(theta float64) *spatialmath.Transform {
	return spatialmath.NewTranslation(j.Offset).Mul(j.Axis.Rotation(theta))
}

// KinematicChain is an ordered, immutable sequence of revolute joints plus a
// fixed translation from the last joint frame to the end-effector tip.
type KinematicChain struct {
	joints   []RevoluteJoint
	eeOffset r3.Vector
}

// NewKinematicChain validates the given joints and returns a chain. All joint
// validation failures are reported together.
func NewKinematicChain(joints []RevoluteJoint, eeOffset r3.Vector) (*KinematicChain, error) {
	if len(joints) == 0 {
		return nil, errNoJoints
	}
	var err error
	for _, j := range joints {
		err = multierr.Append(err, j.validate())
	}
	if err != nil {
		return nil, err
	}
	return &KinematicChain{
		joints:   append([]RevoluteJoint(nil), joints...),
		eeOffset: eeOffset,
	}, nil
}

// NJoints returns the number of joints in the chain.
func (c *KinematicChain) NJoints() int {
	return len(c.joints)
}

// JointNames returns the joint names in chain order.
func (c *KinematicChain) JointNames() []string {
	names := make([]string, len(c.joints))
	for i, j := range c.joints {
		names[i] = j.Name
	}
	return names
}

// DoF returns the angular limit of each joint in chain order.
func (c *KinematicChain) DoF() []Limit {
	limits := make([]Limit, len(c.joints))
	for i, j := range c.joints {
		limits[i] = j.Limit
	}
	return limits
}

// LowerLimits returns the per-joint lower limits in radians.
func (c *KinematicChain) LowerLimits() []float64 {
	lower := make([]float64, len(c.joints))
	for i, j := range c.joints {
		lower[i] = j.Limit.Min
	}
	return lower
}

// UpperLimits returns the per-joint upper limits in radians.
func (c *KinematicChain) UpperLimits() []float64 {
	upper := make([]float64, len(c.joints))
	for i, j := range c.joints {
		upper[i] = j.Limit.Max
	}
	return upper
}

func (c *KinematicChain) checkJointCount(q []float64) error {
	if len(q) != len(c.joints) {
		return NewJointCountError(len(c.joints), len(q))
	}
	return nil
}

// Transform computes the homogeneous transform from the base frame to the
// end-effector frame at the given joint angles in radians. The per-joint
// transforms are composed in chain order, base to tip.
func (c *KinematicChain) Transform(q []float64) (*spatialmath.Transform, error) {
	if err := c.checkJointCount(q); err != nil {
		return nil, err
	}
	t := spatialmath.NewTransform()
	for i, j := range c.joints {
		t = t.Mul(j.transform(q[i]))
	}
	return t.Mul(spatialmath.NewTranslation(c.eeOffset)), nil
}

// EndEffectorPose computes the 5-DOF end-effector pose at the given joint
// angles in radians.
func (c *KinematicChain) EndEffectorPose(q []float64) (spatialmath.EEPose, error) {
	t, err := c.Transform(q)
	if err != nil {
		return spatialmath.EEPose{}, err
	}
	return spatialmath.NewEEPoseFromTransform(t), nil
}

// Jacobian computes the 5 x NJoints matrix of partial derivatives of the
// end-effector pose [x y z pitch roll] with respect to the joint angles,
// using central finite differences.
func (c *KinematicChain) Jacobian(q []float64) (*mat.Dense, error) {
	if err := c.checkJointCount(q); err != nil {
		return nil, err
	}
	return c.jacobianWithStep(q, jacobianDelta), nil
}

func (c *KinematicChain) jacobianWithStep(q []float64, delta float64) *mat.Dense {
	jac := mat.NewDense(5, len(c.joints), nil)
	qPlus := append([]float64(nil), q...)
	qMinus := append([]float64(nil), q...)
	for i := range c.joints {
		qPlus[i] = q[i] + delta
		qMinus[i] = q[i] - delta

		// Lengths were validated by the caller, so FK cannot fail.
		posePlus, _ := c.EndEffectorPose(qPlus)
		poseMinus, _ := c.EndEffectorPose(qMinus)
		arrPlus := posePlus.ToArray()
		arrMinus := poseMinus.ToArray()

		for k := 0; k < 5; k++ {
			diff := arrPlus[k] - arrMinus[k]
			if k >= 3 {
				// Angular components may jump across the branch cut.
				diff = utils.WrapAngle(diff)
			}
			jac.Set(k, i, diff/(2*delta))
		}

		qPlus[i] = q[i]
		qMinus[i] = q[i]
	}
	return jac
}

// ClampToLimits returns a copy of q with each element clipped to its joint's
// angular limits. Clamping is idempotent.
func (c *KinematicChain) ClampToLimits(q []float64) ([]float64, error) {
	if err := c.checkJointCount(q); err != nil {
		return nil, err
	}
	return c.clamp(append([]float64(nil), q...)), nil
}

// clamp clips q in place. The caller must have already checked the length.
func (c *KinematicChain) clamp(q []float64) []float64 {
	for i, j := range c.joints {
		q[i] = utils.Clamp(q[i], j.Limit.Min, j.Limit.Max)
	}
	return q
}
