// Package spatialmath implements the rigid-body math underneath the kinematics
// packages: 4x4 homogeneous transforms, rotations about the principal axes,
// and the 5-DOF end-effector pose extracted from them.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Axis enumerates the principal axes a revolute joint may rotate about.
type Axis int

// The three principal rotation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "invalid"
}

// Validate returns an error unless the axis is one of X, Y, Z.
func (a Axis) Validate() error {
	if a < AxisX || a > AxisZ {
		return errors.Errorf("axis must be x, y, or z, got %d", int(a))
	}
	return nil
}

// Rotation returns the rotation by theta radians about this axis.
func (a Axis) Rotation(theta float64) *Transform {
	switch a {
	case AxisY:
		return RotY(theta)
	case AxisZ:
		return RotZ(theta)
	default:
		return RotX(theta)
	}
}

// Transform is a 4x4 homogeneous transform. The zero value is not usable;
// use the constructors. Transforms are immutable once constructed.
type Transform struct {
	m *mat.Dense
}

// NewTransform returns the identity transform.
func NewTransform() *Transform {
	return &Transform{m: mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})}
}

// NewTranslation returns a pure translation by v.
func NewTranslation(v r3.Vector) *Transform {
	return &Transform{m: mat.NewDense(4, 4, []float64{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	})}
}

// RotX returns the rotation by theta radians about the X axis.
func RotX(theta float64) *Transform {
	c, s := math.Cos(theta), math.Sin(theta)
	return &Transform{m: mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})}
}

// RotY returns the rotation by theta radians about the Y axis.
func RotY(theta float64) *Transform {
	c, s := math.Cos(theta), math.Sin(theta)
	return &Transform{m: mat.NewDense(4, 4, []float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})}
}

// RotZ returns the rotation by theta radians about the Z axis.
func RotZ(theta float64) *Transform {
	c, s := math.Cos(theta), math.Sin(theta)
	return &Transform{m: mat.NewDense(4, 4, []float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})}
}

// NewFromURDF builds the transform for a URDF joint origin given its xyz
// translation and rpy (roll, pitch, yaw) rotation, composed in the URDF
// convention Translation(xyz) * RotZ(yaw) * RotY(pitch) * RotX(roll).
func NewFromURDF(xyz, rpy r3.Vector) *Transform {
	return Compose(NewTranslation(xyz), RotZ(rpy.Z), RotY(rpy.Y), RotX(rpy.X))
}

// Compose multiplies the given transforms left to right, i.e. base to tip.
// With no arguments it returns the identity.
func Compose(transforms ...*Transform) *Transform {
	out := NewTransform()
	for _, t := range transforms {
		out = out.Mul(t)
	}
	return out
}

// Mul returns the product t * o as a new Transform.
func (t *Transform) Mul(o *Transform) *Transform {
	var p mat.Dense
	p.Mul(t.m, o.m)
	return &Transform{m: &p}
}

// At returns the matrix element at row i, column j.
func (t *Transform) At(i, j int) float64 {
	return t.m.At(i, j)
}

// Point returns the translation column of the transform.
func (t *Transform) Point() r3.Vector {
	return r3.Vector{X: t.m.At(0, 3), Y: t.m.At(1, 3), Z: t.m.At(2, 3)}
}
