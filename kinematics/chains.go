package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/armlab/kinarm/spatialmath"
	"github.com/armlab/kinarm/utils"
)

// SO101Chain returns the kinematic chain of the SO-101 arm (5 DOF, gripper
// excluded). Offsets, axes, and limits come from the SO-ARM100 repository's
// so101_new_calib.urdf; the trailing offset is the URDF gripper frame joint.
func SO101Chain() *KinematicChain {
	joints := []RevoluteJoint{
		{
			Name:   "shoulder_pan",
			Offset: r3.Vector{X: 0.0388, Y: 0.0, Z: 0.0624},
			Axis:   spatialmath.AxisY,
			Limit:  Limit{Min: -1.91986, Max: 1.91986}, // +/- 110 deg
		},
		{
			Name:   "shoulder_lift",
			Offset: r3.Vector{X: -0.0304, Y: -0.0183, Z: -0.0542},
			Axis:   spatialmath.AxisX,
			Limit:  Limit{Min: -1.74533, Max: 1.74533}, // +/- 100 deg
		},
		{
			Name:   "elbow_flex",
			Offset: r3.Vector{X: -0.11257, Y: -0.028, Z: 0.0},
			Axis:   spatialmath.AxisX,
			Limit:  Limit{Min: -1.69, Max: 1.69}, // +/- 96.8 deg
		},
		{
			Name:   "wrist_flex",
			Offset: r3.Vector{X: -0.1349, Y: 0.0052, Z: 0.0},
			Axis:   spatialmath.AxisX,
			Limit:  Limit{Min: -1.65806, Max: 1.65806}, // +/- 95 deg
		},
		{
			Name:   "wrist_roll",
			Offset: r3.Vector{X: 0.0, Y: -0.0611, Z: 0.0181},
			Axis:   spatialmath.AxisY,
			Limit:  Limit{Min: -2.74385, Max: 2.84121}, // -157.2 .. +162.8 deg
		},
	}
	return mustChain(joints, r3.Vector{X: -0.0079, Y: 0.0, Z: -0.0981})
}

// KochChain returns the kinematic chain of the Koch v1.1 arm (5 DOF, gripper
// excluded). Koch has no official URDF; link lengths and limits are
// estimates from the MuJoCo menagerie model and CAD drawings.
//
// TODO(physical-params): measure the real link lengths and joint limits and
// replace these estimates before trusting the chain on hardware.
func KochChain() *KinematicChain {
	joints := []RevoluteJoint{
		{
			Name:   "shoulder_pan",
			Offset: r3.Vector{X: 0.0, Y: 0.0, Z: 0.05},
			Axis:   spatialmath.AxisY,
			Limit:  Limit{Min: utils.DegToRad(-150), Max: utils.DegToRad(150)},
		},
		{
			Name:   "shoulder_lift",
			Offset: r3.Vector{X: 0.0, Y: 0.0, Z: -0.04},
			Axis:   spatialmath.AxisX,
			Limit:  Limit{Min: utils.DegToRad(-100), Max: utils.DegToRad(100)},
		},
		{
			Name:   "elbow",
			Offset: r3.Vector{X: -0.110, Y: 0.0, Z: 0.0}, // upper arm ~110 mm
			Axis:   spatialmath.AxisX,
			Limit:  Limit{Min: utils.DegToRad(-100), Max: utils.DegToRad(100)},
		},
		{
			Name:   "wrist_flex",
			Offset: r3.Vector{X: -0.100, Y: 0.0, Z: 0.0}, // forearm ~100 mm
			Axis:   spatialmath.AxisX,
			Limit:  Limit{Min: utils.DegToRad(-100), Max: utils.DegToRad(100)},
		},
		{
			Name:   "wrist_roll",
			Offset: r3.Vector{X: 0.0, Y: -0.04, Z: 0.0},
			Axis:   spatialmath.AxisY,
			Limit:  Limit{Min: utils.DegToRad(-180), Max: utils.DegToRad(180)},
		},
	}
	return mustChain(joints, r3.Vector{X: 0.0, Y: 0.0, Z: -0.06})
}

// mustChain panics on a bad table; the tables above are fixed data validated
// by tests, so a failure here is a programming error.
func mustChain(joints []RevoluteJoint, eeOffset r3.Vector) *KinematicChain {
	chain, err := NewKinematicChain(joints, eeOffset)
	if err != nil {
		panic(err)
	}
	return chain
}
