package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestEEPoseArrayRoundTrip(t *testing.T) {
	p := EEPose{X: 0.1, Y: -0.2, Z: 0.3, Pitch: 0.4, Roll: -0.5}
	arr := p.ToArray()
	test.That(t, arr, test.ShouldResemble, []float64{0.1, -0.2, 0.3, 0.4, -0.5})

	back, err := NewEEPoseFromArray(arr)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, p)
}

func TestEEPoseFromArrayShape(t *testing.T) {
	_, err := NewEEPoseFromArray([]float64{1, 2, 3, 4})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewEEPoseFromArray(nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewEEPoseFromArray(make([]float64, 6))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPoseFromTransform(t *testing.T) {
	p := NewEEPoseFromTransform(NewTranslation(r3.Vector{X: 1, Y: 2, Z: 3}))
	test.That(t, p, test.ShouldResemble, EEPose{X: 1, Y: 2, Z: 3})

	// A pure Y rotation is pitch; a pure X rotation is roll.
	p = NewEEPoseFromTransform(RotY(0.3))
	test.That(t, p.Pitch, test.ShouldAlmostEqual, 0.3, 1e-12)
	test.That(t, p.Roll, test.ShouldAlmostEqual, 0, 1e-12)

	p = NewEEPoseFromTransform(RotX(-0.4))
	test.That(t, p.Roll, test.ShouldAlmostEqual, -0.4, 1e-12)
	test.That(t, p.Pitch, test.ShouldAlmostEqual, 0, 1e-12)

	// Yaw is intentionally invisible in the 5-DOF task space.
	p = NewEEPoseFromTransform(RotZ(1.2))
	test.That(t, p.Pitch, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, p.Roll, test.ShouldAlmostEqual, 0, 1e-12)
}

func TestPoseFromTransformComposed(t *testing.T) {
	// Pitch and roll both recoverable from a combined rotation, in the
	// pinned decomposition order.
	tr := Compose(RotY(0.25), RotX(0.5))
	p := NewEEPoseFromTransform(tr)
	test.That(t, p.Pitch, test.ShouldAlmostEqual, 0.25, 1e-12)
	test.That(t, p.Roll, test.ShouldAlmostEqual, 0.5, 1e-12)
}
