package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// R4AA represents a rotation of Theta radians about the axis (RX, RY, RZ).
// It is the form 3D orientations take in scene configuration.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA creates a zero rotation about +Z.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// ToQuat converts an R4 axis angle to a unit quaternion.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/angleToQuaternion/index.htm
func (r4 *R4AA) ToQuat() (quat.Number, error) {
	if r4.Theta == 0 {
		return quat.Number{Real: 1}, nil
	}
	axis, err := r4.normalizedAxis()
	if err != nil {
		return quat.Number{}, err
	}
	sinA := math.Sin(r4.Theta / 2)
	return quat.Number{
		Real: math.Cos(r4.Theta / 2),
		Imag: axis.X * sinA,
		Jmag: axis.Y * sinA,
		Kmag: axis.Z * sinA,
	}, nil
}

// ToR3 converts an R4 angle axis to R3, a vector whose length is the angle.
func (r4 *R4AA) ToR3() r3.Vector {
	return r3.Vector{X: r4.RX * r4.Theta, Y: r4.RY * r4.Theta, Z: r4.RZ * r4.Theta}
}

func (r4 *R4AA) normalizedAxis() (r3.Vector, error) {
	axis := r3.Vector{X: r4.RX, Y: r4.RY, Z: r4.RZ}
	norm := axis.Norm()
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return r3.Vector{}, errors.Errorf("cannot rotate about degenerate axis %v", axis)
	}
	return axis.Mul(1 / norm), nil
}

// R3ToR4 converts an R3 angle axis to R4.
func R3ToR4(aa r3.Vector) *R4AA {
	theta := aa.Norm()
	if theta == 0 {
		return NewR4AA()
	}
	return &R4AA{theta, aa.X / theta, aa.Y / theta, aa.Z / theta}
}
