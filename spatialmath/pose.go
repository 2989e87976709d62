package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Isometry is a rigid placement (rotation then translation) of a shape in space.
// Points are mapped with TransformPoint, free vectors (directions) with RotateVector.
type Isometry[V Vector[V]] interface {
	TransformPoint(V) V
	InverseTransformPoint(V) V
	RotateVector(V) V
	InverseRotateVector(V) V
	Translation() V
	IsIdentity() bool
	// Inverse returns ErrNonInvertible when the rotation part is degenerate.
	Inverse() (Isometry[V], error)
}

// Identity is the placement that leaves everything where it is. Combined shapes such as Minkowski
// sums already live in the combined frame and are evaluated against it.
type Identity[V Vector[V]] struct{}

// NewIdentity returns the identity placement for V.
func NewIdentity[V Vector[V]]() Identity[V] {
	return Identity[V]{}
}

func (Identity[V]) TransformPoint(p V) V        { return p }
func (Identity[V]) InverseTransformPoint(p V) V { return p }
func (Identity[V]) RotateVector(v V) V          { return v }
func (Identity[V]) InverseRotateVector(v V) V   { return v }
func (Identity[V]) Translation() V              { return Zero[V]() }
func (Identity[V]) IsIdentity() bool            { return true }

func (id Identity[V]) Inverse() (Isometry[V], error) {
	return id, nil
}

func (Identity[V]) String() string {
	return "identity"
}

// Pose2 is a planar rotation by Angle radians followed by a translation.
type Pose2 struct {
	angle    float64
	sin, cos float64
	trans    r2.Point
}

// NewPose2 creates a planar placement.
func NewPose2(translation r2.Point, angle float64) *Pose2 {
	return &Pose2{
		angle: angle,
		sin:   math.Sin(angle),
		cos:   math.Cos(angle),
		trans: translation,
	}
}

// NewTranslation2 creates a planar placement without rotation.
func NewTranslation2(x, y float64) *Pose2 {
	return NewPose2(r2.Point{X: x, Y: y}, 0)
}

// Angle returns the rotation angle in radians.
func (p *Pose2) Angle() float64 {
	return p.angle
}

func (p *Pose2) RotateVector(v r2.Point) r2.Point {
	return r2.Point{X: p.cos*v.X - p.sin*v.Y, Y: p.sin*v.X + p.cos*v.Y}
}

func (p *Pose2) InverseRotateVector(v r2.Point) r2.Point {
	return r2.Point{X: p.cos*v.X + p.sin*v.Y, Y: -p.sin*v.X + p.cos*v.Y}
}

func (p *Pose2) TransformPoint(v r2.Point) r2.Point {
	return p.RotateVector(v).Add(p.trans)
}

func (p *Pose2) InverseTransformPoint(v r2.Point) r2.Point {
	return p.InverseRotateVector(v.Sub(p.trans))
}

func (p *Pose2) Translation() r2.Point {
	return p.trans
}

func (p *Pose2) IsIdentity() bool {
	return p.sin == 0 && p.cos == 1 && p.trans == (r2.Point{})
}

// Inverse returns the placement undoing p.
func (p *Pose2) Inverse() (Isometry[r2.Point], error) {
	if math.IsNaN(p.angle) || math.IsInf(p.angle, 0) || !IsFinite(p.trans) {
		return nil, ErrNonInvertible
	}
	inv := NewPose2(r2.Point{}, -p.angle)
	inv.trans = inv.RotateVector(p.trans).Mul(-1)
	return inv, nil
}

func (p *Pose2) String() string {
	return fmt.Sprintf("Pose2 | X:%.3f Y:%.3f | Theta:%.3f", p.trans.X, p.trans.Y, p.angle)
}

// Pose3 is a spatial rotation by a unit quaternion followed by a translation.
type Pose3 struct {
	rot   quat.Number
	trans r3.Vector
	// valid is false when the rotation could not be normalized
	valid bool
}

// NewPose3 creates a spatial placement. The rotation is normalized; a zero or non-finite quaternion
// is stored as is and makes the placement non-invertible.
func NewPose3(translation r3.Vector, rotation quat.Number) *Pose3 {
	norm := quat.Abs(rotation)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return &Pose3{rot: rotation, trans: translation}
	}
	return &Pose3{rot: quat.Scale(1/norm, rotation), trans: translation, valid: true}
}

// NewPose3FromAxisAngle creates a spatial placement rotating about an axis.
func NewPose3FromAxisAngle(translation r3.Vector, aa *R4AA) (*Pose3, error) {
	q, err := aa.ToQuat()
	if err != nil {
		return nil, err
	}
	return NewPose3(translation, q), nil
}

// NewTranslation3 creates a spatial placement without rotation.
func NewTranslation3(x, y, z float64) *Pose3 {
	return NewPose3(r3.Vector{X: x, Y: y, Z: z}, quat.Number{Real: 1})
}

// Quaternion returns the unit rotation quaternion.
func (p *Pose3) Quaternion() quat.Number {
	return p.rot
}

func rotateByQuat(q quat.Number, v r3.Vector) r3.Vector {
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

func (p *Pose3) RotateVector(v r3.Vector) r3.Vector {
	return rotateByQuat(p.rot, v)
}

func (p *Pose3) InverseRotateVector(v r3.Vector) r3.Vector {
	return rotateByQuat(quat.Conj(p.rot), v)
}

func (p *Pose3) TransformPoint(v r3.Vector) r3.Vector {
	return p.RotateVector(v).Add(p.trans)
}

func (p *Pose3) InverseTransformPoint(v r3.Vector) r3.Vector {
	return p.InverseRotateVector(v.Sub(p.trans))
}

func (p *Pose3) Translation() r3.Vector {
	return p.trans
}

func (p *Pose3) IsIdentity() bool {
	return p.valid && p.trans == (r3.Vector{}) && (p.rot == quat.Number{Real: 1} || p.rot == quat.Number{Real: -1})
}

// Inverse returns the placement undoing p.
func (p *Pose3) Inverse() (Isometry[r3.Vector], error) {
	if !p.valid || !IsFinite(p.trans) {
		return nil, ErrNonInvertible
	}
	conj := quat.Conj(p.rot)
	return &Pose3{rot: conj, trans: rotateByQuat(conj, p.trans).Mul(-1), valid: true}, nil
}

func (p *Pose3) String() string {
	return fmt.Sprintf("Pose3 | X:%.3f Y:%.3f Z:%.3f | Q:(%.3f, %.3f, %.3f, %.3f)",
		p.trans.X, p.trans.Y, p.trans.Z, p.rot.Real, p.rot.Imag, p.rot.Jmag, p.rot.Kmag)
}

// NewTranslation returns a placement that only translates by t.
func NewTranslation[V Vector[V]](t V) Isometry[V] {
	switch tt := any(t).(type) {
	case r2.Point:
		return any(NewPose2(tt, 0)).(Isometry[V])
	case r3.Vector:
		return any(NewPose3(tt, quat.Number{Real: 1})).(Isometry[V])
	}
	return NewIdentity[V]()
}

// composed applies inner first and outer second.
type composed[V Vector[V]] struct {
	outer, inner Isometry[V]
}

func (c composed[V]) TransformPoint(p V) V {
	return c.outer.TransformPoint(c.inner.TransformPoint(p))
}

func (c composed[V]) InverseTransformPoint(p V) V {
	return c.inner.InverseTransformPoint(c.outer.InverseTransformPoint(p))
}

func (c composed[V]) RotateVector(v V) V {
	return c.outer.RotateVector(c.inner.RotateVector(v))
}

func (c composed[V]) InverseRotateVector(v V) V {
	return c.inner.InverseRotateVector(c.outer.InverseRotateVector(v))
}

func (c composed[V]) Translation() V {
	return c.TransformPoint(Zero[V]())
}

func (c composed[V]) IsIdentity() bool {
	return c.outer.IsIdentity() && c.inner.IsIdentity()
}

func (c composed[V]) Inverse() (Isometry[V], error) {
	outerInv, err := c.outer.Inverse()
	if err != nil {
		return nil, err
	}
	innerInv, err := c.inner.Inverse()
	if err != nil {
		return nil, err
	}
	return composed[V]{outer: innerInv, inner: outerInv}, nil
}

// Compose returns the placement a∘b, which applies b first and then a.
func Compose[V Vector[V]](a, b Isometry[V]) Isometry[V] {
	if _, ok := a.(Identity[V]); ok {
		return b
	}
	if _, ok := b.(Identity[V]); ok {
		return a
	}
	switch pa := any(a).(type) {
	case *Pose2:
		if pb, ok := any(b).(*Pose2); ok {
			res := NewPose2(pa.TransformPoint(pb.trans), pa.angle+pb.angle)
			return any(res).(Isometry[V])
		}
	case *Pose3:
		if pb, ok := any(b).(*Pose3); ok && pa.valid && pb.valid {
			res := NewPose3(pa.TransformPoint(pb.trans), quat.Mul(pa.rot, pb.rot))
			return any(res).(Isometry[V])
		}
	}
	return composed[V]{outer: a, inner: b}
}

// IsometryAlmostEqual reports whether a and b place every basis point within epsilon of each other.
func IsometryAlmostEqual[V Vector[V]](a, b Isometry[V], epsilon float64) bool {
	if !VectorAlmostEqual(a.Translation(), b.Translation(), epsilon) {
		return false
	}
	for _, e := range Basis[V]() {
		if !VectorAlmostEqual(a.RotateVector(e), b.RotateVector(e), epsilon) {
			return false
		}
	}
	return true
}
