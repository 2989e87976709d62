package shape

import (
	"fmt"

	"go.viam.com/collide/spatialmath"
)

// AnnotatedPoint is a point of a Minkowski sum together with the two points it was summed from:
// Point() == Orig1() + Orig2().
//
// Arithmetic acts on all three components, so affine combinations of annotated points keep the
// provenance consistent. Dot products, norms and comparisons only look at Point(). Normalize only
// normalizes Point(), leaving the origins as they were.
type AnnotatedPoint[V spatialmath.Vector[V]] struct {
	orig1 V
	orig2 V
	point V
}

// NewAnnotatedPoint creates an annotated point.
func NewAnnotatedPoint[V spatialmath.Vector[V]](orig1, orig2, point V) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{orig1: orig1, orig2: orig2, point: point}
}

// NewInvalidAnnotatedPoint lifts a bare direction into an annotated point with zero origins. Its
// origins carry no meaning and must not be read as contact data.
func NewInvalidAnnotatedPoint[V spatialmath.Vector[V]](point V) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{point: point}
}

// Point returns the sum point.
func (ap AnnotatedPoint[V]) Point() V {
	return ap.point
}

// Orig1 returns the contribution of the first shape.
func (ap AnnotatedPoint[V]) Orig1() V {
	return ap.orig1
}

// Orig2 returns the contribution of the second shape.
func (ap AnnotatedPoint[V]) Orig2() V {
	return ap.orig2
}

func (ap AnnotatedPoint[V]) Add(o AnnotatedPoint[V]) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{ap.orig1.Add(o.orig1), ap.orig2.Add(o.orig2), ap.point.Add(o.point)}
}

func (ap AnnotatedPoint[V]) Sub(o AnnotatedPoint[V]) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{ap.orig1.Sub(o.orig1), ap.orig2.Sub(o.orig2), ap.point.Sub(o.point)}
}

func (ap AnnotatedPoint[V]) Neg() AnnotatedPoint[V] {
	return ap.Mul(-1)
}

func (ap AnnotatedPoint[V]) Mul(s float64) AnnotatedPoint[V] {
	return AnnotatedPoint[V]{ap.orig1.Mul(s), ap.orig2.Mul(s), ap.point.Mul(s)}
}

func (ap AnnotatedPoint[V]) Div(s float64) AnnotatedPoint[V] {
	return ap.Mul(1 / s)
}

// Dot is the dot product of the sum points.
func (ap AnnotatedPoint[V]) Dot(o AnnotatedPoint[V]) float64 {
	return ap.point.Dot(o.point)
}

// Norm is the norm of the sum point.
func (ap AnnotatedPoint[V]) Norm() float64 {
	return ap.point.Norm()
}

// Norm2 is the squared norm of the sum point.
func (ap AnnotatedPoint[V]) Norm2() float64 {
	return ap.point.Dot(ap.point)
}

// Normalize returns a copy whose sum point has unit length. The origins are left unnormalized.
func (ap AnnotatedPoint[V]) Normalize() AnnotatedPoint[V] {
	return AnnotatedPoint[V]{ap.orig1, ap.orig2, ap.point.Normalize()}
}

// IsZero reports whether the sum point is the origin.
func (ap AnnotatedPoint[V]) IsZero() bool {
	return ap.point == spatialmath.Zero[V]()
}

// Equal compares sum points only.
func (ap AnnotatedPoint[V]) Equal(o AnnotatedPoint[V]) bool {
	return ap.point == o.point
}

// AlmostEqual compares sum points only, within epsilon.
func (ap AnnotatedPoint[V]) AlmostEqual(o AnnotatedPoint[V], epsilon float64) bool {
	return spatialmath.VectorAlmostEqual(ap.point, o.point, epsilon)
}

func (ap AnnotatedPoint[V]) String() string {
	return fmt.Sprintf("{orig1: %v, orig2: %v, point: %v}", ap.orig1, ap.orig2, ap.point)
}
